// Package commands provides CLI commands for chatshell.
package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	apierrors "github.com/diogo/chatshell/internal/errors"
)

var (
	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootOptions holds flags shared by the root command and its subcommands
type rootOptions struct {
	endpoint string
	verbose  bool

	output  string
	file    string
	style   string
	raw     bool
	copy    bool
	version bool
}

// rootCmd represents the base command
var rootCmd = NewRootCmd(nil)

// NewRootCmd creates the root command with its subcommands
func NewRootCmd(deps *Dependencies) *cobra.Command {
	if deps == nil {
		deps = NewDependencies()
	}
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "chatshell [message]",
		Short: "Terminal chat front-end for HTTP chat backends",
		Long: `chatshell posts your messages to a chat backend and shows the replies.

The backend receives {"message": "..."} as JSON and must answer with
{"response": "..."}. Failed requests are shown as assistant messages that
name the endpoint.

Examples:
  chatshell chat                          Start interactive chat
  chatshell "What is Go?"                 Send a single message
  chatshell -f prompt.md                  Read the message from a file
  cat prompt.md | chatshell               Read the message from stdin
  chatshell "Hello" -o reply.md           Save the reply to a file
  chatshell status                        Check that the backend is up
  chatshell serve                         Run a local echo backend`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.version {
				fmt.Fprintf(deps.Stdout, "chatshell %s (built %s)\n", Version, BuildTime)
				return nil
			}

			if opts.file != "" {
				data, err := os.ReadFile(opts.file)
				if err != nil {
					return fmt.Errorf("failed to read file: %w", err)
				}
				return runQuery(deps, opts, string(data))
			}

			if len(args) > 0 {
				return runQuery(deps, opts, args[0])
			}

			if deps.StdinPiped() {
				data, err := io.ReadAll(deps.Stdin)
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				return runQuery(deps, opts, string(data))
			}

			// No input - show help
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.endpoint, "endpoint", "e", "", "Chat endpoint URL (overrides config)")
	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Enable debug logging")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Save reply to file")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read message from file")
	cmd.Flags().StringVar(&opts.style, "style", "", "Markdown style (dark, light, dracula, tokyo-night, ...)")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "Print only the reply text")
	cmd.Flags().BoolVar(&opts.copy, "copy", false, "Copy the reply to the clipboard")
	cmd.Flags().BoolVarP(&opts.version, "version", "v", false, "Show version and exit")

	cmd.AddCommand(NewChatCmd(deps, opts))
	cmd.AddCommand(NewStatusCmd(deps, opts))
	cmd.AddCommand(NewConfigCmd(deps))
	cmd.AddCommand(NewServeCmd(deps))

	return cmd
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, errorStyle.Render("✗ "+err.Error()))
			if errors.Is(err, apierrors.ErrInvalidEndpoint) {
				fmt.Fprintln(os.Stderr, dimStyle.Render("Endpoints look like http://localhost:8000/api/chat"))
			}
		}
		os.Exit(1)
	}
}
