package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diogo/chatshell/internal/logging"
	"github.com/diogo/chatshell/internal/server"
)

// NewServeCmd creates the local echo backend command
func NewServeCmd(deps *Dependencies) *cobra.Command {
	var (
		addr    string
		origins []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local echo backend",
		Long: `Run a development backend that speaks the chat wire contract.

  GET    /api                     status
  POST   /api/chat                {"message": "..."} -> {"response": "..."}
  DELETE /api/conversation/{id}   clear a conversation

Replies echo the message. History is kept in memory until the process exits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.MustNew(true, "")
			defer func() { _ = logger.Sync() }()

			srv := &http.Server{
				Addr:         addr,
				Handler:      newBackend(logger, origins).Router(),
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 15 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			fmt.Fprintf(deps.Stderr, "Chat endpoint: http://%s/api/chat\n", displayAddr(addr))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, srv, logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8000", "Listen address")
	cmd.Flags().StringSliceVar(&origins, "allow-origin", nil, "Allowed CORS origins (default all)")
	return cmd
}

// displayAddr turns a listen address into a host:port usable in a URL
func displayAddr(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}

func newBackend(logger *zap.Logger, origins []string) *server.Server {
	return server.New(
		server.WithLogger(logger),
		server.WithAllowedOrigins(origins...),
	)
}

// serve runs srv until ctx is cancelled, then shuts it down gracefully
func serve(ctx context.Context, srv *http.Server, logger *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting echo backend", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
