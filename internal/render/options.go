// Package render turns assistant replies into styled terminal output.
package render

import (
	"os"

	"github.com/diogo/chatshell/internal/config"
)

// Options configures the markdown renderer behavior.
// Options is comparable and doubles as the renderer pool key.
type Options struct {
	// Width is the word-wrap column (default: 80)
	Width int

	// Style is a glamour style name or a path to a JSON style file
	Style string

	EnableEmoji      bool
	PreserveNewLines bool
	TableWrap        bool
	InlineTableLinks bool
}

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return optionsFrom(config.DefaultMarkdownConfig(), 80)
}

// OptionsFromConfig builds options from the markdown section of cfg.
// GLAMOUR_STYLE overrides the configured style.
func OptionsFromConfig(cfg config.Config, width int) Options {
	opts := optionsFrom(cfg.Markdown, width)
	if opts.Style == "" {
		opts.Style = StyleDark
	}
	if style := os.Getenv("GLAMOUR_STYLE"); style != "" {
		opts.Style = style
	}
	return opts
}

func optionsFrom(md config.MarkdownConfig, width int) Options {
	return Options{
		Width:            width,
		Style:            md.Style,
		EnableEmoji:      md.EnableEmoji,
		PreserveNewLines: md.PreserveNewLines,
		TableWrap:        md.TableWrap,
		InlineTableLinks: md.InlineTableLinks,
	}
}

// WithWidth returns Options with the specified width.
func (o Options) WithWidth(width int) Options {
	if width < 20 {
		width = 20
	}
	o.Width = width
	return o
}

// WithStyle returns Options with the specified style.
func (o Options) WithStyle(style string) Options {
	if style != "" {
		o.Style = style
	}
	return o
}
