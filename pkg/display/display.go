// Package display renders Markdown blocks to the terminal.
package display

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/glamour"
)

const (
	// AutoStyle picks a dark or light theme from the terminal, and plain
	// output when stdout is not a terminal.
	AutoStyle  = "auto"
	PlainStyle = "notty"

	defaultWordWrap = 80
)

// Presenter writes rendered Markdown to w.
type Presenter struct {
	w     io.Writer
	style string
	wrap  int
}

type Option func(*Presenter)

// WithStyle selects a glamour standard style ("dark", "light", "notty", ...).
func WithStyle(style string) Option {
	return func(p *Presenter) { p.style = style }
}

// WithWordWrap sets the wrap width; 0 disables wrapping.
func WithWordWrap(width int) Option {
	return func(p *Presenter) { p.wrap = width }
}

func NewPresenter(w io.Writer, opts ...Option) *Presenter {
	p := &Presenter{w: w, style: AutoStyle, wrap: defaultWordWrap}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Render returns text formatted for the terminal.
func (p *Presenter) Render(text string) (string, error) {
	styleOpt := glamour.WithAutoStyle()
	if p.style != AutoStyle {
		styleOpt = glamour.WithStandardStyle(p.style)
	}

	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(p.wrap))
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}

	out, err := r.Render(text)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}

// Present renders text and writes it out. When rendering fails the raw text
// is written instead, so only write errors are returned.
func (p *Presenter) Present(text string) error {
	out, err := p.Render(text)
	if err != nil {
		slog.Warn("markdown_render_failed", "error", err)
		out = text + "\n"
	}

	if _, err := io.WriteString(p.w, out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// Present renders text to stdout.
func Present(text string) {
	if err := NewPresenter(os.Stdout).Present(text); err != nil {
		slog.Error("present_failed", "error", err)
	}
}
