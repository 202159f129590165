package render

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Loop redraws the chart at a fixed interval, independent of message
// arrival: each tick clears the screen and writes a fresh frame.
type Loop struct {
	renderer *Renderer
	out      io.Writer
	interval time.Duration
	logger   *slog.Logger
}

// NewLoop creates a redraw loop writing frames to out.
func NewLoop(renderer *Renderer, out io.Writer, interval time.Duration, logger *slog.Logger) *Loop {
	return &Loop{
		renderer: renderer,
		out:      out,
		interval: interval,
		logger:   logger.With(slog.String("component", "render_loop")),
	}
}

// Run redraws until ctx is cancelled, then returns ctx.Err().
func (l *Loop) Run(ctx context.Context) error {
	l.logger.Info("render loop started", slog.Duration("interval", l.interval))

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			fmt.Fprint(l.out, clearScreen+cursorHome)
			fmt.Fprint(l.out, l.renderer.Frame(time.Now()))
		}
	}
}
