//go:build !linux

package globalhook

import (
	"context"
	"log/slog"

	"github.com/andresousadotpt/hidstream/internal/device"
	hook "github.com/robotn/gohook"
)

// Backend captures input through a process-wide libuiohook hook. Only one
// Backend may run at a time.
type Backend struct {
	logger *slog.Logger
}

// New returns a Backend that logs to logger, or discards logs when it is nil.
func New(logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Backend{logger: logger}
}

func (b *Backend) Name() string { return "hook" }

// Run blocks until ctx ends or the hook channel closes. A hook that does not
// report itself enabled within registrationTimeout fails with ErrHookClosed.
func (b *Backend) Run(ctx context.Context, emit func(device.Event)) error {
	events := hook.Start()
	defer hook.End()
	if err := awaitEnabled(ctx, events, func(ev hook.Event) uint8 { return ev.Kind }, registrationTimeout); err != nil {
		return err
	}
	b.logger.Info("global hook started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return ErrHookClosed
			}
			out, ok := normalize(hookEvent{
				Kind:    ev.Kind,
				Keycode: ev.Keycode,
				Button:  ev.Button,
				X:       ev.X,
				Y:       ev.Y,
			})
			if ok {
				emit(out)
			}
		}
	}
}
