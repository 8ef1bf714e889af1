package device

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/andresousadotpt/hidstream/internal/emit"
	"github.com/andresousadotpt/hidstream/internal/lifecycle"
)

// Backend acquires raw events from the OS, normalizes them, and hands each
// one to emit in delivery order. Run blocks until capture ends.
type Backend interface {
	Name() string
	Run(ctx context.Context, emit func(Event)) error
}

// Options configures a Listener.
type Options struct {
	Guard   *lifecycle.Guard
	Backend Backend
	Sink    emit.Sink
	Logger  *slog.Logger

	// ReleaseOnFailure frees the guard when the backend fails so a later
	// start can retry. By default the guard stays taken for the lifetime of
	// the process once admitted.
	ReleaseOnFailure bool
}

// Listener runs the device capture loop.
type Listener struct {
	guard            *lifecycle.Guard
	backend          Backend
	sink             emit.Sink
	log              *slog.Logger
	releaseOnFailure bool
}

// NewListener validates options and builds a listener.
func NewListener(opts Options) (*Listener, error) {
	if opts.Backend == nil {
		return nil, errors.New("device backend is required")
	}
	guard := opts.Guard
	if guard == nil {
		guard = lifecycle.New("device")
	}
	sink := opts.Sink
	if sink == nil {
		sink = emit.Discard
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Listener{
		guard:            guard,
		backend:          opts.Backend,
		sink:             sink,
		log:              log,
		releaseOnFailure: opts.ReleaseOnFailure,
	}, nil
}

// Guard exposes the single-flight state for status reporting.
func (l *Listener) Guard() *lifecycle.Guard {
	return l.guard
}

// Start admits one capture loop and runs the backend on the calling
// goroutine. A second concurrent Start fails with lifecycle.ErrAlreadyActive.
func (l *Listener) Start(ctx context.Context) error {
	ticket, err := l.guard.Begin()
	if err != nil {
		return err
	}

	l.log.Info("device capture started", "backend", l.backend.Name())
	err = l.backend.Run(ctx, l.publish)
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		l.log.Info("device capture stopped", "backend", l.backend.Name())
		return err
	}

	if l.releaseOnFailure {
		ticket.Release()
	}
	l.log.Error("device capture failed", "backend", l.backend.Name(), "error", err)
	return fmt.Errorf("listen device: %w", err)
}

func (l *Listener) publish(ev Event) {
	if err := l.sink.Emit(emit.DeviceChanged, ev); err != nil {
		l.log.Debug("publish device event", "event", ev.String(), "error", err)
	}
}
