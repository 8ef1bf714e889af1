package gamepad

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/andresousadotpt/hidstream/internal/emit"
	"github.com/andresousadotpt/hidstream/internal/lifecycle"
)

// ErrInit reports that the controller library could not be initialized.
var ErrInit = errors.New("initialize gamepad subsystem")

// DefaultPollInterval bounds how long the loop waits on an empty queue, and
// with it how long a stop takes to be observed.
const DefaultPollInterval = 50 * time.Millisecond

// Options configures a Listener. Source is required.
type Options struct {
	Guard        *lifecycle.Guard
	Source       Source
	Sink         emit.Sink
	Logger       *slog.Logger
	PollInterval time.Duration
}

// Listener owns the gamepad capture loop.
type Listener struct {
	guard  *lifecycle.Guard
	source Source
	sink   emit.Sink
	logger *slog.Logger
	poll   time.Duration
	wg     sync.WaitGroup

	mu   sync.Mutex
	done chan struct{} // closed when the most recent loop exits
}

// NewListener fills in defaults for every option except Source.
func NewListener(opts Options) (*Listener, error) {
	if opts.Source == nil {
		return nil, errors.New("gamepad listener: source is required")
	}
	l := &Listener{
		guard:  opts.Guard,
		source: opts.Source,
		sink:   opts.Sink,
		logger: opts.Logger,
		poll:   opts.PollInterval,
	}
	if l.guard == nil {
		l.guard = lifecycle.New("gamepad")
	}
	if l.sink == nil {
		l.sink = emit.Discard
	}
	if l.logger == nil {
		l.logger = slog.New(slog.DiscardHandler)
	}
	if l.poll <= 0 {
		l.poll = DefaultPollInterval
	}
	return l, nil
}

// Guard reports the listener's running state.
func (l *Listener) Guard() *lifecycle.Guard { return l.guard }

// Start launches the loop and returns once the controller library is
// initialized. It is a no-op when the loop is already running. A loop that
// was stopped but has not exited yet is waited for before the library is
// opened again. An initialization failure is returned and leaves the
// listener idle.
func (l *Listener) Start(ctx context.Context) error {
	ticket, err := l.guard.Begin()
	if err != nil {
		if errors.Is(err, lifecycle.ErrAlreadyActive) {
			return nil
		}
		return err
	}

	done := make(chan struct{})
	l.mu.Lock()
	prev := l.done
	l.done = done
	l.mu.Unlock()

	ready := make(chan error, 1)
	l.wg.Add(1)
	go l.run(ctx, ticket, prev, done, ready)
	return <-ready
}

// Stop asks the loop to exit. It returns without waiting; the loop notices
// within one poll interval. Stopping an idle listener does nothing.
func (l *Listener) Stop() {
	if l.guard.End() {
		l.logger.Info("gamepad listening stopped")
	}
}

// Wait blocks until every loop started so far has exited.
func (l *Listener) Wait() {
	l.wg.Wait()
}

func (l *Listener) run(ctx context.Context, ticket lifecycle.Ticket, prev <-chan struct{}, done chan<- struct{}, ready chan<- error) {
	defer l.wg.Done()
	defer close(done)
	defer ticket.Release()

	if prev != nil {
		select {
		case <-prev:
		case <-ctx.Done():
			ready <- ctx.Err()
			return
		}
	}

	q, err := l.source.Open()
	if err != nil {
		ready <- fmt.Errorf("%w: %w", ErrInit, err)
		return
	}
	defer q.Close()
	ready <- nil
	l.logger.Info("gamepad listening started", "poll", l.poll)

	for ticket.Active() && ctx.Err() == nil {
		raw, ok := q.Next(l.poll)
		if !ok || !ticket.Active() || ctx.Err() != nil {
			continue
		}
		switch raw.Kind {
		case RawConnected:
			l.logger.Info("gamepad connected", "id", raw.ID, "name", raw.Name)
			continue
		case RawDisconnected:
			l.logger.Info("gamepad disconnected", "id", raw.ID)
			continue
		}
		if ev, ok := translate(raw); ok {
			if err := l.sink.Emit(emit.GamepadChanged, ev); err != nil {
				l.logger.Debug("publish gamepad event", "event", ev.String(), "error", err)
			}
		}
	}
}
