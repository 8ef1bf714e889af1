package globalhook

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrHookClosed reports that the hook stopped delivering events before the
// context ended, or never reported itself enabled. Both are how a failed
// registration surfaces.
var ErrHookClosed = errors.New("global input hook closed")

// registrationTimeout bounds the wait for libuiohook to report the hook
// enabled after it is started.
const registrationTimeout = 5 * time.Second

// awaitEnabled reads events until one of kind kindHookEnabled arrives.
// Events received before it are dropped. It fails with ErrHookClosed when
// the channel closes, the hook reports itself disabled, or timeout passes
// first, and with ctx.Err() when ctx ends first.
func awaitEnabled[E any](ctx context.Context, events <-chan E, kind func(E) uint8, timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return fmt.Errorf("%w: not enabled within %s", ErrHookClosed, timeout)
		case ev, ok := <-events:
			if !ok {
				return fmt.Errorf("%w: registration failed", ErrHookClosed)
			}
			switch kind(ev) {
			case kindHookEnabled:
				return nil
			case kindHookDisabled:
				return fmt.Errorf("%w: disabled during registration", ErrHookClosed)
			}
		}
	}
}
