// Package device defines the normalized keyboard and mouse event stream and the
// listener that runs one capture backend behind a single-flight guard.
package device

import (
	"encoding/json"
	"fmt"
)

// Kind tags a DeviceEvent. The set is closed.
type Kind string

const (
	KindMousePress      Kind = "MousePress"
	KindMouseRelease    Kind = "MouseRelease"
	KindMouseMove       Kind = "MouseMove"
	KindKeyboardPress   Kind = "KeyboardPress"
	KindKeyboardRelease Kind = "KeyboardRelease"
)

// Point is the MouseMove payload. The privileged backend reports relative
// unaccelerated deltas, the global hook reports absolute screen coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Event is one normalized keyboard or mouse occurrence. Build it through the
// constructors so the payload always matches the kind.
type Event struct {
	kind  Kind
	name  string
	point Point
}

func MousePress(button string) Event   { return Event{kind: KindMousePress, name: button} }
func MouseRelease(button string) Event { return Event{kind: KindMouseRelease, name: button} }
func MouseMove(x, y float64) Event     { return Event{kind: KindMouseMove, point: Point{X: x, Y: y}} }
func KeyboardPress(key string) Event   { return Event{kind: KindKeyboardPress, name: key} }
func KeyboardRelease(key string) Event { return Event{kind: KindKeyboardRelease, name: key} }

// Button returns a mouse press/release event for the given state.
func Button(button string, pressed bool) Event {
	if pressed {
		return MousePress(button)
	}
	return MouseRelease(button)
}

// Key returns a keyboard press/release event for the given state.
func Key(key string, pressed bool) Event {
	if pressed {
		return KeyboardPress(key)
	}
	return KeyboardRelease(key)
}

// Kind returns the event tag.
func (e Event) Kind() Kind { return e.kind }

// Name returns the button or key name. It is empty for MouseMove.
func (e Event) Name() string { return e.name }

// Point returns the motion payload. It is the zero Point for non-motion kinds.
func (e Event) Point() Point { return e.point }

// Value returns the payload in its wire shape: a string or a Point.
func (e Event) Value() any {
	if e.kind == KindMouseMove {
		return e.point
	}
	return e.name
}

func (e Event) String() string {
	if e.kind == KindMouseMove {
		return fmt.Sprintf("%s(%g, %g)", e.kind, e.point.X, e.point.Y)
	}
	return fmt.Sprintf("%s(%s)", e.kind, e.name)
}

type wireEvent struct {
	Kind  Kind `json:"kind"`
	Value any  `json:"value"`
}

// MarshalJSON renders {"kind": ..., "value": ...}.
func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireEvent{Kind: e.kind, Value: e.Value()})
}

// UnmarshalJSON accepts the MarshalJSON form and rejects payloads that do not
// match their kind.
func (e *Event) UnmarshalJSON(data []byte) error {
	var raw struct {
		Kind  Kind            `json:"kind"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch raw.Kind {
	case KindMouseMove:
		var p Point
		if err := json.Unmarshal(raw.Value, &p); err != nil {
			return fmt.Errorf("decode %s value: %w", raw.Kind, err)
		}
		*e = MouseMove(p.X, p.Y)
	case KindMousePress, KindMouseRelease, KindKeyboardPress, KindKeyboardRelease:
		var name string
		if err := json.Unmarshal(raw.Value, &name); err != nil {
			return fmt.Errorf("decode %s value: %w", raw.Kind, err)
		}
		*e = Event{kind: raw.Kind, name: name}
	default:
		return fmt.Errorf("unknown device event kind %q", raw.Kind)
	}
	return nil
}
