package gamepad

import "time"

// RawKind classifies what a Queue produced.
type RawKind int

const (
	RawOther RawKind = iota
	RawButtonChanged
	RawAxisChanged
	RawConnected
	RawDisconnected
)

// RawEvent is one event taken from a controller library queue. Button is set
// for RawButtonChanged, Axis for RawAxisChanged. ID and Name identify the
// controller for connection changes.
type RawEvent struct {
	Kind   RawKind
	Button Button
	Axis   Axis
	Value  float32
	ID     int
	Name   string
}

// Source initializes the controller library.
type Source interface {
	Open() (Queue, error)
}

// Queue yields raw controller events. Next waits at most wait and reports
// false when nothing arrived. A Queue is used from a single goroutine, the
// one that opened it.
type Queue interface {
	Next(wait time.Duration) (RawEvent, bool)
	Close() error
}

// translate maps button and axis changes to events, values unchanged.
func translate(raw RawEvent) (Event, bool) {
	switch raw.Kind {
	case RawButtonChanged:
		return Event{Kind: ButtonChanged, Name: raw.Button.String(), Value: raw.Value}, true
	case RawAxisChanged:
		return Event{Kind: AxisChanged, Name: raw.Axis.String(), Value: raw.Value}, true
	default:
		return Event{}, false
	}
}

// StickValue scales a signed 16-bit stick reading to [-1, 1].
func StickValue(v int16) float32 {
	if v <= -32767 {
		return -1
	}
	return float32(v) / 32767
}

// TriggerValue scales a 16-bit trigger reading to [0, 1].
func TriggerValue(v int16) float32 {
	if v <= 0 {
		return 0
	}
	return float32(v) / 32767
}
