// Package emit publishes normalized events to whatever subscribers the
// application has attached. Publishing is fire-and-forget: sinks report errors
// but callers are free to ignore them.
package emit

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
)

// Channel names carried on the wire.
const (
	DeviceChanged  = "device-changed"
	GamepadChanged = "gamepad-changed"
)

// Sink receives one payload per call.
type Sink interface {
	Emit(channel string, payload any) error
}

// SinkFunc adapts a function literal to the Sink interface.
type SinkFunc func(channel string, payload any) error

// Emit calls the underlying function.
func (f SinkFunc) Emit(channel string, payload any) error {
	return f(channel, payload)
}

// Discard drops every payload.
var Discard Sink = SinkFunc(func(string, any) error { return nil })

// Message is the envelope written to every subscriber.
type Message struct {
	Channel string `json:"channel"`
	Payload any    `json:"payload"`
}

// Encode renders a channel and payload as one JSON envelope.
func Encode(channel string, payload any) ([]byte, error) {
	data, err := json.Marshal(Message{Channel: channel, Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", channel, err)
	}
	return data, nil
}

// Writer writes JSON lines to an io.Writer.
type Writer struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewWriter wraps w. Writes are serialized so concurrent capture loops never
// interleave lines.
func NewWriter(w io.Writer) *Writer {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &Writer{enc: enc}
}

// Emit writes one line.
func (w *Writer) Emit(channel string, payload any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.enc.Encode(Message{Channel: channel, Payload: payload}); err != nil {
		return fmt.Errorf("write %s: %w", channel, err)
	}
	return nil
}

// Multi fans a payload out to every sink. A failing sink does not stop
// delivery to the others.
type Multi []Sink

// Emit delivers to all sinks and joins their errors.
func (m Multi) Emit(channel string, payload any) error {
	var errs []error
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.Emit(channel, payload); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
