package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/andresousadotpt/hidstream/internal/lifecycle"
)

type fakeDevice struct {
	guard *lifecycle.Guard
	calls int
}

func (d *fakeDevice) Start(ctx context.Context) error {
	d.calls++
	if _, err := d.guard.Begin(); err != nil {
		return err
	}
	return nil
}

type fakeGamepad struct {
	starts, stops int
	err           error
}

func (g *fakeGamepad) Start(context.Context) error {
	g.starts++
	return g.err
}

func (g *fakeGamepad) Stop() { g.stops++ }

func TestInvokeDispatch(t *testing.T) {
	dev := &fakeDevice{guard: lifecycle.New("device")}
	pad := &fakeGamepad{}
	s := New(dev, pad, nil)
	ctx := context.Background()

	if err := s.Invoke(ctx, StartDevice); err != nil {
		t.Fatal(err)
	}
	err := s.Invoke(ctx, StartDevice)
	if !errors.Is(err, lifecycle.ErrAlreadyActive) || err.Error() != "device is already listening" {
		t.Fatalf("expected already listening, got %v", err)
	}
	if err := s.Invoke(ctx, StartGamepad); err != nil {
		t.Fatal(err)
	}
	if err := s.Invoke(ctx, StopGamepad); err != nil {
		t.Fatal(err)
	}
	if dev.calls != 2 || pad.starts != 1 || pad.stops != 1 {
		t.Fatalf("calls: device=%d starts=%d stops=%d", dev.calls, pad.starts, pad.stops)
	}
}

func TestInvokeUnknown(t *testing.T) {
	s := New(nil, nil, nil)
	for _, name := range []string{"", "stop_device_listening", "Start_Gamepad_Listing"} {
		if err := s.Invoke(context.Background(), name); !errors.Is(err, ErrUnknownCommand) {
			t.Errorf("%q: expected ErrUnknownCommand, got %v", name, err)
		}
	}
}

func TestGamepadErrorsPropagate(t *testing.T) {
	initErr := errors.New("sdl init failed")
	s := New(nil, &fakeGamepad{err: initErr}, nil)
	if err := s.StartGamepadListing(context.Background()); !errors.Is(err, initErr) {
		t.Fatalf("expected init error, got %v", err)
	}
}

func TestUnavailable(t *testing.T) {
	s := New(nil, nil, nil)
	if err := s.StartDeviceListening(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("device: got %v", err)
	}
	if err := s.StartGamepadListing(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("gamepad: got %v", err)
	}
	s.StopGamepadListing()
}

func TestNames(t *testing.T) {
	s := New(&fakeDevice{guard: lifecycle.New("device")}, &fakeGamepad{}, nil)
	for _, name := range Names() {
		if err := s.Invoke(context.Background(), name); errors.Is(err, ErrUnknownCommand) {
			t.Errorf("%s is listed but not accepted", name)
		}
	}
}
