package evinput

import "errors"

// DefaultSeat is the seat udev assigns devices to when ID_SEAT is unset.
const DefaultSeat = "seat0"

var (
	// ErrSeat reports that the seat could not be acquired.
	ErrSeat = errors.New("assign seat")
	// ErrPermission reports that the OS refused access to a device node.
	ErrPermission = errors.New("permission denied opening input device (add your user to the 'input' group: sudo usermod -aG input $USER)")
	// ErrDispatch reports a failure while reading buffered events. It aborts
	// the capture loop.
	ErrDispatch = errors.New("dispatch input events")
)

// SeatDevice is one input device node assigned to a seat.
type SeatDevice struct {
	Path     string
	Name     string
	Keyboard bool
	Pointer  bool
}

// Seat enumerates the device nodes that belong to a seat.
type Seat interface {
	Devices(seat string) ([]SeatDevice, error)
}

// Opener performs the permission-mediated open and close of device nodes.
// Every descriptor returned by OpenRestricted is handed back to
// CloseRestricted exactly once.
type Opener interface {
	OpenRestricted(path string, flags int) (int, error)
	CloseRestricted(fd int)
}
