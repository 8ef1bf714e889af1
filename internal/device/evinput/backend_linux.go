//go:build linux

package evinput

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/andresousadotpt/hidstream/internal/device"
	evdev "github.com/holoplot/go-evdev"
	"golang.org/x/sys/unix"
)

const (
	defaultInputDir = "/dev/input"
	defaultSettle   = 250 * time.Millisecond
	readBatch       = 64
)

// Options configures a Backend.
type Options struct {
	// Seat enumerates device nodes. Required.
	Seat Seat
	// SeatName defaults to seat0.
	SeatName string
	// Opener defaults to RestrictedOpener.
	Opener Opener
	// Hotplug watches InputDir for new nodes and rescans the seat.
	Hotplug  bool
	InputDir string
	// Settle is the delay between a node appearing and the rescan.
	Settle time.Duration
	Logger *slog.Logger
}

// Backend captures keyboard and pointer input from a seat's device nodes.
type Backend struct {
	seat     Seat
	seatName string
	opener   Opener
	hotplug  bool
	inputDir string
	settle   time.Duration
	logger   *slog.Logger
}

// New validates opts and fills in defaults.
func New(opts Options) (*Backend, error) {
	if opts.Seat == nil {
		return nil, errors.New("evinput: seat is required")
	}
	b := &Backend{
		seat:     opts.Seat,
		seatName: opts.SeatName,
		opener:   opts.Opener,
		hotplug:  opts.Hotplug,
		inputDir: opts.InputDir,
		settle:   opts.Settle,
		logger:   opts.Logger,
	}
	if b.seatName == "" {
		b.seatName = DefaultSeat
	}
	if b.opener == nil {
		b.opener = RestrictedOpener{}
	}
	if b.inputDir == "" {
		b.inputDir = defaultInputDir
	}
	if b.settle <= 0 {
		b.settle = defaultSettle
	}
	if b.logger == nil {
		b.logger = slog.New(slog.DiscardHandler)
	}
	return b, nil
}

// Name identifies the backend in logs.
func (b *Backend) Name() string { return "evdev" }

type openDevice struct {
	info  SeatDevice
	fd    int
	frame *frame
}

// session is the state of one Run call. Only the Run goroutine touches it,
// except rescan and wake, which the hotplug watcher and context use.
type session struct {
	b       *Backend
	epfd    int
	wakefd  int
	devices map[int]*openDevice
	paths   map[string]bool
	rescan  atomic.Bool
	emit    func(device.Event)

	wakeMu     sync.Mutex
	wakeClosed bool

	buf    []byte
	events []evdev.InputEvent
	raws   []rawEvent
}

// Run opens every device on the seat and forwards normalized events to emit
// until ctx is done or dispatch fails. It returns ctx.Err() on cancellation.
// Every opened descriptor is closed before Run returns.
func (b *Backend) Run(ctx context.Context, emit func(device.Event)) error {
	infos, err := b.seat.Devices(b.seatName)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrSeat, b.seatName, err)
	}

	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return fmt.Errorf("%w %s: epoll: %w", ErrSeat, b.seatName, err)
	}
	defer unix.Close(epfd)

	wakefd, err := unix.Eventfd(0, unix.EFD_CLOEXEC|unix.EFD_NONBLOCK)
	if err != nil {
		return fmt.Errorf("%w %s: eventfd: %w", ErrSeat, b.seatName, err)
	}

	s := &session{
		b:       b,
		epfd:    epfd,
		wakefd:  wakefd,
		devices: make(map[int]*openDevice),
		paths:   make(map[string]bool),
		emit:    emit,
		buf:     make([]byte, eventSize*readBatch),
	}
	defer s.closeWake()
	defer s.closeAll()

	if err := s.watch(wakefd); err != nil {
		return fmt.Errorf("%w %s: %w", ErrSeat, b.seatName, err)
	}
	if err := s.openAll(infos); err != nil {
		return err
	}
	b.logger.Info("seat assigned", "seat", b.seatName, "devices", len(s.devices))

	stop := context.AfterFunc(ctx, s.wake)
	defer stop()

	if b.hotplug {
		closeWatcher, err := watchHotplug(ctx, b.inputDir, b.settle, b.logger, func() {
			s.rescan.Store(true)
			s.wake()
		})
		if err != nil {
			b.logger.Warn("hotplug disabled", "dir", b.inputDir, "error", err)
		} else {
			defer closeWatcher()
		}
	}

	pollfds := []unix.PollFd{{Fd: int32(epfd), Events: unix.POLLIN}}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := unix.Poll(pollfds, -1); err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			return fmt.Errorf("%w: poll: %w", ErrDispatch, err)
		}
		if err := s.dispatch(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return err
		}
	}
}

func (s *session) wake() {
	s.wakeMu.Lock()
	defer s.wakeMu.Unlock()
	if s.wakeClosed {
		return
	}
	var one [8]byte
	binary.NativeEndian.PutUint64(one[:], 1)
	unix.Write(s.wakefd, one[:])
}

// closeWake closes the eventfd once no wake can be writing to it.
func (s *session) closeWake() {
	s.wakeMu.Lock()
	defer s.wakeMu.Unlock()
	s.wakeClosed = true
	unix.Close(s.wakefd)
}

func (s *session) watch(fd int) error {
	return unix.EpollCtl(s.epfd, unix.EPOLL_CTL_ADD, fd, &unix.EpollEvent{
		Events: unix.EPOLLIN,
		Fd:     int32(fd),
	})
}

// openAll opens the nodes not already held and skips any that fail. It is an
// error only when nodes were offered and none is held afterwards.
func (s *session) openAll(infos []SeatDevice) error {
	var permErr, lastErr error
	for _, info := range infos {
		if s.paths[info.Path] || (!info.Keyboard && !info.Pointer) {
			continue
		}
		fd, err := s.b.opener.OpenRestricted(info.Path, unix.O_RDONLY|unix.O_NONBLOCK)
		if err != nil {
			if errors.Is(err, ErrPermission) || errors.Is(err, unix.EACCES) || errors.Is(err, unix.EPERM) {
				permErr = err
			}
			lastErr = err
			s.b.logger.Warn("skip device", "path", info.Path, "error", err)
			continue
		}
		if err := s.watch(fd); err != nil {
			s.b.opener.CloseRestricted(fd)
			lastErr = err
			s.b.logger.Warn("skip device", "path", info.Path, "error", err)
			continue
		}
		s.devices[fd] = &openDevice{info: info, fd: fd, frame: newFrame(info)}
		s.paths[info.Path] = true
		s.b.logger.Debug("device added", "path", info.Path, "name", info.Name,
			"keyboard", info.Keyboard, "pointer", info.Pointer)
	}
	if len(s.devices) > 0 || lastErr == nil {
		return nil
	}
	if permErr != nil {
		if !errors.Is(permErr, ErrPermission) {
			permErr = fmt.Errorf("%w: %w", ErrPermission, permErr)
		}
		return permErr
	}
	return fmt.Errorf("%w %s: no device could be opened: %w", ErrSeat, s.b.seatName, lastErr)
}

func (s *session) remove(d *openDevice, reason error) {
	unix.EpollCtl(s.epfd, unix.EPOLL_CTL_DEL, d.fd, nil)
	s.b.opener.CloseRestricted(d.fd)
	delete(s.devices, d.fd)
	delete(s.paths, d.info.Path)
	s.b.logger.Info("device removed", "path", d.info.Path, "name", d.info.Name, "reason", reason)
}

func (s *session) closeAll() {
	for _, d := range s.devices {
		s.b.opener.CloseRestricted(d.fd)
	}
	clear(s.devices)
	clear(s.paths)
}

// dispatch drains everything that is ready without blocking.
func (s *session) dispatch(ctx context.Context) error {
	ready := make([]unix.EpollEvent, len(s.devices)+1)
	n, err := unix.EpollWait(s.epfd, ready, 0)
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return nil
		}
		return fmt.Errorf("%w: %w", ErrDispatch, err)
	}

	for _, ev := range ready[:n] {
		fd := int(ev.Fd)
		if fd == s.wakefd {
			var drain [8]byte
			unix.Read(s.wakefd, drain[:])
			if ctx.Err() != nil {
				return nil
			}
			continue
		}
		d, ok := s.devices[fd]
		if !ok {
			continue
		}
		if err := s.drain(d); err != nil {
			return err
		}
	}

	if s.rescan.Swap(false) {
		infos, err := s.b.seat.Devices(s.b.seatName)
		if err != nil {
			s.b.logger.Warn("rescan seat", "seat", s.b.seatName, "error", err)
			return nil
		}
		if err := s.openAll(infos); err != nil {
			s.b.logger.Warn("rescan seat", "seat", s.b.seatName, "error", err)
		}
	}
	return nil
}

// drain reads d until it would block.
func (s *session) drain(d *openDevice) error {
	for {
		n, err := unix.Read(d.fd, s.buf)
		switch {
		case errors.Is(err, unix.EAGAIN):
			return nil
		case errors.Is(err, unix.EINTR):
			continue
		case errors.Is(err, unix.ENODEV):
			s.remove(d, err)
			return nil
		case err != nil:
			return fmt.Errorf("%w: read %s: %w", ErrDispatch, d.info.Path, err)
		case n == 0:
			s.remove(d, errDeviceGone)
			return nil
		}

		s.events = parseEvents(s.buf[:n], s.events[:0])
		s.raws = s.raws[:0]
		for _, ev := range s.events {
			s.raws = d.frame.translate(ev, s.raws)
		}
		for _, raw := range s.raws {
			if out, ok := normalize(raw); ok {
				s.emit(out)
			}
		}
	}
}

var errDeviceGone = errors.New("device closed")
