//go:build linux

package evinput

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// AccessMode decodes the read and write intent of open(2) flags.
func AccessMode(flags int) (read, write bool, err error) {
	switch flags & unix.O_ACCMODE {
	case unix.O_RDONLY:
		return true, false, nil
	case unix.O_WRONLY:
		return false, true, nil
	case unix.O_RDWR:
		return true, true, nil
	default:
		return false, false, unix.EINVAL
	}
}

// accessFlags rebuilds the access bits from decoded intent and keeps every
// other flag the caller asked for.
func accessFlags(read, write bool, flags int) int {
	mode := unix.O_RDONLY
	switch {
	case read && write:
		mode = unix.O_RDWR
	case write:
		mode = unix.O_WRONLY
	}
	return flags&^unix.O_ACCMODE | mode
}

// RestrictedOpener opens device nodes directly. Access is governed by the
// node's permissions (usually the 'input' group or a logind ACL).
type RestrictedOpener struct{}

// OpenRestricted opens path with flags plus O_CLOEXEC.
func (RestrictedOpener) OpenRestricted(path string, flags int) (int, error) {
	read, write, err := AccessMode(flags)
	if err != nil {
		return -1, fmt.Errorf("open %s: %w", path, err)
	}

	fd, err := unix.Open(path, accessFlags(read, write, flags)|unix.O_CLOEXEC, 0)
	if err != nil {
		if errors.Is(err, unix.EACCES) || errors.Is(err, unix.EPERM) {
			return -1, fmt.Errorf("%w: %s: %w", ErrPermission, path, err)
		}
		return -1, fmt.Errorf("open %s: %w", path, err)
	}
	return fd, nil
}

// CloseRestricted releases a descriptor returned by OpenRestricted.
func (RestrictedOpener) CloseRestricted(fd int) {
	unix.Close(fd)
}
