//go:build !linux

package main

import (
	"errors"
	"io"
)

func listDevices(io.Writer) error {
	return errors.New("devices: listing input nodes is only supported on Linux")
}
