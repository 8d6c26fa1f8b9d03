// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package gps

import (
	"bufio"
	"fmt"
	"io"

	jserial "github.com/jacobsa/go-serial/serial"
	tserial "github.com/tarm/serial"
)

// Serial drivers accepted by SerialConfig.Driver.
const (
	DriverJacobsa = "jacobsa"
	DriverTarm    = "tarm"
)

const DefaultBaudRate = 9600

// SerialConfig selects the port and line speed. The line is always 8N1
// with blocking reads and no inter-character timeout.
type SerialConfig struct {
	Driver   string // DriverJacobsa (default) or DriverTarm
	Port     string // e.g. /dev/serial0, /dev/ttyUSB0
	BaudRate int    // 0 means DefaultBaudRate
}

// portSource buffers a port so single-byte reads do not each hit the device.
type portSource struct {
	*bufio.Reader
	port io.Closer
}

func (p *portSource) Close() error { return p.port.Close() }

func newPortSource(port io.ReadCloser) *portSource {
	return &portSource{Reader: bufio.NewReaderSize(port, 256), port: port}
}

// OpenSerial opens the receiver's serial port. Failures are *ResourceError.
func OpenSerial(cfg SerialConfig) (ByteSource, error) {
	baud := cfg.BaudRate
	if baud == 0 {
		baud = DefaultBaudRate
	}

	var (
		port io.ReadCloser
		err  error
	)
	switch cfg.Driver {
	case "", DriverJacobsa:
		port, err = jserial.Open(jserial.OpenOptions{
			PortName:              cfg.Port,
			BaudRate:              uint(baud),
			DataBits:              8,
			StopBits:              1,
			MinimumReadSize:       1,
			ParityMode:            jserial.PARITY_NONE,
			InterCharacterTimeout: 0,
		})
	case DriverTarm:
		port, err = tserial.OpenPort(&tserial.Config{
			Name:     cfg.Port,
			Baud:     baud,
			Size:     8,
			Parity:   tserial.ParityNone,
			StopBits: tserial.Stop1,
		})
	default:
		err = fmt.Errorf("unknown serial driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, &ResourceError{Op: "open", Path: cfg.Port, Err: err}
	}
	return newPortSource(port), nil
}
