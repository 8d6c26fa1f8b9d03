// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package gps

import (
	"io"

	"github.com/relabs-tech/gps_fix/internal/nmea"
)

// ByteSource is an exclusively owned, blocking byte stream from a receiver.
type ByteSource interface {
	io.ByteReader
	io.Closer
}

// Acquire reads one GGA and then one RMC sentence from src and returns a
// fix with position and elevation from the GGA and time from the RMC.
// src is closed exactly once before Acquire returns, on every path.
//
// The two sentences come from independent forward scans and may belong to
// different receiver output cycles, so the timestamp can trail the
// position by one update interval. Reads block for as long as src does.
func Acquire(src ByteSource) (fix nmea.Fix, err error) {
	defer func() {
		cerr := src.Close()
		if cerr != nil && err == nil {
			err = &ResourceError{Op: "close", Err: cerr}
		}
	}()

	fix, err = next(src, "GGA", nmea.DecodeGGA)
	if err != nil {
		return nmea.Fix{}, err
	}
	rmc, err := next(src, "RMC", nmea.DecodeRMC)
	if err != nil {
		return nmea.Fix{}, err
	}
	fix.Time = rmc.Time
	return fix, nil
}

// next skips sentences until one of the given type arrives and decodes it.
// Read, checksum and decode errors are returned unchanged.
func next(r io.ByteReader, typ string, decode func([]string) (nmea.Fix, error)) (nmea.Fix, error) {
	for {
		s, err := nmea.ReadSentence(r)
		if err != nil {
			return nmea.Fix{}, err
		}
		if s.Type() != typ {
			continue
		}
		return decode(s.Fields)
	}
}
