// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package gps

import (
	"os"
)

// OpenReplay opens a captured NMEA stream (e.g. `cat /dev/ttyUSB0 > gps.nmea`)
// as a byte source, so the pipeline can run without a receiver attached.
// Reaching the end of the file surfaces as a frame error wrapping io.EOF.
func OpenReplay(path string) (ByteSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ResourceError{Op: "open", Path: path, Err: err}
	}
	return newPortSource(f), nil
}
