// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package gps

import (
	"errors"
	"fmt"

	"github.com/relabs-tech/gps_fix/internal/nmea"
)

// ResourceError reports a failure to open or close a byte source.
type ResourceError struct {
	Op   string // "open" or "close"
	Path string
	Err  error
}

func (e *ResourceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("gps: %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("gps: %s %s failed: %v", e.Op, e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// ErrorKind names the class of an acquisition error, for logs and metric labels.
func ErrorKind(err error) string {
	var (
		frame    *nmea.FrameError
		checksum *nmea.ChecksumError
		noFix    *nmea.NoFixError
		format   *nmea.FieldFormatError
		resource *ResourceError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &noFix):
		return "no_fix"
	case errors.As(err, &checksum):
		return "checksum"
	case errors.As(err, &format):
		return "field_format"
	case errors.As(err, &frame):
		return "frame"
	case errors.As(err, &resource):
		return "resource"
	default:
		return "unknown"
	}
}
