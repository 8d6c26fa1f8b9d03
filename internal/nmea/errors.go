// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package nmea

import "fmt"

// FrameError reports a failure of the underlying byte source while a
// sentence was being framed. The in-progress sentence is lost.
type FrameError struct {
	Err error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("nmea: read failed: %v", e.Err)
}

func (e *FrameError) Unwrap() error { return e.Err }

// ChecksumError reports a sentence whose XOR checksum did not match the
// two hex digits following '*'.
type ChecksumError struct {
	Computed byte
	Expected byte
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("nmea: checksum mismatch: computed %02X, expected %02X", e.Computed, e.Expected)
}

// NoFixError is returned when the receiver reports that it has no
// satellite fix. Callers typically retry later.
type NoFixError struct {
	Reason string
}

func (e *NoFixError) Error() string {
	return "nmea: " + e.Reason
}

// FieldFormatError reports a field that does not match its expected grammar.
type FieldFormatError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("nmea: bad %s field %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("nmea: bad %s field %q", e.Field, e.Value)
}

func (e *FieldFormatError) Unwrap() error { return e.Err }
