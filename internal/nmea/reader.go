// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package nmea

import (
	"encoding/hex"
	"io"
	"strings"
)

const (
	sentenceStart = '$'
	checksumStart = '*'
	fieldDelim    = ','
)

// Sentence is one checksum-validated NMEA sentence.
// Fields[0] is the talker+type identifier, e.g. "GPGGA".
type Sentence struct {
	Fields []string
}

// ID returns the talker+type identifier.
func (s Sentence) ID() string {
	if len(s.Fields) == 0 {
		return ""
	}
	return s.Fields[0]
}

// Type returns the sentence type without the talker prefix ("GGA" for
// both "GPGGA" and "GNGGA").
func (s Sentence) Type() string {
	id := s.ID()
	if len(id) > 3 {
		id = id[len(id)-3:]
	}
	return strings.ToUpper(id)
}

// ReadSentence consumes bytes from r until one complete sentence has been
// read. Bytes before the first '$' are discarded, so a reader can join a
// stream mid-sentence. Reads block for as long as r blocks.
//
// A failing read is returned as *FrameError and aborts the sentence.
// A checksum mismatch is returned as *ChecksumError.
func ReadSentence(r io.ByteReader) (Sentence, error) {
	for {
		c, err := r.ReadByte()
		if err != nil {
			return Sentence{}, &FrameError{Err: err}
		}
		if c == sentenceStart {
			break
		}
	}

	var (
		body strings.Builder
		sum  byte
	)
	for {
		c, err := r.ReadByte()
		if err != nil {
			return Sentence{}, &FrameError{Err: err}
		}
		if c == checksumStart {
			break
		}
		sum ^= c
		body.WriteByte(c)
	}

	var digits [2]byte
	for i := range digits {
		c, err := r.ReadByte()
		if err != nil {
			return Sentence{}, &FrameError{Err: err}
		}
		digits[i] = c
	}
	var want [1]byte
	if _, err := hex.Decode(want[:], digits[:]); err != nil {
		return Sentence{}, &FieldFormatError{Field: "checksum", Value: string(digits[:]), Err: err}
	}
	if sum != want[0] {
		return Sentence{}, &ChecksumError{Computed: sum, Expected: want[0]}
	}

	return Sentence{Fields: Split(body.String(), fieldDelim)}, nil
}
