// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package nmea

// Split cuts text at every occurrence of delim. Empty segments are kept,
// so "a,,b" yields three fields and "" yields one empty field.
func Split(text string, delim byte) []string {
	fields := make([]string, 0, 16)
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == delim {
			fields = append(fields, text[start:i])
			start = i + 1
		}
	}
	return append(fields, text[start:])
}
