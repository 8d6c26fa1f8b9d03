// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package nmea

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DegreesMinutes converts a sexagesimal coordinate field (ddmm.mmmm when
// degreeDigits is 2, dddmm.mmmm when it is 3) to decimal degrees.
func DegreesMinutes(field string, degreeDigits int) (float64, error) {
	return degreesMinutes("coordinate", field, degreeDigits)
}

func degreesMinutes(name, field string, degreeDigits int) (float64, error) {
	fail := func(err error) (float64, error) {
		return 0, &FieldFormatError{Field: name, Value: field, Err: err}
	}
	if degreeDigits < 1 || len(field) <= degreeDigits {
		return fail(errors.New("too short"))
	}
	degPart, minPart := field[:degreeDigits], field[degreeDigits:]
	if !isDigits(degPart) {
		return fail(errors.New("degrees are not numeric"))
	}
	// Minutes are always two integer digits with an optional fraction.
	if !isDecimal(minPart, false) || intDigits(minPart) != 2 {
		return fail(errors.New("minutes are not mm[.mmmm]"))
	}
	deg, err := strconv.Atoi(degPart)
	if err != nil {
		return fail(err)
	}
	mins, err := strconv.ParseFloat(minPart, 64)
	if err != nil {
		return fail(err)
	}
	if mins >= 60 {
		return fail(errors.New("minutes out of range"))
	}
	return float64(deg) + mins/60.0, nil
}

// coordinate decodes a coordinate field plus its hemisphere indicator.
// neg is the hemisphere letter that flips the sign ("S" or "W"), pos the
// one that keeps it ("N" or "E"). An empty hemisphere keeps the sign.
func coordinate(name, value, hemi string, degreeDigits int, limit float64, pos, neg string) (float64, error) {
	v, err := degreesMinutes(name, value, degreeDigits)
	if err != nil {
		return 0, err
	}
	if v > limit {
		return 0, &FieldFormatError{Field: name, Value: value, Err: fmt.Errorf("exceeds %v degrees", limit)}
	}
	switch hemi {
	case neg:
		return -v, nil
	case pos, "":
		return v, nil
	default:
		return 0, &FieldFormatError{Field: name + " hemisphere", Value: hemi}
	}
}

func latitude(value, hemi string) (float64, error) {
	return coordinate("latitude", value, hemi, 2, 90, "N", "S")
}

func longitude(value, hemi string) (float64, error) {
	return coordinate("longitude", value, hemi, 3, 180, "E", "W")
}

// timestamp combines an hhmmss[.sss] time field and a ddmmyy date field
// into a UTC instant. Two-digit years are taken as 20yy.
func timestamp(clock, date string) (time.Time, error) {
	hh, mm, ss, ns, err := parseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	if len(date) != 6 || !isDigits(date) {
		return time.Time{}, &FieldFormatError{Field: "date", Value: date, Err: errors.New("want ddmmyy")}
	}
	day, _ := strconv.Atoi(date[0:2])
	month, _ := strconv.Atoi(date[2:4])
	year, _ := strconv.Atoi(date[4:6])
	t := time.Date(2000+year, time.Month(month), day, hh, mm, ss, ns, time.UTC)
	// time.Date normalizes 31 April into 1 May; reject instead.
	if month < 1 || month > 12 || t.Day() != day || t.Month() != time.Month(month) {
		return time.Time{}, &FieldFormatError{Field: "date", Value: date, Err: errors.New("no such day")}
	}
	return t, nil
}

func parseClock(clock string) (hh, mm, ss, ns int, err error) {
	fail := func(msg string) (int, int, int, int, error) {
		return 0, 0, 0, 0, &FieldFormatError{Field: "time", Value: clock, Err: errors.New(msg)}
	}
	whole, frac, hasFrac := strings.Cut(clock, ".")
	if len(whole) != 6 || !isDigits(whole) {
		return fail("want hhmmss[.sss]")
	}
	if hasFrac && (frac == "" || len(frac) > 9 || !isDigits(frac)) {
		return fail("bad fractional seconds")
	}
	hh, _ = strconv.Atoi(whole[0:2])
	mm, _ = strconv.Atoi(whole[2:4])
	ss, _ = strconv.Atoi(whole[4:6])
	if hh > 23 || mm > 59 || ss > 59 {
		return fail("out of range")
	}
	if hasFrac {
		ns, _ = strconv.Atoi(frac + strings.Repeat("0", 9-len(frac)))
	}
	return hh, mm, ss, ns, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// isDecimal reports whether s is digits with an optional fraction
// ("12", "12.5"), optionally preceded by '-' when signed is set.
func isDecimal(s string, signed bool) bool {
	if signed && strings.HasPrefix(s, "-") {
		s = s[1:]
	}
	whole, frac, hasFrac := strings.Cut(s, ".")
	if !isDigits(whole) {
		return false
	}
	return !hasFrac || isDigits(frac)
}

func intDigits(s string) int {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return i
	}
	return len(s)
}
