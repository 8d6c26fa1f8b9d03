// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package nmea

import (
	"errors"
	"strconv"
	"time"
)

// Fix is a decoded position. Latitude and Longitude are decimal degrees,
// negative south and west. Elevation is metres above mean sea level and
// is zero when the sentence carried none.
type Fix struct {
	Time      time.Time
	Latitude  float64
	Longitude float64
	Elevation float64
}

// field returns f[i], or "" when the sentence is too short.
func field(f []string, i int) string {
	if i < len(f) {
		return f[i]
	}
	return ""
}

// RMC: Recommended Minimum Specific GNSS Data
//
//	0: talker+type
//	1: time (hhmmss.sss)
//	2: status (A=active, V=void)
//	3: latitude (ddmm.mmmm)
//	4: N/S
//	5: longitude (dddmm.mmmm)
//	6: E/W
//	7: speed over ground (knots)
//	8: course over ground (deg)
//	9: date (ddmmyy)
//
// DecodeRMC fails with *NoFixError unless the status is "A".
func DecodeRMC(f []string) (Fix, error) {
	if field(f, 2) != "A" {
		return Fix{}, &NoFixError{Reason: "no satellite fix"}
	}
	ts, err := timestamp(field(f, 1), field(f, 9))
	if err != nil {
		return Fix{}, err
	}
	lat, err := latitude(field(f, 3), field(f, 4))
	if err != nil {
		return Fix{}, err
	}
	lon, err := longitude(field(f, 5), field(f, 6))
	if err != nil {
		return Fix{}, err
	}
	return Fix{Time: ts, Latitude: lat, Longitude: lon}, nil
}

// GGA: Global Positioning System Fix Data
//
//	0: talker+type
//	1: time
//	2: latitude
//	3: N/S
//	4: longitude
//	5: E/W
//	6: fix quality (0=invalid)
//	7: number of satellites
//	8: HDOP
//	9: altitude (meters)
//
// 10: units (M)
//
// GGA carries no date, so the returned Time is the wall clock at decode
// time. Acquire replaces it with the RMC time.
func DecodeGGA(f []string) (Fix, error) {
	return decodeGGA(f, time.Now().UTC())
}

func decodeGGA(f []string, now time.Time) (Fix, error) {
	quality := field(f, 6)
	if quality == "" || quality == "0" {
		return Fix{}, &NoFixError{Reason: "no fix"}
	}
	if !isDigits(quality) {
		return Fix{}, &FieldFormatError{Field: "fix quality", Value: quality}
	}
	lat, err := latitude(field(f, 2), field(f, 3))
	if err != nil {
		return Fix{}, err
	}
	lon, err := longitude(field(f, 4), field(f, 5))
	if err != nil {
		return Fix{}, err
	}
	elev, err := parseElevation(field(f, 9))
	if err != nil {
		return Fix{}, err
	}
	return Fix{Time: now, Latitude: lat, Longitude: lon, Elevation: elev}, nil
}

func parseElevation(s string) (float64, error) {
	if !isDecimal(s, true) {
		return 0, &FieldFormatError{Field: "elevation", Value: s, Err: errors.New("not a decimal number")}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &FieldFormatError{Field: "elevation", Value: s, Err: err}
	}
	return v, nil
}
