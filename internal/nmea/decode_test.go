// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package nmea

import (
	"errors"
	"strings"
	"testing"
	"time"

	gonmea "github.com/adrianmo/go-nmea"
)

func mustRead(t *testing.T, line string) Sentence {
	t.Helper()
	s, err := ReadSentence(strings.NewReader(line))
	if err != nil {
		t.Fatalf("read %q: %v", line, err)
	}
	return s
}

func TestDegreesMinutes(t *testing.T) {
	v, err := DegreesMinutes("4807.038", 2)
	if err != nil {
		t.Fatalf("lat: %v", err)
	}
	assertNear(t, "lat", v, 48.1173, 1e-6)

	v, err = DegreesMinutes("12311.12", 3)
	if err != nil {
		t.Fatalf("lon: %v", err)
	}
	assertNear(t, "lon", v, 123.18533, 1e-5)

	v, err = DegreesMinutes("00000", 3)
	if err != nil || v != 0 {
		t.Fatalf("zero: v=%v err=%v", v, err)
	}
}

func TestDegreesMinutes_RejectsLooseInput(t *testing.T) {
	bad := []struct {
		field  string
		digits int
	}{
		{"", 2},
		{"48", 2},
		{"4x07.038", 2},
		{"48 7.038", 2},
		{"487.038", 2},
		{"4807.", 2},
		{"4807.0e3", 2},
		{"4860.000", 2},
		{"+4807.038", 2},
		{"1e311.12", 3},
	}
	for _, tc := range bad {
		_, err := DegreesMinutes(tc.field, tc.digits)
		var fe *FieldFormatError
		if !errors.As(err, &fe) {
			t.Fatalf("%q: expected FieldFormatError, got %v", tc.field, err)
		}
	}
}

func TestDecodeRMC_SpecExample(t *testing.T) {
	fix, err := DecodeRMC(mustRead(t, boulderRMC).Fields)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	assertNear(t, "lat", fix.Latitude, 39.98416, 1e-5)
	assertNear(t, "lon", fix.Longitude, -105.25378, 1e-5)
	want := time.Date(2015, time.April, 19, 3, 40, 56, 0, time.UTC)
	if !fix.Time.Equal(want) {
		t.Fatalf("time=%v, want %v", fix.Time, want)
	}
	if fix.Elevation != 0 {
		t.Fatalf("elevation=%v, want 0", fix.Elevation)
	}
}

func TestDecodeRMC_SubSecondAndHemispheres(t *testing.T) {
	s := mustRead(t, nmeaLine("GNRMC,235959.25,A,3351.000,S,15112.600,E,0.0,0.0,311299,,"))
	fix, err := DecodeRMC(s.Fields)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := time.Date(2099, time.December, 31, 23, 59, 59, 250_000_000, time.UTC)
	if !fix.Time.Equal(want) {
		t.Fatalf("time=%v, want %v", fix.Time, want)
	}
	assertNear(t, "lat", fix.Latitude, -33.85, 1e-9)
	assertNear(t, "lon", fix.Longitude, 151.21, 1e-9)
}

func TestDecodeRMC_VoidStatusIsNoFix(t *testing.T) {
	lines := []string{
		"GPRMC,123519,V,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W",
		"GPRMC,,V,,,,,,,,,",
		"GPRMC,garbage,V,garbage",
		"GPRMC",
	}
	for _, l := range lines {
		_, err := DecodeRMC(mustRead(t, nmeaLine(l)).Fields)
		var nf *NoFixError
		if !errors.As(err, &nf) {
			t.Fatalf("%q: expected NoFixError, got %v", l, err)
		}
		if nf.Reason != "no satellite fix" {
			t.Fatalf("reason=%q", nf.Reason)
		}
	}
}

func TestDecodeRMC_FieldFormatErrors(t *testing.T) {
	cases := []struct {
		payload string
		field   string
	}{
		{"GPRMC,12351,A,4807.038,N,01131.000,E,,,230394,,", "time"},
		{"GPRMC,126519,A,4807.038,N,01131.000,E,,,230394,,", "time"},
		{"GPRMC,123519.,A,4807.038,N,01131.000,E,,,230394,,", "time"},
		{"GPRMC,123519,A,4807.038,N,01131.000,E,,,310494,,", "date"},
		{"GPRMC,123519,A,4807.038,N,01131.000,E,,,2303,,", "date"},
		{"GPRMC,123519,A,,N,01131.000,E,,,230394,,", "latitude"},
		{"GPRMC,123519,A,9107.038,N,01131.000,E,,,230394,,", "latitude"},
		{"GPRMC,123519,A,4807.038,X,01131.000,E,,,230394,,", "latitude hemisphere"},
		{"GPRMC,123519,A,4807.038,N,1131.000,E,,,230394,,", "longitude"},
		{"GPRMC,123519,A,4807.038,N,01131.000,N,,,230394,,", "longitude hemisphere"},
	}
	for _, tc := range cases {
		_, err := DecodeRMC(mustRead(t, nmeaLine(tc.payload)).Fields)
		var fe *FieldFormatError
		if !errors.As(err, &fe) {
			t.Fatalf("%q: expected FieldFormatError, got %v", tc.payload, err)
		}
		if fe.Field != tc.field {
			t.Fatalf("%q: field=%q, want %q", tc.payload, fe.Field, tc.field)
		}
	}
}

func TestDecodeGGA_SpecExample(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	fix, err := decodeGGA(mustRead(t, boulderGGA).Fields, now)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	assertNear(t, "lat", fix.Latitude, 39.98416, 1e-5)
	assertNear(t, "lon", fix.Longitude, -105.25378, 1e-5)
	assertNear(t, "elevation", fix.Elevation, 1648.2, 1e-9)
	if !fix.Time.Equal(now) {
		t.Fatalf("time=%v, want decode-time placeholder %v", fix.Time, now)
	}
}

func TestDecodeGGA_PlaceholderIsWallClock(t *testing.T) {
	before := time.Now()
	fix, err := DecodeGGA(mustRead(t, boulderGGA).Fields)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if fix.Time.Before(before.Add(-time.Second)) || fix.Time.After(time.Now().Add(time.Second)) {
		t.Fatalf("time=%v is not the decode wall clock", fix.Time)
	}
	if fix.Time.Hour() == 3 && fix.Time.Minute() == 40 && fix.Time.Second() == 56 && fix.Time.Year() == 2015 {
		t.Fatalf("placeholder must not come from the sentence time field")
	}
}

func TestDecodeGGA_QualityZeroIsNoFix(t *testing.T) {
	for _, l := range []string{
		"GPGGA,123519,4807.038,N,01131.000,E,0,00,99.9,545.4,M,46.9,M,,",
		"GPGGA,,,,,,0,00,99.99,,,,,,",
		"GPGGA,,,,,,,,,,,,,,",
	} {
		_, err := DecodeGGA(mustRead(t, nmeaLine(l)).Fields)
		var nf *NoFixError
		if !errors.As(err, &nf) {
			t.Fatalf("%q: expected NoFixError, got %v", l, err)
		}
		if nf.Reason != "no fix" {
			t.Fatalf("reason=%q", nf.Reason)
		}
	}
}

func TestDecodeGGA_FieldFormatErrors(t *testing.T) {
	cases := []struct {
		payload string
		field   string
	}{
		{"GPGGA,123519,4807.038,N,01131.000,E,x,08,0.9,545.4,M,,,,", "fix quality"},
		{"GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,,M,,,,", "elevation"},
		{"GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,5e2,M,,,,", "elevation"},
		{"GPGGA,123519,4807.038,N,18131.000,E,1,08,0.9,545.4,M,,,,", "longitude"},
	}
	for _, tc := range cases {
		_, err := DecodeGGA(mustRead(t, nmeaLine(tc.payload)).Fields)
		var fe *FieldFormatError
		if !errors.As(err, &fe) {
			t.Fatalf("%q: expected FieldFormatError, got %v", tc.payload, err)
		}
		if fe.Field != tc.field {
			t.Fatalf("%q: field=%q, want %q", tc.payload, fe.Field, tc.field)
		}
	}
}

func TestDecodeGGA_NegativeElevation(t *testing.T) {
	fix, err := DecodeGGA(mustRead(t, nmeaLine("GNGGA,101010,3130.000,N,03525.000,E,1,07,1.0,-430.5,M,,,,")).Fields)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	assertNear(t, "elevation", fix.Elevation, -430.5, 1e-9)
}

// Cross-check coordinates against an independent NMEA implementation.
func TestDecode_AgreesWithGoNMEA(t *testing.T) {
	rmcLines := []string{
		boulderRMC,
		nmeaLine("GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W"),
		nmeaLine("GNRMC,081836,A,3751.65,S,14507.36,E,000.0,360.0,130998,011.3,E"),
	}
	for _, line := range rmcLines {
		ours, err := DecodeRMC(mustRead(t, line).Fields)
		if err != nil {
			t.Fatalf("decode %q: %v", line, err)
		}
		parsed, err := gonmea.Parse(line)
		if err != nil {
			t.Fatalf("go-nmea parse %q: %v", line, err)
		}
		theirs := parsed.(gonmea.RMC)
		assertNear(t, "lat", ours.Latitude, theirs.Latitude, 1e-9)
		assertNear(t, "lon", ours.Longitude, theirs.Longitude, 1e-9)
	}

	ours, err := DecodeGGA(mustRead(t, boulderGGA).Fields)
	if err != nil {
		t.Fatalf("decode gga: %v", err)
	}
	parsed, err := gonmea.Parse(boulderGGA)
	if err != nil {
		t.Fatalf("go-nmea parse gga: %v", err)
	}
	theirs := parsed.(gonmea.GGA)
	assertNear(t, "lat", ours.Latitude, theirs.Latitude, 1e-9)
	assertNear(t, "lon", ours.Longitude, theirs.Longitude, 1e-9)
	assertNear(t, "elevation", ours.Elevation, theirs.Altitude, 1e-9)
}
