// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package gps

import (
	"time"

	"github.com/relabs-tech/gps_fix/internal/nmea"
)

// Fix represents a single fused GPS fix suitable for JSON and MQTT.
type Fix struct {
	Time      string  `json:"time"`        // RFC 3339, UTC, from RMC
	Latitude  float64 `json:"lat"`         // decimal degrees, from GGA
	Longitude float64 `json:"lon"`         // decimal degrees, from GGA
	Elevation float64 `json:"elevation_m"` // metres above MSL, from GGA
}

// NewFix converts a decoded fix into its wire form.
func NewFix(f nmea.Fix) Fix {
	return Fix{
		Time:      f.Time.UTC().Format(time.RFC3339Nano),
		Latitude:  f.Latitude,
		Longitude: f.Longitude,
		Elevation: f.Elevation,
	}
}

// Timestamp parses Time back into an instant.
func (f Fix) Timestamp() (time.Time, error) {
	return time.Parse(time.RFC3339Nano, f.Time)
}
