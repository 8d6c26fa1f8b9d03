// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package nmea

import (
	"math"
	"testing"

	gonmea "github.com/adrianmo/go-nmea"
)

const (
	boulderRMC = "$GPRMC,034056.000,A,3959.0498,N,10515.2269,W,0.10,106.02,190415,,,D*7D"
	boulderGGA = "$GPGGA,034056.000,3959.0498,N,10515.2269,W,2,06,1.21,1648.2,M,-20.6,M,0000,0000*61"
)

// nmeaLine frames payload as a complete sentence with a valid checksum.
func nmeaLine(payload string) string {
	return "$" + payload + "*" + gonmea.Checksum(payload)
}

func assertNear(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Fatalf("%s=%v, want %v (±%v)", name, got, want, tol)
	}
}
