// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"reflect"
	"testing"

	"github.com/relabs-tech/gps_fix/internal/gps"
)

func TestFixLines(t *testing.T) {
	f := gps.Fix{Time: "2015-04-19T03:40:56Z", Latitude: 39.984163, Longitude: -105.253782, Elevation: 1648.2}
	want := []string{"39.98416N", "105.25378W", "Alt: 1648m", "03:40:56Z"}
	if got := fixLines(f, true); !reflect.DeepEqual(got, want) {
		t.Fatalf("fixLines=%q, want %q", got, want)
	}
}

func TestFixLines_Waiting(t *testing.T) {
	got := fixLines(gps.Fix{}, false)
	if len(got) == 0 || got[len(got)-1] != "Waiting..." {
		t.Fatalf("fixLines=%q", got)
	}
}
