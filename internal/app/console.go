// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/relabs-tech/gps_fix/internal/config"
	"github.com/relabs-tech/gps_fix/internal/nmea"
)

// RunConsole acquires a single fix straight from the receiver and prints it.
// While the receiver reports no fix it retries; any other error is returned.
func RunConsole() error {
	cfg := config.Get()
	retry := time.Duration(cfg.GPSRetryInterval) * time.Millisecond

	for {
		fix, err := acquireOnce(cfg)
		var noFix *nmea.NoFixError
		if errors.As(err, &noFix) {
			log.Printf("console: %v, retrying in %v", err, retry)
			time.Sleep(retry)
			continue
		}
		if err != nil {
			return err
		}

		fmt.Printf(
			"[GPS ]  time=%s lat=%.6f lon=%.6f elev=%.1fm\n",
			fix.Time.Format(time.RFC3339Nano), fix.Latitude, fix.Longitude, fix.Elevation,
		)
		return nil
	}
}
