// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/relabs-tech/gps_fix/internal/config"
	"github.com/relabs-tech/gps_fix/internal/gps"
	"github.com/relabs-tech/gps_fix/internal/metrics"
	"github.com/relabs-tech/gps_fix/internal/nmea"
)

// openSource opens the replay file when one is configured, otherwise the serial port.
func openSource(cfg *config.Config) (gps.ByteSource, error) {
	if cfg.GPSReplayFile != "" {
		return gps.OpenReplay(cfg.GPSReplayFile)
	}
	return gps.OpenSerial(gps.SerialConfig{
		Driver:   cfg.GPSSerialDriver,
		Port:     cfg.GPSSerialPort,
		BaudRate: cfg.GPSBaudRate,
	})
}

// acquireOnce opens the receiver, acquires one fused fix and records the outcome.
func acquireOnce(cfg *config.Config) (nmea.Fix, error) {
	start := time.Now()
	src, err := openSource(cfg)
	if err != nil {
		metrics.RecordAcquisition(gps.ErrorKind(err), time.Since(start))
		return nmea.Fix{}, err
	}
	timeout := time.Duration(cfg.GPSAcquireTimeout) * time.Millisecond
	fix, err := acquireWithWatchdog(src, timeout)
	metrics.RecordAcquisition(gps.ErrorKind(err), time.Since(start))
	return fix, err
}

// onceCloser lets the watchdog and Acquire both close the source while the
// underlying port sees a single Close.
type onceCloser struct {
	gps.ByteSource
	once sync.Once
	err  error
}

func (c *onceCloser) Close() error {
	c.once.Do(func() { c.err = c.ByteSource.Close() })
	return c.err
}

// acquireWithWatchdog runs gps.Acquire and, when timeout > 0, closes the
// source after timeout so a stalled receiver unblocks the pending read.
func acquireWithWatchdog(src gps.ByteSource, timeout time.Duration) (nmea.Fix, error) {
	if timeout <= 0 {
		return gps.Acquire(src)
	}

	guarded := &onceCloser{ByteSource: src}
	var fired atomic.Bool
	timer := time.AfterFunc(timeout, func() {
		fired.Store(true)
		log.Printf("gps: no fix within %v, closing receiver", timeout)
		_ = guarded.Close()
	})
	defer timer.Stop()

	fix, err := gps.Acquire(guarded)
	if err != nil && fired.Load() {
		return fix, fmt.Errorf("acquire timed out after %v: %w", timeout, err)
	}
	return fix, err
}
