// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/relabs-tech/gps_fix/internal/config"
	"github.com/relabs-tech/gps_fix/internal/gps"
	"github.com/relabs-tech/gps_fix/internal/metrics"
)

// RunGPSProducer repeatedly acquires a fused GGA+RMC fix from the receiver
// and publishes it as JSON to the configured MQTT topic.
func RunGPSProducer() error {
	cfg := config.Get()

	// ---- 1) Connect to MQTT broker ----
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDGPS)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	defer client.Disconnect(250)
	log.Printf("gps: connected to MQTT broker at %s", cfg.MQTTBroker)

	// ---- 2) Metrics endpoint ----
	if cfg.MetricsPort > 0 {
		serveMetrics(cfg.MetricsPort)
	}

	if cfg.GPSReplayFile != "" {
		log.Printf("gps: replaying %s", cfg.GPSReplayFile)
	} else {
		log.Printf("gps: reading %s at %d baud (%s driver)", cfg.GPSSerialPort, cfg.GPSBaudRate, cfg.GPSSerialDriver)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	interval := time.Duration(cfg.GPSAcquireInterval) * time.Millisecond
	retry := time.Duration(cfg.GPSRetryInterval) * time.Millisecond

	// ---- 3) Acquire and publish ----
	for {
		wait := interval

		fix, err := acquireOnce(cfg)
		if err != nil {
			// No fix is expected while the receiver is still looking for satellites.
			log.Printf("gps: acquire failed (%s): %v", gps.ErrorKind(err), err)
			wait = retry
		} else if err := publishFix(client, cfg.TopicGPS, gps.NewFix(fix)); err != nil {
			metrics.PublishErrorsTotal.Inc()
			log.Printf("gps: publish error: %v", err)
		} else {
			metrics.RecordFix(fix.Time)
			log.Printf("gps: published fix time=%s lat=%.6f lon=%.6f elev=%.1fm",
				fix.Time.Format(time.RFC3339), fix.Latitude, fix.Longitude, fix.Elevation)
		}

		select {
		case <-sigCh:
			log.Println("gps: shutting down")
			return nil
		case <-time.After(wait):
		}
	}
}

func publishFix(client mqtt.Client, topic string, fix gps.Fix) error {
	payload, err := json.Marshal(fix)
	if err != nil {
		return fmt.Errorf("marshal fix: %w", err)
	}
	token := client.Publish(topic, 0, true, payload)
	token.Wait()
	return token.Error()
}

func serveMetrics(port int) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	addr := fmt.Sprintf(":%d", port)
	go func() {
		log.Printf("gps: metrics listening on %s", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Printf("gps: metrics server stopped: %v", err)
		}
	}()
}
