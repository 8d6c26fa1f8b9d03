// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Config holds all application configuration values.
type Config struct {
	// MQTT
	MQTTBroker          string
	MQTTClientIDGPS     string
	MQTTClientIDConsole string
	MQTTClientIDWeb     string
	MQTTClientIDDisplay string

	// Topics
	TopicGPS string

	// GPS
	GPSSerialPort   string
	GPSBaudRate     int
	GPSSerialDriver string // "jacobsa" or "tarm"
	GPSReplayFile   string // when set, read a captured stream instead of the port

	// Timing (milliseconds)
	GPSAcquireInterval int
	GPSRetryInterval   int
	GPSAcquireTimeout  int // 0 disables the watchdog

	// Metrics
	MetricsPort int // 0 disables the /metrics endpoint

	// Web Server
	WebServerPort int

	// Display (SSD1306 at the controller's default I2C address)
	DisplayUpdateInterval int // milliseconds
}

// Package-level unexported variables for singleton pattern:
//   - globalConfig: set once by InitGlobal, read through Get.
//   - configOnce: ensures InitGlobal() only runs once.
//   - configMu: write lock for initialization, read lock for Get().
var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.RWMutex
)

// defaults returns a Config with every optional value filled in.
func defaults() *Config {
	return &Config{
		MQTTClientIDGPS:       "gps-fix-producer",
		MQTTClientIDConsole:   "gps-fix-console",
		MQTTClientIDWeb:       "gps-fix-web",
		MQTTClientIDDisplay:   "gps-fix-display",
		TopicGPS:              "gps/fix",
		GPSBaudRate:           9600,
		GPSSerialDriver:       "jacobsa",
		GPSAcquireInterval:    1000,
		GPSRetryInterval:      2000,
		WebServerPort:         8080,
		DisplayUpdateInterval: 500,
	}
}

// Load reads the configuration file and returns a Config struct.
func Load(configPath string) (*Config, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads KEY=VALUE lines. Blank lines and lines starting with '#'
// are ignored; unknown keys are an error.
func Parse(r io.Reader) (*Config, error) {
	cfg := defaults()
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=VALUE
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if err := cfg.setValue(key, value); err != nil {
			return nil, fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setValue sets a config value based on the key.
func (c *Config) setValue(key, value string) error {
	switch key {
	// MQTT
	case "MQTT_BROKER":
		c.MQTTBroker = value
	case "MQTT_CLIENT_ID_GPS":
		c.MQTTClientIDGPS = value
	case "MQTT_CLIENT_ID_CONSOLE":
		c.MQTTClientIDConsole = value
	case "MQTT_CLIENT_ID_WEB":
		c.MQTTClientIDWeb = value
	case "MQTT_CLIENT_ID_DISPLAY":
		c.MQTTClientIDDisplay = value

	// Topics
	case "TOPIC_GPS":
		c.TopicGPS = value

	// GPS
	case "GPS_SERIAL_PORT":
		c.GPSSerialPort = value
	case "GPS_BAUD_RATE":
		rate, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid GPS_BAUD_RATE %q: %w", value, err)
		}
		if rate <= 0 {
			return fmt.Errorf("GPS_BAUD_RATE must be positive, got %d", rate)
		}
		c.GPSBaudRate = rate
	case "GPS_SERIAL_DRIVER":
		if value != "jacobsa" && value != "tarm" {
			return fmt.Errorf("GPS_SERIAL_DRIVER must be jacobsa or tarm, got %q", value)
		}
		c.GPSSerialDriver = value
	case "GPS_REPLAY_FILE":
		c.GPSReplayFile = value

	// Timing
	case "GPS_ACQUIRE_INTERVAL":
		return setMillis(&c.GPSAcquireInterval, key, value)
	case "GPS_RETRY_INTERVAL":
		return setMillis(&c.GPSRetryInterval, key, value)
	case "GPS_ACQUIRE_TIMEOUT":
		return setMillis(&c.GPSAcquireTimeout, key, value)

	// Metrics
	case "METRICS_PORT":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid METRICS_PORT %q: %w", value, err)
		}
		c.MetricsPort = port

	// Web Server
	case "WEB_SERVER_PORT":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid WEB_SERVER_PORT %q: %w", value, err)
		}
		c.WebServerPort = port

	// Display
	case "DISPLAY_UPDATE_INTERVAL":
		return setMillis(&c.DisplayUpdateInterval, key, value)

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return nil
}

func setMillis(dst *int, key, value string) error {
	ms, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if ms < 0 {
		return fmt.Errorf("%s must not be negative, got %d", key, ms)
	}
	*dst = ms
	return nil
}

// validate checks that all required fields are set.
func (c *Config) validate() error {
	if c.MQTTBroker == "" {
		return fmt.Errorf("MQTT_BROKER is required")
	}
	if c.TopicGPS == "" {
		return fmt.Errorf("TOPIC_GPS is required")
	}
	if c.GPSSerialPort == "" && c.GPSReplayFile == "" {
		return fmt.Errorf("GPS_SERIAL_PORT or GPS_REPLAY_FILE is required")
	}
	if c.GPSAcquireInterval == 0 {
		return fmt.Errorf("GPS_ACQUIRE_INTERVAL is required")
	}
	if c.DisplayUpdateInterval == 0 {
		return fmt.Errorf("DISPLAY_UPDATE_INTERVAL is required")
	}
	return nil
}

// InitGlobal initializes the global configuration from file.
// Uses sync.Once to ensure this only runs once, even if called multiple times.
func InitGlobal(configPath string) error {
	var err error
	configOnce.Do(func() {
		configMu.Lock()
		defer configMu.Unlock()
		globalConfig, err = Load(configPath)
	})
	return err
}

// Get returns the global configuration instance.
// InitGlobal must be called first, or this will return nil.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}
