package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/mkondo/jjyctl/internal/device"
)

type fileConfig struct {
	NTPHost        string `toml:"ntp_host"`
	NTPTimeout     string `toml:"ntp_timeout"`
	NTPMaxAttempts int    `toml:"ntp_max_attempts"`
	UTCOffsetHours int    `toml:"utc_offset_hours"`
	CarrierFreqHz  int    `toml:"carrier_freq_hz"`
	GatePin        int    `toml:"gate_pin"`
	IndicatorPin   int    `toml:"indicator_pin"`
	ResyncInterval string `toml:"resync_interval"`
	StatusAddr     string `toml:"status_addr"`
}

func loadServiceConfig(path string) (device.ServiceConfig, error) {
	cfg := device.DefaultServiceConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return device.ServiceConfig{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("ntp_host") {
		host := strings.TrimSpace(raw.NTPHost)
		if host != "" {
			cfg.NTP.Host = host
		}
	}

	if meta.IsDefined("ntp_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.NTPTimeout))
		if err != nil {
			return device.ServiceConfig{}, fmt.Errorf("parse ntp_timeout: %w", err)
		}
		cfg.NTP.Timeout = d
	}

	if meta.IsDefined("ntp_max_attempts") {
		cfg.NTP.MaxAttempts = raw.NTPMaxAttempts
	}

	if meta.IsDefined("utc_offset_hours") {
		cfg.UTCOffset = time.Duration(raw.UTCOffsetHours) * time.Hour
	}

	if meta.IsDefined("carrier_freq_hz") {
		cfg.CarrierFreqHz = raw.CarrierFreqHz
	}

	if meta.IsDefined("gate_pin") {
		cfg.GatePin = raw.GatePin
	}

	if meta.IsDefined("indicator_pin") {
		cfg.IndicatorPin = raw.IndicatorPin
	}

	if meta.IsDefined("resync_interval") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.ResyncInterval))
		if err != nil {
			return device.ServiceConfig{}, fmt.Errorf("parse resync_interval: %w", err)
		}
		cfg.ResyncInterval = d
	}

	if meta.IsDefined("status_addr") {
		cfg.StatusAddr = strings.TrimSpace(raw.StatusAddr)
	}

	return cfg, nil
}
