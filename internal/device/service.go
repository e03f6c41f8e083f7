// Package device owns the daemon lifecycle: boot-time clock correction,
// hardware setup, and the transmit/resync loop.
package device

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mkondo/jjyctl/internal/carrier"
	"github.com/mkondo/jjyctl/internal/indicator"
	"github.com/mkondo/jjyctl/internal/localtime"
	"github.com/mkondo/jjyctl/internal/observability"
	"github.com/mkondo/jjyctl/internal/rtc"
	"github.com/mkondo/jjyctl/internal/statusapi"
	"github.com/mkondo/jjyctl/internal/timecode"
	"github.com/mkondo/jjyctl/internal/timesync"
	"github.com/mkondo/jjyctl/internal/transmit"
)

var (
	ErrInvalidCarrierFreq   = errors.New("device: carrier frequency must be 40000 or 60000 Hz")
	ErrInvalidResyncPolicy  = errors.New("device: resync interval must not be negative")
	ErrMissingTimeSyncHost  = errors.New("device: ntp host is required")
	ErrInvalidAttemptBudget = errors.New("device: ntp max attempts must be at least 1")
)

// ServiceConfig is the explicit construction-time configuration; there is
// no ambient package-level state.
type ServiceConfig struct {
	NTP            timesync.Config
	UTCOffset      time.Duration
	CarrierFreqHz  int
	GatePin        int           // <0 runs without hardware (dry run)
	IndicatorPin   int           // <0 disables the status LED
	ResyncInterval time.Duration // 0 transmits forever without resync
	StatusAddr     string        // "" disables the status listener
}

func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		NTP:            timesync.DefaultConfig(),
		UTCOffset:      9 * time.Hour, // JST
		CarrierFreqHz:  40000,
		GatePin:        3,
		IndicatorPin:   -1,
		ResyncInterval: 0,
		StatusAddr:     "",
	}
}

func (cfg ServiceConfig) Validate() error {
	if cfg.CarrierFreqHz != 40000 && cfg.CarrierFreqHz != 60000 {
		return fmt.Errorf("%w: got %d", ErrInvalidCarrierFreq, cfg.CarrierFreqHz)
	}
	if cfg.ResyncInterval < 0 {
		return ErrInvalidResyncPolicy
	}
	if cfg.NTP.Host == "" {
		return ErrMissingTimeSyncHost
	}
	if cfg.NTP.MaxAttempts < 1 {
		return ErrInvalidAttemptBudget
	}
	return nil
}

// Service runs the transmitter lifecycle as a standalone process.
type Service struct {
	cfg ServiceConfig
	clk localtime.Clock
	rtc rtc.Device

	fetch         func(context.Context) (time.Time, error)
	openGate      func() (carrier.Gate, func() error, error)
	openIndicator func() (indicator.Indicator, func() error, error)
}

func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	clk := localtime.SystemClock()
	client := timesync.NewClient(cfg.NTP, log.Logger)
	s := &Service{
		cfg:   cfg,
		clk:   clk,
		rtc:   rtc.NewRegisters(clk),
		fetch: client.Fetch,
	}
	s.openGate = func() (carrier.Gate, func() error, error) {
		if cfg.GatePin < 0 {
			log.Warn().Msg("no gate pin configured, dry run")
			return carrier.Nop(), func() error { return nil }, nil
		}
		g, err := carrier.OpenPinGate(cfg.GatePin)
		if err != nil {
			return nil, nil, err
		}
		return g, g.Close, nil
	}
	s.openIndicator = func() (indicator.Indicator, func() error, error) {
		if cfg.IndicatorPin < 0 {
			return indicator.Null(), func() error { return nil }, nil
		}
		led, err := indicator.OpenLED(cfg.IndicatorPin, clk)
		if err != nil {
			return nil, nil, err
		}
		return led, led.Close, nil
	}
	return s, nil
}

// Run blocks until the process receives SIGINT/SIGTERM, the transmitter
// finishes an unbounded run, or clock correction fails.
func (s *Service) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return s.run(ctx)
}

func (s *Service) run(ctx context.Context) error {
	gate, closeGate, err := s.openGate()
	if err != nil {
		return fmt.Errorf("device: %w", err)
	}
	defer closeGate()

	ind, closeInd, err := s.openIndicator()
	if err != nil {
		return fmt.Errorf("device: %w", err)
	}
	defer closeInd()

	// Gang the LED onto the control line so it flashes with every pulse.
	line := gate
	if ledGate, ok := ind.(carrier.Gate); ok {
		line = carrier.Multi(gate, ledGate)
	}

	if s.cfg.StatusAddr != "" {
		api := statusapi.New(statusapi.Info{
			App:           "jjyctl",
			CarrierFreqHz: s.cfg.CarrierFreqHz,
			NTPHost:       s.cfg.NTP.Host,
			UTCOffset:     s.cfg.UTCOffset.String(),
		})
		go func() {
			if err := api.Serve(s.cfg.StatusAddr); err != nil {
				log.Error().Err(err).Str("addr", s.cfg.StatusAddr).Msg("status listener stopped")
			}
		}()
	}

	for {
		if ctx.Err() != nil {
			return nil
		}

		utc, err := s.fetch(ctx)
		observability.RecordTimeFetch(err == nil)
		if err != nil {
			// Fail fast: no frame is ever generated from a default time.
			return fmt.Errorf("device: clock correction: %w", err)
		}
		ind.Blink(3, 200*time.Millisecond)

		local := utc.UTC().Add(s.cfg.UTCOffset)
		if err := s.rtc.Write(timecode.FromTime(local)); err != nil {
			return fmt.Errorf("device: rtc write: %w", err)
		}
		corrected, err := s.rtc.Read()
		if err != nil {
			return fmt.Errorf("device: rtc read: %w", err)
		}
		log.Info().Str("rtc", corrected.String()).Msg("clock corrected")

		src := localtime.NewSource(s.clk, corrected.Time())
		tx := transmit.New(src, line, s.clk, log.Logger)

		log.Info().
			Int("freq_hz", s.cfg.CarrierFreqHz).
			Dur("resync_interval", s.cfg.ResyncInterval).
			Msg("starting timecode emission")
		if err := tx.Run(s.cfg.ResyncInterval); err != nil {
			return fmt.Errorf("device: %w", err)
		}
		if s.cfg.ResyncInterval <= 0 {
			return nil
		}
	}
}
