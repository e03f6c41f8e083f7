// Package timesync owns the one-shot network time fetch.
//
// The fetch happens once, before transmission starts; failure after the
// bounded attempt budget is surfaced to the caller as ErrFetchTimeout and
// never silently defaulted. The daemon treats that as fatal to the session
// and leaves recovery (delay + cold restart) to its supervisor.
package timesync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beevik/ntp"
	"github.com/rs/zerolog"
)

var ErrFetchTimeout = errors.New("timesync: network time fetch failed")

// Config bounds the fetch.
type Config struct {
	Host        string
	Timeout     time.Duration
	MaxAttempts int
	Backoff     BackoffConfig
}

func DefaultConfig() Config {
	return Config{
		Host:        "pool.ntp.org",
		Timeout:     5 * time.Second,
		MaxAttempts: 5,
		Backoff: BackoffConfig{
			InitialDelay: time.Second,
			MaxDelay:     10 * time.Second,
			Multiplier:   2.0,
		},
	}
}

// QueryFunc resolves the current UTC instant from one server query.
type QueryFunc func(ctx context.Context, host string) (time.Time, error)

// Client fetches absolute time with bounded retries.
type Client struct {
	cfg   Config
	query QueryFunc
	sleep func(time.Duration)
	log   zerolog.Logger
}

func NewClient(cfg Config, logger zerolog.Logger) *Client {
	c := &Client{
		cfg:   cfg,
		sleep: time.Sleep,
		log:   logger,
	}
	c.query = c.querySNTP
	return c
}

func (c *Client) querySNTP(_ context.Context, host string) (time.Time, error) {
	resp, err := ntp.QueryWithOptions(host, ntp.QueryOptions{Timeout: c.cfg.Timeout})
	if err != nil {
		return time.Time{}, err
	}
	if err := resp.Validate(); err != nil {
		return time.Time{}, err
	}
	return time.Now().Add(resp.ClockOffset).UTC(), nil
}

// Fetch returns the corrected UTC instant, retrying with backoff up to the
// configured attempt budget.
func (c *Client) Fetch(ctx context.Context) (time.Time, error) {
	attempts := c.cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return time.Time{}, fmt.Errorf("%w: %v", ErrFetchTimeout, err)
		}
		t, err := c.query(ctx, c.cfg.Host)
		if err == nil {
			c.log.Info().Str("host", c.cfg.Host).Int("attempt", attempt).Time("utc", t).Msg("network time acquired")
			return t, nil
		}
		lastErr = err
		c.log.Warn().Str("host", c.cfg.Host).Int("attempt", attempt).Err(err).Msg("network time fetch failed")
		if attempt < attempts {
			c.sleep(NextBackoffDelay(c.cfg.Backoff, attempt, nil))
		}
	}
	return time.Time{}, fmt.Errorf("%w: %d attempts to %s: %v", ErrFetchTimeout, attempts, c.cfg.Host, lastErr)
}

// FetchEpochSeconds is the integer-epoch form of Fetch.
func (c *Client) FetchEpochSeconds(ctx context.Context) (int64, error) {
	t, err := c.Fetch(ctx)
	if err != nil {
		return 0, err
	}
	return t.Unix(), nil
}
