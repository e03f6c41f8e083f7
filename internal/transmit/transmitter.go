// Package transmit owns the real-time pulse scheduler.
//
// Ownership boundary:
// - the carrier gate, exclusively, for the lifetime of Run
// - the absolute-deadline symbol schedule
//
// The loop is single-threaded and blocking; the device has no other work
// once transmission starts.
package transmit

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mkondo/jjyctl/internal/carrier"
	"github.com/mkondo/jjyctl/internal/localtime"
	"github.com/mkondo/jjyctl/internal/observability"
	"github.com/mkondo/jjyctl/internal/timecode"
)

// TimeSource provides corrected calendar-time snapshots and the second-edge
// alignment primitive. Implemented by localtime.Source.
type TimeSource interface {
	Now(leadSeconds int) timecode.CalendarTime
	AlignSecondEdge()
}

// Transmitter streams minute frames as timed pulses on one control line.
type Transmitter struct {
	src  TimeSource
	gate carrier.Gate
	clk  localtime.Clock
	log  zerolog.Logger
}

func New(src TimeSource, gate carrier.Gate, clk localtime.Clock, logger zerolog.Logger) *Transmitter {
	return &Transmitter{
		src:  src,
		gate: gate,
		clk:  clk,
		log:  logger,
	}
}

// Run aligns once to the second edge and then streams symbols until limit
// elapses (0 runs forever). Each symbol's deadline is the fixed alignment
// origin plus a whole number of seconds, never "now plus a second", so
// scheduling error stays bounded per symbol instead of compounding.
//
// The caller must have corrected the time source before Run and owns
// re-synchronization: bound the run, then rebuild the source and call Run
// again.
func (tx *Transmitter) Run(limit time.Duration) error {
	tx.src.AlignSecondEdge()
	origin := tx.clk.Now()
	nextEdge := origin
	defer tx.gate.SetEnabled(false)

	for {
		// Encode the frame for the second about to start. Re-deriving it
		// every pass keeps the stream correct after a mid-minute cold start
		// or an overrun.
		t := tx.src.Now(1)
		frame, err := timecode.Encode(t)
		if err != nil {
			return fmt.Errorf("transmit: %w", err)
		}
		variant := timecode.VariantFor(t.Minute)
		tx.log.Info().
			Str("time", t.String()).
			Str("variant", variant.String()).
			Int("start_index", t.Second).
			Msg("timecode frame")
		observability.RecordFrameEncoded(variant.String())

		for i := t.Second; i < timecode.FrameLen; i++ {
			if limit > 0 && tx.clk.Now().Sub(origin) >= limit {
				return nil
			}

			sym := frame[i]
			nextEdge = nextEdge.Add(timecode.SymbolPeriod)
			tx.sleepUntil(nextEdge)

			tx.gate.SetEnabled(true)
			tx.clk.Sleep(sym.PulseWidth())
			tx.gate.SetEnabled(false)

			observability.RecordSymbolSent(sym.String())
			observability.RecordScheduleSlack(nextEdge.Add(timecode.SymbolPeriod).Sub(tx.clk.Now()))
		}
	}
}

// sleepUntil blocks until the monotonic clock reaches deadline. A deadline
// already in the past returns immediately; the schedule absorbs the overrun
// at the next edge instead of shifting it.
func (tx *Transmitter) sleepUntil(deadline time.Time) {
	if d := deadline.Sub(tx.clk.Now()); d > 0 {
		tx.clk.Sleep(d)
	}
}
