// Package localtime owns the corrected local-time source.
//
// A Source is anchored once, at construction, to an externally corrected
// civil time (NTP fetch written through the RTC); afterwards it only ever
// advances by the monotonic clock. It is never re-corrected mid-flight —
// periodic resynchronization is the caller's job, by bounding the
// transmitter run and rebuilding the Source.
package localtime

import (
	"time"

	"github.com/mkondo/jjyctl/internal/timecode"
)

// edgePollInterval is the busy-poll granularity of AlignSecondEdge.
const edgePollInterval = time.Millisecond

// Source provides calendar-time snapshots with a second-edge alignment
// primitive.
type Source struct {
	clk    Clock
	anchor time.Time // monotonic reading at construction
	base   time.Time // corrected civil time at the anchor
}

// NewSource anchors a source at reference, a civil (already offset-applied)
// time taken to be "now".
func NewSource(clk Clock, reference time.Time) *Source {
	return &Source{
		clk:    clk,
		anchor: clk.Now(),
		base:   reference,
	}
}

// Civil returns the corrected civil time leadSeconds in the future.
func (s *Source) Civil(leadSeconds int) time.Time {
	elapsed := s.clk.Now().Sub(s.anchor)
	return s.base.Add(elapsed + time.Duration(leadSeconds)*time.Second)
}

// Now returns the calendar-time snapshot leadSeconds in the future. Lead 1
// is used to pre-compute the frame for the second about to start.
func (s *Source) Now(leadSeconds int) timecode.CalendarTime {
	return timecode.FromTime(s.Civil(leadSeconds))
}

// AlignSecondEdge blocks until the observed second-of-minute changes from
// its value at call entry, fixing the caller's phase to the second boundary.
func (s *Source) AlignSecondEdge() {
	start := s.Now(0).Second
	for s.Now(0).Second == start {
		s.clk.Sleep(edgePollInterval)
	}
}
