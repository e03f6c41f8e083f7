// Package rtc owns the wall-clock hardware contract.
//
// The device daemon writes the corrected civil time through the RTC once at
// boot and reads it back to seed the time source, so the register set stays
// the single persisted record of time across brief power gaps.
package rtc

import (
	"errors"
	"sync"
	"time"

	"github.com/mkondo/jjyctl/internal/localtime"
	"github.com/mkondo/jjyctl/internal/timecode"
)

var ErrNotSet = errors.New("rtc: clock not set")

// Device is a battery-backed calendar register set.
type Device interface {
	Read() (timecode.CalendarTime, error)
	Write(timecode.CalendarTime) error
}

// Registers is an in-memory shadow of an RTC register set for hosts without
// a battery-backed chip. Once written it keeps ticking off the monotonic
// clock.
type Registers struct {
	mu     sync.Mutex
	clk    localtime.Clock
	set    bool
	base   timecode.CalendarTime
	anchor time.Time
}

func NewRegisters(clk localtime.Clock) *Registers {
	return &Registers{clk: clk}
}

func (r *Registers) Write(t timecode.CalendarTime) error {
	if err := t.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.base = t
	r.anchor = r.clk.Now()
	r.set = true
	return nil
}

func (r *Registers) Read() (timecode.CalendarTime, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.set {
		return timecode.CalendarTime{}, ErrNotSet
	}
	elapsed := r.clk.Now().Sub(r.anchor)
	return timecode.FromTime(r.base.Time().Add(elapsed)), nil
}
