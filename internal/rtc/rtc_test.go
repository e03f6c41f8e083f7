package rtc

import (
	"errors"
	"testing"
	"time"

	"github.com/mkondo/jjyctl/internal/timecode"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(d time.Duration) {
	if d > 0 {
		c.now = c.now.Add(d)
	}
}

func TestReadBeforeWrite(t *testing.T) {
	r := NewRegisters(&fakeClock{now: time.Unix(0, 0)})
	if _, err := r.Read(); !errors.Is(err, ErrNotSet) {
		t.Fatalf("expected ErrNotSet, got %v", err)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	clk := &fakeClock{now: time.Unix(5000, 0)}
	r := NewRegisters(clk)

	in := timecode.CalendarTime{
		Year: 2023, Month: 1, Day: 1,
		Hour: 3, Minute: 4, Second: 5,
		Weekday: 6, YearDay: 1,
	}
	if err := r.Write(in); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := r.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != in {
		t.Fatalf("read back %+v, want %+v", got, in)
	}

	clk.Sleep(57 * time.Second)
	got, err = r.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Minute != 5 || got.Second != 2 {
		t.Fatalf("after 57s got %02d:%02d, want 05:02", got.Minute, got.Second)
	}
}

func TestWriteRejectsInvalid(t *testing.T) {
	r := NewRegisters(&fakeClock{now: time.Unix(0, 0)})
	bad := timecode.CalendarTime{Year: 2023, Month: 13, Day: 1, Weekday: 0, YearDay: 1}
	if err := r.Write(bad); !errors.Is(err, timecode.ErrFieldRange) {
		t.Fatalf("expected ErrFieldRange, got %v", err)
	}
}
