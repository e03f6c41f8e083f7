package localtime

import (
	"testing"
	"time"
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

func TestSourceNowWithLead(t *testing.T) {
	clk := &fakeClock{now: time.Unix(1000, 0)}
	ref := time.Date(2023, 1, 1, 3, 4, 5, 0, time.UTC)
	src := NewSource(clk, ref)

	if got := src.Now(0); got.Second != 5 {
		t.Fatalf("second at anchor = %d, want 5", got.Second)
	}
	if got := src.Now(1); got.Second != 6 {
		t.Fatalf("lead-1 second = %d, want 6", got.Second)
	}

	clk.Sleep(2 * time.Second)
	if got := src.Now(0); got.Second != 7 {
		t.Fatalf("second after 2s = %d, want 7", got.Second)
	}
	if got := src.Now(1); got.Second != 8 {
		t.Fatalf("lead-1 second after 2s = %d, want 8", got.Second)
	}
}

func TestSourceLeadCrossesMinuteBoundary(t *testing.T) {
	clk := &fakeClock{now: time.Unix(2000, 0)}
	ref := time.Date(2023, 6, 15, 10, 14, 59, 0, time.UTC)
	src := NewSource(clk, ref)

	next := src.Now(1)
	if next.Minute != 15 || next.Second != 0 {
		t.Fatalf("lead-1 = %02d:%02d, want 15:00", next.Minute, next.Second)
	}
}

func TestAlignSecondEdge(t *testing.T) {
	clk := &fakeClock{now: time.Unix(3000, 0)}
	ref := time.Date(2023, 1, 1, 3, 4, 5, 400*int(time.Millisecond), time.UTC)
	src := NewSource(clk, ref)

	src.AlignSecondEdge()

	civil := src.Civil(0)
	if civil.Second() != 6 {
		t.Fatalf("second after align = %d, want 6", civil.Second())
	}
	if civil.Nanosecond() != 0 {
		t.Fatalf("align overshoot: %dns past the edge", civil.Nanosecond())
	}
}

func TestSourceIsMonotonic(t *testing.T) {
	clk := &fakeClock{now: time.Unix(4000, 0)}
	src := NewSource(clk, time.Date(2024, 2, 29, 23, 59, 58, 0, time.UTC))

	prev := src.Civil(0)
	for i := 0; i < 5; i++ {
		clk.Sleep(700 * time.Millisecond)
		cur := src.Civil(0)
		if !cur.After(prev) {
			t.Fatalf("time went backwards: %v -> %v", prev, cur)
		}
		prev = cur
	}
}
