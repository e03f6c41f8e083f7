package transmit

import (
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mkondo/jjyctl/internal/localtime"
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

type gateEvent struct {
	at time.Time
	on bool
}

// recordGate records every edge with the fake clock's time and can burn
// extra clock time per call to model execution jitter.
type recordGate struct {
	clk    *fakeClock
	events []gateEvent
	jitter func() time.Duration
}

func (g *recordGate) SetEnabled(on bool) {
	g.events = append(g.events, gateEvent{at: g.clk.now, on: on})
	if g.jitter != nil {
		g.clk.Sleep(g.jitter())
	}
}

func (g *recordGate) risings() []gateEvent {
	var out []gateEvent
	for _, e := range g.events {
		if e.on {
			out = append(out, e)
		}
	}
	return out
}

// pulses pairs each rising edge with the following falling edge.
func (g *recordGate) pulses() []time.Duration {
	var out []time.Duration
	var rise time.Time
	up := false
	for _, e := range g.events {
		if e.on && !up {
			rise = e.at
			up = true
		} else if !e.on && up {
			out = append(out, e.at.Sub(rise))
			up = false
		}
	}
	return out
}

func newRig(civil time.Time) (*fakeClock, *localtime.Source, *recordGate) {
	clk := &fakeClock{now: time.Unix(100000, 0)}
	src := localtime.NewSource(clk, civil)
	gate := &recordGate{clk: clk}
	return clk, src, gate
}

func TestRunTransmitsSymbolsOnSecondEdges(t *testing.T) {
	// Aligns at :04, so the first transmitted symbol is frame[5].
	civil := time.Date(2023, 1, 1, 3, 4, 3, 500*int(time.Millisecond), time.UTC)
	clk, src, gate := newRig(civil)
	tx := New(src, gate, clk, zerolog.Nop())

	if err := tx.Run(10 * time.Second); err != nil {
		t.Fatalf("run: %v", err)
	}

	frame, err := timecode.Encode(timecode.CalendarTime{
		Year: 2023, Month: 1, Day: 1,
		Hour: 3, Minute: 4, Second: 5,
		Weekday: 6, YearDay: 1,
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	pulses := gate.pulses()
	if len(pulses) != 10 {
		t.Fatalf("pulse count = %d, want 10", len(pulses))
	}
	for k, width := range pulses {
		want := frame[5+k].PulseWidth()
		if width != want {
			t.Fatalf("pulse %d (second %d) width %v, want %v (%v)", k, 5+k, width, want, frame[5+k])
		}
	}

	origin := time.Unix(100000, 0).Add(500 * time.Millisecond) // alignment edge
	for k, e := range gate.risings() {
		want := origin.Add(time.Duration(k+1) * time.Second)
		if !e.at.Equal(want) {
			t.Fatalf("rising %d at %v, want %v", k, e.at, want)
		}
	}
}

func TestRunResumesMidMinute(t *testing.T) {
	civil := time.Date(2023, 1, 1, 12, 30, 35, 200*int(time.Millisecond), time.UTC)
	clk, src, gate := newRig(civil)
	tx := New(src, gate, clk, zerolog.Nop())

	if err := tx.Run(2 * time.Second); err != nil {
		t.Fatalf("run: %v", err)
	}

	// align lands at :36, lead-1 gives :37, so transmission starts at
	// frame[37], the PA2 bit. minute 30: tens 3 (011), ones 0 -> PA2=0.
	pulses := gate.pulses()
	if len(pulses) == 0 {
		t.Fatalf("no pulses transmitted")
	}
	if pulses[0] != timecode.ZeroWidth {
		t.Fatalf("first pulse width %v, want frame[37]=Zero (%v)", pulses[0], timecode.ZeroWidth)
	}
}

func TestRunContinuesIntoNextMinute(t *testing.T) {
	// Aligns at :58, first symbol is frame[59] (P0), then the next minute's
	// frame restarts at index 0.
	civil := time.Date(2023, 1, 1, 3, 4, 57, 300*int(time.Millisecond), time.UTC)
	clk, src, gate := newRig(civil)
	tx := New(src, gate, clk, zerolog.Nop())

	if err := tx.Run(4 * time.Second); err != nil {
		t.Fatalf("run: %v", err)
	}

	next, err := timecode.Encode(timecode.CalendarTime{
		Year: 2023, Month: 1, Day: 1,
		Hour: 3, Minute: 5, Second: 0,
		Weekday: 6, YearDay: 1,
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	pulses := gate.pulses()
	if len(pulses) != 4 {
		t.Fatalf("pulse count = %d, want 4", len(pulses))
	}
	want := []time.Duration{
		timecode.MarkerWidth, // second 59, P0
		next[0].PulseWidth(), // second 0, M
		next[1].PulseWidth(),
		next[2].PulseWidth(),
	}
	for k := range want {
		if pulses[k] != want[k] {
			t.Fatalf("pulse %d width %v, want %v", k, pulses[k], want[k])
		}
	}
}

func TestRunSchedulesFromAbsoluteOriginWithoutDrift(t *testing.T) {
	civil := time.Date(2023, 1, 1, 0, 0, 0, 700*int(time.Millisecond), time.UTC)
	clk, src, gate := newRig(civil)

	// Bounded per-call execution jitter; must never accumulate into the
	// schedule.
	rng := rand.New(rand.NewSource(42))
	gate.jitter = func() time.Duration {
		return time.Duration(rng.Int63n(int64(30 * time.Millisecond)))
	}

	tx := New(src, gate, clk, zerolog.Nop())
	const symbols = 10000
	if err := tx.Run(symbols * time.Second); err != nil {
		t.Fatalf("run: %v", err)
	}

	origin := time.Unix(100000, 0).Add(300 * time.Millisecond) // alignment edge
	risings := gate.risings()
	if len(risings) < symbols {
		t.Fatalf("rising edges = %d, want >= %d", len(risings), symbols)
	}
	for k := 0; k < symbols; k++ {
		want := origin.Add(time.Duration(k+1) * time.Second)
		if !risings[k].at.Equal(want) {
			t.Fatalf("rising %d drifted: at %v, want %v", k, risings[k].at, want)
		}
	}
}

func TestRunReturnsAtDurationLimit(t *testing.T) {
	civil := time.Date(2023, 1, 1, 6, 0, 0, 100*int(time.Millisecond), time.UTC)
	clk, src, gate := newRig(civil)
	tx := New(src, gate, clk, zerolog.Nop())

	if err := tx.Run(90 * time.Second); err != nil {
		t.Fatalf("run: %v", err)
	}

	if got := len(gate.pulses()); got != 90 {
		t.Fatalf("pulse count = %d, want 90", got)
	}
	// the line must end up released
	last := gate.events[len(gate.events)-1]
	if last.on {
		t.Fatalf("control line left driven")
	}
}
