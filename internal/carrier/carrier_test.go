package carrier

import "testing"

type recordGate struct {
	states []bool
}

func (g *recordGate) SetEnabled(on bool) {
	g.states = append(g.states, on)
}

func TestMultiGateFansOutInOrder(t *testing.T) {
	a := &recordGate{}
	b := &recordGate{}
	m := Multi(a, b)

	m.SetEnabled(true)
	m.SetEnabled(false)

	for name, g := range map[string]*recordGate{"a": a, "b": b} {
		if len(g.states) != 2 || g.states[0] != true || g.states[1] != false {
			t.Fatalf("gate %s states = %v", name, g.states)
		}
	}
}

func TestNopGate(t *testing.T) {
	// must not panic
	g := Nop()
	g.SetEnabled(true)
	g.SetEnabled(false)
}
