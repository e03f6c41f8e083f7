// Package carrier owns the gate between the timing core and the analog
// carrier hardware. The oscillator itself lives outside the daemon; the gate
// only enables or disables its output.
package carrier

import (
	"fmt"

	"github.com/davecheney/gpio"
)

// Gate enables or disables the fixed-frequency carrier output.
type Gate interface {
	SetEnabled(bool)
}

// PinGate drives the external oscillator's enable line over one GPIO pin.
type PinGate struct {
	pin gpio.Pin
}

// OpenPinGate opens the pin in output mode and leaves the carrier disabled.
func OpenPinGate(number int) (*PinGate, error) {
	pin, err := gpio.OpenPin(number, gpio.ModeOutput)
	if err != nil {
		return nil, fmt.Errorf("carrier: open gate pin %d: %w", number, err)
	}
	pin.Clear()
	return &PinGate{pin: pin}, nil
}

func (g *PinGate) SetEnabled(on bool) {
	if on {
		g.pin.Set()
	} else {
		g.pin.Clear()
	}
}

// Close disables the carrier and releases the pin.
func (g *PinGate) Close() error {
	g.pin.Clear()
	return g.pin.Close()
}

type multiGate []Gate

func (m multiGate) SetEnabled(on bool) {
	for _, g := range m {
		g.SetEnabled(on)
	}
}

// Multi gangs several gates behind one control line, e.g. the oscillator
// enable pin plus a status LED that flashes with every pulse.
func Multi(gates ...Gate) Gate {
	return multiGate(gates)
}

type nopGate struct{}

func (nopGate) SetEnabled(bool) {}

// Nop returns a gate that drives nothing; used for dry runs without
// hardware.
func Nop() Gate { return nopGate{} }
