// Package indicator owns the status LED.
package indicator

import (
	"fmt"
	"time"

	"github.com/davecheney/gpio"

	"github.com/mkondo/jjyctl/internal/localtime"
)

// Indicator reflects connection and sync phase on a simple on/off output.
type Indicator interface {
	On()
	Off()
	Blink(count int, interval time.Duration)
}

// LED drives a status LED on one GPIO pin. It also satisfies carrier.Gate
// so it can be ganged onto the carrier control line and flash with every
// transmitted pulse.
type LED struct {
	pin gpio.Pin
	clk localtime.Clock
}

func OpenLED(number int, clk localtime.Clock) (*LED, error) {
	pin, err := gpio.OpenPin(number, gpio.ModeOutput)
	if err != nil {
		return nil, fmt.Errorf("indicator: open led pin %d: %w", number, err)
	}
	pin.Clear()
	return &LED{pin: pin, clk: clk}, nil
}

func (l *LED) On()  { l.pin.Set() }
func (l *LED) Off() { l.pin.Clear() }

func (l *LED) SetEnabled(on bool) {
	if on {
		l.On()
	} else {
		l.Off()
	}
}

// Blink toggles the LED count times, half the interval on, half off.
func (l *LED) Blink(count int, interval time.Duration) {
	for i := 0; i < count; i++ {
		l.On()
		l.clk.Sleep(interval / 2)
		l.Off()
		l.clk.Sleep(interval / 2)
	}
}

func (l *LED) Close() error {
	l.pin.Clear()
	return l.pin.Close()
}

type null struct{}

func (null) On()                      {}
func (null) Off()                     {}
func (null) Blink(int, time.Duration) {}
func (null) SetEnabled(bool)          {}

// Null returns an indicator that drives nothing.
func Null() Indicator { return null{} }
