package keypad

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"

	"github.com/retrotone/lcd-alarm-clock/internal/device"
)

// Dev is a set of five push buttons, each on its own GPIO line, wired
// active low against the internal pull-ups.
type Dev struct {
	// lines pairs each input pin with the button it reports, in the
	// priority order used when several are held at once.
	lines []line
}

type line struct {
	pin    gpio.PinIn
	button device.Button
}

// New configures the five button lines with pull-ups and returns the keypad.
func New(up, down, left, right, sel gpio.PinIn) (*Dev, error) {
	d := &Dev{
		lines: []line{
			{up, device.ButtonUp},
			{down, device.ButtonDown},
			{left, device.ButtonLeft},
			{right, device.ButtonRight},
			{sel, device.ButtonSelect},
		},
	}

	for _, l := range d.lines {
		if err := l.pin.In(gpio.PullUp, gpio.NoEdge); err != nil {
			return nil, fmt.Errorf("configure %s line: %w", l.button, err)
		}
	}

	return d, nil
}

// Poll samples the lines once and returns the first pressed button, or
// ButtonNone. It never blocks; debounce is the caller's responsibility.
func (d *Dev) Poll() (device.Button, error) {
	for _, l := range d.lines {
		if l.pin.Read() == gpio.Low {
			return l.button, nil
		}
	}

	return device.ButtonNone, nil
}
