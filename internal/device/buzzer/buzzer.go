package buzzer

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// Dev is a passive piezo buzzer on a PWM-capable GPIO line. Intensity is
// the PWM duty at a fixed carrier frequency; 0 drives the line low.
type Dev struct {
	pin  gpio.PinOut
	freq physic.Frequency
}

// New returns a buzzer on the given pin at the given carrier frequency.
func New(pin gpio.PinOut, freq physic.Frequency) *Dev {
	return &Dev{pin: pin, freq: freq}
}

// SetIntensity sets the tone level, 0 (silent) to 255.
func (d *Dev) SetIntensity(level uint8) error {
	if level == 0 {
		if err := d.pin.Halt(); err != nil {
			return fmt.Errorf("halt pwm: %w", err)
		}

		if err := d.pin.Out(gpio.Low); err != nil {
			return fmt.Errorf("silence buzzer: %w", err)
		}

		return nil
	}

	duty := gpio.Duty(uint64(level) * uint64(gpio.DutyMax) / 255)
	if err := d.pin.PWM(duty, d.freq); err != nil {
		return fmt.Errorf("set buzzer pwm: %w", err)
	}

	return nil
}
