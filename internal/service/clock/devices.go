package clock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"github.com/retrotone/lcd-alarm-clock/internal/config"
	"github.com/retrotone/lcd-alarm-clock/internal/device/buzzer"
	"github.com/retrotone/lcd-alarm-clock/internal/device/ds3231"
	"github.com/retrotone/lcd-alarm-clock/internal/device/keypad"
	"github.com/retrotone/lcd-alarm-clock/internal/device/lcd"
	"github.com/retrotone/lcd-alarm-clock/internal/device/sim"
	"github.com/retrotone/lcd-alarm-clock/internal/logger"
)

// errUnknownPin is returned when a configured pin name resolves to nothing.
var errUnknownPin = errors.New("unknown GPIO pin")

// openDevices builds the peripheral set from the configuration. The
// returned cleanup releases bus handles; it is a no-op in simulation.
func openDevices(ctx context.Context, cfg *config.Config) (devices, func(), error) {
	if cfg.Simulate {
		logger.Info(ctx, "Running against simulated devices")

		return devices{
			rtc:     &sim.RTC{Now: time.Now},
			display: new(sim.Display),
			keypad:  new(sim.Keypad),
			buzzer:  new(sim.Buzzer),
		}, func() {}, nil
	}

	if _, err := host.Init(); err != nil {
		return devices{}, nil, fmt.Errorf("init periph host: %w", err)
	}

	bus, err := openI2CBus(cfg.I2CBus)
	if err != nil {
		return devices{}, nil, err
	}

	cleanup := func() {
		_ = bus.Close()
	}

	rtc := ds3231.New(bus, cfg.RTCAddress)

	display, err := openDisplay(cfg.LCD)
	if err != nil {
		cleanup()

		return devices{}, nil, err
	}

	keys, err := openKeypad(cfg.Keypad)
	if err != nil {
		cleanup()

		return devices{}, nil, err
	}

	buzzerPin, err := pinByName(cfg.BuzzerPin)
	if err != nil {
		cleanup()

		return devices{}, nil, err
	}

	freq := physic.Frequency(cfg.BuzzerFrequencyHz) * physic.Hertz

	return devices{
		rtc:     rtc,
		display: display,
		keypad:  keys,
		buzzer:  buzzer.New(buzzerPin, freq),
	}, cleanup, nil
}

// openI2CBus opens the configured bus, or the first available one when
// the name is empty.
func openI2CBus(name string) (i2c.BusCloser, error) {
	bus, err := i2creg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", name, err)
	}

	return bus, nil
}

// openDisplay resolves the six LCD pins and initializes the panel.
func openDisplay(pins config.LCDPins) (*lcd.Dev, error) {
	resolved := make([]gpio.PinIO, 0, 6)
	for _, name := range []string{pins.RS, pins.Enable, pins.D4, pins.D5, pins.D6, pins.D7} {
		p, err := pinByName(name)
		if err != nil {
			return nil, err
		}

		resolved = append(resolved, p)
	}

	display, err := lcd.New(resolved[0], resolved[1], resolved[2], resolved[3], resolved[4], resolved[5])
	if err != nil {
		return nil, fmt.Errorf("open display: %w", err)
	}

	return display, nil
}

// openKeypad resolves the five button pins and configures them.
func openKeypad(pins config.KeypadPins) (*keypad.Dev, error) {
	resolved := make([]gpio.PinIO, 0, 5)
	for _, name := range []string{pins.Up, pins.Down, pins.Left, pins.Right, pins.Select} {
		p, err := pinByName(name)
		if err != nil {
			return nil, err
		}

		resolved = append(resolved, p)
	}

	keys, err := keypad.New(resolved[0], resolved[1], resolved[2], resolved[3], resolved[4])
	if err != nil {
		return nil, fmt.Errorf("open keypad: %w", err)
	}

	return keys, nil
}

// pinByName resolves a GPIO pin from the host registry.
func pinByName(name string) (gpio.PinIO, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("%w: %s", errUnknownPin, name)
	}

	return p, nil
}
