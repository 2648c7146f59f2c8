package rtcset

import (
	"context"
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/retrotone/lcd-alarm-clock/internal/config"
	"github.com/retrotone/lcd-alarm-clock/internal/device/ds3231"
	domain "github.com/retrotone/lcd-alarm-clock/internal/domain/clock"
	"github.com/retrotone/lcd-alarm-clock/internal/logger"
)

// Options controls the one-shot RTC calibration write.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// When is the timestamp to write, RFC3339, or "now" for the host clock.
	When string
}

// ErrSimulatedConfig indicates calibration was attempted against a
// configuration that runs on simulated devices.
var ErrSimulatedConfig = errors.New("calibration requires real hardware")

// Run writes the requested time to the RTC once, verifies it by reading
// back, and exits. It is strictly operator-invoked: writing the clock on
// every boot would overwrite drift-corrected time with a stale value.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "set-clock")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if cfg.Simulate {
		return ErrSimulatedConfig
	}

	when, err := parseWhen(opts.When)
	if err != nil {
		return err
	}

	if _, err = host.Init(); err != nil {
		return fmt.Errorf("init periph host: %w", err)
	}

	bus, err := i2creg.Open(cfg.I2CBus)
	if err != nil {
		return fmt.Errorf("open i2c bus %q: %w", cfg.I2CBus, err)
	}

	defer func() {
		_ = bus.Close()
	}()

	rtc := ds3231.New(bus, cfg.RTCAddress)

	ts := domain.FromTime(when)
	if err = rtc.Set(ts); err != nil {
		return fmt.Errorf("write rtc: %w", err)
	}

	readBack, err := rtc.Read()
	if err != nil {
		return fmt.Errorf("read back rtc: %w", err)
	}

	logger.InfoKV(ctx, "RTC calibrated",
		"written", ts.DateString()+" "+ts.TimeString(),
		"read_back", readBack.DateString()+" "+readBack.TimeString(),
	)

	return nil
}

// parseWhen accepts "now", an empty string, or an RFC3339 timestamp.
func parseWhen(when string) (time.Time, error) {
	if when == "" || when == "now" {
		return time.Now(), nil
	}

	t, err := time.Parse(time.RFC3339, when)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", when, err)
	}

	return t, nil
}
