package clock

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/retrotone/lcd-alarm-clock/internal/config"
	"github.com/retrotone/lcd-alarm-clock/internal/logger"
	"github.com/retrotone/lcd-alarm-clock/internal/service/common"
)

// Options controls the controller process and configuration.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// Simulate forces in-memory devices regardless of configuration.
	Simulate bool
	// MetricsAddress overrides the metrics bind address from config.
	MetricsAddress string
}

// ErrAlreadyRunning indicates another controller owns the hardware.
var ErrAlreadyRunning = errors.New("another alarm-clock instance is already running")

// Run starts the control loop and blocks until the context is canceled.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "alarm-clock")

	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if level, ok := logger.ParseLogLevel(cfg.LogLevel); ok {
		logger.SetLevel(level)
	}

	// Two controllers on the same GPIO lines corrupt each other; refuse
	// to start beside an existing instance.
	running, err := common.AnotherInstanceRunning()
	switch {
	case err != nil:
		logger.WarnKV(ctx, "Could not scan for other instances", "error", err)
	case running:
		return ErrAlreadyRunning
	}

	devs, cleanup, err := openDevices(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open devices: %w", err)
	}

	defer cleanup()

	if cfg.MetricsAddress != "" {
		go serveMetrics(ctx, cfg.MetricsAddress)
	}

	return newController(ctx, cfg, devs).Run(ctx)
}

// loadConfig reads the settings file and applies option overrides.
// Simulation runs do not require a settings file: a missing file falls
// back to defaults so the binary works out of the box without hardware.
func loadConfig(opts *Options) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)

	switch {
	case err == nil:
	case opts.Simulate && errors.Is(err, os.ErrNotExist):
		cfg = config.Default()
	default:
		return nil, err
	}

	if opts.Simulate {
		cfg.Simulate = true
	}

	if opts.MetricsAddress != "" {
		cfg.MetricsAddress = opts.MetricsAddress
	}

	return cfg, nil
}
