package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/retrotone/lcd-alarm-clock/internal/config"
	"github.com/retrotone/lcd-alarm-clock/internal/service/clock"
	"github.com/retrotone/lcd-alarm-clock/internal/service/rtcset"
	"github.com/retrotone/lcd-alarm-clock/internal/version"
)

var (
	// cfgPath stores the configuration file path.
	cfgPath string

	// simulate replaces the hardware with in-memory devices.
	simulate bool

	// metricsAddress overrides the Prometheus listen address.
	metricsAddress string

	// rootCmd runs the alarm clock controller until interrupted.
	rootCmd = &cobra.Command{
		Use:   "alarm-clock",
		Short: "Run the LCD alarm clock controller.",
		Long: `Runs the alarm clock control loop on the attached hardware.

Drives a character LCD and a piezo buzzer from a battery-backed DS3231 RTC,
polling a five-button keypad once per cycle. The loop runs until SIGINT or
SIGTERM, silencing the buzzer and clearing the display on the way out.

With --simulate the hardware is replaced by in-memory devices and every
display update is written to the log, which is handy on a workstation.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &clock.Options{
				ConfigPath:     cfgPath,
				Simulate:       simulate,
				MetricsAddress: metricsAddress,
			}

			return clock.Run(ctx, options)
		},
	}

	// setClockCmd writes the RTC once and exits.
	setClockCmd = &cobra.Command{
		Use:   "set-clock [timestamp]",
		Short: "Calibrate the RTC from the host clock or a given timestamp.",
		Long: `Writes the given time to the battery-backed RTC and verifies it by
reading it back.

The timestamp is RFC3339 (for example 2026-08-24T07:30:00Z) or the literal
"now" to copy the host clock. Without an argument "now" is assumed.

This is the only code path that ever writes the RTC. The controller itself
treats the clock as read-only so a stale host time can never clobber it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			when := "now"
			if len(args) > 0 {
				when = args[0]
			}

			options := &rtcset.Options{
				ConfigPath: cfgPath,
				When:       when,
			}

			return rtcset.Run(ctx, options)
		},
	}

	// initConfigCmd writes a default settings file.
	initConfigCmd = &cobra.Command{
		Use:   "init-config",
		Short: "Write a default configuration file.",
		Long: `Creates a configuration file populated with the default pin layout
and timing so it can be edited for the actual wiring.

Refuses to overwrite an existing file.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if _, err := os.Stat(cfgPath); err == nil {
				return fmt.Errorf("configuration file %q already exists", cfgPath)
			}

			return config.Save(cfgPath, config.Default())
		},
	}
)

// Execute runs the alarm-clock CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().BoolVar(&simulate, "simulate", false, "run on simulated devices instead of hardware")
	rootCmd.Flags().StringVar(&metricsAddress, "metrics-addr", "", "Prometheus listen address, e.g. :9091 (empty disables)")

	rootCmd.AddCommand(setClockCmd, initConfigCmd)
}
