package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// LCDPins names the GPIO lines wired to the HD44780 display in 4-bit mode.
type LCDPins struct {
	// RS is the register-select line.
	RS string `yaml:"rs"`
	// Enable is the enable (clock) line.
	Enable string `yaml:"enable"`
	// D4..D7 are the high data lines used in 4-bit mode.
	D4 string `yaml:"d4"`
	D5 string `yaml:"d5"`
	D6 string `yaml:"d6"`
	D7 string `yaml:"d7"`
}

// KeypadPins names the GPIO lines wired to the five buttons, active low.
type KeypadPins struct {
	Up     string `yaml:"up"`
	Down   string `yaml:"down"`
	Left   string `yaml:"left"`
	Right  string `yaml:"right"`
	Select string `yaml:"select"`
}

// Config holds the hardware wiring and timing parameters of the controller.
type Config struct {
	// I2CBus is the I²C bus the RTC is on. Empty selects the first available bus.
	I2CBus string `yaml:"i2c_bus"`
	// RTCAddress is the 7-bit I²C address of the DS3231.
	RTCAddress uint16 `yaml:"rtc_address"`
	// LCD names the display pins.
	LCD LCDPins `yaml:"lcd"`
	// Keypad names the button pins.
	Keypad KeypadPins `yaml:"keypad"`
	// BuzzerPin is the PWM-capable pin driving the piezo buzzer.
	BuzzerPin string `yaml:"buzzer_pin"`
	// BuzzerIntensity is the PWM level (1..255) used while the alarm sounds.
	BuzzerIntensity uint8 `yaml:"buzzer_intensity"`
	// BuzzerFrequencyHz is the PWM carrier frequency for the buzzer.
	BuzzerFrequencyHz int `yaml:"buzzer_frequency_hz"`
	// SnoozeMinutes is how far a snooze pushes the alarm time forward.
	SnoozeMinutes int `yaml:"snooze_minutes"`
	// CyclePeriod is the length of one control-loop cycle.
	CyclePeriod time.Duration `yaml:"cycle_period"`
	// PollInterval is the keypad sampling cadence inside a cycle.
	PollInterval time.Duration `yaml:"poll_interval"`
	// AlarmViewHold is how long the alarm-time screen stays up.
	AlarmViewHold time.Duration `yaml:"alarm_view_hold"`
	// SetterTimeout is the inactivity window of the hour/minute setters.
	SetterTimeout time.Duration `yaml:"setter_timeout"`
	// MetricsAddress is the bind address of the optional Prometheus endpoint.
	// Empty disables the listener.
	MetricsAddress string `yaml:"metrics_addr"`
	// Simulate runs the controller against in-memory devices.
	Simulate bool `yaml:"simulate"`
	// LogLevel is the minimum log level (debug, info, warn, error, fatal).
	LogLevel string `yaml:"log_level"`
}

const (
	// DefaultConfigFilename is the default filename for controller settings.
	DefaultConfigFilename = "alarm-clock.yaml"

	// DefaultRTCAddress is the fixed I²C address of the DS3231.
	DefaultRTCAddress uint16 = 0x68

	// DefaultBuzzerIntensity is the PWM level used when none is configured.
	DefaultBuzzerIntensity uint8 = 128

	// DefaultBuzzerFrequencyHz is the PWM carrier frequency used when none is configured.
	DefaultBuzzerFrequencyHz = 4000

	// DefaultSnoozeMinutes is how far a snooze pushes the alarm forward.
	DefaultSnoozeMinutes = 10

	// DefaultCyclePeriod is the control-loop cadence.
	DefaultCyclePeriod = time.Second

	// DefaultPollInterval is the keypad sampling cadence.
	DefaultPollInterval = 150 * time.Millisecond

	// DefaultAlarmViewHold is how long the alarm-time screen stays up.
	DefaultAlarmViewHold = 2 * time.Second

	// DefaultSetterTimeout is the setter inactivity window.
	DefaultSetterTimeout = 5 * time.Second

	// DefaultFilePermissions is the file permission used for written config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errSnoozeOutOfRange is returned when snooze_minutes is not in 1..59.
	errSnoozeOutOfRange = errors.New("snooze_minutes must be between 1 and 59")
	// errPollExceedsCycle is returned when the poll interval is not shorter than the cycle.
	errPollExceedsCycle = errors.New("poll_interval must be shorter than cycle_period")
)

// Default returns a configuration pre-filled with the wiring of the reference
// build (Raspberry Pi header names) and all timing defaults applied.
func Default() *Config {
	cfg := &Config{
		RTCAddress: DefaultRTCAddress,
		LCD: LCDPins{
			RS:     "GPIO7",
			Enable: "GPIO8",
			D4:     "GPIO25",
			D5:     "GPIO24",
			D6:     "GPIO23",
			D7:     "GPIO18",
		},
		Keypad: KeypadPins{
			Up:     "GPIO17",
			Down:   "GPIO27",
			Left:   "GPIO22",
			Right:  "GPIO5",
			Select: "GPIO6",
		},
		BuzzerPin: "GPIO12",
		LogLevel:  "info",
	}

	// Validate never fails on a config with a populated pin map.
	_ = Validate(cfg)

	return cfg
}

// Load reads configuration from the provided path and validates it.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings and fills in defaults for
// unset timing and tuning fields.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.RTCAddress == 0 {
		cfg.RTCAddress = DefaultRTCAddress
	}

	if cfg.BuzzerIntensity == 0 {
		cfg.BuzzerIntensity = DefaultBuzzerIntensity
	}

	if cfg.BuzzerFrequencyHz <= 0 {
		cfg.BuzzerFrequencyHz = DefaultBuzzerFrequencyHz
	}

	if cfg.SnoozeMinutes == 0 {
		cfg.SnoozeMinutes = DefaultSnoozeMinutes
	}

	if cfg.SnoozeMinutes < 1 || cfg.SnoozeMinutes > 59 {
		return errSnoozeOutOfRange
	}

	if cfg.CyclePeriod <= 0 {
		cfg.CyclePeriod = DefaultCyclePeriod
	}

	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}

	if cfg.PollInterval >= cfg.CyclePeriod {
		return errPollExceedsCycle
	}

	if cfg.AlarmViewHold <= 0 {
		cfg.AlarmViewHold = DefaultAlarmViewHold
	}

	if cfg.SetterTimeout <= 0 {
		cfg.SetterTimeout = DefaultSetterTimeout
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return nil
}
