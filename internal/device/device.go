package device

import (
	"github.com/retrotone/lcd-alarm-clock/internal/domain/clock"
)

// Button identifies a keypad button, or ButtonNone when nothing is pressed.
type Button uint8

const (
	// ButtonNone means no button is pressed.
	ButtonNone Button = iota
	// ButtonUp is the up button.
	ButtonUp
	// ButtonDown is the down button.
	ButtonDown
	// ButtonLeft is the left button.
	ButtonLeft
	// ButtonRight is the right button.
	ButtonRight
	// ButtonSelect is the select button.
	ButtonSelect
)

// String returns a human-readable button name for logs.
func (b Button) String() string {
	switch b {
	case ButtonNone:
		return "none"
	case ButtonUp:
		return "up"
	case ButtonDown:
		return "down"
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonSelect:
		return "select"
	default:
		return "unknown"
	}
}

// RTC reads and sets the battery-backed real-time clock.
// Read is called once per display cycle; Set only by the operator
// calibration command.
type RTC interface {
	Read() (clock.Timestamp, error)
	Set(ts clock.Timestamp) error
}

// Display is a character display with two rows of sixteen columns.
// Longer strings are truncated by the device.
type Display interface {
	Clear() error
	SetCursor(col, row int) error
	Print(text string) error
}

// Keypad samples the buttons without blocking. Debounce is the caller's
// responsibility.
type Keypad interface {
	Poll() (Button, error)
}

// Buzzer drives the alarm tone. Level 0 is silent; any other level maps
// to a fixed-frequency tone of that intensity.
type Buzzer interface {
	SetIntensity(level uint8) error
}
