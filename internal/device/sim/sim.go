package sim

import (
	"strings"
	"time"

	"github.com/retrotone/lcd-alarm-clock/internal/device"
	"github.com/retrotone/lcd-alarm-clock/internal/domain/clock"
)

// Display geometry mirrors the 16x2 panel.
const (
	cols = 16
	rows = 2
)

// RTC is an in-memory real-time clock. With Now set it follows the host
// clock; otherwise it returns whatever was last written via Set, which
// gives tests full control over the reported time.
type RTC struct {
	// Now supplies the current time when not nil.
	Now func() time.Time
	// Err is returned from Read when set, to exercise failure paths.
	Err error

	ts clock.Timestamp
}

// Read returns the simulated time.
func (r *RTC) Read() (clock.Timestamp, error) {
	if r.Err != nil {
		return clock.Timestamp{}, r.Err
	}

	if r.Now != nil {
		return clock.FromTime(r.Now()), nil
	}

	return r.ts, nil
}

// Set pins the simulated time. It disables host-clock mode so the written
// value is what subsequent reads return.
func (r *RTC) Set(ts clock.Timestamp) error {
	r.Now = nil
	r.ts = ts

	return nil
}

// Display is an in-memory 16x2 character buffer.
type Display struct {
	// Err is returned from every operation when set.
	Err error

	cells [rows][cols]byte
	col   int
	row   int
}

// Clear blanks the buffer and homes the cursor.
func (d *Display) Clear() error {
	if d.Err != nil {
		return d.Err
	}

	for r := range d.cells {
		for c := range d.cells[r] {
			d.cells[r][c] = ' '
		}
	}

	d.col, d.row = 0, 0

	return nil
}

// SetCursor moves the cursor.
func (d *Display) SetCursor(col, row int) error {
	if d.Err != nil {
		return d.Err
	}

	d.col, d.row = col, row

	return nil
}

// Print writes text at the cursor, truncating at the row edge.
func (d *Display) Print(text string) error {
	if d.Err != nil {
		return d.Err
	}

	if d.row < 0 || d.row >= rows {
		return nil
	}

	for i := 0; i < len(text) && d.col < cols; i++ {
		if d.col >= 0 {
			d.cells[d.row][d.col] = text[i]
		}

		d.col++
	}

	return nil
}

// Line returns the rendered content of a row, right-trimmed.
func (d *Display) Line(row int) string {
	if row < 0 || row >= rows {
		return ""
	}

	return strings.TrimRight(string(d.cells[row][:]), " \x00")
}

// Keypad replays a scripted sequence of button presses. Each pushed press
// is followed by one release sample so the controller's debounce sees the
// button let go before the next event.
type Keypad struct {
	// Err is returned from Poll when set.
	Err error

	queue []device.Button
}

// Push appends presses to the script.
func (k *Keypad) Push(buttons ...device.Button) {
	for _, b := range buttons {
		k.queue = append(k.queue, b, device.ButtonNone)
	}
}

// Poll pops the next sample, or ButtonNone once the script runs out.
func (k *Keypad) Poll() (device.Button, error) {
	if k.Err != nil {
		return device.ButtonNone, k.Err
	}

	if len(k.queue) == 0 {
		return device.ButtonNone, nil
	}

	b := k.queue[0]
	k.queue = k.queue[1:]

	return b, nil
}

// Buzzer records every intensity change.
type Buzzer struct {
	// Err is returned from SetIntensity when set.
	Err error

	level   uint8
	history []uint8
}

// SetIntensity records the level.
func (b *Buzzer) SetIntensity(level uint8) error {
	if b.Err != nil {
		return b.Err
	}

	b.level = level
	b.history = append(b.history, level)

	return nil
}

// Level returns the current intensity.
func (b *Buzzer) Level() uint8 {
	return b.level
}

// History returns every intensity that was ever set, in order.
func (b *Buzzer) History() []uint8 {
	return b.history
}
