package lcd

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// HD44780 instruction set, 4-bit mode.
const (
	cmdClearDisplay   = 0x01
	cmdEntryModeSet   = 0x06 // increment cursor, no shift
	cmdDisplayOn      = 0x0C // display on, cursor off, blink off
	cmdFunctionSet4H2 = 0x28 // 4-bit, 2 lines, 5x8 font
	cmdSetDDRAMAddr   = 0x80

	// Cols and Rows are the geometry of the supported panel.
	Cols = 16
	Rows = 2
)

// rowOffsets maps a row index to its DDRAM base address.
var rowOffsets = [Rows]byte{0x00, 0x40}

// ErrCursorOutOfRange is returned for cursor positions outside the panel.
var ErrCursorOutOfRange = errors.New("cursor position out of range")

// Dev is an HD44780-compatible 16x2 character display wired in 4-bit mode.
type Dev struct {
	rs   gpio.PinOut
	en   gpio.PinOut
	data [4]gpio.PinOut // D4..D7
}

// New initializes the display and returns it cleared, cursor at the origin.
func New(rs, en, d4, d5, d6, d7 gpio.PinOut) (*Dev, error) {
	d := &Dev{
		rs:   rs,
		en:   en,
		data: [4]gpio.PinOut{d4, d5, d6, d7},
	}

	if err := d.init(); err != nil {
		return nil, fmt.Errorf("initialize hd44780: %w", err)
	}

	return d, nil
}

// init performs the datasheet 4-bit initialization-by-instruction sequence.
func (d *Dev) init() error {
	// The controller needs time after power-on before accepting commands.
	time.Sleep(50 * time.Millisecond)

	if err := d.rs.Out(gpio.Low); err != nil {
		return err
	}

	// Three 8-bit function-set probes, then the switch to 4-bit mode.
	for _, wait := range []time.Duration{5 * time.Millisecond, 150 * time.Microsecond, 150 * time.Microsecond} {
		if err := d.writeNibble(0x03); err != nil {
			return err
		}

		time.Sleep(wait)
	}

	if err := d.writeNibble(0x02); err != nil {
		return err
	}

	time.Sleep(150 * time.Microsecond)

	for _, cmd := range []byte{cmdFunctionSet4H2, cmdDisplayOn, cmdClearDisplay, cmdEntryModeSet} {
		if err := d.command(cmd); err != nil {
			return err
		}
	}

	return nil
}

// Clear blanks the panel and homes the cursor.
func (d *Dev) Clear() error {
	if err := d.command(cmdClearDisplay); err != nil {
		return fmt.Errorf("clear display: %w", err)
	}

	return nil
}

// SetCursor moves the cursor to the given column and row.
func (d *Dev) SetCursor(col, row int) error {
	if col < 0 || col >= Cols || row < 0 || row >= Rows {
		return fmt.Errorf("position (%d,%d): %w", col, row, ErrCursorOutOfRange)
	}

	if err := d.command(cmdSetDDRAMAddr | rowOffsets[row] | byte(col)); err != nil {
		return fmt.Errorf("set cursor: %w", err)
	}

	return nil
}

// Print writes text at the cursor. What runs past the row edge ends up in
// off-screen DDRAM, matching the panel's native truncation behavior.
func (d *Dev) Print(text string) error {
	if err := d.rs.Out(gpio.High); err != nil {
		return fmt.Errorf("select data register: %w", err)
	}

	for i := 0; i < len(text); i++ {
		if err := d.writeByte(text[i]); err != nil {
			return fmt.Errorf("write character %d: %w", i, err)
		}
	}

	return nil
}

// command sends a single instruction byte.
func (d *Dev) command(cmd byte) error {
	if err := d.rs.Out(gpio.Low); err != nil {
		return err
	}

	if err := d.writeByte(cmd); err != nil {
		return err
	}

	// Clear and home are the slow instructions.
	if cmd == cmdClearDisplay {
		time.Sleep(2 * time.Millisecond)
	}

	return nil
}

// writeByte clocks out a byte as two nibbles, high first.
func (d *Dev) writeByte(b byte) error {
	if err := d.writeNibble(b >> 4); err != nil {
		return err
	}

	return d.writeNibble(b & 0x0F)
}

// writeNibble puts the low four bits of b on D4..D7 and pulses enable.
func (d *Dev) writeNibble(b byte) error {
	for i, pin := range d.data {
		if err := pin.Out(gpio.Level(b&(1<<i) != 0)); err != nil {
			return err
		}
	}

	return d.pulseEnable()
}

// pulseEnable latches the data lines into the controller.
func (d *Dev) pulseEnable() error {
	if err := d.en.Out(gpio.High); err != nil {
		return err
	}

	time.Sleep(time.Microsecond)

	if err := d.en.Out(gpio.Low); err != nil {
		return err
	}

	// Most instructions complete within 37us.
	time.Sleep(50 * time.Microsecond)

	return nil
}
