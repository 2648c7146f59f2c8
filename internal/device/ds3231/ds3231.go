package ds3231

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/i2c"

	"github.com/retrotone/lcd-alarm-clock/internal/domain/clock"
)

// DS3231 register map, datasheet rev 10/2015.
const (
	regTimeDate = 0x00
	regStatus   = 0x0F

	// osfBit in the status register is set when the oscillator has
	// stopped since the time was last written.
	osfBit = 0x80
	// centuryBit in the month register carries years 2100+.
	centuryBit = 0x80
)

// Dev is a DS3231 real-time clock on an I²C bus.
type Dev struct {
	dev i2c.Dev
}

// New returns a DS3231 at the given address on the provided bus.
func New(bus i2c.Bus, addr uint16) *Dev {
	return &Dev{dev: i2c.Dev{Bus: bus, Addr: addr}}
}

// Read returns the current time and date. The chip keeps 24-hour time;
// the weekday register runs 1..7 with 1 meaning Sunday.
func (d *Dev) Read() (clock.Timestamp, error) {
	data := make([]byte, 7)
	if err := d.dev.Tx([]byte{regTimeDate}, data); err != nil {
		return clock.Timestamp{}, fmt.Errorf("read timedate registers: %w", err)
	}

	year := 2000 + bcdToInt(data[6])
	if data[5]&centuryBit != 0 {
		year += 100
	}

	return clock.Timestamp{
		Year:    year,
		Month:   time.Month(bcdToInt(data[5] &^ centuryBit)),
		Day:     bcdToInt(data[4]),
		Weekday: time.Weekday(data[3] - 1),
		Hour:    bcdToInt(data[2] & 0x3F),
		Minute:  bcdToInt(data[1]),
		Second:  bcdToInt(data[0] & 0x7F),
	}, nil
}

// Set writes the time and date and clears the oscillator-stop flag so the
// stored time reads as valid again.
func (d *Dev) Set(ts clock.Timestamp) error {
	month := intToBcd(int(ts.Month))

	year := ts.Year - 2000
	if year >= 100 {
		year -= 100
		month |= centuryBit
	}

	w := []byte{
		regTimeDate,
		intToBcd(ts.Second),
		intToBcd(ts.Minute),
		intToBcd(ts.Hour),
		byte(ts.Weekday) + 1,
		intToBcd(ts.Day),
		month,
		intToBcd(year),
	}
	if err := d.dev.Tx(w, nil); err != nil {
		return fmt.Errorf("write timedate registers: %w", err)
	}

	status := make([]byte, 1)
	if err := d.dev.Tx([]byte{regStatus}, status); err != nil {
		return fmt.Errorf("read status register: %w", err)
	}

	if err := d.dev.Tx([]byte{regStatus, status[0] &^ osfBit}, nil); err != nil {
		return fmt.Errorf("clear oscillator-stop flag: %w", err)
	}

	return nil
}

// IsTimeValid reports whether the oscillator has kept running since the
// time was last set. A false result means the stored time is stale.
func (d *Dev) IsTimeValid() (bool, error) {
	status := make([]byte, 1)
	if err := d.dev.Tx([]byte{regStatus}, status); err != nil {
		return false, fmt.Errorf("read status register: %w", err)
	}

	return status[0]&osfBit == 0, nil
}

// bcdToInt converts a packed BCD register value to an integer.
func bcdToInt(b byte) int {
	return int(b>>4)*10 + int(b&0x0F)
}

// intToBcd converts an integer 0..99 to packed BCD.
func intToBcd(v int) byte {
	return byte(v/10)<<4 | byte(v%10)
}
