package clock

import (
	"fmt"
	"time"
)

// Timestamp is a calendar snapshot read from the RTC.
// It is refreshed once per display cycle and never mutated locally.
type Timestamp struct {
	// Year is the full calendar year.
	Year int
	// Month is the calendar month.
	Month time.Month
	// Day is the day of the month, 1..31.
	Day int
	// Weekday is the day of the week.
	Weekday time.Weekday
	// Hour is the hour of day, 0..23.
	Hour int
	// Minute is the minute, 0..59.
	Minute int
	// Second is the second, 0..59.
	Second int
}

// FromTime converts a time.Time into a Timestamp.
func FromTime(t time.Time) Timestamp {
	return Timestamp{
		Year:    t.Year(),
		Month:   t.Month(),
		Day:     t.Day(),
		Weekday: t.Weekday(),
		Hour:    t.Hour(),
		Minute:  t.Minute(),
		Second:  t.Second(),
	}
}

// IsZero reports whether the snapshot has never been filled from the RTC.
func (ts Timestamp) IsZero() bool {
	return ts == Timestamp{}
}

// DateString renders the date line for a 16-column display.
func (ts Timestamp) DateString() string {
	return fmt.Sprintf("%s %02d %s %04d", ts.Weekday.String()[:3], ts.Day, ts.Month.String()[:3], ts.Year)
}

// TimeString renders the time line for a 16-column display.
func (ts Timestamp) TimeString() string {
	return fmt.Sprintf("%02d:%02d:%02d", ts.Hour, ts.Minute, ts.Second)
}

// AlarmTime is the programmed wake-up time.
// The zero value (midnight) is the boot state.
type AlarmTime struct {
	// Hour is the alarm hour, 0..23.
	Hour int
	// Minute is the alarm minute, 0..59.
	Minute int
}

// Matches reports whether the alarm should fire at the given snapshot.
// Only hour and minute take part; the seconds field is ignored.
func (a AlarmTime) Matches(ts Timestamp) bool {
	return a.Hour == ts.Hour && a.Minute == ts.Minute
}

// Snooze returns the alarm pushed forward by the given number of minutes.
// Minute overflow carries into the hour; the hour wraps modulo 24.
func (a AlarmTime) Snooze(minutes int) AlarmTime {
	a.Minute += minutes
	if a.Minute > 59 {
		a.Hour += a.Minute / 60
		a.Minute %= 60
	}

	a.Hour %= 24

	return a
}

// String renders the alarm as HH:MM.
func (a AlarmTime) String() string {
	return fmt.Sprintf("%02d:%02d", a.Hour, a.Minute)
}
