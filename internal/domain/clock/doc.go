// Package clock contains core domain types for the alarm clock.
//
// It defines Timestamp (a calendar snapshot read from the RTC) and
// AlarmTime (the programmed wake-up time) together with the alarm-match
// and snooze rules.
package clock
