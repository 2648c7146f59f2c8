// Package ds3231 drives the DS3231 battery-backed real-time clock over
// I²C. Only the subset the alarm clock needs is implemented: reading the
// time, the one-shot operator calibration write, and the oscillator-stop
// validity check. The chip's own alarm registers are unused; alarm
// matching happens in the controller.
package ds3231
