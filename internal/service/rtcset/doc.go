// Package rtcset implements the one-shot operator calibration of the
// battery-backed RTC. It is a separate command on purpose: the controller
// never writes the clock during normal boot.
package rtcset
