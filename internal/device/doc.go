// Package device defines the narrow adapter interfaces between the
// controller and its peripherals: real-time clock, character display,
// keypad, and buzzer.
//
// Hardware implementations live in the subpackages ds3231, lcd, keypad,
// and buzzer; package sim provides in-memory implementations for tests
// and for running without hardware.
package device
