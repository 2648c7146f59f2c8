// Package keypad reads the five navigation buttons from GPIO lines,
// active low with pull-ups, exposing a non-blocking poll.
package keypad
