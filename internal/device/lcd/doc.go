// Package lcd drives an HD44780-compatible 16x2 character display wired
// to six GPIO lines in 4-bit mode.
package lcd
