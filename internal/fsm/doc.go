// Package fsm implements the finite-state machine at the heart of the
// alarm clock: mode switching, alarm arming, triggering, snoozing.
//
// The Machine owns the alarm time, the armed flag, and the staged setter
// values. Apply consumes a trigger (button press, timeout, alarm match)
// and performs exactly one transition of the table; every pair outside
// the table is an identity transition.
package fsm
