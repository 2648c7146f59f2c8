// Package timer provides one-shot timeout windows for the control loop.
//
// A Window is armed with Reset and fires exactly once when its duration
// elapses, which keeps timeout triggers from being emitted repeatedly.
package timer
