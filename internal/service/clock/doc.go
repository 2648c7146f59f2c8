// Package clock runs the alarm clock controller: a single-threaded,
// cooperative control loop at roughly one cycle per second.
//
// Each cycle executes the active state's action (display refresh,
// alarm-match check, or a setter sub-flow), then polls the keypad for the
// remainder of the cycle. A debounced press becomes a trigger for the
// state machine and transitions synchronously before the next cycle.
package clock
