package fsm

import (
	"github.com/retrotone/lcd-alarm-clock/internal/domain/clock"
)

// Effects receives the buzzer commands emitted by transitions.
// The controller backs it with the buzzer adapter; tests use a recorder.
type Effects interface {
	// BuzzerOn starts the alarm tone at the configured intensity.
	BuzzerOn()
	// BuzzerOff silences the alarm tone.
	BuzzerOff()
}

// Machine is the controller's finite-state machine. It owns the alarm
// time, the armed flag, and the staged setter values. All mutation goes
// through Apply or the staged-value helpers; the single-threaded control
// loop is the only caller, so no locking is needed.
type Machine struct {
	// state is the single active mode.
	state State
	// armed is true exactly while the alarm is intended to fire.
	armed bool
	// alarm is the programmed wake-up time.
	alarm clock.AlarmTime
	// staged holds the provisional alarm time during the setter flow.
	// It is committed only by the accepted minute-setter path.
	staged clock.AlarmTime
	// snoozeMinutes is how far a snooze pushes the alarm forward.
	snoozeMinutes int
	// effects sinks buzzer commands; may be nil in tests.
	effects Effects
}

// New creates a machine in the boot state: showing time, alarm at
// midnight, disarmed.
func New(snoozeMinutes int, effects Effects) *Machine {
	return &Machine{
		state:         ShowTime,
		snoozeMinutes: snoozeMinutes,
		effects:       effects,
	}
}

// State returns the active state.
func (m *Machine) State() State {
	return m.state
}

// Armed reports whether the alarm is armed.
func (m *Machine) Armed() bool {
	return m.armed
}

// Alarm returns the programmed alarm time.
func (m *Machine) Alarm() clock.AlarmTime {
	return m.alarm
}

// Staged returns the provisional alarm time of the setter flow.
func (m *Machine) Staged() clock.AlarmTime {
	return m.staged
}

// AdjustStagedHour moves the staged hour by delta, clamped to 0..23.
func (m *Machine) AdjustStagedHour(delta int) {
	m.staged.Hour = clamp(m.staged.Hour+delta, 0, 23)
}

// AdjustStagedMinute moves the staged minute by delta, clamped to 0..55.
func (m *Machine) AdjustStagedMinute(delta int) {
	m.staged.Minute = clamp(m.staged.Minute+delta, 0, 55)
}

// Apply runs one transition of the table and returns the new state.
// Pairs outside the table, and unrecognized trigger values, are identity
// transitions with no side effects.
func (m *Machine) Apply(trigger Trigger) State {
	switch m.state {
	case ShowTime:
		switch trigger {
		case ButtonLeft:
			m.state = ShowAlarmTime
		case ButtonRight:
			m.armed = true
			m.state = ShowTimeAlarmOn
		case ButtonSelect:
			m.enterSetter()
		}

	case ShowTimeAlarmOn:
		switch trigger {
		case ButtonLeft:
			m.state = ShowAlarmTime
		case ButtonRight:
			m.armed = false
			m.state = ShowTime
		case ButtonSelect:
			m.enterSetter()
		case AlarmTimeMet:
			m.buzzerOn()
			m.state = BuzzerOn
		}

	case ShowAlarmTime, SetAlarmHour, SetAlarmMinutes:
		switch trigger {
		case ButtonSelect:
			switch m.state {
			case SetAlarmHour:
				m.state = SetAlarmMinutes
			case SetAlarmMinutes:
				m.alarm = m.staged
				m.armed = true
				m.state = ShowTimeAlarmOn
			}
		case TimeOut:
			m.state = m.timeoutTarget()
		}

	case BuzzerOn:
		switch trigger {
		case ButtonUp, ButtonDown:
			m.buzzerOff()
			m.alarm = m.alarm.Snooze(m.snoozeMinutes)
			m.state = ShowTimeAlarmOn
		case ButtonSelect, ButtonLeft:
			m.buzzerOff()
			m.armed = false
			m.state = ShowTime
		}
	}

	return m.state
}

// enterSetter starts the alarm-programming flow with a fresh staged value.
func (m *Machine) enterSetter() {
	m.staged = clock.AlarmTime{}
	m.state = SetAlarmHour
}

// timeoutTarget is the armed-dependent landing state for TimeOut triggers.
func (m *Machine) timeoutTarget() State {
	if m.armed {
		return ShowTimeAlarmOn
	}

	return ShowTime
}

func (m *Machine) buzzerOn() {
	if m.effects != nil {
		m.effects.BuzzerOn()
	}
}

func (m *Machine) buzzerOff() {
	if m.effects != nil {
		m.effects.BuzzerOff()
	}
}

// clamp restricts v to the inclusive range [lo, hi].
func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}
