package fsm

// State identifies the single active mode of the controller.
type State uint8

const (
	// ShowTime displays the current date and time, alarm disarmed.
	ShowTime State = iota
	// ShowTimeAlarmOn displays the current date and time with the alarm armed.
	ShowTimeAlarmOn
	// ShowAlarmTime briefly displays the programmed alarm time.
	ShowAlarmTime
	// SetAlarmHour captures a new alarm hour.
	SetAlarmHour
	// SetAlarmMinutes captures a new alarm minute.
	SetAlarmMinutes
	// BuzzerOn sounds the alarm until dismissed or snoozed.
	BuzzerOn
)

// String returns a human-readable state name for logs and metrics.
func (s State) String() string {
	switch s {
	case ShowTime:
		return "show_time"
	case ShowTimeAlarmOn:
		return "show_time_alarm_on"
	case ShowAlarmTime:
		return "show_alarm_time"
	case SetAlarmHour:
		return "set_alarm_hour"
	case SetAlarmMinutes:
		return "set_alarm_minutes"
	case BuzzerOn:
		return "buzzer_on"
	default:
		return "unknown"
	}
}

// Trigger is an input event that may cause a state transition.
type Trigger uint8

const (
	// ButtonUp is a debounced press of the up button.
	ButtonUp Trigger = iota
	// ButtonDown is a debounced press of the down button.
	ButtonDown
	// ButtonLeft is a debounced press of the left button.
	ButtonLeft
	// ButtonRight is a debounced press of the right button.
	ButtonRight
	// ButtonSelect is a debounced press of the select button.
	ButtonSelect
	// TimeOut is synthesized when a timeout window elapses.
	TimeOut
	// AlarmTimeMet is synthesized when the current time matches the alarm.
	AlarmTimeMet
)

// String returns a human-readable trigger name for logs and metrics.
func (t Trigger) String() string {
	switch t {
	case ButtonUp:
		return "button_up"
	case ButtonDown:
		return "button_down"
	case ButtonLeft:
		return "button_left"
	case ButtonRight:
		return "button_right"
	case ButtonSelect:
		return "button_select"
	case TimeOut:
		return "timeout"
	case AlarmTimeMet:
		return "alarm_time_met"
	default:
		return "unknown"
	}
}
