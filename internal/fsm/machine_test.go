package fsm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/retrotone/lcd-alarm-clock/internal/domain/clock"
)

// buzzerRecorder records buzzer commands emitted by transitions.
type buzzerRecorder struct {
	// on counts BuzzerOn calls.
	on int
	// off counts BuzzerOff calls.
	off int
}

func (b *buzzerRecorder) BuzzerOn()  { b.on++ }
func (b *buzzerRecorder) BuzzerOff() { b.off++ }

// allStates lists every state for exhaustive table checks.
var allStates = []State{
	ShowTime, ShowTimeAlarmOn, ShowAlarmTime, SetAlarmHour, SetAlarmMinutes, BuzzerOn,
}

// allTriggers lists every trigger for exhaustive table checks.
var allTriggers = []Trigger{
	ButtonUp, ButtonDown, ButtonLeft, ButtonRight, ButtonSelect, TimeOut, AlarmTimeMet,
}

// inTable reports whether the transition table has an entry for the pair.
func inTable(s State, tr Trigger) bool {
	switch s {
	case ShowTime:
		return tr == ButtonLeft || tr == ButtonRight || tr == ButtonSelect
	case ShowTimeAlarmOn:
		return tr == ButtonLeft || tr == ButtonRight || tr == ButtonSelect || tr == AlarmTimeMet
	case ShowAlarmTime:
		return tr == TimeOut
	case SetAlarmHour, SetAlarmMinutes:
		return tr == ButtonSelect || tr == TimeOut
	case BuzzerOn:
		return tr == ButtonUp || tr == ButtonDown || tr == ButtonLeft || tr == ButtonSelect
	default:
		return false
	}
}

// machineInState builds a machine forced into the given state for table checks.
func machineInState(s State, armed bool, effects Effects) *Machine {
	m := New(10, effects)
	m.state = s
	m.armed = armed

	return m
}

// TestOutOfTablePairsAreIdentity verifies every pair outside the table is a
// no-op: same state, no armed change, no buzzer commands.
func TestOutOfTablePairsAreIdentity(t *testing.T) {
	t.Parallel()

	for _, s := range allStates {
		for _, tr := range allTriggers {
			if inTable(s, tr) {
				continue
			}

			for _, armed := range []bool{false, true} {
				rec := new(buzzerRecorder)
				m := machineInState(s, armed, rec)

				got := m.Apply(tr)

				require.Equal(t, s, got, "state %s trigger %s", s, tr)
				require.Equal(t, armed, m.Armed(), "state %s trigger %s", s, tr)
				require.Zero(t, rec.on+rec.off, "state %s trigger %s", s, tr)
			}
		}
	}
}

// TestUnrecognizedTriggerIgnored ensures a trigger value outside the enum
// never changes state or panics.
func TestUnrecognizedTriggerIgnored(t *testing.T) {
	t.Parallel()

	for _, s := range allStates {
		m := machineInState(s, true, nil)
		require.Equal(t, s, m.Apply(Trigger(99)))
	}
}

// TestTimeoutLandsOnArmedDependentTarget checks the TimeOut rows of the table.
func TestTimeoutLandsOnArmedDependentTarget(t *testing.T) {
	t.Parallel()

	for _, s := range []State{ShowAlarmTime, SetAlarmHour, SetAlarmMinutes} {
		m := machineInState(s, false, nil)
		require.Equal(t, ShowTime, m.Apply(TimeOut))

		m = machineInState(s, true, nil)
		require.Equal(t, ShowTimeAlarmOn, m.Apply(TimeOut))
	}
}

// TestArmDisarmFromShowTime covers the Right-button arming toggle.
func TestArmDisarmFromShowTime(t *testing.T) {
	t.Parallel()

	m := New(10, nil)

	require.Equal(t, ShowTimeAlarmOn, m.Apply(ButtonRight))
	require.True(t, m.Armed())

	require.Equal(t, ShowTime, m.Apply(ButtonRight))
	require.False(t, m.Armed())
}

// TestSetterFlowProgramsAlarm drives the full programming scenario:
// Select, Up x5, Select, Up x3, Select yields alarm 05:15, armed.
func TestSetterFlowProgramsAlarm(t *testing.T) {
	t.Parallel()

	m := New(10, nil)

	require.Equal(t, SetAlarmHour, m.Apply(ButtonSelect))

	for i := 0; i < 5; i++ {
		m.AdjustStagedHour(1)
	}

	require.Equal(t, 5, m.Staged().Hour)
	require.Equal(t, SetAlarmMinutes, m.Apply(ButtonSelect))

	for i := 0; i < 3; i++ {
		m.AdjustStagedMinute(5)
	}

	require.Equal(t, 15, m.Staged().Minute)
	require.Equal(t, ShowTimeAlarmOn, m.Apply(ButtonSelect))
	require.Equal(t, clock.AlarmTime{Hour: 5, Minute: 15}, m.Alarm())
	require.True(t, m.Armed())
}

// TestHourSetterTimeoutDiscardsStagedValue ensures a timed-out hour setter
// leaves the programmed alarm untouched and resets staging on re-entry.
func TestHourSetterTimeoutDiscardsStagedValue(t *testing.T) {
	t.Parallel()

	m := New(10, nil)
	m.alarm = clock.AlarmTime{Hour: 8, Minute: 30}

	m.Apply(ButtonSelect)
	m.AdjustStagedHour(7)
	m.Apply(TimeOut)

	require.Equal(t, ShowTime, m.State())
	require.Equal(t, clock.AlarmTime{Hour: 8, Minute: 30}, m.Alarm())

	// Re-entering the setter starts from zero again.
	m.Apply(ButtonSelect)
	require.Equal(t, clock.AlarmTime{}, m.Staged())
}

// TestStagedAdjustmentsClamp verifies hour 0..23 and minute 0..55 clamping.
func TestStagedAdjustmentsClamp(t *testing.T) {
	t.Parallel()

	m := New(10, nil)
	m.Apply(ButtonSelect)

	m.AdjustStagedHour(-1)
	require.Equal(t, 0, m.Staged().Hour)

	m.AdjustStagedHour(30)
	require.Equal(t, 23, m.Staged().Hour)

	m.AdjustStagedMinute(-5)
	require.Equal(t, 0, m.Staged().Minute)

	m.AdjustStagedMinute(60)
	require.Equal(t, 55, m.Staged().Minute)
}

// TestAlarmTimeMetSoundsBuzzer covers the armed alarm firing.
func TestAlarmTimeMetSoundsBuzzer(t *testing.T) {
	t.Parallel()

	rec := new(buzzerRecorder)
	m := machineInState(ShowTimeAlarmOn, true, rec)

	require.Equal(t, BuzzerOn, m.Apply(AlarmTimeMet))
	require.Equal(t, 1, rec.on)
	require.Zero(t, rec.off)
}

// TestSnoozeFromBuzzer verifies Up silences the buzzer, pushes the alarm
// ten minutes, and keeps it armed.
func TestSnoozeFromBuzzer(t *testing.T) {
	t.Parallel()

	rec := new(buzzerRecorder)
	m := machineInState(BuzzerOn, true, rec)
	m.alarm = clock.AlarmTime{Hour: 5, Minute: 15}

	require.Equal(t, ShowTimeAlarmOn, m.Apply(ButtonUp))
	require.Equal(t, clock.AlarmTime{Hour: 5, Minute: 25}, m.Alarm())
	require.True(t, m.Armed())
	require.Equal(t, 1, rec.off)
}

// TestDismissFromBuzzer verifies Select silences the buzzer and disarms.
func TestDismissFromBuzzer(t *testing.T) {
	t.Parallel()

	for _, tr := range []Trigger{ButtonSelect, ButtonLeft} {
		rec := new(buzzerRecorder)
		m := machineInState(BuzzerOn, true, rec)

		require.Equal(t, ShowTime, m.Apply(tr))
		require.False(t, m.Armed())
		require.Equal(t, 1, rec.off)
	}
}

// TestViewAlarmTimeRoundTrip checks Left shows the alarm time and the
// timeout returns to the armed-dependent display state.
func TestViewAlarmTimeRoundTrip(t *testing.T) {
	t.Parallel()

	m := New(10, nil)

	require.Equal(t, ShowAlarmTime, m.Apply(ButtonLeft))
	require.Equal(t, ShowTime, m.Apply(TimeOut))

	m.Apply(ButtonRight) // arm
	require.Equal(t, ShowAlarmTime, m.Apply(ButtonLeft))
	require.Equal(t, ShowTimeAlarmOn, m.Apply(TimeOut))
}
