package clock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/retrotone/lcd-alarm-clock/internal/config"
	"github.com/retrotone/lcd-alarm-clock/internal/device"
	"github.com/retrotone/lcd-alarm-clock/internal/device/sim"
	domain "github.com/retrotone/lcd-alarm-clock/internal/domain/clock"
	"github.com/retrotone/lcd-alarm-clock/internal/fsm"
)

var errRTCBroken = errors.New("rtc not responding")

// testRig bundles a controller with its simulated peripherals.
type testRig struct {
	c       *controller
	rtc     *sim.RTC
	display *sim.Display
	keypad  *sim.Keypad
	buzzer  *sim.Buzzer
}

// newTestRig builds a controller on simulated devices with timing scaled
// down so a full cycle takes tens of milliseconds.
func newTestRig(t *testing.T) *testRig {
	t.Helper()

	cfg := &config.Config{
		SnoozeMinutes:   10,
		BuzzerIntensity: 200,
		CyclePeriod:     50 * time.Millisecond,
		PollInterval:    2 * time.Millisecond,
		AlarmViewHold:   10 * time.Millisecond,
		SetterTimeout:   30 * time.Millisecond,
	}
	require.NoError(t, config.Validate(cfg))

	rig := &testRig{
		rtc:     new(sim.RTC),
		display: new(sim.Display),
		keypad:  new(sim.Keypad),
		buzzer:  new(sim.Buzzer),
	}

	require.NoError(t, rig.rtc.Set(domain.Timestamp{
		Year:    2026,
		Month:   time.August,
		Day:     24,
		Weekday: time.Monday,
		Hour:    5,
		Minute:  14,
		Second:  50,
	}))

	rig.c = newController(context.Background(), cfg, devices{
		rtc:     rig.rtc,
		display: rig.display,
		keypad:  rig.keypad,
		buzzer:  rig.buzzer,
	})

	return rig
}

// cycle runs one control cycle with the configured period.
func (r *testRig) cycle() {
	ctx := context.Background()
	r.c.runCycle(ctx, time.Now().Add(r.c.cfg.CyclePeriod))
}

// TestRenderShowsDateAndTime verifies the idle display cycle.
func TestRenderShowsDateAndTime(t *testing.T) {
	t.Parallel()

	rig := newTestRig(t)
	rig.cycle()

	require.Equal(t, "Mon 24 Aug 2026", rig.display.Line(0))
	require.Equal(t, "05:14:50", rig.display.Line(1))
}

// TestArmedIndicatorSuffix checks the alarm marker appears once armed.
func TestArmedIndicatorSuffix(t *testing.T) {
	t.Parallel()

	rig := newTestRig(t)

	rig.keypad.Push(device.ButtonRight)
	rig.cycle() // arms
	rig.cycle() // redraws with the indicator

	require.Equal(t, fsm.ShowTimeAlarmOn, rig.c.machine.State())
	require.Equal(t, "05:14:50 *", rig.display.Line(1))
}

// TestProgramAlarmEndToEnd drives the full programming flow: Select,
// Up x5, Select, Up x3, Select programs 05:15 and arms the alarm; the
// minute setter runs in the same cycle as the accepted hour setter.
func TestProgramAlarmEndToEnd(t *testing.T) {
	t.Parallel()

	rig := newTestRig(t)

	rig.keypad.Push(device.ButtonSelect)
	rig.cycle()
	require.Equal(t, fsm.SetAlarmHour, rig.c.machine.State())

	// Script both setter flows; the hour hand-off happens mid-cycle.
	rig.keypad.Push(
		device.ButtonUp, device.ButtonUp, device.ButtonUp, device.ButtonUp, device.ButtonUp,
		device.ButtonSelect,
		device.ButtonUp, device.ButtonUp, device.ButtonUp,
		device.ButtonSelect,
	)
	rig.cycle()

	require.Equal(t, fsm.ShowTimeAlarmOn, rig.c.machine.State())
	require.Equal(t, domain.AlarmTime{Hour: 5, Minute: 15}, rig.c.machine.Alarm())
	require.True(t, rig.c.machine.Armed())
}

// TestAlarmFiresAndSnoozes walks from an armed match through BuzzerOn and
// a snooze back to the armed display state.
func TestAlarmFiresAndSnoozes(t *testing.T) {
	t.Parallel()

	rig := newTestRig(t)

	// Program 05:15 and arm.
	rig.keypad.Push(device.ButtonSelect)
	rig.cycle()
	rig.keypad.Push(
		device.ButtonUp, device.ButtonUp, device.ButtonUp, device.ButtonUp, device.ButtonUp,
		device.ButtonSelect,
		device.ButtonUp, device.ButtonUp, device.ButtonUp,
		device.ButtonSelect,
	)
	rig.cycle()
	require.Equal(t, domain.AlarmTime{Hour: 5, Minute: 15}, rig.c.machine.Alarm())

	// The clock reaches the alarm minute; seconds do not matter.
	require.NoError(t, rig.rtc.Set(domain.Timestamp{
		Year: 2026, Month: time.August, Day: 24, Weekday: time.Monday,
		Hour: 5, Minute: 15, Second: 42,
	}))
	rig.cycle()

	require.Equal(t, fsm.BuzzerOn, rig.c.machine.State())
	require.Equal(t, uint8(200), rig.buzzer.Level())

	// Up snoozes: buzzer off, alarm pushed ten minutes, still armed.
	rig.keypad.Push(device.ButtonUp)
	rig.cycle()

	require.Equal(t, fsm.ShowTimeAlarmOn, rig.c.machine.State())
	require.Equal(t, uint8(0), rig.buzzer.Level())
	require.Equal(t, domain.AlarmTime{Hour: 5, Minute: 25}, rig.c.machine.Alarm())
	require.True(t, rig.c.machine.Armed())
}

// TestDismissSilencesAndDisarms verifies Select in BuzzerOn ends the alarm.
func TestDismissSilencesAndDisarms(t *testing.T) {
	t.Parallel()

	rig := newTestRig(t)

	// Arm with the alarm left at the boot value and move the clock there.
	rig.keypad.Push(device.ButtonRight)
	rig.cycle()

	require.NoError(t, rig.rtc.Set(domain.Timestamp{
		Year: 2026, Month: time.August, Day: 24, Weekday: time.Monday,
		Hour: 0, Minute: 0, Second: 3,
	}))
	rig.cycle()
	require.Equal(t, fsm.BuzzerOn, rig.c.machine.State())

	rig.keypad.Push(device.ButtonSelect)
	rig.cycle()

	require.Equal(t, fsm.ShowTime, rig.c.machine.State())
	require.False(t, rig.c.machine.Armed())
	require.Equal(t, uint8(0), rig.buzzer.Level())
}

// TestSetterTimesOutWithoutInput checks the inactivity exit of the hour
// setter lands on the armed-dependent default.
func TestSetterTimesOutWithoutInput(t *testing.T) {
	t.Parallel()

	rig := newTestRig(t)

	rig.keypad.Push(device.ButtonSelect)
	rig.cycle()
	require.Equal(t, fsm.SetAlarmHour, rig.c.machine.State())

	// No input: the 30ms window elapses inside the next cycle.
	rig.cycle()

	require.Equal(t, fsm.ShowTime, rig.c.machine.State())
	require.False(t, rig.c.machine.Armed())
}

// TestViewAlarmTimeThenTimeout checks Left shows the alarm screen and the
// presentation hold returns to the display state within the next cycle.
func TestViewAlarmTimeThenTimeout(t *testing.T) {
	t.Parallel()

	rig := newTestRig(t)

	rig.keypad.Push(device.ButtonLeft)
	rig.cycle()
	require.Equal(t, fsm.ShowAlarmTime, rig.c.machine.State())

	rig.cycle()
	require.Equal(t, fsm.ShowTime, rig.c.machine.State())
}

// TestRTCFailureKeepsLastSnapshot ensures a failing RTC leaves the
// previous reading on screen and the loop keeps running.
func TestRTCFailureKeepsLastSnapshot(t *testing.T) {
	t.Parallel()

	rig := newTestRig(t)
	rig.cycle()
	require.Equal(t, "05:14:50", rig.display.Line(1))

	rig.rtc.Err = errRTCBroken
	rig.cycle()

	require.Equal(t, "05:14:50", rig.display.Line(1))
	require.Equal(t, "Mon 24 Aug 2026", rig.display.Line(0))
}

// TestPlaceholderBeforeFirstRead verifies the placeholder screen when the
// RTC has never answered.
func TestPlaceholderBeforeFirstRead(t *testing.T) {
	t.Parallel()

	rig := newTestRig(t)
	rig.rtc.Err = errRTCBroken

	rig.cycle()

	require.Equal(t, "RTC unavailable", rig.display.Line(0))
	require.Equal(t, "--:--:--", rig.display.Line(1))
}
