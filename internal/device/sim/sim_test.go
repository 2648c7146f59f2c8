package sim

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/retrotone/lcd-alarm-clock/internal/device"
	"github.com/retrotone/lcd-alarm-clock/internal/domain/clock"
)

var errBroken = errors.New("broken peripheral")

// TestRTCModes covers host-clock mode, pinned mode, and injected errors.
func TestRTCModes(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2026, time.August, 24, 7, 41, 9, 0, time.UTC)
	r := &RTC{Now: func() time.Time { return fixed }}

	ts, err := r.Read()
	require.NoError(t, err)
	require.Equal(t, clock.FromTime(fixed), ts)

	// Set pins the clock and disables host mode.
	pinned := clock.Timestamp{Year: 2030, Month: time.January, Day: 1}
	require.NoError(t, r.Set(pinned))

	ts, err = r.Read()
	require.NoError(t, err)
	require.Equal(t, pinned, ts)

	r.Err = errBroken

	_, err = r.Read()
	require.ErrorIs(t, err, errBroken)
}

// TestDisplayBuffer verifies cursor addressing and row-edge truncation.
func TestDisplayBuffer(t *testing.T) {
	t.Parallel()

	d := new(Display)
	require.NoError(t, d.Clear())

	require.NoError(t, d.SetCursor(0, 0))
	require.NoError(t, d.Print("Mon 24 Aug 2026"))
	require.NoError(t, d.SetCursor(0, 1))
	require.NoError(t, d.Print("07:41:09 this runs past the edge"))

	require.Equal(t, "Mon 24 Aug 2026", d.Line(0))
	require.Equal(t, "07:41:09 this ru", d.Line(1))
}

// TestKeypadScript checks that each press is followed by a release sample.
func TestKeypadScript(t *testing.T) {
	t.Parallel()

	k := new(Keypad)
	k.Push(device.ButtonUp, device.ButtonSelect)

	samples := make([]device.Button, 0, 5)
	for i := 0; i < 5; i++ {
		b, err := k.Poll()
		require.NoError(t, err)
		samples = append(samples, b)
	}

	require.Equal(t, []device.Button{
		device.ButtonUp, device.ButtonNone,
		device.ButtonSelect, device.ButtonNone,
		device.ButtonNone,
	}, samples)
}

// TestBuzzerRecords verifies intensity history tracking.
func TestBuzzerRecords(t *testing.T) {
	t.Parallel()

	b := new(Buzzer)
	require.NoError(t, b.SetIntensity(128))
	require.NoError(t, b.SetIntensity(0))

	require.Equal(t, uint8(0), b.Level())
	require.Equal(t, []uint8{128, 0}, b.History())
}
