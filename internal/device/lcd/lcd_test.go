package lcd

import (
	"testing"

	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

// newTestDev builds a display on fake pins.
func newTestDev(t *testing.T) *Dev {
	t.Helper()

	pins := make([]gpio.PinOut, 6)
	for i := range pins {
		pins[i] = &gpiotest.Pin{N: "pin"}
	}

	d, err := New(pins[0], pins[1], pins[2], pins[3], pins[4], pins[5])
	require.NoError(t, err)

	return d
}

// TestSetCursorRange verifies geometry validation against the 16x2 panel.
func TestSetCursorRange(t *testing.T) {
	t.Parallel()

	d := newTestDev(t)

	require.NoError(t, d.SetCursor(0, 0))
	require.NoError(t, d.SetCursor(15, 1))

	require.ErrorIs(t, d.SetCursor(16, 0), ErrCursorOutOfRange)
	require.ErrorIs(t, d.SetCursor(0, 2), ErrCursorOutOfRange)
	require.ErrorIs(t, d.SetCursor(-1, 0), ErrCursorOutOfRange)
}

// TestPrintAndClear exercises the data path on fake pins.
func TestPrintAndClear(t *testing.T) {
	t.Parallel()

	d := newTestDev(t)

	require.NoError(t, d.Print("07:41:09"))
	require.NoError(t, d.Clear())
}
