package clock

import (
	"context"
	"time"

	"github.com/retrotone/lcd-alarm-clock/internal/device"
	"github.com/retrotone/lcd-alarm-clock/internal/fsm"
	"github.com/retrotone/lcd-alarm-clock/internal/timer"
)

// setterKind selects which alarm field a setter run captures.
type setterKind uint8

const (
	setterHour setterKind = iota
	setterMinute
)

// runSetter is the bounded interactive loop behind SetAlarmHour and
// SetAlarmMinutes. It polls the keypad at the configured cadence, adjusts
// the staged value on UP/DOWN, and leaves through exactly one of two
// triggers: ButtonSelect when accepted, TimeOut after the inactivity
// window elapses. The loop blocks the cycle for its whole run; nothing
// else executes meanwhile.
func (c *controller) runSetter(ctx context.Context, kind setterKind) {
	c.renderSetter(ctx, kind)

	window := timer.New(c.cfg.SetterTimeout)
	window.Reset(time.Now())

	for ctx.Err() == nil {
		switch c.poll(ctx) {
		case device.ButtonUp:
			c.adjustStaged(kind, +1)
			c.renderSetter(ctx, kind)
			window.Reset(time.Now())

		case device.ButtonDown:
			c.adjustStaged(kind, -1)
			c.renderSetter(ctx, kind)
			window.Reset(time.Now())

		case device.ButtonSelect:
			c.debounce(ctx, device.ButtonSelect)
			c.apply(ctx, fsm.ButtonSelect)

			return
		}

		if window.Expired(time.Now()) {
			c.apply(ctx, fsm.TimeOut)

			return
		}

		c.sleep(ctx, c.cfg.PollInterval)
	}
}

// adjustStaged steps the staged value in the field's native increment:
// hours move by one, minutes by five.
func (c *controller) adjustStaged(kind setterKind, direction int) {
	if kind == setterHour {
		c.machine.AdjustStagedHour(direction)

		return
	}

	c.machine.AdjustStagedMinute(direction * 5)
}
