package clock

import (
	"context"
	"fmt"

	"github.com/retrotone/lcd-alarm-clock/internal/logger"
)

// render writes both lines of the display, best effort. Failures are
// logged and forgotten; the next cycle redraws anyway. The rendered lines
// also go to the debug log, which is what makes --simulate observable.
func (c *controller) render(ctx context.Context, line1, line2 string) {
	logger.DebugKV(ctx, "Render", "line1", line1, "line2", line2)

	d := c.devs.display

	if err := d.Clear(); err != nil {
		logger.WarnKV(ctx, "Display clear failed", "error", err)

		return
	}

	for row, text := range []string{line1, line2} {
		if err := d.SetCursor(0, row); err != nil {
			logger.WarnKV(ctx, "Display cursor failed", "error", err)

			return
		}

		if err := d.Print(text); err != nil {
			logger.WarnKV(ctx, "Display print failed", "error", err)

			return
		}
	}
}

// renderClock draws the date and time lines, with the alarm indicator
// appended while armed. Before the first successful RTC read a
// placeholder is shown instead of a bogus date.
func (c *controller) renderClock(ctx context.Context) {
	if c.snapshot.IsZero() {
		c.render(ctx, "RTC unavailable", "--:--:--")

		return
	}

	line2 := c.snapshot.TimeString()
	if c.machine.Armed() {
		line2 += " *"
	}

	c.render(ctx, c.snapshot.DateString(), line2)
}

// renderAlarm draws the static programmed alarm time.
func (c *controller) renderAlarm(ctx context.Context) {
	c.render(ctx, "Alarm time", c.machine.Alarm().String())
}

// renderSetter draws the setter prompt and the staged value.
func (c *controller) renderSetter(ctx context.Context, kind setterKind) {
	if kind == setterHour {
		c.render(ctx, "Set alarm hour", fmt.Sprintf("%02d", c.machine.Staged().Hour))

		return
	}

	c.render(ctx, "Set alarm mins", fmt.Sprintf("%02d", c.machine.Staged().Minute))
}
