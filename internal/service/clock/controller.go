package clock

import (
	"context"
	"time"

	"github.com/retrotone/lcd-alarm-clock/internal/config"
	"github.com/retrotone/lcd-alarm-clock/internal/device"
	domain "github.com/retrotone/lcd-alarm-clock/internal/domain/clock"
	"github.com/retrotone/lcd-alarm-clock/internal/fsm"
	"github.com/retrotone/lcd-alarm-clock/internal/logger"
)

const (
	// debounceBound caps how long a release wait may block the loop.
	debounceBound = 2 * time.Second
	// debounceSample is the cadence of release sampling.
	debounceSample = 20 * time.Millisecond
)

// devices bundles the four peripheral adapters the controller drives.
type devices struct {
	rtc     device.RTC
	display device.Display
	keypad  device.Keypad
	buzzer  device.Buzzer
}

// controller owns the state machine and runs the ~1 Hz control loop.
// Everything it touches is touched by this single loop only, so there is
// no locking anywhere.
type controller struct {
	cfg     *config.Config
	devs    devices
	machine *fsm.Machine
	// snapshot is the last good RTC reading. On a read failure the
	// previous snapshot stays on screen and the next cycle retries.
	snapshot domain.Timestamp
}

// buzzerEffects adapts the buzzer device to the machine's Effects sink.
type buzzerEffects struct {
	ctx    context.Context
	buzzer device.Buzzer
	level  uint8
}

// BuzzerOn starts the alarm tone at the configured intensity.
func (e *buzzerEffects) BuzzerOn() {
	if err := e.buzzer.SetIntensity(e.level); err != nil {
		logger.ErrorKV(e.ctx, "Buzzer on failed", "error", err)
	}
}

// BuzzerOff silences the alarm tone.
func (e *buzzerEffects) BuzzerOff() {
	if err := e.buzzer.SetIntensity(0); err != nil {
		logger.ErrorKV(e.ctx, "Buzzer off failed", "error", err)
	}
}

// newController wires the machine to the devices. The context is kept by
// the effects sink for logging only.
func newController(ctx context.Context, cfg *config.Config, devs devices) *controller {
	effects := &buzzerEffects{
		ctx:    ctx,
		buzzer: devs.buzzer,
		level:  cfg.BuzzerIntensity,
	}

	return &controller{
		cfg:     cfg,
		devs:    devs,
		machine: fsm.New(cfg.SnoozeMinutes, effects),
	}
}

// Run executes control cycles until the context is canceled.
func (c *controller) Run(ctx context.Context) error {
	logger.InfoKV(ctx, "Controller started",
		"cycle_period", c.cfg.CyclePeriod.String(),
		"snooze_minutes", c.cfg.SnoozeMinutes,
	)

	defer c.quiesce(ctx)

	for ctx.Err() == nil {
		c.runCycle(ctx, time.Now().Add(c.cfg.CyclePeriod))
	}

	logger.Info(ctx, "Controller stopped")

	return nil
}

// runCycle performs one control cycle: the current state's action, then a
// bounded wait for keypad input that fills the rest of the cycle.
func (c *controller) runCycle(ctx context.Context, deadline time.Time) {
	metricCycles.Inc()

	c.dispatchAction(ctx)

	if time.Now().After(deadline) {
		metricMissedDeadlines.Inc()
	}

	button := c.waitForButton(ctx, deadline)
	if button == device.ButtonNone {
		return
	}

	trigger, ok := buttonTrigger(button)
	if !ok {
		return
	}

	c.apply(ctx, trigger)
}

// dispatchAction runs the active state's action. An action that causes a
// transition earns exactly one immediate re-dispatch, which is how the
// hour setter hands off to the minute setter within the same cycle.
func (c *controller) dispatchAction(ctx context.Context) {
	for hop := 0; hop < 2; hop++ {
		before := c.machine.State()

		c.stateAction(ctx)

		if c.machine.State() == before {
			return
		}
	}
}

// stateAction executes the per-cycle behavior of the active state.
func (c *controller) stateAction(ctx context.Context) {
	switch c.machine.State() {
	case fsm.ShowTime, fsm.ShowTimeAlarmOn, fsm.BuzzerOn:
		c.refreshSnapshot(ctx)
		c.renderClock(ctx)

		// The alarm-match check always fires before any button-originated
		// transition in the same cycle.
		if c.machine.State() == fsm.ShowTimeAlarmOn && c.machine.Alarm().Matches(c.snapshot) {
			c.apply(ctx, fsm.AlarmTimeMet)
		}

	case fsm.ShowAlarmTime:
		c.renderAlarm(ctx)
		// Fixed presentation hold; buttons are not sampled during it.
		c.sleep(ctx, c.cfg.AlarmViewHold)
		c.apply(ctx, fsm.TimeOut)

	case fsm.SetAlarmHour:
		c.runSetter(ctx, setterHour)

	case fsm.SetAlarmMinutes:
		c.runSetter(ctx, setterMinute)
	}
}

// apply feeds one trigger to the machine and records the transition.
func (c *controller) apply(ctx context.Context, trigger fsm.Trigger) {
	before := c.machine.State()
	after := c.machine.Apply(trigger)

	if after == before {
		return
	}

	metricTransitions.WithLabelValues(trigger.String()).Inc()
	logger.DebugKV(ctx, "Transition",
		"from", before.String(),
		"trigger", trigger.String(),
		"to", after.String(),
	)
}

// refreshSnapshot reads the RTC, keeping the previous snapshot on failure.
func (c *controller) refreshSnapshot(ctx context.Context) {
	ts, err := c.devs.rtc.Read()
	if err != nil {
		metricRTCReadFailures.Inc()
		logger.WarnKV(ctx, "RTC read failed, keeping last snapshot", "error", err)

		return
	}

	c.snapshot = ts
}

// waitForButton polls the keypad until a press or the cycle deadline.
// A detected press is debounced before it is returned.
func (c *controller) waitForButton(ctx context.Context, deadline time.Time) device.Button {
	for time.Now().Before(deadline) {
		if ctx.Err() != nil {
			return device.ButtonNone
		}

		button := c.poll(ctx)
		if button != device.ButtonNone {
			c.debounce(ctx, button)

			return button
		}

		c.sleep(ctx, c.cfg.PollInterval)
	}

	return device.ButtonNone
}

// poll samples the keypad once, treating errors as "nothing pressed".
func (c *controller) poll(ctx context.Context) device.Button {
	button, err := c.devs.keypad.Poll()
	if err != nil {
		logger.WarnKV(ctx, "Keypad poll failed", "error", err)

		return device.ButtonNone
	}

	return button
}

// debounce waits for the pressed button to be released, bounded so a
// stuck button cannot stall the loop forever.
func (c *controller) debounce(ctx context.Context, pressed device.Button) {
	deadline := time.Now().Add(debounceBound)

	for time.Now().Before(deadline) {
		if ctx.Err() != nil {
			return
		}

		if c.poll(ctx) != pressed {
			return
		}

		c.sleep(ctx, debounceSample)
	}
}

// sleep blocks for the duration or until the context is canceled.
func (c *controller) sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// quiesce silences the buzzer and blanks the display on shutdown.
func (c *controller) quiesce(ctx context.Context) {
	if err := c.devs.buzzer.SetIntensity(0); err != nil {
		logger.ErrorKV(ctx, "Silence buzzer on shutdown failed", "error", err)
	}

	if err := c.devs.display.Clear(); err != nil {
		logger.ErrorKV(ctx, "Blank display on shutdown failed", "error", err)
	}
}

// buttonTrigger maps a keypad button to its trigger. The second return
// value is false for samples that carry no trigger.
func buttonTrigger(b device.Button) (fsm.Trigger, bool) {
	switch b {
	case device.ButtonUp:
		return fsm.ButtonUp, true
	case device.ButtonDown:
		return fsm.ButtonDown, true
	case device.ButtonLeft:
		return fsm.ButtonLeft, true
	case device.ButtonRight:
		return fsm.ButtonRight, true
	case device.ButtonSelect:
		return fsm.ButtonSelect, true
	default:
		return 0, false
	}
}
