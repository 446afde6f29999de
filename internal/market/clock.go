package market

import "time"

// SessionEvent is a market session transition.
type SessionEvent string

const (
	SessionOpened SessionEvent = "opened"
	SessionClosed SessionEvent = "closed"
)

// Clock is the two-state open/close machine gating trading and price
// ticks. Hours are UTC; the market is open while the wall-clock hour is
// in [openHour, closeHour).
type Clock struct {
	openHour  int
	closeHour int
	open      bool
}

// NewClock creates a clock for the given trading window.
func NewClock(openHour, closeHour int) *Clock {
	return &Clock{openHour: openHour, closeHour: closeHour}
}

// Open reports whether the market is currently open.
func (c *Clock) Open() bool { return c.open }

// Evaluate moves the clock to the state matching now and reports the
// transition, if any. Re-evaluating while already in the target state is
// a no-op, so polling cannot double-fire a transition.
func (c *Clock) Evaluate(now time.Time) (SessionEvent, bool) {
	h := now.UTC().Hour()
	inWindow := h >= c.openHour && h < c.closeHour

	if inWindow == c.open {
		return "", false
	}

	c.open = inWindow
	if inWindow {
		return SessionOpened, true
	}
	return SessionClosed, true
}

// setOpen forces the clock state, used when restoring a persisted
// snapshot.
func (c *Clock) setOpen(open bool) { c.open = open }
