package quiz

import (
	"fmt"
	"time"
)

// TimerToken identifies one arming of a Timer. Host-scheduled expiry
// callbacks carry the token they were scheduled for.
type TimerToken uint64

// Timer is a cancelable whole-second countdown that fires its callback at
// most once per arming.
type Timer struct {
	clock    Clock
	token    TimerToken
	deadline time.Time
	armed    bool
	fired    bool
	onExpire func()
}

// NewTimer returns a disarmed timer reading time from clock.
func NewTimer(clock Clock) *Timer {
	if clock == nil {
		clock = SystemClock()
	}
	return &Timer{clock: clock}
}

// Start arms the countdown, replacing any previous arming. A non-positive
// duration fires onExpire before Start returns.
func (t *Timer) Start(seconds int, onExpire func()) TimerToken {
	t.token++
	t.onExpire = onExpire
	t.fired = false
	t.armed = true
	if seconds < 0 {
		seconds = 0
	}
	t.deadline = t.clock.Now().Add(time.Duration(seconds) * time.Second)
	if seconds == 0 {
		t.fire()
	}
	return t.token
}

// Stop disarms the timer. Callbacks scheduled for earlier tokens become no-ops.
func (t *Timer) Stop() {
	if t == nil {
		return
	}
	t.token++
	t.armed = false
	t.onExpire = nil
}

// Armed reports whether the countdown is running and has not fired.
func (t *Timer) Armed() bool {
	return t != nil && t.armed && !t.fired
}

// Fired reports whether the current arming has expired.
func (t *Timer) Fired() bool {
	return t != nil && t.fired
}

// Token returns the token of the current arming.
func (t *Timer) Token() TimerToken {
	if t == nil {
		return 0
	}
	return t.token
}

// Remaining returns whole seconds left, rounded up, never below zero. A
// disarmed timer reports 0.
func (t *Timer) Remaining() int {
	if !t.Armed() {
		return 0
	}
	left := t.deadline.Sub(t.clock.Now())
	if left <= 0 {
		return 0
	}
	seconds := int(left / time.Second)
	if left%time.Second != 0 {
		seconds++
	}
	return seconds
}

// Until returns the wall-clock duration until the deadline.
func (t *Timer) Until() time.Duration {
	if !t.Armed() {
		return 0
	}
	left := t.deadline.Sub(t.clock.Now())
	if left < 0 {
		return 0
	}
	return left
}

// Display renders the remaining time as MM:SS.
func (t *Timer) Display() string {
	return FormatCountdown(t.Remaining())
}

// Poll fires the timer if its deadline has passed. It reports whether the
// callback ran.
func (t *Timer) Poll() bool {
	if !t.Armed() {
		return false
	}
	if t.clock.Now().Before(t.deadline) {
		return false
	}
	t.fire()
	return true
}

// Expire fires the timer for a host-scheduled callback. Stale tokens and
// repeated expiries are ignored.
func (t *Timer) Expire(token TimerToken) bool {
	if !t.Armed() || token != t.token {
		return false
	}
	t.fire()
	return true
}

func (t *Timer) fire() {
	t.fired = true
	t.armed = false
	callback := t.onExpire
	t.onExpire = nil
	if callback != nil {
		callback()
	}
}

// FormatCountdown renders seconds as zero-padded MM:SS.
func FormatCountdown(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
