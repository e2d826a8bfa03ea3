// internal/timer/timer.go
package timer

import (
	"fmt"
	"time"

	"github.com/tamzrod/wakecell/internal/clock"
)

// WrapPeriod is the period of the 32-bit millisecond tick counter
// (2^32 ms, about 49.7 days). Elapsed is exact for any interval shorter
// than one WrapPeriod.
const WrapPeriod = time.Duration(1<<32) * time.Millisecond

// Inactive returns a disarmed placeholder timer.
// Each call yields a fresh value, so no caller can arm a shared instance.
func Inactive() Timer {
	return Timer{}
}

// Timer is a polled software timer.
// States: inactive (seconds == 0) or armed(seconds, armedAt).
// It never disarms itself; callers re-arm.
type Timer struct {
	clk     clock.Clock
	armedAt uint32
	seconds uint32
}

// New arms a timer against c. seconds == 0 yields an inactive timer.
func New(c clock.Clock, seconds uint32) Timer {
	t := Timer{clk: c}
	t.Arm(seconds)
	return t
}

// Arm records the current tick and sets the run length.
// Arm(0) disarms. A timer without a clock (zero value, never bound)
// ignores Arm and stays inactive; use New or Bind first.
func (t *Timer) Arm(seconds uint32) {
	if t.clk == nil {
		t.seconds = 0
		return
	}
	t.seconds = seconds
	t.armedAt = t.clk.NowMillis()
}

// Bind attaches a clock to a zero-value timer.
// Bind(nil) detaches the clock and disarms the timer.
func (t *Timer) Bind(c clock.Clock) {
	t.clk = c
	if c == nil {
		t.seconds = 0
	}
}

func (t Timer) IsActive() bool {
	return t.seconds != 0
}

// IsExpired reports whether the armed duration has elapsed.
// Pure query: an expired timer stays expired until re-armed.
func (t Timer) IsExpired() bool {
	if !t.IsActive() {
		return false
	}
	return uint64(Elapsed(t.armedAt, t.clk.NowMillis())) >= t.limitMillis()
}

// Remaining returns the time left before expiry, zero when inactive or expired.
func (t Timer) Remaining() time.Duration {
	if !t.IsActive() {
		return 0
	}
	el := uint64(Elapsed(t.armedAt, t.clk.NowMillis()))
	lim := t.limitMillis()
	if el >= lim {
		return 0
	}
	return time.Duration(lim-el) * time.Millisecond
}

// Duration returns the configured run length.
func (t Timer) Duration() time.Duration {
	return time.Duration(t.seconds) * time.Second
}

func (t Timer) String() string {
	if !t.IsActive() {
		return "timer(inactive)"
	}
	return fmt.Sprintf("timer(%ds armed_at=%d)", t.seconds, t.armedAt)
}

// 64-bit so durations above ~49 days do not overflow the product.
func (t Timer) limitMillis() uint64 {
	return uint64(t.seconds) * 1000
}

// Elapsed returns now - start in modulo 2^32 arithmetic.
// The unsigned subtraction stays correct across one counter wrap.
func Elapsed(start, now uint32) uint32 {
	return now - start
}
