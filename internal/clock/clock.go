// internal/clock/clock.go
package clock

import (
	"sync/atomic"
	"time"
)

// Clock exposes the free-running millisecond tick counter.
// The counter wraps modulo 2^32 (see timer.WrapPeriod).
type Clock interface {
	NowMillis() uint32
}

// System ticks from the moment it was created, like millis() since boot.
type System struct {
	boot time.Time
}

// NewSystem starts a system clock at tick 0.
func NewSystem() *System {
	return &System{boot: time.Now()}
}

// NowMillis truncates the elapsed milliseconds to 32 bits.
// Truncation is the hardware wrap.
func (s *System) NowMillis() uint32 {
	return uint32(time.Since(s.boot).Milliseconds())
}

// Manual is a hand-driven clock for tests and simulation.
// Safe to advance from one goroutine while another reads.
type Manual struct {
	now atomic.Uint32
}

// NewManual returns a manual clock at the given tick.
func NewManual(start uint32) *Manual {
	m := &Manual{}
	m.now.Store(start)
	return m
}

func (m *Manual) NowMillis() uint32 { return m.now.Load() }

// Set jumps to an absolute tick.
func (m *Manual) Set(tick uint32) { m.now.Store(tick) }

// Advance moves the clock forward, wrapping like the hardware counter.
func (m *Manual) Advance(ms uint32) { m.now.Add(ms) }
