// internal/reset/reason.go
package reset

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Reason is why the device most recently started executing.
type Reason uint8

const (
	Unknown Reason = iota
	PowerOn
	ExternalReset
	WatchdogReset
	LowPowerWake
)

func (r Reason) String() string {
	switch r {
	case PowerOn:
		return "power_on"
	case ExternalReset:
		return "external_reset"
	case WatchdogReset:
		return "watchdog_reset"
	case LowPowerWake:
		return "low_power_wake"
	default:
		return "unknown"
	}
}

// ParseReason maps the config/marker spelling back to a Reason.
func ParseReason(s string) (Reason, error) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "power_on":
		return PowerOn, nil
	case "external_reset":
		return ExternalReset, nil
	case "watchdog_reset":
		return WatchdogReset, nil
	case "low_power_wake":
		return LowPowerWake, nil
	case "unknown":
		return Unknown, nil
	}
	return Unknown, fmt.Errorf("reset: unknown reason %q", s)
}

// Oracle reports the last reset reason.
type Oracle interface {
	LastResetReason() Reason
}

// Static always reports the same reason.
type Static Reason

func (s Static) LastResetReason() Reason { return Reason(s) }

// ---- host emulation ----

// MarkerFile emulates the reset-cause register on a host.
// Before sleeping the runner arms the marker; the next boot reads it
// once and clears it. No marker means a cold start (PowerOn).
// A marker that cannot be cleared reports Unknown, so a stale wake marker
// never makes later cold boots look like wakes.
type MarkerFile struct {
	path   string
	remove func(name string) error
	reason Reason
	loaded bool
}

// NewMarkerFile returns an oracle backed by the file at path.
func NewMarkerFile(path string) *MarkerFile {
	return &MarkerFile{path: path, remove: os.Remove}
}

// LastResetReason latches the marker on the first call of this boot.
func (m *MarkerFile) LastResetReason() Reason {
	if !m.loaded {
		m.reason = m.consume()
		m.loaded = true
	}
	return m.reason
}

// Arm records the reason the next boot will report.
func (m *MarkerFile) Arm(r Reason) error {
	if err := os.WriteFile(m.path, []byte(r.String()+"\n"), 0o644); err != nil {
		return fmt.Errorf("reset: write marker: %w", err)
	}
	return nil
}

func (m *MarkerFile) consume() Reason {
	data, err := os.ReadFile(m.path)
	if errors.Is(err, os.ErrNotExist) {
		return PowerOn
	}
	if err != nil {
		return Unknown
	}
	if err := m.remove(m.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Unknown
	}

	r, err := ParseReason(string(data))
	if err != nil {
		return Unknown
	}
	return r
}
