// internal/config/validate.go
package config

import (
	"fmt"

	"github.com/tamzrod/wakecell/internal/reset"
)

// DefaultSlots is used when retention.slots is omitted.
const DefaultSlots = 16

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
// Empty enum fields are accepted here and defaulted by Normalize.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil config")
	}

	// ------------------------------------------------------------
	// DEVICE
	// ------------------------------------------------------------

	if cfg.Device.LoopIntervalMs < 0 {
		return fmt.Errorf("device: loop_interval_ms must be >= 0")
	}
	for i := 0; i < len(cfg.Device.Name); i++ {
		if cfg.Device.Name[i] > 0x7F {
			return fmt.Errorf("device: name must contain ASCII characters only")
		}
	}

	// ------------------------------------------------------------
	// CLOCK
	// ------------------------------------------------------------

	switch cfg.Clock.Source {
	case "", "system", "manual":
	default:
		return fmt.Errorf("clock: unknown source %q", cfg.Clock.Source)
	}

	// ------------------------------------------------------------
	// RESET REASON
	// ------------------------------------------------------------

	switch cfg.Reset.Source {
	case "", "marker":
		// marker path defaulted by Normalize
	case "static":
		if cfg.Reset.Reason == "" {
			return fmt.Errorf("reset: static source requires reason")
		}
		if _, err := reset.ParseReason(cfg.Reset.Reason); err != nil {
			return err
		}
	default:
		return fmt.Errorf("reset: unknown source %q", cfg.Reset.Source)
	}

	// ------------------------------------------------------------
	// RETENTION BACKEND
	// ------------------------------------------------------------

	if cfg.Retention.Slots < 0 {
		return fmt.Errorf("retention: slots must be >= 0")
	}
	slots := cfg.Retention.Slots
	if slots == 0 {
		slots = DefaultSlots
	}

	switch cfg.Retention.Backend {
	case "", "ram", "file":
	case "modbus":
		m := cfg.Retention.Modbus
		if m == nil || m.Endpoint == "" {
			return fmt.Errorf("retention: modbus backend requires modbus.endpoint")
		}
		if int(m.BaseAddress)+slots*2 > 0x10000 {
			return fmt.Errorf(
				"retention: modbus block base=%d slots=%d exceeds register space",
				m.BaseAddress,
				slots,
			)
		}
	default:
		return fmt.Errorf("retention: unknown backend %q", cfg.Retention.Backend)
	}

	// ------------------------------------------------------------
	// LOG SINK
	// ------------------------------------------------------------

	switch cfg.Log.Sink {
	case "", "stdout", "slog":
	case "serial":
		if cfg.Log.Serial == nil || cfg.Log.Serial.Address == "" {
			return fmt.Errorf("log: serial sink requires serial.address")
		}
	default:
		return fmt.Errorf("log: unknown sink %q", cfg.Log.Sink)
	}

	// ------------------------------------------------------------
	// CELL SLOT OWNERSHIP
	// ------------------------------------------------------------

	// key = slot
	slotOwner := make(map[uint16]string)
	names := make(map[string]struct{})

	for _, c := range cfg.Cells {
		if c.Name == "" {
			return fmt.Errorf("cell at slot %d: name required", c.Slot)
		}
		if _, dup := names[c.Name]; dup {
			return fmt.Errorf("cell %q: duplicate name", c.Name)
		}
		names[c.Name] = struct{}{}

		if int(c.Slot) >= slots {
			return fmt.Errorf(
				"cell %q: slot %d out of range (retention slots=%d)",
				c.Name,
				c.Slot,
				slots,
			)
		}

		if prev, exists := slotOwner[c.Slot]; exists {
			return fmt.Errorf(
				"slot collision: slot=%d used by cells %q and %q",
				c.Slot,
				prev,
				c.Name,
			)
		}
		slotOwner[c.Slot] = c.Name
	}

	return nil
}
