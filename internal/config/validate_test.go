// internal/config/validate_test.go
package config

import "testing"

// helper to build a config quickly
func withCells(slots int, cells ...CellConfig) *Config {
	return &Config{
		Retention: RetentionConfig{
			Backend: "ram",
			Slots:   slots,
		},
		Cells: cells,
	}
}

func cellAt(name string, slot uint16) CellConfig {
	return CellConfig{Name: name, Slot: slot}
}

// ---- tests ----

func TestValidate_DistinctSlots(t *testing.T) {
	cfg := withCells(4,
		cellAt("boot_count", 0),
		cellAt("last_uptime_s", 1),
	)

	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_SlotCollisionDetected(t *testing.T) {
	cfg := withCells(4,
		cellAt("boot_count", 3),
		cellAt("last_uptime_s", 3),
	)

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected slot collision error, got nil")
	}
}

func TestValidate_DuplicateNameDetected(t *testing.T) {
	cfg := withCells(4,
		cellAt("boot_count", 0),
		cellAt("boot_count", 1),
	)

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected duplicate name error, got nil")
	}
}

func TestValidate_SlotOutOfRange(t *testing.T) {
	cfg := withCells(2, cellAt("boot_count", 2))

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected out of range error, got nil")
	}
}

func TestValidate_DefaultSlotsApplyToRange(t *testing.T) {
	cfg := withCells(0, cellAt("boot_count", DefaultSlots-1))
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg = withCells(0, cellAt("boot_count", DefaultSlots))
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected out of range error with default slots")
	}
}

func TestValidate_ModbusRequiresEndpoint(t *testing.T) {
	cfg := withCells(4)
	cfg.Retention.Backend = "modbus"

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected modbus endpoint error, got nil")
	}

	cfg.Retention.Modbus = &ModbusRetention{Endpoint: "127.0.0.1:502"}
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_ModbusBlockOverflow(t *testing.T) {
	cfg := withCells(16)
	cfg.Retention.Backend = "modbus"
	cfg.Retention.Modbus = &ModbusRetention{Endpoint: "x:502", BaseAddress: 0xFFF0}

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected register space error, got nil")
	}
}

func TestValidate_StaticResetReason(t *testing.T) {
	cfg := withCells(4)
	cfg.Reset = ResetConfig{Source: "static"}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected missing reason error")
	}

	cfg.Reset.Reason = "brownout"
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected unknown reason error")
	}

	cfg.Reset.Reason = "low_power_wake"
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_UnknownEnums(t *testing.T) {
	cases := []func(*Config){
		func(c *Config) { c.Clock.Source = "rtc" },
		func(c *Config) { c.Reset.Source = "register" },
		func(c *Config) { c.Retention.Backend = "eeprom" },
		func(c *Config) { c.Log.Sink = "syslog" },
		func(c *Config) { c.Log.Sink = "serial" },
	}

	for i, mutate := range cases {
		cfg := withCells(4)
		mutate(cfg)
		if err := Validate(cfg); err == nil {
			t.Fatalf("case %d: expected error, got nil", i)
		}
	}
}

func TestValidate_NonASCIIName(t *testing.T) {
	cfg := withCells(4)
	cfg.Device.Name = "sensör"

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected ASCII error, got nil")
	}
}

func TestNormalize_Defaults(t *testing.T) {
	cfg := &Config{Device: DeviceConfig{Name: "a-very-long-device-name"}}

	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	Normalize(cfg)

	if cfg.Device.Name != "a-very-long-devi" {
		t.Fatalf("name not truncated: %q", cfg.Device.Name)
	}
	if cfg.Device.LoopIntervalMs != DefaultLoopIntervalMs {
		t.Fatalf("loop interval = %d", cfg.Device.LoopIntervalMs)
	}
	if cfg.Clock.Source != "system" || cfg.Reset.Source != "marker" ||
		cfg.Retention.Backend != "ram" || cfg.Log.Sink != "stdout" {
		t.Fatalf("enum defaults not applied: %+v", cfg)
	}
	if cfg.Reset.MarkerPath == "" {
		t.Fatalf("marker path not defaulted")
	}
	if cfg.Retention.Slots != DefaultSlots {
		t.Fatalf("slots = %d", cfg.Retention.Slots)
	}
}
