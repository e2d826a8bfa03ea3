// internal/config/normalize.go
package config

import (
	"os"
	"path/filepath"
)

// Defaults applied by Normalize.
const (
	DefaultLoopIntervalMs = 100
	DefaultDeviceName     = "wakecell"
	DeviceNameMaxChars    = 16
	DefaultModbusTimeout  = 1000
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	// ---- device ----

	if cfg.Device.Name == "" {
		cfg.Device.Name = DefaultDeviceName
	}
	if len(cfg.Device.Name) > DeviceNameMaxChars {
		cfg.Device.Name = cfg.Device.Name[:DeviceNameMaxChars]
	}
	if cfg.Device.LoopIntervalMs == 0 {
		cfg.Device.LoopIntervalMs = DefaultLoopIntervalMs
	}

	// ---- enums ----

	if cfg.Clock.Source == "" {
		cfg.Clock.Source = "system"
	}
	if cfg.Reset.Source == "" {
		cfg.Reset.Source = "marker"
	}
	if cfg.Retention.Backend == "" {
		cfg.Retention.Backend = "ram"
	}
	if cfg.Log.Sink == "" {
		cfg.Log.Sink = "stdout"
	}

	// ---- paths ----

	if cfg.Reset.Source == "marker" && cfg.Reset.MarkerPath == "" {
		cfg.Reset.MarkerPath = filepath.Join(os.TempDir(), cfg.Device.Name+".reset")
	}
	if cfg.Retention.Backend == "file" && cfg.Retention.Path == "" {
		cfg.Retention.Path = filepath.Join(os.TempDir(), cfg.Device.Name+".rtc")
	}

	// ---- retention geometry ----

	if cfg.Retention.Slots == 0 {
		cfg.Retention.Slots = DefaultSlots
	}
	if m := cfg.Retention.Modbus; m != nil && m.TimeoutMs <= 0 {
		m.TimeoutMs = DefaultModbusTimeout
	}

	// No other normalization is performed here.
	// Backend construction and slot I/O belong to later stages.
}
