// internal/config/config.go
package config

type Config struct {
	Device    DeviceConfig    `yaml:"device"`
	Clock     ClockConfig     `yaml:"clock"`
	Reset     ResetConfig     `yaml:"reset"`
	Retention RetentionConfig `yaml:"retention"`
	Log       LogConfig       `yaml:"log"`
	Cells     []CellConfig    `yaml:"cells"`
}

// ---- DEVICE ----

type DeviceConfig struct {
	Name           string `yaml:"name"`
	LoopIntervalMs int    `yaml:"loop_interval_ms"`
	AwakeSeconds   uint32 `yaml:"awake_seconds"`  // 0 => stay awake until cancelled
	ReportSeconds  uint32 `yaml:"report_seconds"` // 0 => no periodic report
}

// ---- CLOCK ----

type ClockConfig struct {
	Source string `yaml:"source"` // system | manual
	Start  uint32 `yaml:"start"`  // manual only: initial tick
}

// ---- RESET REASON ----

type ResetConfig struct {
	Source     string `yaml:"source"`      // static | marker
	Reason     string `yaml:"reason"`      // static only
	MarkerPath string `yaml:"marker_path"` // marker only
}

// ---- RETENTION MEMORY ----

type RetentionConfig struct {
	Backend string           `yaml:"backend"` // ram | file | modbus
	Slots   int              `yaml:"slots"`
	Path    string           `yaml:"path"` // file only
	Modbus  *ModbusRetention `yaml:"modbus"`
}

type ModbusRetention struct {
	Endpoint    string `yaml:"endpoint"`
	UnitID      uint8  `yaml:"unit_id"`
	BaseAddress uint16 `yaml:"base_address"`
	TimeoutMs   int    `yaml:"timeout_ms"`
}

// ---- LOG ----

type LogConfig struct {
	Sink   string        `yaml:"sink"` // stdout | serial | slog
	Serial *SerialConfig `yaml:"serial"`
}

type SerialConfig struct {
	Address string `yaml:"address"`
	Baud    int    `yaml:"baud"`
}

// ---- CELLS ----

type CellConfig struct {
	Name string `yaml:"name"`
	Slot uint16 `yaml:"slot"`
}

// Well-known cell names the device runner maintains when configured.
const (
	CellBootCount   = "boot_count"
	CellLastUptimeS = "last_uptime_s"
)
