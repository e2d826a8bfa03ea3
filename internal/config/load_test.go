// internal/config/load_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleYAML = `
device:
  name: sensor-01
  loop_interval_ms: 50
  awake_seconds: 5
  report_seconds: 1
clock:
  source: system
reset:
  source: marker
  marker_path: /tmp/sensor-01.reset
retention:
  backend: modbus
  slots: 8
  modbus:
    endpoint: 127.0.0.1:502
    unit_id: 2
    base_address: 100
log:
  sink: serial
  serial:
    address: /dev/ttyUSB0
    baud: 115200
cells:
  - name: boot_count
    slot: 0
  - name: last_uptime_s
    slot: 1
`

func TestLoad_Sample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wakecell.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, Validate(cfg))

	require.Equal(t, "sensor-01", cfg.Device.Name)
	require.Equal(t, uint32(5), cfg.Device.AwakeSeconds)
	require.Equal(t, "modbus", cfg.Retention.Backend)
	require.NotNil(t, cfg.Retention.Modbus)
	require.Equal(t, uint16(100), cfg.Retention.Modbus.BaseAddress)
	require.Equal(t, uint8(2), cfg.Retention.Modbus.UnitID)
	require.Equal(t, 115200, cfg.Log.Serial.Baud)
	require.Len(t, cfg.Cells, 2)
	require.Equal(t, CellConfig{Name: CellLastUptimeS, Slot: 1}, cfg.Cells[1])

	Normalize(cfg)
	require.Equal(t, DefaultModbusTimeout, cfg.Retention.Modbus.TimeoutMs)
}

func TestParse_UnknownFieldRejected(t *testing.T) {
	_, err := Parse([]byte("device:\n  nmae: typo\n"))
	require.Error(t, err)
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	require.NotNil(t, cfg)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
