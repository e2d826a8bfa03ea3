// internal/device/builder.go
package device

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/tamzrod/wakecell/internal/clock"
	cfg "github.com/tamzrod/wakecell/internal/config"
	"github.com/tamzrod/wakecell/internal/logger"
	"github.com/tamzrod/wakecell/internal/reset"
	"github.com/tamzrod/wakecell/internal/retention"
	rmodbus "github.com/tamzrod/wakecell/internal/retention/modbus"
)

// Build constructs a Device and its collaborators from a validated,
// normalized config. The returned closer releases ports and connections.
func Build(c *cfg.Config) (*Device, func() error, error) {
	var closers []func() error
	closeAll := func() error {
		var last error
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				last = err
			}
		}
		return last
	}
	fail := func(err error) (*Device, func() error, error) {
		_ = closeAll()
		return nil, nil, err
	}

	// ---- clock ----

	var clk clock.Clock
	switch c.Clock.Source {
	case "manual":
		clk = clock.NewManual(c.Clock.Start)
	default:
		clk = clock.NewSystem()
	}

	// ---- log sink ----

	var sink logger.Sink
	switch c.Log.Sink {
	case "serial":
		s, err := logger.OpenSerial(c.Log.Serial.Address, c.Log.Serial.Baud)
		if err != nil {
			return fail(fmt.Errorf("device: open serial %s: %w", c.Log.Serial.Address, err))
		}
		closers = append(closers, s.Close)
		sink = s
	case "slog":
		sink = logger.SlogSink(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	default:
		sink = logger.WriterSink(os.Stdout)
	}
	log := logger.New(clk, sink)

	// ---- reset reason ----

	var (
		oracle  reset.Oracle
		sleeper Sleeper
	)
	switch c.Reset.Source {
	case "static":
		r, err := reset.ParseReason(c.Reset.Reason)
		if err != nil {
			return fail(err)
		}
		oracle = reset.Static(r)
	default:
		m := reset.NewMarkerFile(c.Reset.MarkerPath)
		oracle, sleeper = m, m
	}

	// ---- retention memory ----

	var mem retention.Memory
	switch c.Retention.Backend {
	case "file":
		f, err := retention.OpenFile(c.Retention.Path, c.Retention.Slots)
		if err != nil {
			return fail(err)
		}
		mem = f
	case "modbus":
		m, err := rmodbus.New(rmodbus.Config{
			Endpoint:    c.Retention.Modbus.Endpoint,
			UnitID:      c.Retention.Modbus.UnitID,
			BaseAddress: c.Retention.Modbus.BaseAddress,
			Slots:       c.Retention.Slots,
			Timeout:     time.Duration(c.Retention.Modbus.TimeoutMs) * time.Millisecond,
		})
		if err != nil {
			return fail(err)
		}
		closers = append(closers, m.Close)
		mem = m
	default:
		mem = retention.NewRAM(c.Retention.Slots)
	}

	d, err := New(
		Config{
			Name:          c.Device.Name,
			Interval:      time.Duration(c.Device.LoopIntervalMs) * time.Millisecond,
			AwakeSeconds:  c.Device.AwakeSeconds,
			ReportSeconds: c.Device.ReportSeconds,
			Cells:         c.Cells,
		},
		clk,
		oracle,
		mem,
		sleeper,
		log,
	)
	if err != nil {
		return fail(err)
	}

	return d, closeAll, nil
}
