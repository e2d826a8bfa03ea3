// internal/device/device.go
package device

import (
	"errors"
	"fmt"
	"time"

	"github.com/tamzrod/wakecell/internal/cell"
	"github.com/tamzrod/wakecell/internal/clock"
	"github.com/tamzrod/wakecell/internal/config"
	"github.com/tamzrod/wakecell/internal/logger"
	"github.com/tamzrod/wakecell/internal/reset"
	"github.com/tamzrod/wakecell/internal/result"
	"github.com/tamzrod/wakecell/internal/retention"
	"github.com/tamzrod/wakecell/internal/timer"
)

// Sleeper records the reason the next boot should report.
// reset.MarkerFile implements it on a host.
type Sleeper interface {
	Arm(r reset.Reason) error
}

// Config is the minimal runtime config the device needs.
type Config struct {
	Name          string
	Interval      time.Duration
	AwakeSeconds  uint32
	ReportSeconds uint32
	Cells         []config.CellConfig
}

// Device is one wake cycle: boot, poll until the awake timer expires, sleep.
type Device struct {
	cfg     Config
	clk     clock.Clock
	oracle  reset.Oracle
	sleeper Sleeper
	log     *logger.Logger

	cells map[string]*cell.Cell
	order []string

	awake  timer.Timer
	report timer.Timer
	booted bool
}

// New creates a device with immutable config.
// sleeper may be nil when the reset source cannot be armed.
func New(cfg Config, clk clock.Clock, oracle reset.Oracle, mem retention.Memory, sleeper Sleeper, log *logger.Logger) (*Device, error) {
	if cfg.Interval <= 0 {
		return nil, errors.New("device: interval must be > 0")
	}
	if clk == nil || oracle == nil || mem == nil {
		return nil, errors.New("device: clock, oracle and retention memory required")
	}

	d := &Device{
		cfg:     cfg,
		clk:     clk,
		oracle:  oracle,
		sleeper: sleeper,
		log:     log,
		cells:   make(map[string]*cell.Cell, len(cfg.Cells)),
	}

	for _, c := range cfg.Cells {
		if _, dup := d.cells[c.Name]; dup {
			return nil, fmt.Errorf("device: duplicate cell %q", c.Name)
		}
		d.cells[c.Name] = cell.New(c.Slot, mem, oracle)
		d.order = append(d.order, c.Name)
	}

	d.awake.Bind(clk)
	d.report.Bind(clk)

	return d, nil
}

// Cell returns the named cell, or nil.
func (d *Device) Cell(name string) *cell.Cell {
	return d.cells[name]
}

// Boot restores every cell once, bumps the boot counter and arms timers.
// Individual cell failures are logged and do not stop the boot.
func (d *Device) Boot() result.Result {
	reason := d.oracle.LastResetReason()
	d.log.Infof("%s boot, reset reason=%s", d.cfg.Name, reason)

	res := result.OK()

	for _, name := range d.order {
		c := d.cells[name]
		if err := c.Restore(); err != nil {
			r := result.Wrap("boot", result.Wrap(name, result.FromError(err)))
			result.LogIfError(d.log, r)
			res = r
			continue
		}
		d.log.Infof("cell %s slot=%d value=%d", name, c.Slot(), c.Data())
	}

	if bc := d.cells[config.CellBootCount]; bc != nil {
		if err := bc.Store(bc.Data() + 1); err != nil {
			r := result.Wrap("boot", result.Wrap(config.CellBootCount, result.FromError(err)))
			result.LogIfError(d.log, r)
			res = r
		} else {
			d.log.Infof("boot count=%d", bc.Data())
		}
	}

	d.awake.Arm(d.cfg.AwakeSeconds)
	d.report.Arm(d.cfg.ReportSeconds)
	d.booted = true

	return res
}

// PollOnce performs exactly one loop iteration.
// It returns true once the awake timer has expired.
func (d *Device) PollOnce() bool {
	if d.report.IsExpired() {
		d.log.Infof(
			"awake uptime=%ds sleep_in=%s",
			d.clk.NowMillis()/1000,
			d.awake.Remaining(),
		)
		d.report.Arm(d.cfg.ReportSeconds)
	}

	return d.awake.IsExpired()
}

// Sleep persists uptime, arms the low-power wake reason and ends the cycle.
// Nothing after Sleep runs on real hardware.
func (d *Device) Sleep() result.Result {
	res := result.OK()

	if c := d.cells[config.CellLastUptimeS]; c != nil {
		if err := c.Store(d.clk.NowMillis() / 1000); err != nil {
			res = result.Wrap("sleep", result.Wrap(config.CellLastUptimeS, result.FromError(err)))
			result.LogIfError(d.log, res)
		}
	}

	if d.sleeper != nil {
		if err := d.sleeper.Arm(reset.LowPowerWake); err != nil {
			res = result.Wrap("sleep", result.FromError(err))
			result.LogIfError(d.log, res)
		}
	}

	d.log.Info("entering deep sleep")
	return res
}
