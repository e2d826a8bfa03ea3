// internal/device/runner.go
package device

import (
	"context"
	"time"

	"github.com/tamzrod/wakecell/internal/result"
)

// Run boots the device and polls on a ticker until the awake timer expires,
// then sleeps. Cancellation stops the loop without entering sleep.
// One goroutine. No overlap between iterations.
func (d *Device) Run(ctx context.Context) result.Result {
	res := d.Boot()

	ticker := time.NewTicker(d.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.log.Info("stopped before sleep")
			return res
		case <-ticker.C:
			if !d.PollOnce() {
				continue
			}
			if sr := d.Sleep(); !sr.IsOk() {
				return sr
			}
			return res
		}
	}
}
