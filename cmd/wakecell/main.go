// cmd/wakecell/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/tamzrod/wakecell/internal/config"
	"github.com/tamzrod/wakecell/internal/device"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: wakecell <config.yaml>")
	}

	cfgPath := os.Args[1]

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}

	config.Normalize(cfg)

	// --------------------
	// Build device
	// --------------------

	d, closeDevice, err := device.Build(cfg)
	if err != nil {
		log.Fatalf("device build failed (device=%s): %v", cfg.Device.Name, err)
	}
	defer func() {
		if err := closeDevice(); err != nil {
			log.Printf("device close failed: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --------------------
	// One wake cycle; process exit stands in for deep sleep
	// --------------------

	// Failures were already logged through the device log sink.
	_ = d.Run(ctx)
}
