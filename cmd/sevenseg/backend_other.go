//go:build !linux

package main

import (
	"fmt"

	sevenseg "github.com/rpi-sevenseg"
	"github.com/rpi-sevenseg/internal/config"
)

func openHardware(cfg *config.Config) (sevenseg.Output, func() error, error) {
	return nil, nil, fmt.Errorf("gpio backend %q needs linux; use %q", cfg.GPIO.Backend, config.BackendSim)
}
