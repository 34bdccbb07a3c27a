//go:build linux

package main

import (
	"fmt"

	sevenseg "github.com/rpi-sevenseg"
	"github.com/rpi-sevenseg/cdevpins"
	"github.com/rpi-sevenseg/internal/config"
	"github.com/rpi-sevenseg/periphpins"
	"github.com/rpi-sevenseg/rpiopins"
)

func openHardware(cfg *config.Config) (sevenseg.Output, func() error, error) {
	switch cfg.GPIO.Backend {
	case config.BackendRPIO:
		p, err := rpiopins.Open()
		if err != nil {
			return nil, nil, err
		}
		return p, p.Close, nil
	case config.BackendGPIOCDev:
		p := cdevpins.Open(cfg.GPIO.Chip)
		return p, p.Close, nil
	case config.BackendPeriph:
		p, err := periphpins.Open()
		if err != nil {
			return nil, nil, err
		}
		return p, p.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown gpio.backend %q", config.ErrInvalid, cfg.GPIO.Backend)
	}
}
