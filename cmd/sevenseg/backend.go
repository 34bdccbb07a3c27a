package main

import (
	sevenseg "github.com/rpi-sevenseg"
	"github.com/rpi-sevenseg/internal/config"
)

// openOutput returns the Output for the configured backend and a function
// that releases it.
func openOutput(cfg *config.Config, segs [sevenseg.NumSegments]sevenseg.Line, digits [sevenseg.NumDigits]sevenseg.Line, polarity sevenseg.Polarity) (sevenseg.Output, func() error, error) {
	if cfg.GPIO.Backend == config.BackendSim {
		return sevenseg.NewRecorder(segs, digits, polarity), func() error { return nil }, nil
	}
	return openHardware(cfg)
}
