//go:build tinygo

// Command pico runs the counter on a Raspberry Pi Pico with the display
// wired to GP6-GP12 (segments a-g) and GP13-GP16 (digits 1-4).
package main

import (
	"context"

	sevenseg "github.com/rpi-sevenseg"
	"github.com/rpi-sevenseg/picopins"
)

var (
	segments = [sevenseg.NumSegments]sevenseg.Line{6, 7, 8, 9, 10, 11, 12}
	digits   = [sevenseg.NumDigits]sevenseg.Line{13, 14, 15, 16}
)

func main() {
	mux, err := sevenseg.NewMultiplexer(picopins.New(), segments, digits)
	if err != nil {
		println("display init failed:", err.Error())
		return
	}

	counter := sevenseg.NewCounter(0)
	sevenseg.Every(sevenseg.CounterPeriod, counter.Tick)

	// Must run continuously.
	mux.Run(context.Background(), counter.Value)
}
