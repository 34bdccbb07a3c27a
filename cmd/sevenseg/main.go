// Command sevenseg counts up once a second on a multiplexed 4-digit
// 7-segment display wired straight to GPIO lines.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	sevenseg "github.com/rpi-sevenseg"
	"github.com/rpi-sevenseg/internal/config"
	"github.com/rpi-sevenseg/internal/logging"
)

var log = logging.For("main")

type options struct {
	configPath string
	envFile    string
	backend    string
	logLevel   string
	start      uint32
	step       time.Duration
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "sevenseg",
		Short:        "Drive a multiplexed 4-digit 7-segment counter",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runCounter(ctx, cmd, opts)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "path to TOML config file")
	pf.StringVar(&opts.envFile, "env-file", ".env", "env file with SEVENSEG_* overrides")
	pf.StringVar(&opts.backend, "backend", "", "gpio backend: rpio, gpiocdev, periph, sim (overrides config)")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level (overrides config)")
	root.Flags().Uint32Var(&opts.start, "start", 0, "initial counter value (overrides config)")

	selftest := &cobra.Command{
		Use:   "selftest",
		Short: "Light 8888, then step through 0000..9999 to check wiring",
		PreRunE: func(*cobra.Command, []string) error {
			if opts.step <= 0 {
				return fmt.Errorf("%w: --step must be positive, got %v", config.ErrInvalid, opts.step)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runSelftest(ctx, cmd, opts)
		},
	}
	selftest.Flags().DurationVar(&opts.step, "step", 500*time.Millisecond, "time each pattern is shown")
	root.AddCommand(selftest)

	return root
}

// display is everything a run needs once the config is resolved.
type display struct {
	cfg *config.Config
	mux *sevenseg.Multiplexer
	sim *sevenseg.Recorder
}

func setup(cmd *cobra.Command, opts *options) (*display, error) {
	if err := config.LoadEnvFile(opts.envFile); err != nil {
		return nil, err
	}
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.backend != "" {
		cfg.GPIO.Backend = opts.backend
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if f := cmd.Flags().Lookup("start"); f != nil && f.Changed {
		cfg.Counter.Start = opts.start
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logging.Init(cfg.Log.Level, cfg.Log.Format)

	segs, digits, _ := cfg.Lines()
	polarity, _ := cfg.ParsePolarity()

	out, closeOut, err := openOutput(cfg, segs, digits, polarity)
	if err != nil {
		return nil, fmt.Errorf("gpio backend %s: %w", cfg.GPIO.Backend, err)
	}

	mux, err := sevenseg.NewMultiplexer(out, segs, digits,
		sevenseg.WithDwell(cfg.Display.Dwell),
		sevenseg.WithPolarity(polarity))
	if err != nil {
		if cerr := closeOut(); cerr != nil {
			log.Error("closing gpio", "err", cerr)
		}
		return nil, err
	}

	// Leave the display dark and release the lines however we exit.
	atexit.Register(func() {
		mux.Blank()
		if err := closeOut(); err != nil {
			log.Error("closing gpio", "err", err)
		}
	})

	d := &display{cfg: cfg, mux: mux}
	d.sim, _ = out.(*sevenseg.Recorder)
	log.Info("display ready",
		"backend", cfg.GPIO.Backend,
		"segments", cfg.Display.Segments,
		"digits", cfg.Display.Digits,
		"polarity", polarity.String())
	return d, nil
}

func runCounter(ctx context.Context, cmd *cobra.Command, opts *options) error {
	d, err := setup(cmd, opts)
	if err != nil {
		return err
	}

	counter := sevenseg.NewCounter(d.cfg.Counter.Start)
	ticks := sevenseg.Every(d.cfg.Counter.Period, counter.Tick)
	defer ticks.Stop()

	if d.sim != nil {
		report := d.reportSim()
		defer report.Stop()
	}

	log.Info("counting", "start", counter.Value(), "period", d.cfg.Counter.Period)
	d.mux.Run(ctx, counter.Value)
	log.Info("stopped", "value", counter.Value(), "failures", d.mux.Failures())
	return nil
}

func runSelftest(ctx context.Context, cmd *cobra.Command, opts *options) error {
	d, err := setup(cmd, opts)
	if err != nil {
		return err
	}

	patterns := []uint32{8888}
	for v := uint32(0); v <= sevenseg.MaxValue; v += 1111 {
		patterns = append(patterns, v)
	}

	for _, v := range patterns {
		log.Info("selftest", "showing", fmt.Sprintf("%04d", v))
		stepCtx, cancel := context.WithTimeout(ctx, opts.step)
		d.mux.Run(stepCtx, func() uint32 { return v })
		cancel()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.sim != nil && d.sim.String() != fmt.Sprintf("%04d", v) {
			return fmt.Errorf("selftest: showed %q, want %04d", d.sim.String(), v)
		}
	}
	d.mux.Blank()
	if d.mux.Failures() > 0 {
		return fmt.Errorf("selftest: %d output writes failed", d.mux.Failures())
	}
	log.Info("selftest passed")
	return nil
}

// reportSim logs what the simulated display shows whenever it changes.
func (d *display) reportSim() *sevenseg.Schedule {
	last := ""
	period := max(d.cfg.Counter.Period/2, sevenseg.MinPeriod)
	return sevenseg.Every(period, func() bool {
		if s := d.sim.String(); s != last {
			log.Info("sim display", "shows", s)
			last = s
		}
		return true
	})
}
