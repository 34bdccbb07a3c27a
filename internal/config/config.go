// Package config loads the display wiring and runtime settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	sevenseg "github.com/rpi-sevenseg"
	"github.com/rpi-sevenseg/internal/logging"
)

// Backends understood by the command.
const (
	BackendRPIO     = "rpio"
	BackendGPIOCDev = "gpiocdev"
	BackendPeriph   = "periph"
	BackendSim      = "sim"
)

// Environment overrides, applied after the file.
const (
	EnvBackend  = "SEVENSEG_BACKEND"
	EnvChip     = "SEVENSEG_CHIP"
	EnvLogLevel = "SEVENSEG_LOG_LEVEL"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Display DisplayConfig `toml:"display"`
	Counter CounterConfig `toml:"counter"`
	GPIO    GPIOConfig    `toml:"gpio"`
	Log     LogConfig     `toml:"log"`
}

type DisplayConfig struct {
	// Segments lists the lines for segments a through g.
	Segments []int `toml:"segments"`
	// Digits lists the digit-select lines, most significant first.
	Digits   []int         `toml:"digits"`
	Polarity string        `toml:"polarity"`
	Dwell    time.Duration `toml:"dwell"`
}

type CounterConfig struct {
	Period time.Duration `toml:"period"`
	Start  uint32        `toml:"start"`
}

type GPIOConfig struct {
	Backend string `toml:"backend"`
	// Chip is the gpiochip device for the gpiocdev backend.
	Chip string `toml:"chip"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Defaults returns the stock wiring: segments a-g on GPIO 6-12, digits 1-4
// on GPIO 13-16.
func Defaults() *Config {
	return &Config{
		Display: DisplayConfig{
			Segments: []int{6, 7, 8, 9, 10, 11, 12},
			Digits:   []int{13, 14, 15, 16},
			Polarity: sevenseg.CommonCathode.String(),
			Dwell:    sevenseg.DefaultDwell,
		},
		Counter: CounterConfig{
			Period: sevenseg.CounterPeriod,
		},
		GPIO: GPIOConfig{
			Backend: BackendGPIOCDev,
			Chip:    "gpiochip0",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a TOML config file over the defaults and then applies
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// LoadEnvFile merges KEY=value pairs from an env file into the process
// environment without overwriting variables that are already set. A missing
// file is not an error.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvBackend); v != "" {
		c.GPIO.Backend = v
	}
	if v := os.Getenv(EnvChip); v != "" {
		c.GPIO.Chip = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
}

// Validate checks the config for errors that would stop the display from
// starting.
func (c *Config) Validate() error {
	if _, _, err := c.Lines(); err != nil {
		return err
	}
	if _, err := c.ParsePolarity(); err != nil {
		return err
	}
	if c.Display.Dwell <= 0 {
		return fmt.Errorf("%w: display.dwell must be positive", ErrInvalid)
	}
	if c.Counter.Period <= 0 {
		return fmt.Errorf("%w: counter.period must be positive", ErrInvalid)
	}
	switch c.GPIO.Backend {
	case BackendRPIO, BackendPeriph, BackendSim:
	case BackendGPIOCDev:
		if c.GPIO.Chip == "" {
			return fmt.Errorf("%w: gpio.chip is required for %s", ErrInvalid, BackendGPIOCDev)
		}
	default:
		return fmt.Errorf("%w: unknown gpio.backend %q", ErrInvalid, c.GPIO.Backend)
	}
	if !logging.ValidLevel(c.Log.Level) {
		return fmt.Errorf("%w: unknown log.level %q", ErrInvalid, c.Log.Level)
	}
	return nil
}

// Lines converts the configured pin numbers into line arrays. The counts are
// fixed by the display: seven segments and four digits.
func (c *Config) Lines() (segs [sevenseg.NumSegments]sevenseg.Line, digits [sevenseg.NumDigits]sevenseg.Line, err error) {
	if len(c.Display.Segments) != sevenseg.NumSegments {
		return segs, digits, fmt.Errorf("%w: display.segments needs %d lines, got %d",
			ErrInvalid, sevenseg.NumSegments, len(c.Display.Segments))
	}
	if len(c.Display.Digits) != sevenseg.NumDigits {
		return segs, digits, fmt.Errorf("%w: display.digits needs %d lines, got %d",
			ErrInvalid, sevenseg.NumDigits, len(c.Display.Digits))
	}

	seen := make(map[int]bool, sevenseg.NumSegments+sevenseg.NumDigits)
	toLine := func(n int) (sevenseg.Line, error) {
		if n < 0 || n > int(sevenseg.MaxLine) {
			return 0, fmt.Errorf("%w: line %d out of range 0-%d", ErrInvalid, n, sevenseg.MaxLine)
		}
		if seen[n] {
			return 0, fmt.Errorf("%w: line %d used more than once", ErrInvalid, n)
		}
		seen[n] = true
		return sevenseg.Line(n), nil
	}

	for i, n := range c.Display.Segments {
		if segs[i], err = toLine(n); err != nil {
			return segs, digits, err
		}
	}
	for i, n := range c.Display.Digits {
		if digits[i], err = toLine(n); err != nil {
			return segs, digits, err
		}
	}
	return segs, digits, nil
}

// ParsePolarity maps display.polarity to a sevenseg.Polarity.
func (c *Config) ParsePolarity() (sevenseg.Polarity, error) {
	switch strings.ToLower(strings.TrimSpace(c.Display.Polarity)) {
	case "", "common-cathode", "cathode", "cc":
		return sevenseg.CommonCathode, nil
	case "common-anode", "anode", "ca":
		return sevenseg.CommonAnode, nil
	default:
		return 0, fmt.Errorf("%w: unknown display.polarity %q", ErrInvalid, c.Display.Polarity)
	}
}
