// Package config holds pulsetrace settings. Values come from defaults, an
// optional TOML file and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	DefaultWidth         = 1000
	DefaultCenter        = 500.0
	DefaultTrail         = 600
	DefaultTickRate      = 10 * time.Millisecond
	DefaultProbeURL      = "http://localhost:5000/api/test/test"
	DefaultProbeInterval = 3 * time.Second

	// YMax is the fixed vertical bound of the canvas.
	YMax = 1000.0
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Width    int           `toml:"width"`
	Center   float64       `toml:"center"`
	Trail    int           `toml:"trail"`
	TickRate time.Duration `toml:"tick_rate"`

	ProbeURL      string        `toml:"probe_url"`
	ProbeInterval time.Duration `toml:"probe_interval"`
	ProbeTimeout  time.Duration `toml:"probe_timeout"`

	// Scheduled pulses, independent of the probe. PulseEvery 0 disables.
	PulseEvery int `toml:"pulse_every"`
	PulsePhase int `toml:"pulse_phase"`

	LogDir   string `toml:"log_dir"`
	LogLevel string `toml:"log_level"`
}

func Default() *Config {
	return &Config{
		Width:         DefaultWidth,
		Center:        DefaultCenter,
		Trail:         DefaultTrail,
		TickRate:      DefaultTickRate,
		ProbeURL:      DefaultProbeURL,
		ProbeInterval: DefaultProbeInterval,
		LogLevel:      "info",
	}
}

// Load decodes a TOML file on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, len(undec))
		for i, k := range undec {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("load %s: unknown keys %s: %w", path, strings.Join(keys, ", "), ErrInvalid)
	}
	return cfg, nil
}

func (cfg *Config) bind(fs *flag.FlagSet) {
	fs.IntVar(&cfg.Width, "width", cfg.Width, "number of points in the trace buffer")
	fs.Float64Var(&cfg.Center, "center", cfg.Center, "baseline y value")
	fs.IntVar(&cfg.Trail, "trail", cfg.Trail, "visible trail length behind the cursor")
	fs.DurationVar(&cfg.TickRate, "tick", cfg.TickRate, "interval between trace advances")
	fs.StringVar(&cfg.ProbeURL, "probe-url", cfg.ProbeURL, "liveness endpoint (empty disables the probe)")
	fs.DurationVar(&cfg.ProbeInterval, "probe-interval", cfg.ProbeInterval, "pause between probe attempts")
	fs.DurationVar(&cfg.ProbeTimeout, "probe-timeout", cfg.ProbeTimeout, "per-attempt probe timeout (0=none)")
	fs.IntVar(&cfg.PulseEvery, "pulse-every", cfg.PulseEvery, "also pulse every N cursor positions (0=off)")
	fs.IntVar(&cfg.PulsePhase, "pulse-phase", cfg.PulsePhase, "cursor offset of scheduled pulses")
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "directory for log and event files (empty discards logs)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
}

// Parse builds a Config from command-line args. A -config file is applied
// first; flags given explicitly override it.
func Parse(name string, args []string, output io.Writer) (*Config, error) {
	cfg := Default()
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	path := fs.String("config", "", "TOML config file")
	cfg.bind(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *path == "" {
		return cfg, nil
	}

	fromFile, err := Load(*path)
	if err != nil {
		return nil, err
	}
	overrides := flag.NewFlagSet(name, flag.ContinueOnError)
	overrides.SetOutput(io.Discard)
	overrides.String("config", "", "")
	fromFile.bind(overrides)
	var set []string
	fs.Visit(func(f *flag.Flag) { set = append(set, f.Name) })
	for _, n := range set {
		if err := overrides.Set(n, fs.Lookup(n).Value.String()); err != nil {
			return nil, fmt.Errorf("flag -%s: %w", n, err)
		}
	}
	return fromFile, nil
}

func (cfg *Config) Validate() error {
	if cfg.Width < 1 {
		return fmt.Errorf("width must be positive, got %d: %w", cfg.Width, ErrInvalid)
	}
	if cfg.Trail < 1 || cfg.Trail >= cfg.Width {
		return fmt.Errorf("trail must be in [1, %d), got %d: %w", cfg.Width, cfg.Trail, ErrInvalid)
	}
	if cfg.Center <= 0 || cfg.Center >= YMax {
		return fmt.Errorf("center must be in (0, %g), got %g: %w", YMax, cfg.Center, ErrInvalid)
	}
	if cfg.TickRate <= 0 {
		return fmt.Errorf("tick rate must be positive, got %v: %w", cfg.TickRate, ErrInvalid)
	}
	if cfg.ProbeInterval <= 0 {
		return fmt.Errorf("probe interval must be positive, got %v: %w", cfg.ProbeInterval, ErrInvalid)
	}
	if cfg.ProbeTimeout < 0 {
		return fmt.Errorf("probe timeout cannot be negative, got %v: %w", cfg.ProbeTimeout, ErrInvalid)
	}
	if cfg.PulseEvery < 0 {
		return fmt.Errorf("pulse-every cannot be negative, got %d: %w", cfg.PulseEvery, ErrInvalid)
	}
	if cfg.PulseEvery > 0 && (cfg.PulsePhase < 0 || cfg.PulsePhase >= cfg.PulseEvery) {
		return fmt.Errorf("pulse-phase must be in [0, %d), got %d: %w", cfg.PulseEvery, cfg.PulsePhase, ErrInvalid)
	}
	if cfg.ProbeURL != "" {
		u, err := url.Parse(cfg.ProbeURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("probe url must be an absolute http(s) URL, got %q: %w", cfg.ProbeURL, ErrInvalid)
		}
	}
	if _, err := cfg.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (cfg *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", cfg.LogLevel, ErrInvalid)
	}
	return l, nil
}
