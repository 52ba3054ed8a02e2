package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultPath is where Load looks when no path is given.
const DefaultPath = "config.toml"

// ListenerConfig holds the UDP socket settings
type ListenerConfig struct {
	Address         string `toml:"address"`
	Port            int    `toml:"port"`
	MaxDatagramSize int    `toml:"max_datagram_size"`
	PollIntervalMs  int    `toml:"poll_interval_ms"`
}

// PollInterval is the bounded wait of each socket read.
func (l ListenerConfig) PollInterval() time.Duration {
	return time.Duration(l.PollIntervalMs) * time.Millisecond
}

// DisplayConfig holds what the terminal view shows
type DisplayConfig struct {
	Title        string `toml:"title"`
	SpotCapacity int    `toml:"spot_capacity"`
}

type LogConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Address string `toml:"address"` // empty disables the endpoint
}

// Config holds all application configuration
type Config struct {
	Listener ListenerConfig `toml:"listener"`
	Display  DisplayConfig  `toml:"display"`
	Log      LogConfig      `toml:"log"`
	Metrics  MetricsConfig  `toml:"metrics"`
}

// Default returns the settings used when config.toml is absent.
// 12060 is the N1MM Logger+ broadcast port.
func Default() Config {
	return Config{
		Listener: ListenerConfig{
			Address:         "127.0.0.1",
			Port:            12060,
			MaxDatagramSize: 8192,
			PollIntervalMs:  500,
		},
		Display: DisplayConfig{
			Title:        "N1MM Monitor",
			SpotCapacity: 5,
		},
		Log: LogConfig{
			File:  "contestmon.log",
			Level: "info",
		},
	}
}

// Load reads path on top of Default. An empty path means DefaultPath, and
// in that case a missing file is fine.
func Load(path string) (Config, error) {
	conf := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return conf, nil
		}
		return conf, err
	}

	if err := toml.Unmarshal(data, &conf); err != nil {
		return conf, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return conf, nil
}

// Validate checks value ranges after all overrides are applied.
func (c Config) Validate() error {
	var errs []error

	if c.Listener.Address == "" {
		errs = append(errs, errors.New("listener.address is empty"))
	}
	if c.Listener.Port < 1 || c.Listener.Port > 65535 {
		errs = append(errs, fmt.Errorf("listener.port %d out of range", c.Listener.Port))
	}
	if c.Listener.MaxDatagramSize < 512 || c.Listener.MaxDatagramSize > 65535 {
		errs = append(errs, fmt.Errorf("listener.max_datagram_size %d out of range 512..65535", c.Listener.MaxDatagramSize))
	}
	if c.Listener.PollIntervalMs <= 0 {
		errs = append(errs, fmt.Errorf("listener.poll_interval_ms must be positive, got %d", c.Listener.PollIntervalMs))
	}
	if c.Display.SpotCapacity < 1 || c.Display.SpotCapacity > 50 {
		errs = append(errs, fmt.Errorf("display.spot_capacity %d out of range 1..50", c.Display.SpotCapacity))
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// ParseLevel maps a config log level to slog.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
