package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/andresousadotpt/hidstream/internal/logging"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config is the contents of config.yml after environment overrides.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Server  ServerConfig  `yaml:"server"`
	Device  DeviceConfig  `yaml:"device"`
	Gamepad GamepadConfig `yaml:"gamepad"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"HIDSTREAM_LOG_LEVEL"`
	Format string `yaml:"format" env:"HIDSTREAM_LOG_FORMAT"`
}

type ServerConfig struct {
	Listen string `yaml:"listen" env:"HIDSTREAM_LISTEN"`
	Stdout bool   `yaml:"stdout" env:"HIDSTREAM_STDOUT"`
}

type DeviceConfig struct {
	Autostart        bool          `yaml:"autostart"`
	Seat             string        `yaml:"seat" env:"HIDSTREAM_SEAT"`
	Hotplug          bool          `yaml:"hotplug"`
	Settle           time.Duration `yaml:"settle"`
	ReleaseOnFailure bool          `yaml:"release_on_failure"`
}

type GamepadConfig struct {
	Autostart    bool          `yaml:"autostart"`
	PollInterval time.Duration `yaml:"poll_interval" env:"HIDSTREAM_GAMEPAD_POLL"`
}

// DefaultConfig matches defaults/config.yml.
func DefaultConfig() Config {
	return Config{
		Log:    LogConfig{Level: "info", Format: "text"},
		Server: ServerConfig{Listen: "127.0.0.1:7380"},
		Device: DeviceConfig{
			Autostart: true,
			Seat:      "seat0",
			Hotplug:   true,
			Settle:    250 * time.Millisecond,
		},
		Gamepad: GamepadConfig{PollInterval: 50 * time.Millisecond},
	}
}

func configDir() string {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return filepath.Join(d, "hidstream")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "hidstream")
}

// LoadConfig reads path over the defaults and applies environment overrides.
// A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("read %s: %w", path, err)
	default:
		if err := decodeConfig(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func decodeConfig(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		return fmt.Errorf("log.format: %w", err)
	}
	if c.Device.Seat == "" {
		return errors.New("device.seat must not be empty")
	}
	if c.Device.Settle <= 0 {
		return fmt.Errorf("device.settle must be positive, got %s", c.Device.Settle)
	}
	if c.Gamepad.PollInterval <= 0 {
		return fmt.Errorf("gamepad.poll_interval must be positive, got %s", c.Gamepad.PollInterval)
	}
	return nil
}
