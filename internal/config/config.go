package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"

	"github.com/petems/goggles/internal/hotkey"
)

const (
	DefaultAlpha    uint8 = 180
	DefaultHotkey         = "F11"
	DefaultLogLevel       = "info"
)

// DefaultModifiers are held together with the hotkey.
var DefaultModifiers = []string{"Ctrl", "Win"}

type Config struct {
	Alpha     uint8    `json:"alpha"`     // 0 invisible .. 255 opaque
	Hotkey    string   `json:"hotkey"`    // key name, e.g. "F11"
	Modifiers []string `json:"modifiers"` // e.g. ["Ctrl", "Win"]
	LogLevel  string   `json:"log_level"` // zerolog level name
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Alpha:     DefaultAlpha,
		Hotkey:    DefaultHotkey,
		Modifiers: append([]string(nil), DefaultModifiers...),
		LogLevel:  DefaultLogLevel,
	}
}

// Load reads the config from disk or returns defaults
func Load() (*Config, error) {
	return LoadFrom(configPath())
}

// LoadFrom reads the config at path. A missing file yields the defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Exists reports whether a config file is present on disk.
func Exists() bool {
	return existsAt(configPath())
}

func existsAt(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	return c.SaveTo(configPath())
}

// SaveTo writes the config to path, creating its directory.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Binding resolves the configured combination. Names that do not parse fall
// back to the defaults; NoRepeat is always set so a held key toggles once.
func (c *Config) Binding() (hotkey.Modifiers, hotkey.Key) {
	key, err := hotkey.ParseKey(c.Hotkey)
	if err != nil {
		key = hotkey.DefaultKey
	}

	var mods hotkey.Modifiers
	for _, name := range c.Modifiers {
		m, err := hotkey.ParseModifier(name)
		if err != nil {
			continue
		}
		mods |= m
	}
	if mods&^hotkey.ModNoRepeat == 0 {
		mods = hotkey.ModControl | hotkey.ModWin
	}

	return mods | hotkey.ModNoRepeat, key
}

// configPath returns the platform-specific config file path
func configPath() string {
	var base string

	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("APPDATA")
	case "darwin":
		base = os.Getenv("HOME") + "/Library/Application Support"
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = xdg
		} else {
			base = os.Getenv("HOME") + "/.config"
		}
	}

	return filepath.Join(base, "goggles", "config.json")
}
