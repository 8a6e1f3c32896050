// Package config loads the user's TOML settings file.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/julianstephens/pausa/internal/constants"
	"github.com/julianstephens/pausa/internal/flow"
	"github.com/julianstephens/pausa/internal/models"
)

const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

type Config struct {
	Pause     PauseConfig     `toml:"pause"`
	UI        UIConfig        `toml:"ui"`
	Backup    BackupConfig    `toml:"backup"`
	Templates TemplatesConfig `toml:"templates"`
}

type PauseConfig struct {
	BreatheSeconds int    `toml:"breathe_seconds"`
	BreatheLabel   string `toml:"breathe_label"`
	SilentSeconds  int    `toml:"silent_seconds"`
	SilentLabel    string `toml:"silent_label"`
}

type UIConfig struct {
	Theme         string `toml:"theme"`
	ConfirmDelete bool   `toml:"confirm_delete"`
}

type BackupConfig struct {
	Auto bool `toml:"auto"`
}

// TemplatesConfig holds optional paths to mustache templates. Empty means built-in.
type TemplatesConfig struct {
	Summary string `toml:"summary"`
	Share   string `toml:"share"`
}

func Default() *Config {
	return &Config{
		Pause: PauseConfig{
			BreatheSeconds: constants.DefaultBreatheSeconds,
			BreatheLabel:   constants.DefaultBreatheLabel,
			SilentSeconds:  constants.DefaultSilentSeconds,
			SilentLabel:    constants.DefaultSilentLabel,
		},
		UI: UIConfig{
			Theme:         ThemeDark,
			ConfirmDelete: true,
		},
		Backup: BackupConfig{
			Auto: true,
		},
	}
}

// Load returns the defaults overlaid with the file at path. A missing file
// is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}

	cfg.Templates.Summary = resolvePath(filepath.Dir(path), cfg.Templates.Summary)
	cfg.Templates.Share = resolvePath(filepath.Dir(path), cfg.Templates.Share)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Pause.BreatheSeconds <= 0 {
		return fmt.Errorf("pause.breathe_seconds must be positive, got %d", c.Pause.BreatheSeconds)
	}
	if c.Pause.SilentSeconds <= 0 {
		return fmt.Errorf("pause.silent_seconds must be positive, got %d", c.Pause.SilentSeconds)
	}
	switch c.UI.Theme {
	case ThemeDark, ThemeLight:
	default:
		return fmt.Errorf("ui.theme must be %q or %q, got %q", ThemeDark, ThemeLight, c.UI.Theme)
	}
	return nil
}

// Pauses returns the countdowns the flow machine starts for timed micro-pauses
func (c *Config) Pauses() flow.Pauses {
	return flow.Pauses{
		models.PauseRespirar: {Seconds: c.Pause.BreatheSeconds, Label: c.Pause.BreatheLabel},
		models.PausePausa:    {Seconds: c.Pause.SilentSeconds, Label: c.Pause.SilentLabel},
	}
}

// Encode renders the config as TOML
func (c *Config) Encode() (string, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.String(), nil
}

// Write saves the config to path, refusing to overwrite unless force is set
func (c *Config) Write(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
		}
	}

	data, err := c.Encode()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

func resolvePath(base, p string) string {
	if p == "" {
		return ""
	}
	if expanded, err := ExpandHome(p); err == nil {
		p = expanded
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
