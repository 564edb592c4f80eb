// Package config holds glidepath's application settings: where the budget
// document lives and the reconciliation policy knobs. Distinct from the
// budget document itself, which internal/store owns.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all glidepath settings.
type Config struct {
	General   GeneralConfig   `toml:"general"`
	Reconcile ReconcileConfig `toml:"reconcile"`
}

// GeneralConfig holds file locations and display preferences.
type GeneralConfig struct {
	// BudgetFile overrides the default budget document location.
	BudgetFile string `toml:"budget_file,omitempty"`
	// ProjectionRows is how many periods the projection table shows by
	// default.
	ProjectionRows int `toml:"projection_rows"`
}

// ReconcileConfig holds period-close policy settings.
type ReconcileConfig struct {
	// ConfirmationGraceDays is how long a closed period waits for manual
	// confirmation before auto-completing with projected figures.
	ConfirmationGraceDays int `toml:"confirmation_grace_days"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			ProjectionRows: 12,
		},
		Reconcile: ReconcileConfig{
			ConfirmationGraceDays: 5,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "glidepath")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "glidepath")
}

// DataDir returns the XDG-compliant data directory for the budget document
// and the history archive.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "glidepath")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "glidepath")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// BudgetPath resolves the budget document location: the configured override
// if set, else the default under the data directory.
func (c Config) BudgetPath() string {
	if c.General.BudgetFile != "" {
		return c.General.BudgetFile
	}
	return filepath.Join(DataDir(), "budget.json")
}

// ArchivePath returns the history archive database location.
func ArchivePath() string {
	return filepath.Join(DataDir(), "history.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Reconcile.ConfirmationGraceDays < 0 {
		cfg.Reconcile.ConfirmationGraceDays = 0
	}
	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
