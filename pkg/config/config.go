// Package config loads the optional rowgrid configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/rowgrid/config.toml
// (~/.config/rowgrid/config.toml). Every key is optional; command-line flags
// override whatever the file sets.
//
//	base = 24
//	clamp_correction = false
//
//	[view]
//	width = 960
//	row_height = 120
//
//	[server]
//	addr = ":8080"
//
//	[store]
//	backend = "redis"
//	redis_addr = "localhost:6379"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/rowgrid/pkg/errors"
	"github.com/matzehuels/rowgrid/pkg/grid"
	"github.com/matzehuels/rowgrid/pkg/store"
	"github.com/matzehuels/rowgrid/pkg/view"
)

const appName = "rowgrid"

// Config is the decoded configuration file.
type Config struct {
	Base            int          `toml:"base"`
	ClampCorrection bool         `toml:"clamp_correction"`
	View            view.Options `toml:"view"`
	Server          Server       `toml:"server"`
	Store           store.Config `toml:"store"`
}

// Server configures `rowgrid serve`.
type Server struct {
	Addr            string        `toml:"addr"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Base: grid.Base,
		View: view.DefaultOptions(),
		Server: Server{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Store: store.Config{
			Backend:  store.BackendMemory,
			Capacity: store.DefaultCapacity,
		},
	}
}

// DefaultPath returns the XDG location of the config file.
func DefaultPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the config file at path on top of Default. An empty path means
// DefaultPath, where a missing file is not an error. Unknown keys are
// rejected so that typos do not go unnoticed.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) {
		if explicit {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Default(), nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return cfg, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Base < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "base must be at least 1, got %d", c.Base)
	}
	if c.View.Width <= 0 || c.View.RowHeight <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "view width and row_height must be positive")
	}
	if c.View.PaddingTop+c.View.PaddingBottom >= c.View.RowHeight {
		return errors.New(errors.ErrCodeInvalidInput, "view padding leaves no room for content")
	}
	return nil
}

// GridOptions returns the layout options the config selects. Layouts
// opened by the command line are written back to disk, so they always
// reject edits that would leave a component below size 1.
func (c Config) GridOptions() []grid.Option {
	opts := []grid.Option{grid.WithBase(c.Base), grid.WithStrictSizes()}
	if c.ClampCorrection {
		opts = append(opts, grid.WithCorrection(grid.CorrectClamped))
	}
	return opts
}
