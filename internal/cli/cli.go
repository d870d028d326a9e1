package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/rowgrid/pkg/buildinfo"
	"github.com/matzehuels/rowgrid/pkg/cache"
	"github.com/matzehuels/rowgrid/pkg/config"
	"github.com/matzehuels/rowgrid/pkg/grid"
	pkgio "github.com/matzehuels/rowgrid/pkg/io"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "rowgrid"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Rowgrid edits row-based grid layouts",
		Long: `Rowgrid edits layouts made of components arranged in rows of 24 units.
Components can be resized against their neighbour and dragged to new positions;
every row is rescaled so it always fills the full width.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/rowgrid/config.toml)")

	root.AddCommand(c.newCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.resizeCommand())
	root.AddCommand(c.moveCommand())
	root.AddCommand(c.fixCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.Logger.Debug("config loaded", "path", c.configPath, "base", cfg.Base, "store", cfg.Store.Backend)
	return nil
}

// =============================================================================
// Documents
// =============================================================================

// openLayout reads a layout file using the configured grid options.
func (c *CLI) openLayout(path string) (*pkgio.Document, *grid.Layout, error) {
	doc, l, err := pkgio.ImportLayout(path, c.cfg.GridOptions()...)
	if err != nil {
		return nil, nil, err
	}
	c.Logger.Debug("layout loaded", "path", path, "components", l.Len(), "rows", len(l.Rows()))
	return doc, l, nil
}

// saveLayout stores l in doc and writes doc back to path.
func (c *CLI) saveLayout(doc *pkgio.Document, l *grid.Layout, path string) error {
	doc.SetLayout(l)
	if err := pkgio.Export(doc, path); err != nil {
		return err
	}
	c.Logger.Debug("layout saved", "path", path)
	return nil
}

// =============================================================================
// Cache
// =============================================================================

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/rowgrid/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// dataDir returns the data directory using XDG standard (~/.local/share/rowgrid/).
func dataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{"svg"}
	}
	return strings.Split(s, ",")
}
