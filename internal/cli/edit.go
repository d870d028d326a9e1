package cli

import (
	"context"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/rowgrid/pkg/editor"
	"github.com/matzehuels/rowgrid/pkg/grid"
	pkgio "github.com/matzehuels/rowgrid/pkg/io"
	"github.com/matzehuels/rowgrid/pkg/view"
	"github.com/matzehuels/rowgrid/pkg/watcher"
)

// defaultEditPath is written when edit starts without a file.
const defaultEditPath = "layout.json"

// editCommand creates the interactive "edit" command.
func (c *CLI) editCommand() *cobra.Command {
	var (
		watch   bool
		logFile string
	)

	cmd := &cobra.Command{
		Use:   "edit [FILE]",
		Short: "Edit a layout interactively",
		Long: `Edit a layout in the terminal.

Drag a splitter between two components to resize them, or drag a component
to move it: drop on the left or right half of another component to place it
before or after, or in the gap above or below a row to start a new row.

Without FILE a starter layout is opened and saved to ` + defaultEditPath + `.
With --watch the file is reloaded whenever it changes on disk.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultEditPath
			if len(args) == 1 {
				path = args[0]
			}
			return c.runEdit(cmd.Context(), path, len(args) == 1, watch, logFile)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload the file when it changes on disk")
	cmd.Flags().StringVar(&logFile, "log-file", "", "write debug logs to this file while the editor runs")

	return cmd
}

func (c *CLI) runEdit(ctx context.Context, path string, explicit, watch bool, logFile string) error {
	doc, l, err := c.editTarget(path, explicit)
	if err != nil {
		return err
	}

	// The alternate screen owns the terminal; logs go to --log-file or nowhere.
	restore := c.Logger.GetLevel()
	var logOut io.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		logOut = f
		c.SetLogLevel(LogDebug)
	}
	c.Logger.SetOutput(logOut)
	defer func() {
		c.Logger.SetOutput(os.Stderr)
		c.SetLogLevel(restore)
	}()

	ed := editor.New(l, editor.WithLogger(c.Logger), editor.WithViewOptions(view.TerminalOptions(terminalWidth())))

	var w *watcher.Watcher
	if watch {
		w, err = watcher.New(path, watcher.WithLogger(c.Logger))
		if err != nil {
			return err
		}
		defer w.Close()
		go func() {
			if err := w.Run(ctx); err != nil && ctx.Err() == nil {
				c.Logger.Warn("watcher stopped", "err", err)
			}
		}()
	}

	m := newEditModel(ed, doc, path, w, c.Logger, c.cfg.GridOptions()...)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return err
	}

	if ed.Dirty() {
		printWarning("Quit without saving %s", path)
	}
	return nil
}

// editTarget opens path. A missing default file yields the starter layout,
// which is written to disk so that --watch has something to watch.
func (c *CLI) editTarget(path string, explicit bool) (*pkgio.Document, *grid.Layout, error) {
	if _, err := os.Stat(path); err == nil || explicit {
		return c.openLayout(path)
	}
	l, err := grid.New(grid.Sample(), c.cfg.GridOptions()...)
	if err != nil {
		return nil, nil, err
	}
	grid.Normalize(l)
	doc := pkgio.NewDocument("", l)
	if err := pkgio.Export(doc, path); err != nil {
		return nil, nil, err
	}
	return doc, l, nil
}
