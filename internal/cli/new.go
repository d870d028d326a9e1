package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rowgrid/pkg/grid"
	pkgio "github.com/matzehuels/rowgrid/pkg/io"
)

// newCommand creates the "new" command that writes a starter document.
func (c *CLI) newCommand() *cobra.Command {
	var (
		name  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "new FILE",
		Short: "Create a layout document with a starter layout",
		Long: `Create a layout document with six components in three rows.

The file format follows the extension: .json, .yaml/.yml or .toml.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runNew(args[0], name, force)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "document name")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	return cmd
}

func (c *CLI) runNew(path, name string, force bool) error {
	if _, err := pkgio.FormatFromPath(path); err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	l, err := grid.New(grid.Sample(), c.cfg.GridOptions()...)
	if err != nil {
		return err
	}
	// Normalize is a no-op for the default base; other bases get rescaled rows.
	grid.Normalize(l)

	doc := pkgio.NewDocument(name, l)
	if err := pkgio.Export(doc, path); err != nil {
		return err
	}

	printSuccess("Created layout")
	printFile(path)
	printStats(l.Len(), len(l.Rows()), len(l.Malformed()))
	printNextStep("Edit it", fmt.Sprintf("%s edit %s", appName, path))
	return nil
}
