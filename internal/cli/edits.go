package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rowgrid/pkg/grid"
	"github.com/matzehuels/rowgrid/pkg/render/term"
	"github.com/matzehuels/rowgrid/pkg/view"
)

// editOpts are the flags shared by the scriptable edit commands.
type editOpts struct {
	dryRun  bool
	preview bool
}

func (o *editOpts) register(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&o.dryRun, "dry-run", "n", false, "print the result without writing the file")
	cmd.Flags().BoolVar(&o.preview, "preview", false, "draw the resulting layout")
}

// applyEdit loads path, runs fn on its layout and writes the result back
// unless dry-run is set. fn returns a one-line summary of what it did.
func (c *CLI) applyEdit(path string, opts editOpts, fn func(*grid.Layout) (string, error)) error {
	doc, l, err := c.openLayout(path)
	if err != nil {
		return err
	}
	summary, err := fn(l)
	if err != nil {
		printError("Edit rejected, %s is unchanged", path)
		return err
	}

	if opts.dryRun {
		printInfo("%s (dry run)", summary)
	} else {
		if err := c.saveLayout(doc, l, path); err != nil {
			return err
		}
		printSuccess("%s", summary)
		printFile(path)
	}
	printStats(l.Len(), len(l.Rows()), len(l.Malformed()))
	if opts.preview {
		printNewline()
		fmt.Println(term.Render(view.Build(l, view.TerminalOptions(terminalWidth())), term.NoHighlight))
	}
	return nil
}

// resizeCommand creates the "resize" command.
func (c *CLI) resizeCommand() *cobra.Command {
	var (
		opts     editOpts
		splitter int
		delta    int
	)

	cmd := &cobra.Command{
		Use:   "resize FILE",
		Short: "Move units across one splitter",
		Long: `Move units across the splitter in front of component index --splitter.

A positive --delta shrinks the left component and grows the right one;
a negative delta does the opposite. Sizes must stay above zero.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.applyEdit(args[0], opts, func(l *grid.Layout) (string, error) {
				if err := grid.Resize(l, splitter-1, splitter, delta); err != nil {
					return "", err
				}
				return fmt.Sprintf("Resized %d:%d to %s and %s", splitter-1, splitter,
					grid.SizeFraction(l.Size(splitter-1), l.Base()),
					grid.SizeFraction(l.Size(splitter), l.Base())), nil
			})
		},
	}

	cmd.Flags().IntVarP(&splitter, "splitter", "s", 0, "index of the component right of the splitter")
	cmd.Flags().IntVarP(&delta, "delta", "d", 0, "units to move from left to right")
	_ = cmd.MarkFlagRequired("splitter")
	_ = cmd.MarkFlagRequired("delta")
	opts.register(cmd)

	return cmd
}

// moveCommand creates the "move" command.
func (c *CLI) moveCommand() *cobra.Command {
	var (
		opts               editOpts
		id                 int
		before, after      int
		rowAbove, rowBelow int
	)

	cmd := &cobra.Command{
		Use:   "move FILE",
		Short: "Move a component next to another or into a new row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var t grid.Target
			switch {
			case cmd.Flags().Changed("before"):
				t = grid.Target{Placement: grid.PlaceBefore, Component: before}
			case cmd.Flags().Changed("after"):
				t = grid.Target{Placement: grid.PlaceAfter, Component: after}
			case cmd.Flags().Changed("row-above"):
				t = grid.Target{Placement: grid.PlaceRowAbove, Row: rowAbove}
			case cmd.Flags().Changed("row-below"):
				t = grid.Target{Placement: grid.PlaceRowBelow, Row: rowBelow}
			}
			return c.applyEdit(args[0], opts, func(l *grid.Layout) (string, error) {
				if _, err := grid.Move(l, id, t); err != nil {
					return "", err
				}
				return fmt.Sprintf("Moved component %d %s", id, describeTarget(t)), nil
			})
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "ID of the component to move")
	cmd.Flags().IntVar(&before, "before", 0, "place before the component with this ID")
	cmd.Flags().IntVar(&after, "after", 0, "place after the component with this ID")
	cmd.Flags().IntVar(&rowAbove, "row-above", 0, "place in a new row above this row index")
	cmd.Flags().IntVar(&rowBelow, "row-below", 0, "place in a new row below this row index")
	_ = cmd.MarkFlagRequired("id")
	cmd.MarkFlagsMutuallyExclusive("before", "after", "row-above", "row-below")
	cmd.MarkFlagsOneRequired("before", "after", "row-above", "row-below")
	opts.register(cmd)

	return cmd
}

func describeTarget(t grid.Target) string {
	switch t.Placement {
	case grid.PlaceBefore, grid.PlaceAfter:
		return fmt.Sprintf("%s component %d", t.Placement, t.Component)
	case grid.PlaceRowAbove:
		return fmt.Sprintf("into a new row above row %d", t.Row)
	case grid.PlaceRowBelow:
		return fmt.Sprintf("into a new row below row %d", t.Row)
	}
	return "nowhere"
}

// fixCommand creates the "fix" command.
func (c *CLI) fixCommand() *cobra.Command {
	var opts editOpts

	cmd := &cobra.Command{
		Use:   "fix FILE",
		Short: "Rescale rows that do not sum to the base unit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			_, l, err := c.openLayout(path)
			if err != nil {
				return err
			}
			if len(l.Malformed()) == 0 {
				printInfo("All rows already sum to %d", l.Base())
				return nil
			}
			return c.applyEdit(path, opts, func(l *grid.Layout) (string, error) {
				n := grid.Normalize(l)
				return fmt.Sprintf("Rescaled %d %s", n, plural(n, "row", "rows")), nil
			})
		},
	}

	opts.register(cmd)
	return cmd
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

