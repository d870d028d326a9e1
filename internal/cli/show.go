package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	xterm "golang.org/x/term"

	"github.com/matzehuels/rowgrid/pkg/grid"
	"github.com/matzehuels/rowgrid/pkg/render/term"
	"github.com/matzehuels/rowgrid/pkg/view"
)

const defaultPreviewWidth = 80

// terminalWidth returns the width of stdout, or defaultPreviewWidth when
// stdout is not a terminal.
func terminalWidth() int {
	if w, _, err := xterm.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultPreviewWidth
}

// showCommand creates the "show" command.
func (c *CLI) showCommand() *cobra.Command {
	var (
		preview bool
		width   int
	)

	cmd := &cobra.Command{
		Use:   "show FILE",
		Short: "Print a layout as a table with a terminal preview",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, l, err := c.openLayout(args[0])
			if err != nil {
				return err
			}

			if doc.Name != "" {
				printKeyValue("Name", doc.Name)
			}
			printKeyValue("ID", doc.ID)
			printKeyValue("Base", strconv.Itoa(l.Base()))
			if !doc.UpdatedAt.IsZero() {
				printKeyValue("Updated", doc.UpdatedAt.Local().Format("2006-01-02 15:04"))
			}
			printStats(l.Len(), len(l.Rows()), len(l.Malformed()))
			printNewline()
			fmt.Println(componentTable(l))

			if preview {
				printNewline()
				if width <= 0 {
					width = terminalWidth()
				}
				v := view.Build(l, view.TerminalOptions(width))
				fmt.Println(term.Render(v, term.NoHighlight))
			}
			if len(l.Malformed()) > 0 {
				printWarning("Some rows do not sum to %d", l.Base())
				printNextStep("Rescale them", fmt.Sprintf("%s fix %s", appName, args[0]))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&preview, "preview", true, "draw the layout below the table")
	cmd.Flags().IntVarP(&width, "width", "w", 0, "preview width in columns (default: terminal width)")

	return cmd
}

// componentTable lists every component with its row, size and fraction.
func componentTable(l *grid.Layout) string {
	rows := [][]string{}
	for r, row := range l.Rows() {
		for i := row.Start; i < row.End; i++ {
			comp := l.Component(i)
			rows = append(rows, []string{
				strconv.Itoa(i),
				strconv.Itoa(comp.ID),
				comp.Kind,
				strconv.Itoa(r),
				strconv.Itoa(comp.Size),
				grid.SizeFraction(comp.Size, l.Base()),
			})
		}
	}

	malformed := map[int]bool{}
	for r, row := range l.Rows() {
		if !row.Complete(l.Base()) {
			malformed[r] = true
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("#", "ID", "Kind", "Row", "Size", "Width").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader.Padding(0, 1)
			}
			st := lipgloss.NewStyle().Padding(0, 1)
			if row >= len(rows) {
				return st
			}
			if r, err := strconv.Atoi(rows[row][3]); err == nil && malformed[r] {
				return st.Foreground(colorYellow)
			}
			if col == 2 {
				return st.Foreground(term.KindColor(rows[row][2]))
			}
			return st.Foreground(colorWhite)
		}).
		String()
}
