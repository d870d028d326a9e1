// Package term draws a layout view on a character grid for the terminal
// editor and `rowgrid show --preview`.
//
// The view must be built with cell geometry (view.TerminalOptions) so that
// every edge falls on a whole column. Components are drawn as rounded boxes
// coloured by kind, splitters as dotted columns, and malformed rows get a
// note in their bottom padding band.
package term

import (
	"fmt"
	"hash/fnv"
	"math"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/rowgrid/pkg/grid"
	"github.com/matzehuels/rowgrid/pkg/view"
)

// Options controls highlighting.
type Options struct {
	// ActiveSplitter is the component index right of the splitter being
	// dragged, or -1.
	ActiveSplitter int
	// Target is the current drop target during a drag.
	Target *grid.Target
}

// NoHighlight renders without any highlighting.
var NoHighlight = Options{ActiveSplitter: -1}

var kindColors = []lipgloss.Color{"75", "35", "220", "176", "141", "208"}

// KindColor returns a stable terminal color for a component kind.
func KindColor(kind string) lipgloss.Color {
	h := fnv.New32a()
	h.Write([]byte(kind))
	return kindColors[h.Sum32()%uint32(len(kindColors))]
}

type palette struct {
	blank       lipgloss.Style
	label       lipgloss.Style
	fraction    lipgloss.Style
	placeholder lipgloss.Style
	splitter    lipgloss.Style
	active      lipgloss.Style
	malformed   lipgloss.Style
	kinds       map[string]*lipgloss.Style
}

func newPalette() *palette {
	return &palette{
		blank:       lipgloss.NewStyle(),
		label:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
		fraction:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Faint(true),
		splitter:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		active:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36")),
		malformed:   lipgloss.NewStyle().Foreground(lipgloss.Color("167")),
		kinds:       make(map[string]*lipgloss.Style),
	}
}

func (p *palette) kind(k string) *lipgloss.Style {
	if st, ok := p.kinds[k]; ok {
		return st
	}
	st := lipgloss.NewStyle().Foreground(KindColor(k))
	p.kinds[k] = &st
	return &st
}

// Render draws v.
func Render(v view.View, opts Options) string {
	w, h := int(math.Round(v.Width)), int(math.Round(v.Height))
	if w <= 0 || h <= 0 {
		return ""
	}
	p := newPalette()
	c := newCanvas(w, h, &p.blank)

	for _, row := range v.Rows {
		for _, comp := range row.Components {
			drawComponent(c, p, comp)
		}
		for _, s := range row.Splitters {
			st := &p.splitter
			glyph := "┊"
			if s.Right == opts.ActiveSplitter {
				st, glyph = &p.active, "┃"
			}
			x := int(s.Rect.X)
			for y := int(s.Rect.Y); y < int(s.Rect.Bottom()); y++ {
				c.set(x, y, glyph, st)
			}
		}
		if row.Malformed {
			note := fmt.Sprintf("▲ row sums to %d/%d", row.Sum, v.Base)
			c.text(0, int(row.Rect.Bottom())-1, w, note, &p.malformed)
		}
	}

	if opts.Target != nil {
		drawTarget(c, p, v, *opts.Target)
	}
	return c.String()
}

func drawComponent(c *canvas, p *palette, comp view.Component) {
	x0, y0 := int(comp.Rect.X), int(comp.Rect.Y)
	w, h := int(comp.Rect.W), int(comp.Rect.H)
	if w <= 0 || h <= 0 {
		return
	}

	st := p.kind(comp.Kind)
	tl, tr, bl, br, hz, vt := "╭", "╮", "╰", "╯", "─", "│"
	if comp.Placeholder {
		st = &p.placeholder
		tl, tr, bl, br, hz, vt = "┌", "┐", "└", "┘", "╌", "┆"
	}

	if w < 2 || h < 2 {
		for y := y0; y < y0+h; y++ {
			for x := x0; x < x0+w; x++ {
				c.set(x, y, "▐", st)
			}
		}
		return
	}

	for x := x0 + 1; x < x0+w-1; x++ {
		c.set(x, y0, hz, st)
		c.set(x, y0+h-1, hz, st)
	}
	for y := y0 + 1; y < y0+h-1; y++ {
		c.set(x0, y, vt, st)
		c.set(x0+w-1, y, vt, st)
	}
	c.set(x0, y0, tl, st)
	c.set(x0+w-1, y0, tr, st)
	c.set(x0, y0+h-1, bl, st)
	c.set(x0+w-1, y0+h-1, br, st)

	if comp.Placeholder {
		return
	}
	inner := h - 2
	line := y0 + 1 + max(0, (inner-2)/2)
	c.text(x0+1, line, w-2, comp.Label, &p.label)
	if inner >= 2 {
		c.text(x0+1, line+1, w-2, comp.Fraction, &p.fraction)
	}
}

func drawTarget(c *canvas, p *palette, v view.View, t grid.Target) {
	switch t.Placement {
	case grid.PlaceRowAbove, grid.PlaceRowBelow:
		if t.Row < 0 || t.Row >= len(v.Rows) {
			return
		}
		r := v.Rows[t.Row]
		y := int(r.Rect.Y)
		if t.Placement == grid.PlaceRowBelow {
			y = int(r.Rect.Bottom()) - 1
		}
		for x := 0; x < c.w; x++ {
			c.set(x, y, "━", &p.active)
		}
	case grid.PlaceBefore, grid.PlaceAfter:
		comp, ok := v.Component(t.Component)
		if !ok {
			return
		}
		x := int(comp.Rect.X)
		if t.Placement == grid.PlaceAfter {
			x = int(comp.Rect.Right()) - 1
		}
		for y := int(comp.Rect.Y); y < int(comp.Rect.Bottom()); y++ {
			c.restyle(x, y, &p.active)
		}
	}
}
