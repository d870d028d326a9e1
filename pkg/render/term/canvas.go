package term

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// cell holds what is printed at one terminal column. A wide rune occupies
// its own cell plus a following cell with an empty string.
type cell struct {
	s     string
	style *lipgloss.Style
}

type canvas struct {
	w, h  int
	cells [][]cell
}

func newCanvas(w, h int, blank *lipgloss.Style) *canvas {
	c := &canvas{w: w, h: h, cells: make([][]cell, h)}
	for y := range c.cells {
		row := make([]cell, w)
		for x := range row {
			row[x] = cell{s: " ", style: blank}
		}
		c.cells[y] = row
	}
	return c
}

func (c *canvas) set(x, y int, s string, st *lipgloss.Style) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y][x] = cell{s: s, style: st}
}

func (c *canvas) restyle(x, y int, st *lipgloss.Style) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y][x].style = st
}

// text writes s centered in [x, x+width), truncated to fit.
func (c *canvas) text(x, y, width int, s string, st *lipgloss.Style) {
	if width <= 0 {
		return
	}
	s = runewidth.Truncate(s, width, "…")
	pad := (width - runewidth.StringWidth(s)) / 2
	col := x + pad
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		c.set(col, y, string(r), st)
		for k := 1; k < rw; k++ {
			c.set(col+k, y, "", st)
		}
		col += rw
	}
}

func (c *canvas) String() string {
	var out strings.Builder
	var run strings.Builder
	for y, row := range c.cells {
		if y > 0 {
			out.WriteByte('\n')
		}
		var cur *lipgloss.Style
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if cur != nil {
				out.WriteString(cur.Render(run.String()))
			} else {
				out.WriteString(run.String())
			}
			run.Reset()
		}
		for _, cl := range row {
			if cl.style != cur {
				flush()
				cur = cl.style
			}
			run.WriteString(cl.s)
		}
		flush()
	}
	return out.String()
}
