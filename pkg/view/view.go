package view

import (
	"math"

	"github.com/matzehuels/rowgrid/pkg/grid"
)

// Options controls the geometry of a View.
type Options struct {
	Width         float64 `json:"width" toml:"width"`
	RowHeight     float64 `json:"row_height" toml:"row_height"`
	PaddingTop    float64 `json:"padding_top" toml:"padding_top"`
	PaddingBottom float64 `json:"padding_bottom" toml:"padding_bottom"`
	SplitterWidth float64 `json:"splitter_width" toml:"splitter_width"`
	Snap          bool    `json:"snap" toml:"snap"`
}

// DefaultOptions returns pixel geometry suitable for SVG output.
func DefaultOptions() Options {
	return Options{
		Width:         960,
		RowHeight:     120,
		PaddingTop:    16,
		PaddingBottom: 16,
		SplitterWidth: 8,
	}
}

// TerminalOptions returns cell geometry for a terminal of the given width.
func TerminalOptions(width int) Options {
	return Options{
		Width:         float64(width),
		RowHeight:     7,
		PaddingTop:    1,
		PaddingBottom: 1,
		SplitterWidth: 1,
		Snap:          true,
	}
}

// Rect is an axis-aligned box.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Right returns the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// CenterX returns the horizontal center.
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// Contains reports whether (x, y) lies inside the half-open box.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Component is the rendered form of one layout component.
type Component struct {
	ID          int    `json:"id"`
	Kind        string `json:"kind"`
	Label       string `json:"label"`
	Size        int    `json:"size"`
	Fraction    string `json:"fraction"`
	Index       int    `json:"index"`
	Row         int    `json:"row"`
	Rect        Rect   `json:"rect"`
	HasSplitter bool   `json:"has_splitter"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

// Splitter is the handle between two adjacent components of a row. Right is
// the component index the splitter sits in front of.
type Splitter struct {
	Row   int  `json:"row"`
	Left  int  `json:"left"`
	Right int  `json:"right"`
	Rect  Rect `json:"rect"`
}

// Row is one rendered row.
type Row struct {
	Index      int         `json:"index"`
	Sum        int         `json:"sum"`
	Malformed  bool        `json:"malformed,omitempty"`
	Rect       Rect        `json:"rect"`
	Content    Rect        `json:"content"`
	Components []Component `json:"components"`
	Splitters  []Splitter  `json:"splitters,omitempty"`
}

// View is the full derived presentation.
type View struct {
	Base   int     `json:"base"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Rows   []Row   `json:"rows"`
}

// Label returns the display label for a component kind.
func Label(kind string) string { return kind }

// Build derives the presentation of l.
func Build(l *grid.Layout, opts Options) View {
	base := l.Base()
	cs := l.Components()
	rows := l.Rows()

	v := View{
		Base:   base,
		Width:  opts.Width,
		Height: float64(len(rows)) * opts.RowHeight,
		Rows:   make([]Row, 0, len(rows)),
	}

	contentH := math.Max(0, opts.RowHeight-opts.PaddingTop-opts.PaddingBottom)
	for ri, r := range rows {
		y := float64(ri) * opts.RowHeight
		row := Row{
			Index:     ri,
			Sum:       r.Sum,
			Malformed: r.Sum != base,
			Rect:      Rect{X: 0, Y: y, W: opts.Width, H: opts.RowHeight},
			Content:   Rect{X: 0, Y: y + opts.PaddingTop, W: opts.Width, H: contentH},
		}

		n := r.Len()
		avail := math.Max(0, opts.Width-float64(n-1)*opts.SplitterWidth)
		edge := func(acc int) float64 {
			e := avail * float64(acc) / float64(r.Sum)
			if opts.Snap {
				e = math.Round(e)
			}
			return e
		}

		acc := 0
		for k := 0; k < n; k++ {
			i := r.Start + k
			c := cs[i]
			offset := float64(k) * opts.SplitterWidth
			left := offset + edge(acc)
			acc += c.Size
			right := offset + edge(acc)

			if k > 0 {
				row.Splitters = append(row.Splitters, Splitter{
					Row:   ri,
					Left:  i - 1,
					Right: i,
					Rect:  Rect{X: left - opts.SplitterWidth, Y: row.Content.Y, W: opts.SplitterWidth, H: contentH},
				})
			}

			row.Components = append(row.Components, Component{
				ID:          c.ID,
				Kind:        c.Kind,
				Label:       Label(c.Kind),
				Size:        c.Size,
				Fraction:    grid.SizeFraction(c.Size, base),
				Index:       i,
				Row:         ri,
				Rect:        Rect{X: left, Y: row.Content.Y, W: right - left, H: contentH},
				HasSplitter: k > 0,
			})
		}
		v.Rows = append(v.Rows, row)
	}
	return v
}

// WithPlaceholder returns a copy of v with the component id marked as the
// drag placeholder.
func (v View) WithPlaceholder(id int) View {
	out := v
	out.Rows = make([]Row, len(v.Rows))
	for ri, r := range v.Rows {
		r.Components = append([]Component(nil), r.Components...)
		for ci := range r.Components {
			if r.Components[ci].ID == id {
				r.Components[ci].Placeholder = true
			}
		}
		out.Rows[ri] = r
	}
	return out
}

// Component looks up a rendered component by ID.
func (v View) Component(id int) (Component, bool) {
	for _, r := range v.Rows {
		for _, c := range r.Components {
			if c.ID == id {
				return c, true
			}
		}
	}
	return Component{}, false
}

// Fractions returns the reduced fraction label of every component, by ID.
func (v View) Fractions() map[int]string {
	out := make(map[int]string)
	for _, r := range v.Rows {
		for _, c := range r.Components {
			out[c.ID] = c.Fraction
		}
	}
	return out
}
