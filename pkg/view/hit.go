package view

import "github.com/matzehuels/rowgrid/pkg/grid"

// RowAt returns the row whose full box (padding included) contains y.
func (v View) RowAt(y float64) (Row, bool) {
	for _, r := range v.Rows {
		if y >= r.Rect.Y && y < r.Rect.Bottom() {
			return r, true
		}
	}
	return Row{}, false
}

// SplitterAt returns the splitter under (x, y).
func (v View) SplitterAt(x, y float64) (Splitter, bool) {
	r, ok := v.RowAt(y)
	if !ok {
		return Splitter{}, false
	}
	for _, s := range r.Splitters {
		if s.Rect.Contains(x, y) {
			return s, true
		}
	}
	return Splitter{}, false
}

// ComponentAt returns the component under (x, y).
func (v View) ComponentAt(x, y float64) (Component, bool) {
	r, ok := v.RowAt(y)
	if !ok {
		return Component{}, false
	}
	for _, c := range r.Components {
		if c.Rect.Contains(x, y) {
			return c, true
		}
	}
	return Component{}, false
}

// Target translates a pointer position during a drag into a drop target.
// Over a component the horizontal midpoint decides before or after; in a
// row's padding bands the pointer asks for a new row above or below. It
// returns false when the position does not name a placement, e.g. over a
// splitter or outside every row.
func (v View) Target(x, y float64) (grid.Target, bool) {
	if c, ok := v.ComponentAt(x, y); ok {
		return grid.Target{
			Placement: grid.HorizontalPlacement(x, c.Rect.X, c.Rect.W),
			Component: c.ID,
		}, true
	}
	r, ok := v.RowAt(y)
	if !ok {
		return grid.Target{}, false
	}
	p := grid.VerticalPlacement(y, r.Content.Y, r.Content.Bottom())
	if p == grid.PlaceNone {
		return grid.Target{}, false
	}
	return grid.Target{Placement: p, Row: r.Index}, true
}
