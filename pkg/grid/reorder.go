package grid

import (
	"slices"
	"strings"

	"github.com/matzehuels/rowgrid/pkg/errors"
)

// Placement says where a dragged component goes relative to the hovered
// component or row.
type Placement int

const (
	PlaceNone     Placement = iota // pointer is inside a row's content band
	PlaceBefore                    // before the hovered component
	PlaceAfter                     // after the hovered component
	PlaceRowAbove                  // new row above the hovered row
	PlaceRowBelow                  // new row below the hovered row
)

var placementNames = map[Placement]string{
	PlaceNone:     "none",
	PlaceBefore:   "before",
	PlaceAfter:    "after",
	PlaceRowAbove: "row-above",
	PlaceRowBelow: "row-below",
}

func (p Placement) String() string {
	if s, ok := placementNames[p]; ok {
		return s
	}
	return "unknown"
}

// ParsePlacement parses the names produced by [Placement.String].
func ParsePlacement(s string) (Placement, error) {
	for p, name := range placementNames {
		if strings.EqualFold(s, name) {
			return p, nil
		}
	}
	return PlaceNone, errors.New(errors.ErrCodeInvalidInput, "unknown placement %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (p Placement) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Placement) UnmarshalText(b []byte) error {
	v, err := ParsePlacement(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Target is a drop position. Component is the hovered component's ID for
// PlaceBefore and PlaceAfter; Row is the hovered row index for PlaceRowAbove
// and PlaceRowBelow.
type Target struct {
	Placement Placement `json:"placement"`
	Component int       `json:"component,omitempty"`
	Row       int       `json:"row,omitempty"`
}

// HorizontalPlacement compares the pointer with the horizontal midpoint of
// the hovered component's box.
func HorizontalPlacement(pointerX, left, width float64) Placement {
	if pointerX < left+width/2 {
		return PlaceBefore
	}
	return PlaceAfter
}

// VerticalPlacement reports whether the pointer is in the padding band above
// or below a row's content. Inside the content band it returns PlaceNone.
func VerticalPlacement(pointerY, contentTop, contentBottom float64) Placement {
	switch {
	case pointerY < contentTop:
		return PlaceRowAbove
	case pointerY > contentBottom:
		return PlaceRowBelow
	}
	return PlaceNone
}

// DragSession is one reorder gesture. The dragged component keeps its slot in
// the model for the whole gesture so that row sums stay meaningful; renderers
// draw it as a placeholder.
type DragSession struct {
	layout *Layout
	id     int
	moves  int
	ended  bool
}

// BeginDrag starts dragging the component with the given ID.
func BeginDrag(l *Layout, id int) (*DragSession, error) {
	if _, ok := l.Index(id); !ok {
		return nil, errors.New(errors.ErrCodeUnknownComponent, "no component with id %d", id)
	}
	return &DragSession{layout: l, id: id}, nil
}

// Placeholder returns the ID of the dragged component.
func (s *DragSession) Placeholder() int { return s.id }

// Moves returns how many placements changed the layout so far.
func (s *DragSession) Moves() int { return s.moves }

// Over applies a placement. Rows are taken from the current order, the
// dragged component is moved within that row structure, emptied rows are
// dropped and every row is normalized back to the base unit. It reports
// whether the order or any size changed. On a strict layout a placement that
// would leave a component below size 1 fails with ErrCodeInvalidGeometry and
// changes nothing.
func (s *DragSession) Over(t Target) (bool, error) {
	if s.ended {
		return false, errors.New(errors.ErrCodeNoGesture, "drag session already ended")
	}
	if t.Placement == PlaceNone {
		return false, nil
	}

	l := s.layout
	rows := split(l.components, l.base)
	sr, sc := locate(rows, s.id)
	if sr < 0 {
		return false, errors.New(errors.ErrCodeInternal, "dragged component %d vanished", s.id)
	}
	dragged := rows[sr][sc]

	switch t.Placement {
	case PlaceBefore, PlaceAfter:
		if t.Component == s.id {
			return false, nil
		}
		tr, tc := locate(rows, t.Component)
		if tr < 0 {
			return false, errors.New(errors.ErrCodeUnknownComponent, "no component with id %d", t.Component)
		}
		rows[sr] = slices.Delete(rows[sr], sc, sc+1)
		if tr == sr && sc < tc {
			tc--
		}
		if t.Placement == PlaceAfter {
			tc++
		}
		rows[tr] = slices.Insert(rows[tr], tc, dragged)

	case PlaceRowAbove, PlaceRowBelow:
		if t.Row < 0 || t.Row >= len(rows) {
			return false, errors.New(errors.ErrCodeInvalidInput, "row %d out of range [0, %d)", t.Row, len(rows))
		}
		rows[sr] = slices.Delete(rows[sr], sc, sc+1)
		at := t.Row
		if t.Placement == PlaceRowBelow {
			at++
		}
		rows = slices.Insert(rows, at, []Component{dragged})

	default:
		return false, errors.New(errors.ErrCodeInvalidInput, "unknown placement %d", t.Placement)
	}

	rows = slices.DeleteFunc(rows, func(r []Component) bool { return len(r) == 0 })
	for _, r := range rows {
		normalizeRow(r, l.base, l.correction, s.id)
	}

	next := flatten(rows)
	if i := undersized(next); i >= 0 && l.strict {
		return false, errors.New(errors.ErrCodeInvalidGeometry,
			"placing %d %s gives component %d size %d", s.id, t.Placement, next[i].ID, next[i].Size)
	}
	changed := !slices.Equal(next, l.components)
	if changed {
		l.replace(next)
		s.moves++
	}
	return changed, nil
}

// End finishes the gesture: the placeholder becomes a normal component in its
// final slot and the committed order is returned.
func (s *DragSession) End() []Component {
	s.ended = true
	return s.layout.Components()
}

// Move runs a complete drag gesture with a single placement.
func Move(l *Layout, id int, t Target) ([]Component, error) {
	s, err := BeginDrag(l, id)
	if err != nil {
		return nil, err
	}
	_, err = s.Over(t)
	return s.End(), err
}

func locate(rows [][]Component, id int) (row, col int) {
	for r, cs := range rows {
		for c, comp := range cs {
			if comp.ID == id {
				return r, c
			}
		}
	}
	return -1, -1
}
