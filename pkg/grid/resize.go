package grid

import (
	"math"

	"github.com/matzehuels/rowgrid/pkg/errors"
)

// Resize moves delta base units from the component at index left to its right
// neighbour at index right: the new sizes are size(left)-delta and
// size(right)+delta. Both components must be adjacent and in the same row.
// A resize that would leave either size at or below zero is rejected with
// ErrCodeInvalidGeometry and the layout is not modified.
func Resize(l *Layout, left, right, delta int) error {
	if err := checkSplitter(l, left, right); err != nil {
		return err
	}
	return resizeFrom(l, left, right, l.Size(left), l.Size(right), delta)
}

func resizeFrom(l *Layout, left, right, leftSize, rightSize, delta int) error {
	nl, nr := leftSize-delta, rightSize+delta
	if nl <= 0 || nr <= 0 {
		return errors.New(errors.ErrCodeInvalidGeometry, "resize by %d gives sizes %d and %d", delta, nl, nr)
	}
	l.setSize(left, nl)
	l.setSize(right, nr)
	return nil
}

func checkSplitter(l *Layout, left, right int) error {
	if left < 0 || right >= l.Len() || right != left+1 {
		return errors.New(errors.ErrCodeNotAdjacent, "components %d and %d are not adjacent", left, right)
	}
	if r := l.RowOf(left); r < 0 || r != l.RowOf(right) {
		return errors.New(errors.ErrCodeNotAdjacent, "components %d and %d are in different rows", left, right)
	}
	return nil
}

// ResizeGesture is one splitter drag: it starts on pointer-down, is updated
// on every pointer move while the primary button is held and ends on
// pointer-up. Sizes are always derived from the values captured at start.
type ResizeGesture struct {
	layout     *Layout
	left       int
	right      int
	startLeft  int
	startRight int
	originX    float64
	rowWidth   float64
	delta      int
	ended      bool
}

// BeginResize starts a resize gesture on the splitter in front of component
// index splitter, i.e. between splitter-1 and splitter. originX is the pointer
// position at gesture start and rowWidth the rendered width of the row, both
// in the same unit (pixels or terminal cells).
func BeginResize(l *Layout, splitter int, originX, rowWidth float64) (*ResizeGesture, error) {
	left, right := splitter-1, splitter
	if err := checkSplitter(l, left, right); err != nil {
		return nil, err
	}
	if rowWidth <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "row width must be positive, got %g", rowWidth)
	}
	return &ResizeGesture{
		layout:     l,
		left:       left,
		right:      right,
		startLeft:  l.Size(left),
		startRight: l.Size(right),
		originX:    originX,
		rowWidth:   rowWidth,
	}, nil
}

// Left returns the index of the component left of the splitter.
func (g *ResizeGesture) Left() int { return g.left }

// Right returns the index of the component right of the splitter.
func (g *ResizeGesture) Right() int { return g.right }

// StartSizes returns the sizes captured when the gesture began.
func (g *ResizeGesture) StartSizes() (left, right int) { return g.startLeft, g.startRight }

// Applied returns the delta of the last accepted move.
func (g *ResizeGesture) Applied() int { return g.delta }

// Delta converts the pointer position x into base units relative to the
// gesture origin: floor((originX - x) / (rowWidth / base)). Moving the
// pointer right yields a negative delta, which grows the left component.
func (g *ResizeGesture) Delta(x float64) int {
	unit := g.rowWidth / float64(g.layout.Base())
	return int(math.Floor((g.originX - x) / unit))
}

// Move applies the delta for pointer position x on top of the start sizes.
// A rejected move returns ErrCodeInvalidGeometry and keeps the last valid
// sizes.
func (g *ResizeGesture) Move(x float64) error {
	return g.Apply(g.Delta(x))
}

// Apply sets the sizes to start-left minus delta and start-right plus delta.
func (g *ResizeGesture) Apply(delta int) error {
	if g.ended {
		return errors.New(errors.ErrCodeNoGesture, "resize gesture already ended")
	}
	if err := resizeFrom(g.layout, g.left, g.right, g.startLeft, g.startRight, delta); err != nil {
		return err
	}
	g.delta = delta
	return nil
}

// End commits the gesture. There is no rollback: the last accepted sizes stay.
func (g *ResizeGesture) End() { g.ended = true }
