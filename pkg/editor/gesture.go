package editor

import (
	"context"

	"github.com/matzehuels/rowgrid/pkg/errors"
	"github.com/matzehuels/rowgrid/pkg/grid"
	"github.com/matzehuels/rowgrid/pkg/observability"
)

// BeginResize starts dragging the splitter in front of component index
// splitter. x is the pointer position in view units.
func (e *Editor) BeginResize(splitter int, x float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.beginResize(splitter, x)
}

func (e *Editor) beginResize(splitter int, x float64) error {
	if err := e.idle(); err != nil {
		return err
	}
	g, err := grid.BeginResize(e.layout, splitter, x, e.viewOpts.Width)
	if err != nil {
		return err
	}
	e.resize = g
	e.start(GestureResize)
	left, right := g.StartSizes()
	e.logger.Debug("resize start", "left", g.Left(), "right", g.Right(), "sizes", []int{left, right})
	return nil
}

// ResizeTo updates the active resize for pointer position x. Moves without
// the primary button held are ignored. A move that would shrink a component
// to zero returns ErrCodeInvalidGeometry and keeps the previous sizes. The
// result reports whether any size changed.
func (e *Editor) ResizeTo(x float64, primaryHeld bool) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.resizeTo(x, primaryHeld)
}

func (e *Editor) resizeTo(x float64, primaryHeld bool) (bool, error) {
	if e.resize == nil {
		return false, errors.New(errors.ErrCodeNoGesture, "no resize in progress")
	}
	if !primaryHeld {
		return false, nil
	}
	g := e.resize
	delta := g.Delta(x)
	if delta == g.Applied() {
		return false, nil
	}
	if err := g.Apply(delta); err != nil {
		e.logger.Debug("resize rejected", "delta", delta, "err", err)
		observability.Editor().OnRejected(context.Background(), GestureResize.String(), err)
		return false, err
	}
	e.updates++
	e.logger.Debug("resize", "delta", delta,
		"sizes", []int{e.layout.Size(g.Left()), e.layout.Size(g.Right())})
	return true, nil
}

// EndResize commits the active resize.
func (e *Editor) EndResize() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.endResize()
}

func (e *Editor) endResize() error {
	if e.resize == nil {
		return errors.New(errors.ErrCodeNoGesture, "no resize in progress")
	}
	e.resize.End()
	e.logger.Debug("resize end", "delta", e.resize.Applied())
	e.resize = nil
	e.finish(GestureResize)
	return nil
}

// BeginDrag starts moving the component with the given ID.
func (e *Editor) BeginDrag(id int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.beginDrag(id)
}

func (e *Editor) beginDrag(id int) error {
	if err := e.idle(); err != nil {
		return err
	}
	s, err := grid.BeginDrag(e.layout, id)
	if err != nil {
		return err
	}
	e.drag = s
	e.start(GestureDrag)
	e.logger.Debug("drag start", "id", id)
	return nil
}

// DragOver hit-tests (x, y) against the current view and moves the dragged
// component to the resulting target. Positions that name no placement, such
// as a splitter, leave the layout unchanged.
func (e *Editor) DragOver(x, y float64) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dragOver(x, y)
}

func (e *Editor) dragOver(x, y float64) (bool, error) {
	if e.drag == nil {
		return false, errors.New(errors.ErrCodeNoGesture, "no drag in progress")
	}
	t, ok := e.view().Target(x, y)
	if !ok {
		return false, nil
	}
	return e.dragOverTarget(t)
}

// DragOverTarget moves the dragged component to t.
func (e *Editor) DragOverTarget(t grid.Target) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dragOverTarget(t)
}

func (e *Editor) dragOverTarget(t grid.Target) (bool, error) {
	if e.drag == nil {
		return false, errors.New(errors.ErrCodeNoGesture, "no drag in progress")
	}
	changed, err := e.drag.Over(t)
	if err != nil {
		if errors.Is(err, errors.ErrCodeInvalidGeometry) {
			e.logger.Debug("drag rejected", "id", e.drag.Placeholder(), "target", t.Placement, "err", err)
			observability.Editor().OnRejected(context.Background(), GestureDrag.String(), err)
		}
		return false, err
	}
	if changed {
		e.updates++
		e.target = &t
		e.logger.Debug("drag over", "id", e.drag.Placeholder(), "target", t.Placement,
			"component", t.Component, "row", t.Row)
	}
	return changed, nil
}

// EndDrag commits the drag and returns the resulting order.
func (e *Editor) EndDrag() ([]grid.Component, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.endDrag()
}

func (e *Editor) endDrag() ([]grid.Component, error) {
	if e.drag == nil {
		return nil, errors.New(errors.ErrCodeNoGesture, "no drag in progress")
	}
	cs := e.drag.End()
	e.logger.Debug("drag end", "id", e.drag.Placeholder(), "moves", e.drag.Moves())
	e.drag = nil
	e.target = nil
	e.finish(GestureDrag)
	return cs, nil
}
