package editor

// PointerKind is the phase of a pointer event.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
)

// PointerEvent is a host-independent pointer event in view units. Primary
// reports whether the primary button is held.
type PointerEvent struct {
	Kind    PointerKind
	X, Y    float64
	Primary bool
}

// Pointer routes ev to the matching gesture operation and reports whether
// the layout changed. Rejected resize moves are returned as errors with the
// layout untouched; callers driving a UI usually ignore them.
//
// A down event while a gesture is still active first commits that gesture,
// which covers a release that happened outside the host window.
func (e *Editor) Pointer(ev PointerEvent) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch ev.Kind {
	case PointerDown:
		if !ev.Primary {
			return false, nil
		}
		changed := e.endActive()
		v := e.view()
		if s, ok := v.SplitterAt(ev.X, ev.Y); ok {
			return changed, e.beginResize(s.Right, ev.X)
		}
		if c, ok := v.ComponentAt(ev.X, ev.Y); ok {
			return changed, e.beginDrag(c.ID)
		}
		return changed, nil

	case PointerMove:
		switch e.active() {
		case GestureResize:
			return e.resizeTo(ev.X, ev.Primary)
		case GestureDrag:
			return e.dragOver(ev.X, ev.Y)
		}
		return false, nil

	case PointerUp:
		return e.endActive(), nil
	}
	return false, nil
}

// endActive commits whatever gesture is running and reports whether it
// had changed the layout.
func (e *Editor) endActive() bool {
	switch e.active() {
	case GestureResize:
		changed := e.updates > 0
		_ = e.endResize()
		return changed
	case GestureDrag:
		changed := e.updates > 0
		_, _ = e.endDrag()
		return changed
	}
	return false
}
