// Package editor is the interactive controller around a grid layout.
//
// An [Editor] owns exactly one layout and serializes every mutation behind a
// mutex, so the terminal UI, the HTTP server and the file watcher can share
// it. At most one gesture (a splitter resize or a component drag) is active
// at a time. Pointer input arrives as abstract [PointerEvent] values in view
// units and is routed by [Editor.Pointer]:
//
//   - down on a splitter begins a resize,
//   - down on a component begins a drag,
//   - move updates the active gesture,
//   - up anywhere ends it.
//
// Gestures always commit on release. There is no undo.
package editor

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rowgrid/pkg/errors"
	"github.com/matzehuels/rowgrid/pkg/grid"
	"github.com/matzehuels/rowgrid/pkg/observability"
	"github.com/matzehuels/rowgrid/pkg/view"
)

// Gesture identifies the active pointer gesture.
type Gesture int

const (
	GestureNone Gesture = iota
	GestureResize
	GestureDrag
)

func (g Gesture) String() string {
	switch g {
	case GestureResize:
		return "resize"
	case GestureDrag:
		return "drag"
	default:
		return "none"
	}
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the logger. Mutations are logged at debug level.
func WithLogger(l *log.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithViewOptions sets the geometry used for hit testing and View.
func WithViewOptions(o view.Options) Option {
	return func(e *Editor) { e.viewOpts = o }
}

// Editor is the single owner of a layout.
type Editor struct {
	mu       sync.Mutex
	layout   *grid.Layout
	viewOpts view.Options
	logger   *log.Logger

	resize  *grid.ResizeGesture
	drag    *grid.DragSession
	target  *grid.Target
	started time.Time
	updates int
	dirty   bool
}

// New creates an editor for l. The editor takes ownership of l.
func New(l *grid.Layout, opts ...Option) *Editor {
	e := &Editor{
		layout:   l,
		viewOpts: view.DefaultOptions(),
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Active reports the gesture in progress.
func (e *Editor) Active() Gesture {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active()
}

func (e *Editor) active() Gesture {
	switch {
	case e.resize != nil:
		return GestureResize
	case e.drag != nil:
		return GestureDrag
	}
	return GestureNone
}

// Layout returns a copy of the current layout.
func (e *Editor) Layout() *grid.Layout {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.layout.Clone()
}

// Components returns the current component order.
func (e *Editor) Components() []grid.Component {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.layout.Components()
}

// View derives the current presentation. During a drag the dragged
// component is marked as the placeholder.
func (e *Editor) View() view.View {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.view()
}

func (e *Editor) view() view.View {
	v := view.Build(e.layout, e.viewOpts)
	if e.drag != nil {
		v = v.WithPlaceholder(e.drag.Placeholder())
	}
	return v
}

// Snapshot is a consistent copy of the editor state for drawing a frame.
type Snapshot struct {
	View    view.View
	Gesture Gesture
	// Splitter is the component index right of the splitter being dragged,
	// or -1.
	Splitter int
	// Target is the last drop target that moved the dragged component.
	Target *grid.Target
	Dirty  bool
}

// Snapshot returns the current state under one lock.
func (e *Editor) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := Snapshot{
		View:     e.view(),
		Gesture:  e.active(),
		Splitter: -1,
		Dirty:    e.dirty,
	}
	if e.resize != nil {
		s.Splitter = e.resize.Right()
	}
	if e.drag != nil && e.target != nil {
		t := *e.target
		s.Target = &t
	}
	return s
}

// ViewOptions returns the geometry in use.
func (e *Editor) ViewOptions() view.Options {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.viewOpts
}

// SetViewOptions changes the geometry, e.g. after a terminal resize.
func (e *Editor) SetViewOptions(o view.Options) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.viewOpts = o
}

// Dirty reports whether the layout changed since the last MarkSaved.
func (e *Editor) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dirty
}

// MarkSaved clears the dirty flag.
func (e *Editor) MarkSaved() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dirty = false
}

// Replace swaps in a new layout, e.g. after the file changed on disk. It
// fails with ErrCodeGestureActive while a gesture is in progress.
func (e *Editor) Replace(l *grid.Layout) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if g := e.active(); g != GestureNone {
		return errors.New(errors.ErrCodeGestureActive, "cannot replace layout during %s", g)
	}
	e.layout = l
	e.dirty = false
	e.logger.Debug("layout replaced", "components", l.Len())
	return nil
}

// Normalize rescales every malformed row to the base and returns the
// number of rows changed.
func (e *Editor) Normalize() (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if g := e.active(); g != GestureNone {
		return 0, errors.New(errors.ErrCodeGestureActive, "cannot normalize during %s", g)
	}
	n := grid.Normalize(e.layout)
	if n > 0 {
		e.dirty = true
		e.logger.Debug("normalized", "rows", n)
		observability.Editor().OnNormalize(context.Background(), n)
	}
	return n, nil
}

func (e *Editor) idle() error {
	if a := e.active(); a != GestureNone {
		return errors.New(errors.ErrCodeGestureActive, "%s already in progress", a)
	}
	return nil
}

func (e *Editor) start(g Gesture) {
	e.started = time.Now()
	e.updates = 0
	observability.Editor().OnGestureStart(context.Background(), g.String())
}

func (e *Editor) finish(g Gesture) {
	observability.Editor().OnGestureEnd(context.Background(), g.String(), e.updates, time.Since(e.started))
	if e.updates > 0 {
		e.dirty = true
	}
}
