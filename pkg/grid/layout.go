package grid

import (
	"slices"

	"github.com/matzehuels/rowgrid/pkg/errors"
)

// Base is the default base unit every row sums to.
const Base = 24

// Component is one rectangular element of the layout.
type Component struct {
	ID   int    `json:"id" yaml:"id" toml:"id" bson:"id"`
	Kind string `json:"kind" yaml:"kind" toml:"kind" bson:"kind"`
	Size int    `json:"size" yaml:"size" toml:"size" bson:"size"`
}

// Layout is the ordered component list together with its base unit.
// A Layout is not safe for concurrent use; package editor serializes access.
type Layout struct {
	base       int
	correction Correction
	strict     bool
	components []Component
}

// Option configures a Layout.
type Option func(*Layout)

// WithBase overrides the base unit. Values below 1 are ignored.
func WithBase(base int) Option {
	return func(l *Layout) {
		if base > 0 {
			l.base = base
		}
	}
}

// WithCorrection selects how normalization distributes rounding error.
func WithCorrection(c Correction) Option {
	return func(l *Layout) { l.correction = c }
}

// WithStrictSizes rejects placements and normalizations that would leave a
// component below size 1. A rejected placement returns
// ErrCodeInvalidGeometry and leaves the layout unchanged, like a rejected
// resize step.
func WithStrictSizes() Option {
	return func(l *Layout) { l.strict = true }
}

// New creates a Layout from an initial component list. The list is copied.
// Sizes must be at least 1 and IDs unique. Rows that do not sum to the base
// unit are accepted; see [Layout.Malformed].
func New(components []Component, opts ...Option) (*Layout, error) {
	l := &Layout{base: Base, correction: CorrectFirst}
	for _, opt := range opts {
		opt(l)
	}

	seen := make(map[int]bool, len(components))
	for i, c := range components {
		if c.Size < 1 {
			return nil, errors.New(errors.ErrCodeInvalidLayout, "component %d (index %d) has size %d, want >= 1", c.ID, i, c.Size)
		}
		if seen[c.ID] {
			return nil, errors.New(errors.ErrCodeInvalidLayout, "duplicate component id %d", c.ID)
		}
		if err := errors.ValidateKind(c.Kind); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidLayout, err, "component %d", c.ID)
		}
		seen[c.ID] = true
	}
	l.components = slices.Clone(components)
	return l, nil
}

// Base returns the base unit.
func (l *Layout) Base() int { return l.base }

// Correction returns the normalization correction policy.
func (l *Layout) Correction() Correction { return l.correction }

// Strict reports whether undersized results are rejected.
func (l *Layout) Strict() bool { return l.strict }

// Len returns the number of components.
func (l *Layout) Len() int { return len(l.components) }

// Components returns a copy of the ordered component list.
func (l *Layout) Components() []Component { return slices.Clone(l.components) }

// Component returns the component at index i.
func (l *Layout) Component(i int) Component { return l.components[i] }

// Size returns the size of the component at index i.
func (l *Layout) Size(i int) int { return l.components[i].Size }

// Kind returns the kind of the component at index i.
func (l *Layout) Kind(i int) string { return l.components[i].Kind }

// Index returns the position of the component with the given id.
func (l *Layout) Index(id int) (int, bool) {
	for i, c := range l.components {
		if c.ID == id {
			return i, true
		}
	}
	return -1, false
}

// Rows partitions the current component order into rows.
func (l *Layout) Rows() []Row { return Partition(l.components, l.base) }

// RowOf returns the index of the row containing component index i, or -1.
func (l *Layout) RowOf(i int) int {
	for r, row := range l.Rows() {
		if row.Contains(i) {
			return r
		}
	}
	return -1
}

// Malformed returns the rows whose size sum differs from the base unit.
// Outside of an active gesture this is normally only a short trailing row
// from malformed input.
func (l *Layout) Malformed() []Row {
	var out []Row
	for _, r := range l.Rows() {
		if r.Sum != l.base {
			out = append(out, r)
		}
	}
	return out
}

// Clone returns a deep copy of the layout.
func (l *Layout) Clone() *Layout {
	return &Layout{base: l.base, correction: l.correction, strict: l.strict, components: slices.Clone(l.components)}
}

func (l *Layout) setSize(i, size int) { l.components[i].Size = size }

// replace installs a new component order. Callers guarantee it is a
// permutation of the current components.
func (l *Layout) replace(cs []Component) { l.components = cs }
