package io

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/rowgrid/pkg/cache"
	"github.com/matzehuels/rowgrid/pkg/errors"
	"github.com/matzehuels/rowgrid/pkg/grid"
)

// Document is a stored layout.
type Document struct {
	ID         string           `json:"id" yaml:"id" toml:"id" bson:"_id"`
	Name       string           `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty" bson:"name,omitempty"`
	Base       int              `json:"base,omitempty" yaml:"base,omitempty" toml:"base,omitempty" bson:"base,omitempty"`
	Components []grid.Component `json:"components" yaml:"components" toml:"components" bson:"components"`
	UpdatedAt  time.Time        `json:"updated_at" yaml:"updated_at" toml:"updated_at" bson:"updated_at"`
}

// NewDocument creates a document with a fresh ID.
func NewDocument(name string, l *grid.Layout) *Document {
	d := &Document{ID: uuid.NewString(), Name: name}
	d.SetLayout(l)
	return d
}

// Layout validates the document and returns its layout. opts supply
// defaults; a base stored in the document takes precedence over them.
func (d *Document) Layout(opts ...grid.Option) (*grid.Layout, error) {
	all := append(make([]grid.Option, 0, len(opts)+1), opts...)
	if d.Base > 0 {
		all = append(all, grid.WithBase(d.Base))
	}
	l, err := grid.New(d.Components, all...)
	if err != nil {
		return nil, fmt.Errorf("document %q: %w", d.label(), err)
	}
	return l, nil
}

// SetLayout stores l in the document and bumps UpdatedAt.
func (d *Document) SetLayout(l *grid.Layout) {
	d.Base = l.Base()
	d.Components = l.Components()
	d.Touch()
}

// Touch sets UpdatedAt to now.
func (d *Document) Touch() {
	d.UpdatedAt = time.Now().UTC().Truncate(time.Second)
}

// EnsureID assigns a fresh ID when the document has none and validates it
// otherwise.
func (d *Document) EnsureID() error {
	if d.ID == "" {
		d.ID = uuid.NewString()
		return nil
	}
	return errors.ValidateDocumentID(d.ID)
}

// ContentHash identifies the layout content, ignoring ID, name and time.
// Derived artifacts are cached under it.
func (d *Document) ContentHash() (string, error) {
	return cache.HashJSON(struct {
		Base       int              `json:"base"`
		Components []grid.Component `json:"components"`
	}{d.Base, d.Components})
}

func (d *Document) label() string {
	if d.Name != "" {
		return d.Name
	}
	return d.ID
}

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	c := *d
	c.Components = append([]grid.Component(nil), d.Components...)
	return &c
}
