package store

import (
	"context"
	"time"

	pkgio "github.com/matzehuels/rowgrid/pkg/io"
	"github.com/matzehuels/rowgrid/pkg/observability"
)

// Instrument wraps s so that every call is reported to observability.Store().
func Instrument(s Store, backend string) Store {
	if _, ok := s.(*instrumented); ok {
		return s
	}
	return &instrumented{Store: s, backend: backend}
}

type instrumented struct {
	Store
	backend string
}

func (s *instrumented) Get(ctx context.Context, id string) (*pkgio.Document, error) {
	start := time.Now()
	d, err := s.Store.Get(ctx, id)
	observability.Store().OnLoad(ctx, s.backend, id, time.Since(start), err)
	return d, err
}

func (s *instrumented) Put(ctx context.Context, d *pkgio.Document) error {
	start := time.Now()
	err := s.Store.Put(ctx, d)
	observability.Store().OnSave(ctx, s.backend, d.ID, time.Since(start), err)
	return err
}

func (s *instrumented) Delete(ctx context.Context, id string) error {
	err := s.Store.Delete(ctx, id)
	observability.Store().OnDelete(ctx, s.backend, id, err)
	return err
}
