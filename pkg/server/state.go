package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/rowgrid/pkg/cache"
	"github.com/matzehuels/rowgrid/pkg/errors"
	"github.com/matzehuels/rowgrid/pkg/grid"
	pkgio "github.com/matzehuels/rowgrid/pkg/io"
	"github.com/matzehuels/rowgrid/pkg/view"
)

func documentID(r *http.Request) (string, error) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateDocumentID(id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Server) load(r *http.Request) (*pkgio.Document, error) {
	id, err := documentID(r)
	if err != nil {
		return nil, err
	}
	return s.store.Get(r.Context(), id)
}

// mutate loads the addressed document, applies fn to its layout and saves
// the result. Nothing is written when fn fails.
func (s *Server) mutate(r *http.Request, fn func(*grid.Layout) error) (*pkgio.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(r)
	if err != nil {
		return nil, err
	}
	l, err := doc.Layout(s.gridOpts...)
	if err != nil {
		return nil, err
	}
	if err := fn(l); err != nil {
		return nil, err
	}
	doc.SetLayout(l)
	if err := s.store.Put(r.Context(), doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// viewOptions overlays the width and row_height query parameters on the
// server defaults.
func (s *Server) viewOptions(r *http.Request) (view.Options, error) {
	opts := s.viewOpts
	q := r.URL.Query()
	for name, dst := range map[string]*float64{"width": &opts.Width, "row_height": &opts.RowHeight} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 {
			return view.Options{}, errors.New(errors.ErrCodeInvalidInput, "%s must be a positive number, got %q", name, raw)
		}
		*dst = v
	}
	if opts.PaddingTop+opts.PaddingBottom >= opts.RowHeight {
		return view.Options{}, errors.New(errors.ErrCodeInvalidInput, "row_height %g leaves no room for content", opts.RowHeight)
	}
	return opts, nil
}

// cached returns the entry under key, computing and storing it on a miss.
// Cache failures are logged and never fail the request.
func (s *Server) cached(r *http.Request, key string, compute func() ([]byte, error)) ([]byte, error) {
	ctx := r.Context()
	if data, ok, err := s.cache.Get(ctx, key); err != nil {
		s.logger.Warn("cache get failed", "key", key, "err", err)
	} else if ok {
		return data, nil
	}
	data, err := compute()
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
		s.logger.Warn("cache set failed", "key", key, "err", err)
	}
	return data, nil
}

func marshalIndent(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode view")
	}
	return append(data, '\n'), nil
}
