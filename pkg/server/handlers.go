package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/rowgrid/pkg/cache"
	"github.com/matzehuels/rowgrid/pkg/errors"
	"github.com/matzehuels/rowgrid/pkg/grid"
	pkgio "github.com/matzehuels/rowgrid/pkg/io"
	"github.com/matzehuels/rowgrid/pkg/render/dot"
	"github.com/matzehuels/rowgrid/pkg/render/svg"
	"github.com/matzehuels/rowgrid/pkg/view"
)

type createRequest struct {
	Name       string           `json:"name"`
	Base       int              `json:"base"`
	Components []grid.Component `json:"components"`
}

type resizeRequest struct {
	Left  int `json:"left"`
	Right int `json:"right"`
	Delta int `json:"delta"`
}

type moveRequest struct {
	ID     int         `json:"id"`
	Target grid.Target `json:"target"`
}

type normalizeResponse struct {
	Rows     int             `json:"rows"`
	Document *pkgio.Document `json:"document"`
}

var contentTypes = map[string]string{
	"svg": "image/svg+xml",
	"dot": "text/vnd.graphviz; charset=utf-8",
	"png": "image/png",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	docs, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if docs == nil {
		docs = []*pkgio.Document{}
	}
	writeJSON(w, http.StatusOK, docs)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if len(req.Components) == 0 {
		req.Components = grid.Sample()
	}
	opts := append([]grid.Option(nil), s.gridOpts...)
	if req.Base > 0 {
		opts = append(opts, grid.WithBase(req.Base))
	}
	l, err := grid.New(req.Components, opts...)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	doc := pkgio.NewDocument(req.Name, l)
	if err := s.store.Put(r.Context(), doc); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/layouts/"+doc.ID)
	writeJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	doc, err := s.load(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	id, err := documentID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var doc pkgio.Document
	if err := decodeJSON(r, &doc); err != nil {
		s.writeError(w, r, err)
		return
	}
	if doc.ID == "" {
		doc.ID = id
	}
	if doc.ID != id {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "body id %q does not match path id %q", doc.ID, id))
		return
	}
	l, err := doc.Layout(s.gridOpts...)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// A body carrying updated_at must match the stored revision.
	if !doc.UpdatedAt.IsZero() {
		cur, err := s.store.Get(r.Context(), id)
		switch {
		case err == nil && !cur.UpdatedAt.Equal(doc.UpdatedAt):
			s.writeError(w, r, errors.New(errors.ErrCodeConflict, "layout %s was modified at %s", id, cur.UpdatedAt.Format(time.RFC3339)))
			return
		case err != nil && !errors.Is(err, errors.ErrCodeNotFound):
			s.writeError(w, r, err)
			return
		}
	}
	doc.SetLayout(l)
	if err := s.store.Put(r.Context(), &doc); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, &doc)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := documentID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	doc, err := s.load(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := s.viewOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	hash, err := doc.ContentHash()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	key := s.keyer.ViewKey(hash, cache.ViewKeyOpts{Width: opts.Width, RowHeight: opts.RowHeight, Snap: opts.Snap})
	data, err := s.cached(r, key, func() ([]byte, error) {
		l, err := doc.Layout(s.gridOpts...)
		if err != nil {
			return nil, err
		}
		return marshalIndent(view.Build(l, opts))
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func (s *Server) handleResize(w http.ResponseWriter, r *http.Request) {
	var req resizeRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	doc, err := s.mutate(r, func(l *grid.Layout) error {
		return grid.Resize(l, req.Left, req.Right, req.Delta)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Target.Placement == grid.PlaceNone {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "target placement is required"))
		return
	}
	doc, err := s.mutate(r, func(l *grid.Layout) error {
		_, err := grid.Move(l, req.ID, req.Target)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	var rows int
	doc, err := s.mutate(r, func(l *grid.Layout) error {
		rows = grid.Normalize(l)
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, normalizeResponse{Rows: rows, Document: doc})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := errors.ValidateFormat(format, "svg", "dot", "png"); err != nil {
		s.writeError(w, r, err)
		return
	}
	doc, err := s.load(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := s.viewOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	hash, err := doc.ContentHash()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	key := s.keyer.ArtifactKey(hash, cache.ArtifactKeyOpts{
		Format:    format,
		Width:     opts.Width,
		RowHeight: opts.RowHeight,
		Detailed:  format == "dot",
		Title:     doc.Name,
	})
	data, err := s.cached(r, key, func() ([]byte, error) {
		l, err := doc.Layout(s.gridOpts...)
		if err != nil {
			return nil, err
		}
		v := view.Build(l, opts)
		switch format {
		case "svg":
			return svg.Render(v, svg.WithTitle(doc.Name)), nil
		case "dot":
			return []byte(dot.ToDOT(v, dot.Options{Detailed: true})), nil
		default:
			return dot.RenderPNG(r.Context(), dot.ToDOT(v, dot.Options{}))
		}
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	_, _ = w.Write(data)
}
