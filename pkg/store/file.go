package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rowgrid/pkg/errors"
	pkgio "github.com/matzehuels/rowgrid/pkg/io"
)

// FileStore keeps one document file per ID in a directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
	format  pkgio.Format
	logger  *log.Logger
}

// NewFileStore creates a file store. If baseDir is empty it defaults to
// $XDG_DATA_HOME/rowgrid/layouts (~/.local/share/rowgrid/layouts). An empty
// format means JSON.
func NewFileStore(baseDir string, format pkgio.Format) (*FileStore, error) {
	if baseDir == "" {
		dir, err := defaultDataDir()
		if err != nil {
			return nil, err
		}
		baseDir = dir
	}
	if format == "" {
		format = pkgio.FormatJSON
	}
	if _, err := pkgio.ParseFormat(string(format)); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("create layout dir: %w", err)
	}
	return &FileStore{baseDir: baseDir, format: format, logger: discardLogger()}, nil
}

func defaultDataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "rowgrid", "layouts"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".local", "share", "rowgrid", "layouts"), nil
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.baseDir, id+"."+string(s.format))
}

func (s *FileStore) Get(ctx context.Context, id string) (*pkgio.Document, error) {
	if err := errors.ValidateDocumentID(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, err := pkgio.Import(s.path(id))
	if errors.Is(err, errors.ErrCodeFileNotFound) {
		return nil, notFound(id)
	}
	return d, err
}

func (s *FileStore) List(ctx context.Context) ([]*pkgio.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read layout dir: %w", err)
	}
	var docs []*pkgio.Document
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != "."+string(s.format) {
			continue
		}
		d, err := pkgio.Import(filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			skipEntry(s.logger, BackendFile, entry.Name(), err)
			continue
		}
		docs = append(docs, d)
	}
	sortDocuments(docs)
	return docs, nil
}

func (s *FileStore) setLogger(l *log.Logger) { s.logger = l }

func (s *FileStore) Put(ctx context.Context, d *pkgio.Document) error {
	if err := errors.ValidateDocumentID(d.ID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return pkgio.Export(d, s.path(d.ID))
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	if err := errors.ValidateDocumentID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(id))
	if os.IsNotExist(err) {
		return notFound(id)
	}
	if err != nil {
		return fmt.Errorf("remove layout file: %w", err)
	}
	return nil
}

// Path returns the directory holding the document files.
func (s *FileStore) Path() string {
	return s.baseDir
}

func (s *FileStore) Close() error { return nil }

var _ Store = (*FileStore)(nil)
