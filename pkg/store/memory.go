package store

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/matzehuels/rowgrid/pkg/errors"
	pkgio "github.com/matzehuels/rowgrid/pkg/io"
)

// DefaultCapacity bounds the memory store.
const DefaultCapacity = 1024

// MemoryStore keeps documents in a bounded LRU. The least recently used
// document is evicted once capacity is reached.
type MemoryStore struct {
	mu    sync.Mutex
	cache *lru.Cache[string, *pkgio.Document]
}

// NewMemoryStore creates a memory store. capacity <= 0 uses DefaultCapacity.
func NewMemoryStore(capacity int) (*MemoryStore, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c, err := lru.New[string, *pkgio.Document](capacity)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "memory store")
	}
	return &MemoryStore{cache: c}, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*pkgio.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.cache.Get(id)
	if !ok {
		return nil, notFound(id)
	}
	return d.Clone(), nil
}

func (s *MemoryStore) List(ctx context.Context) ([]*pkgio.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs := make([]*pkgio.Document, 0, s.cache.Len())
	for _, d := range s.cache.Values() {
		docs = append(docs, d.Clone())
	}
	sortDocuments(docs)
	return docs, nil
}

func (s *MemoryStore) Put(ctx context.Context, d *pkgio.Document) error {
	if err := errors.ValidateDocumentID(d.ID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Add(d.ID, d.Clone())
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.cache.Remove(id) {
		return notFound(id)
	}
	return nil
}

// Len returns the number of stored documents.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Len()
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Purge()
	return nil
}

var _ Store = (*MemoryStore)(nil)
