// Package store persists layout documents.
//
// Five backends implement [Store]:
//   - memory: bounded LRU for development and tests
//   - file: one document file per ID below a directory, for the CLI
//   - sqlite: a single database file, for a standalone server
//   - redis: for multi-instance servers
//   - mongo: a MongoDB collection
//
// Use [Open] to construct a backend from [Config]. Every backend returned by
// Open is wrapped with [Instrument], which reports loads and saves through
// observability.Store().
package store

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rowgrid/pkg/errors"
	pkgio "github.com/matzehuels/rowgrid/pkg/io"
)

// Store is the interface for document storage backends.
type Store interface {
	// Get retrieves a document by ID. A missing document is ErrCodeNotFound.
	Get(ctx context.Context, id string) (*pkgio.Document, error)

	// List returns all documents, most recently updated first.
	List(ctx context.Context) ([]*pkgio.Document, error)

	// Put creates or replaces a document.
	Put(ctx context.Context, d *pkgio.Document) error

	// Delete removes a document. A missing document is ErrCodeNotFound.
	Delete(ctx context.Context, id string) error

	Close() error
}

// Backend names.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Backends lists the supported backend names.
var Backends = []string{BackendMemory, BackendFile, BackendSQLite, BackendRedis, BackendMongo}

// Config selects and configures a backend.
type Config struct {
	Backend string `toml:"backend"`

	// memory
	Capacity int `toml:"capacity"`

	// file
	Dir    string `toml:"dir"`
	Format string `toml:"format"`

	// sqlite
	SQLitePath string `toml:"sqlite_path"`

	// redis
	RedisAddr     string `toml:"redis_addr"`
	RedisDB       int    `toml:"redis_db"`
	RedisPassword string `toml:"redis_password"`

	// mongo
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// Open constructs the configured backend.
func Open(ctx context.Context, cfg Config, logger *log.Logger) (Store, error) {
	backend := strings.ToLower(cfg.Backend)
	if backend == "" {
		backend = BackendMemory
	}

	var (
		s   Store
		err error
	)
	switch backend {
	case BackendMemory:
		s, err = NewMemoryStore(cfg.Capacity)
	case BackendFile:
		s, err = NewFileStore(cfg.Dir, pkgio.Format(cfg.Format))
	case BackendSQLite:
		s, err = NewSQLiteStore(ctx, cfg.SQLitePath)
	case BackendRedis:
		s, err = NewRedisStore(ctx, RedisConfig{Addr: cfg.RedisAddr, DB: cfg.RedisDB, Password: cfg.RedisPassword})
	case BackendMongo:
		s, err = NewMongoStore(ctx, MongoConfig{URI: cfg.MongoURI, Database: cfg.MongoDatabase})
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown store backend %q (valid: %s)", cfg.Backend, strings.Join(Backends, ", "))
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", backend, err)
	}
	if logger != nil {
		if ls, ok := s.(loggerSetter); ok {
			ls.setLogger(logger)
		}
		logger.Debug("store opened", "backend", backend)
	}
	return Instrument(s, backend), nil
}

// loggerSetter is implemented by backends that report entries they had to
// skip while listing.
type loggerSetter interface {
	setLogger(*log.Logger)
}

func discardLogger() *log.Logger { return log.New(io.Discard) }

// skipEntry reports a stored entry that List could not decode.
func skipEntry(logger *log.Logger, backend, id string, err error) {
	logger.Warn("skipping unreadable layout", "backend", backend, "id", id, "err", err)
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "layout %s not found", id)
}

// sortDocuments orders by UpdatedAt descending, then ID.
func sortDocuments(docs []*pkgio.Document) {
	slices.SortFunc(docs, func(a, b *pkgio.Document) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}
