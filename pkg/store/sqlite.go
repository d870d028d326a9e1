package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite"

	"github.com/matzehuels/rowgrid/pkg/errors"
	pkgio "github.com/matzehuels/rowgrid/pkg/io"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS layouts (
	id         TEXT PRIMARY KEY,
	body       TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_layouts_updated ON layouts(updated_at);
`

// SQLiteStore keeps documents as JSON rows in a single SQLite file.
type SQLiteStore struct {
	db     *sql.DB
	logger *log.Logger
}

// NewSQLiteStore opens or creates the database at path.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "sqlite store needs a path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single connection serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &SQLiteStore{db: db, logger: discardLogger()}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*pkgio.Document, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM layouts WHERE id = ?`, id).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite get %s: %w", id, err)
	}
	return pkgio.Decode([]byte(body), pkgio.FormatJSON)
}

func (s *SQLiteStore) List(ctx context.Context) ([]*pkgio.Document, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, body FROM layouts ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite list: %w", err)
	}
	defer rows.Close()

	var docs []*pkgio.Document
	for rows.Next() {
		var id, body string
		if err := rows.Scan(&id, &body); err != nil {
			return nil, fmt.Errorf("sqlite list: %w", err)
		}
		d, err := pkgio.Decode([]byte(body), pkgio.FormatJSON)
		if err != nil {
			skipEntry(s.logger, BackendSQLite, id, err)
			continue
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite list: %w", err)
	}
	sortDocuments(docs)
	return docs, nil
}

func (s *SQLiteStore) setLogger(l *log.Logger) { s.logger = l }

func (s *SQLiteStore) Put(ctx context.Context, d *pkgio.Document) error {
	if err := errors.ValidateDocumentID(d.ID); err != nil {
		return err
	}
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO layouts (id, body, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at
	`, d.ID, string(data), d.UpdatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("sqlite put %s: %w", d.ID, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM layouts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite delete %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite delete %s: %w", id, err)
	}
	if n == 0 {
		return notFound(id)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ Store = (*SQLiteStore)(nil)
