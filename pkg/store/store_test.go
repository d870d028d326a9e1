package store

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/rowgrid/pkg/errors"
	"github.com/matzehuels/rowgrid/pkg/grid"
	pkgio "github.com/matzehuels/rowgrid/pkg/io"
	"github.com/matzehuels/rowgrid/pkg/observability"
)

func newDocument(t *testing.T, id string, at time.Time) *pkgio.Document {
	t.Helper()
	l, err := grid.New(grid.Sample())
	if err != nil {
		t.Fatalf("grid.New: %v", err)
	}
	d := pkgio.NewDocument(id, l)
	d.ID = id
	d.UpdatedAt = at
	return d
}

func backends(t *testing.T) map[string]Store {
	t.Helper()
	mem, err := NewMemoryStore(0)
	if err != nil {
		t.Fatalf("NewMemoryStore: %v", err)
	}
	file, err := NewFileStore(t.TempDir(), "")
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	yamlFile, err := NewFileStore(t.TempDir(), pkgio.FormatYAML)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	db, err := NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "layouts.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	out := map[string]Store{"memory": mem, "file": file, "file-yaml": yamlFile, "sqlite": db, "redis": newRedis(t)}
	if m := newMongo(t); m != nil {
		out["mongo"] = m
	}
	return out
}

func newRedis(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	s, err := NewRedisStore(context.Background(), RedisConfig{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("NewRedisStore: %v", err)
	}
	return s
}

// newMongo connects to ROWGRID_TEST_MONGO_URI, using a throwaway database.
// It returns nil when the variable is unset.
func newMongo(t *testing.T) *MongoStore {
	t.Helper()
	uri := os.Getenv("ROWGRID_TEST_MONGO_URI")
	if uri == "" {
		return nil
	}
	ctx := context.Background()
	db := "rowgrid_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	s, err := NewMongoStore(ctx, MongoConfig{URI: uri, Database: db})
	if err != nil {
		t.Fatalf("NewMongoStore: %v", err)
	}
	// Tests close the store themselves, so the drop needs its own client.
	t.Cleanup(func() {
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err != nil {
			return
		}
		defer client.Disconnect(ctx)
		_ = client.Database(db).Drop(ctx)
	})
	return s
}

func TestStoreContract(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()

			if _, err := s.Get(ctx, "missing"); !errors.Is(err, errors.ErrCodeNotFound) {
				t.Errorf("Get(missing) = %v, want NOT_FOUND", err)
			}

			older := newDocument(t, "older", now.Add(-time.Hour))
			newer := newDocument(t, "newer", now)
			for _, d := range []*pkgio.Document{older, newer} {
				if err := s.Put(ctx, d); err != nil {
					t.Fatalf("Put(%s): %v", d.ID, err)
				}
			}

			got, err := s.Get(ctx, "older")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.Name != "older" || len(got.Components) != 6 {
				t.Errorf("Get = %+v", got)
			}

			docs, err := s.List(ctx)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(docs) != 2 || docs[0].ID != "newer" || docs[1].ID != "older" {
				t.Errorf("List order = %v", docIDs(docs))
			}

			// Replace.
			got.Name = "renamed"
			if err := s.Put(ctx, got); err != nil {
				t.Fatalf("Put(replace): %v", err)
			}
			if again, _ := s.Get(ctx, "older"); again.Name != "renamed" {
				t.Errorf("replace not persisted: %q", again.Name)
			}

			if err := s.Delete(ctx, "older"); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if err := s.Delete(ctx, "older"); !errors.Is(err, errors.ErrCodeNotFound) {
				t.Errorf("second Delete = %v, want NOT_FOUND", err)
			}
		})
	}
}

func TestStoreRejectsBadIDs(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			d := newDocument(t, "x", time.Now())
			d.ID = "../escape"
			if err := s.Put(ctx, d); !errors.Is(err, errors.ErrCodeInvalidID) {
				t.Errorf("Put(%q) = %v, want INVALID_ID", d.ID, err)
			}
		})
	}
}

func TestListSkipsUnreadableEntries(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		open    func(t *testing.T) Store
		corrupt func(t *testing.T, s Store)
	}{
		{
			name: "file",
			open: func(t *testing.T) Store {
				s, err := NewFileStore(t.TempDir(), "")
				if err != nil {
					t.Fatal(err)
				}
				return s
			},
			corrupt: func(t *testing.T, s Store) {
				p := filepath.Join(s.(*FileStore).Path(), "broken.json")
				if err := os.WriteFile(p, []byte("{not json"), 0o644); err != nil {
					t.Fatal(err)
				}
			},
		},
		{
			name: "sqlite",
			open: func(t *testing.T) Store {
				s, err := NewSQLiteStore(ctx, filepath.Join(t.TempDir(), "layouts.db"))
				if err != nil {
					t.Fatal(err)
				}
				return s
			},
			corrupt: func(t *testing.T, s Store) {
				_, err := s.(*SQLiteStore).db.ExecContext(ctx,
					`INSERT INTO layouts (id, body, updated_at) VALUES ('broken', '{not json', 0)`)
				if err != nil {
					t.Fatal(err)
				}
			},
		},
		{
			name: "redis",
			open: func(t *testing.T) Store { return newRedis(t) },
			corrupt: func(t *testing.T, s Store) {
				c := s.(*RedisStore).client
				if err := c.Set(ctx, redisKey("broken"), "{not json", 0).Err(); err != nil {
					t.Fatal(err)
				}
				if err := c.SAdd(ctx, redisIndexKey, "broken", "gone").Err(); err != nil {
					t.Fatal(err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			s := tt.open(t)
			defer s.Close()
			s.(loggerSetter).setLogger(log.New(&buf))

			if err := s.Put(ctx, newDocument(t, "good", time.Now())); err != nil {
				t.Fatal(err)
			}
			tt.corrupt(t, s)

			docs, err := s.List(ctx)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(docs) != 1 || docs[0].ID != "good" {
				t.Errorf("List = %v, want [good]", docIDs(docs))
			}
			if !strings.Contains(buf.String(), "skipping unreadable layout") || !strings.Contains(buf.String(), "broken") {
				t.Errorf("skipped entry not logged: %q", buf.String())
			}
		})
	}
}

func TestMemoryStoreIsolation(t *testing.T) {
	ctx := context.Background()
	s, _ := NewMemoryStore(4)
	d := newDocument(t, "a", time.Now())
	if err := s.Put(ctx, d); err != nil {
		t.Fatal(err)
	}
	d.Components[0].Size = 1

	got, _ := s.Get(ctx, "a")
	if got.Components[0].Size != 9 {
		t.Error("stored document aliases the caller's slice")
	}
	got.Components[0].Size = 2
	again, _ := s.Get(ctx, "a")
	if again.Components[0].Size != 9 {
		t.Error("returned document aliases the stored slice")
	}
}

func TestMemoryStoreEviction(t *testing.T) {
	ctx := context.Background()
	s, _ := NewMemoryStore(2)
	for _, id := range []string{"a", "b", "c"} {
		if err := s.Put(ctx, newDocument(t, id, time.Now())); err != nil {
			t.Fatal(err)
		}
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}
	if _, err := s.Get(ctx, "a"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("oldest entry should be evicted, got %v", err)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, Config{}, nil)
	if err != nil {
		t.Fatalf("Open(default): %v", err)
	}
	s.Close()

	s, err = Open(ctx, Config{Backend: "file", Dir: t.TempDir()}, nil)
	if err != nil {
		t.Fatalf("Open(file): %v", err)
	}
	s.Close()

	s, err = Open(ctx, Config{Backend: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "db", "layouts.db")}, nil)
	if err != nil {
		t.Fatalf("Open(sqlite): %v", err)
	}
	s.Close()

	if _, err := Open(ctx, Config{Backend: "sqlite"}, nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Open(sqlite, no path) = %v, want INVALID_INPUT", err)
	}
	if _, err := Open(ctx, Config{Backend: "etcd"}, nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Open(etcd) = %v, want INVALID_INPUT", err)
	}
	if _, err := Open(ctx, Config{Backend: "file", Dir: t.TempDir(), Format: "xml"}, nil); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Open(file, xml) = %v, want INVALID_FORMAT", err)
	}
}

type recordingStoreHooks struct {
	observability.NoopStoreHooks
	mu    sync.Mutex
	loads []string
	saves []string
}

func (h *recordingStoreHooks) OnLoad(_ context.Context, backend, id string, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.loads = append(h.loads, backend+"/"+id)
}

func (h *recordingStoreHooks) OnSave(_ context.Context, backend, id string, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.saves = append(h.saves, backend+"/"+id)
}

func TestInstrument(t *testing.T) {
	hooks := &recordingStoreHooks{}
	observability.SetStoreHooks(hooks)
	defer observability.Reset()

	ctx := context.Background()
	mem, _ := NewMemoryStore(0)
	s := Instrument(mem, "memory")
	if Instrument(s, "memory") != s {
		t.Error("Instrument should not wrap twice")
	}

	_ = s.Put(ctx, newDocument(t, "a", time.Now()))
	_, _ = s.Get(ctx, "a")
	_, _ = s.Get(ctx, "b")

	if len(hooks.saves) != 1 || hooks.saves[0] != "memory/a" {
		t.Errorf("saves = %v", hooks.saves)
	}
	if len(hooks.loads) != 2 {
		t.Errorf("loads = %v, want 2 entries", hooks.loads)
	}
}

func docIDs(docs []*pkgio.Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.ID
	}
	return out
}
