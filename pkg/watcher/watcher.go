// Package watcher reloads a layout document when it changes on disk.
//
// The parent directory is watched rather than the file itself, because
// editors (and rowgrid's own atomic save) replace files by renaming a
// temporary file over them. Bursts of events are debounced. Content that
// the program wrote itself can be registered with [Watcher.Ignore] so that
// saving from the editor does not bounce back as a reload.
package watcher

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/rowgrid/pkg/cache"
	pkgio "github.com/matzehuels/rowgrid/pkg/io"
)

// Event is one reload. Exactly one of Document and Err is set.
type Event struct {
	Path     string
	Document *pkgio.Document
	Err      error
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debouncer = NewDebouncer(d) }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// Watcher watches one document file.
type Watcher struct {
	path      string
	format    pkgio.Format
	fsw       *fsnotify.Watcher
	debouncer *Debouncer
	logger    *log.Logger
	events    chan Event

	mu      sync.Mutex
	ignored string

	done      chan struct{}
	closeOnce sync.Once
}

// New creates a watcher for path. Call Run to start delivering events.
func New(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	format, err := pkgio.FormatFromPath(abs)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:      abs,
		format:    format,
		fsw:       fsw,
		debouncer: NewDebouncer(0),
		logger:    log.New(io.Discard),
		events:    make(chan Event, 1),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Events delivers reloads. The channel is never closed; select on ctx or
// the Done channel of the caller instead.
func (w *Watcher) Events() <-chan Event { return w.events }

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Ignore registers content that was just written by this process. A reload
// that reads back exactly this content is suppressed.
func (w *Watcher) Ignore(data []byte) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ignored = cache.Hash(data)
}

// Run processes file events until ctx is cancelled or Close is called.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.done:
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug("file event", "op", ev.Op.String(), "path", ev.Name)
			w.debouncer.Trigger(w.reload)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "err", err)
		}
	}
}

func (w *Watcher) reload() {
	data, err := os.ReadFile(w.path)
	if os.IsNotExist(err) {
		// Mid-rename; the following Create triggers another reload.
		return
	}
	if err != nil {
		w.send(Event{Path: w.path, Err: fmt.Errorf("read %s: %w", w.path, err)})
		return
	}

	w.mu.Lock()
	own := w.ignored != "" && w.ignored == cache.Hash(data)
	w.mu.Unlock()
	if own {
		w.logger.Debug("skipping own write", "path", w.path)
		return
	}

	d, err := pkgio.Decode(data, w.format)
	if err != nil {
		w.send(Event{Path: w.path, Err: fmt.Errorf("%s: %w", w.path, err)})
		return
	}
	w.logger.Debug("reloaded", "path", w.path, "components", len(d.Components))
	w.send(Event{Path: w.path, Document: d})
}

// send replaces an undelivered event with the newer one.
func (w *Watcher) send(ev Event) {
	for {
		select {
		case <-w.done:
			return
		case w.events <- ev:
			return
		default:
		}
		select {
		case <-w.events:
		default:
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		w.debouncer.Cancel()
		err = w.fsw.Close()
	})
	return err
}
