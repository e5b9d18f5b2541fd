// Package schemastore holds the service's current schema and reloads it
// when the file changes.
package schemastore

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/jacoelho/jsonschema"
)

// Holder provides thread-safe access to a loaded schema with hot reload support.
type Holder struct {
	mu        sync.RWMutex
	validator *jsonschema.Validator
	path      string
	checkMeta bool
	opts      []jsonschema.Option
	logger    zerolog.Logger
	watcher   *fsnotify.Watcher
	onReload  []func(error)
	stopOnce  sync.Once
	stopCh    chan struct{}
}

// Config configures a Holder.
type Config struct {
	Path      string
	CheckMeta bool // refuse schemas that fail the draft-04 meta-schema
	Options   []jsonschema.Option
}

// New creates a holder and loads the initial schema.
func New(cfg Config, logger zerolog.Logger) (*Holder, error) {
	absPath, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("absolute path: %w", err)
	}

	h := &Holder{
		path:      absPath,
		checkMeta: cfg.CheckMeta,
		opts:      cfg.Options,
		logger:    logger,
		stopCh:    make(chan struct{}),
	}

	v, err := h.load()
	if err != nil {
		return nil, err
	}
	h.validator = v

	return h, nil
}

// Get returns the current validator (thread-safe).
func (h *Holder) Get() *jsonschema.Validator {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.validator
}

// Path returns the absolute schema path.
func (h *Holder) Path() string {
	return h.path
}

// Reload reloads the schema from disk.
// Returns error if loading fails (keeps old schema).
func (h *Holder) Reload() error {
	h.logger.Info().Str("path", h.path).Msg("reloading schema")

	v, err := h.load()
	if err != nil {
		h.logger.Error().Err(err).Msg("schema reload failed, keeping old schema")
		h.notify(err)
		return fmt.Errorf("reload schema: %w", err)
	}

	h.mu.Lock()
	h.validator = v
	h.mu.Unlock()

	h.notify(nil)

	h.logger.Info().Msg("schema reloaded successfully")
	return nil
}

// OnReload registers a callback invoked after every reload attempt with its
// error, nil on success.
func (h *Holder) OnReload(fn func(error)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onReload = append(h.onReload, fn)
}

// WatchFile starts watching the schema file for changes.
// Changes trigger automatic reload.
func (h *Holder) WatchFile() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	// Watch the directory (more reliable for editors that do atomic saves)
	dir := filepath.Dir(h.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch directory: %w", err)
	}
	h.watcher = watcher

	go h.watchLoop(watcher)

	h.logger.Info().Str("path", h.path).Msg("watching schema file for changes")
	return nil
}

// Stop stops watching for file changes. It is safe to call more than once.
func (h *Holder) Stop() {
	h.stopOnce.Do(func() {
		close(h.stopCh)
		if h.watcher != nil {
			h.watcher.Close()
		}
	})
}

func (h *Holder) load() (*jsonschema.Validator, error) {
	opts := append([]jsonschema.Option{jsonschema.WithLogger(h.logger)}, h.opts...)
	v, err := jsonschema.LoadFile(h.path, opts...)
	if err != nil {
		return nil, err
	}
	if h.checkMeta {
		if err := v.ValidateSchema(); err != nil {
			return nil, fmt.Errorf("schema %s is not a valid draft-04 schema: %w", h.path, err)
		}
	}
	return v, nil
}

func (h *Holder) notify(err error) {
	h.mu.RLock()
	callbacks := h.onReload
	h.mu.RUnlock()

	for _, fn := range callbacks {
		fn(err)
	}
}

func (h *Holder) watchLoop(watcher *fsnotify.Watcher) {
	filename := filepath.Base(h.path)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			// Only react to our schema file
			if filepath.Base(event.Name) != filename {
				continue
			}

			// React to write or create (atomic save = create)
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				h.logger.Debug().
					Str("event", event.Op.String()).
					Str("file", event.Name).
					Msg("schema file changed")

				if err := h.Reload(); err != nil {
					h.logger.Error().Err(err).Msg("file watch reload failed")
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			h.logger.Error().Err(err).Msg("file watcher error")

		case <-h.stopCh:
			return
		}
	}
}
