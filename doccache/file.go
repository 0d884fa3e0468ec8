package doccache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vitalvas/apidoc/openapi"
)

// fileEnvelope is the on-disk form of an entry.
type fileEnvelope struct {
	ID          string          `json:"id"`
	GeneratedAt time.Time       `json:"generatedAt"`
	Document    json.RawMessage `json:"document"`
}

// File keeps the entry in a JSON file so it survives restarts. Writes go
// to a temporary file that is renamed over the target.
type File struct {
	path string
	opts options

	mu sync.Mutex
}

// NewFile creates a cache backed by the file at path. The file is created
// on the first Store.
func NewFile(path string, opts ...Option) *File {
	return &File{path: path, opts: newOptions(opts)}
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.path
}

// Get reads the stored entry while it is fresh. A missing file is a miss;
// an unreadable or corrupt file is an error.
func (f *File) Get(ctx context.Context) (*Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		f.opts.observe(false)
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("doccache: read %s: %w", f.path, err)
	}

	var env fileEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("doccache: decode %s: %w", f.path, err)
	}

	entry := &Entry{ID: env.ID, GeneratedAt: env.GeneratedAt, JSON: env.Document}
	if !f.opts.fresh(entry) {
		f.opts.observe(false)
		return nil, ErrMiss
	}

	var doc openapi.Document
	if err := json.Unmarshal(env.Document, &doc); err != nil {
		return nil, fmt.Errorf("doccache: decode document in %s: %w", f.path, err)
	}
	entry.Document = &doc

	f.opts.observe(true)
	return entry, nil
}

// Store writes a new entry to the backing file.
func (f *File) Store(ctx context.Context, doc *openapi.Document) (*Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entry, err := NewEntry(doc, f.opts.clock())
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(fileEnvelope{
		ID:          entry.ID,
		GeneratedAt: entry.GeneratedAt,
		Document:    entry.JSON,
	})
	if err != nil {
		return nil, fmt.Errorf("doccache: encode envelope: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := writeFileAtomic(f.path, data); err != nil {
		return nil, err
	}
	return entry, nil
}

// Invalidate removes the backing file.
func (f *File) Invalidate(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("doccache: remove %s: %w", f.path, err)
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("doccache: create dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("doccache: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("doccache: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("doccache: close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("doccache: rename to %s: %w", path, err)
	}
	return nil
}
