package doccache

import (
	"context"
	"sync"

	"github.com/vitalvas/apidoc/openapi"
)

// Memory keeps the entry in process memory.
type Memory struct {
	opts options

	mu    sync.RWMutex
	entry *Entry
}

// NewMemory creates an empty in-memory cache.
func NewMemory(opts ...Option) *Memory {
	return &Memory{opts: newOptions(opts)}
}

// Get returns the stored entry while it is fresh.
func (m *Memory) Get(_ context.Context) (*Entry, error) {
	m.mu.RLock()
	entry := m.entry
	m.mu.RUnlock()

	if entry == nil || !m.opts.fresh(entry) {
		m.opts.observe(false)
		return nil, ErrMiss
	}
	m.opts.observe(true)
	return entry, nil
}

// Store replaces the stored entry.
func (m *Memory) Store(_ context.Context, doc *openapi.Document) (*Entry, error) {
	entry, err := NewEntry(doc, m.opts.clock())
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.entry = entry
	m.mu.Unlock()
	return entry, nil
}

// Invalidate drops the stored entry.
func (m *Memory) Invalidate(_ context.Context) error {
	m.mu.Lock()
	m.entry = nil
	m.mu.Unlock()
	return nil
}
