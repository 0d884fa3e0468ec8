// Package doccache stores a generated OpenAPI document between requests.
//
// The generator never caches; the serving layer decides when to consult a
// Cache and when to regenerate. Freshness is decided with an injected clock
// so expiry can be tested without sleeping.
package doccache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vitalvas/apidoc/openapi"
)

// ErrMiss is returned by Get when no fresh entry is stored.
var ErrMiss = errors.New("doccache: miss")

// Cache stores at most one generated document.
type Cache interface {
	// Get returns the stored entry, or ErrMiss when there is none or it
	// has expired.
	Get(ctx context.Context) (*Entry, error)
	// Store serializes doc and replaces the stored entry.
	Store(ctx context.Context, doc *openapi.Document) (*Entry, error)
	// Invalidate drops the stored entry.
	Invalidate(ctx context.Context) error
}

// Entry is a cached document together with its serialized form.
type Entry struct {
	// ID identifies the generation that produced the entry. It is a
	// time-ordered UUID and doubles as the HTTP entity tag.
	ID          string
	GeneratedAt time.Time
	Document    *openapi.Document
	JSON        []byte
}

// ETag returns the quoted entity tag of the entry.
func (e *Entry) ETag() string {
	return `"` + e.ID + `"`
}

// NewEntry serializes doc into a new entry generated at now.
func NewEntry(doc *openapi.Document, now time.Time) (*Entry, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("doccache: encode document: %w", err)
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("doccache: entry id: %w", err)
	}
	return &Entry{
		ID:          id.String(),
		GeneratedAt: now,
		Document:    doc,
		JSON:        data,
	}, nil
}

// Clock returns the current time.
type Clock func() time.Time

// Observer is notified of every lookup.
type Observer interface {
	ObserveCacheLookup(hit bool)
}

type options struct {
	ttl      time.Duration
	clock    Clock
	observer Observer
}

// Option configures a cache.
type Option func(*options)

// WithTTL sets how long an entry stays fresh. Zero or negative keeps
// entries until invalidated.
func WithTTL(ttl time.Duration) Option {
	return func(o *options) { o.ttl = ttl }
}

// WithClock replaces time.Now.
func WithClock(clock Clock) Option {
	return func(o *options) { o.clock = clock }
}

// WithObserver registers a lookup observer.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

func newOptions(opts []Option) options {
	o := options{clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) fresh(e *Entry) bool {
	if o.ttl <= 0 {
		return true
	}
	return o.clock().Sub(e.GeneratedAt) < o.ttl
}

func (o options) observe(hit bool) {
	if o.observer != nil {
		o.observer.ObserveCacheLookup(hit)
	}
}
