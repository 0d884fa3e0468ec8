package openapi

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vitalvas/apidoc/meta"
)

// Finder yields the names of the controllers to document, in the order
// they are processed.
type Finder interface {
	Find(ctx context.Context) ([]string, error)
}

// Catalog resolves controller and type names to descriptors.
// *meta.Catalog satisfies it.
type Catalog interface {
	TypeLookup
	Controller(name string) (*meta.Controller, error)
}

// Observer is notified after every generation pass.
type Observer interface {
	ObserveGeneration(elapsed time.Duration, endpoints, schemas int, err error)
}

// Option configures a Generator.
type Option func(*Generator)

// WithInfo sets the info block of generated documents.
func WithInfo(info Info) Option {
	return func(g *Generator) { g.settings.Info = info }
}

// WithServerURL sets the URL of the single server entry.
func WithServerURL(url string) Option {
	return func(g *Generator) { g.settings.ServerURL = url }
}

// WithServerDescription sets the description of the single server entry.
func WithServerDescription(description string) Option {
	return func(g *Generator) { g.settings.ServerDescription = description }
}

// WithLogger sets the logger used during generation.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) { g.logger = logger }
}

// WithObserver registers an observer notified after every pass.
func WithObserver(o Observer) Option {
	return func(g *Generator) { g.observer = o }
}

// Generator produces OpenAPI documents from the controllers a Finder
// yields. It keeps no state between passes: every call to Generate uses a
// fresh schema registry, so concurrent calls are safe.
type Generator struct {
	finder   Finder
	catalog  Catalog
	settings Settings
	logger   *slog.Logger
	observer Observer
}

// NewGenerator creates a generator over the given finder and catalog.
func NewGenerator(finder Finder, catalog Catalog, opts ...Option) *Generator {
	g := &Generator{
		finder:  finder,
		catalog: catalog,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate runs one complete pass and returns the document. Any failure
// aborts the pass; no partial document is returned.
func (g *Generator) Generate(ctx context.Context) (*Document, error) {
	start := time.Now()

	endpoints, registry, err := g.collect(ctx)
	if err != nil {
		g.observe(start, 0, 0, err)
		return nil, err
	}

	doc := Assemble(endpoints, registry, g.settings)
	g.observe(start, len(endpoints), registry.Len(), nil)

	g.logger.Info("openapi document generated",
		slog.Int("operations", doc.Operations()),
		slog.Int("schemas", registry.Len()),
		slog.Int("tags", len(doc.Tags)),
		slog.Duration("elapsed", time.Since(start)),
	)

	return doc, nil
}

// Endpoints runs discovery and collection only and returns the endpoints
// in discovery order.
func (g *Generator) Endpoints(ctx context.Context) ([]Endpoint, error) {
	endpoints, _, err := g.collect(ctx)
	return endpoints, err
}

func (g *Generator) collect(ctx context.Context) ([]Endpoint, *SchemaRegistry, error) {
	names, err := g.finder.Find(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("openapi: find controllers: %w", err)
	}

	registry := NewSchemaRegistry()
	resolver := NewResolver(g.catalog, registry, g.logger)
	collector := NewCollector(resolver)

	var endpoints []Endpoint
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		ctrl, err := g.catalog.Controller(name)
		if err != nil {
			return nil, nil, fmt.Errorf("openapi: load controller: %w", err)
		}

		found := collector.Collect(ctrl)
		for i := range found {
			found[i].Params = ExtractParameters(g.catalog, *found[i].Route)
		}

		g.logger.Debug("controller collected",
			slog.String("controller", name),
			slog.Int("operations", len(found)),
		)
		endpoints = append(endpoints, found...)
	}

	return endpoints, registry, nil
}

func (g *Generator) observe(start time.Time, endpoints, schemas int, err error) {
	if g.observer != nil {
		g.observer.ObserveGeneration(time.Since(start), endpoints, schemas, err)
	}
}
