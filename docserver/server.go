// Package docserver serves generated OpenAPI documents over HTTP and
// mounts documented controllers on a net/http ServeMux.
package docserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/vitalvas/apidoc/doccache"
	"github.com/vitalvas/apidoc/meta"
	"github.com/vitalvas/apidoc/openapi"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

// Default locations of the served endpoints.
const (
	JSONPath = "/openapi.json"
	YAMLPath = "/openapi.yaml"
	DocsPath = "/docs"
)

// ControllerName is the name of the descriptor returned by Controller.
const ControllerName = "github.com/vitalvas/apidoc/docserver.Server"

// ErrRateLimited is returned when debug-mode regeneration is throttled.
var ErrRateLimited = errors.New("docserver: regeneration rate limited")

// Generator produces a fresh document. *openapi.Generator satisfies it.
type Generator interface {
	Generate(ctx context.Context) (*openapi.Document, error)
}

// Option configures a Server.
type Option func(*Server)

// WithDebug toggles debug mode. In debug mode every request regenerates
// the document and the cache is neither read nor written.
func WithDebug(debug bool) Option {
	return func(s *Server) { s.debug = debug }
}

// WithRateLimit bounds debug-mode regenerations to limit per second with
// the given burst. A zero limit disables throttling.
func WithRateLimit(limit float64, burst int) Option {
	return func(s *Server) {
		if limit <= 0 {
			s.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(limit), burst)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithUI selects the interactive documentation page.
func WithUI(ui DocsUI) Option {
	return func(s *Server) { s.ui = ui }
}

// WithTitle sets the HTML title of the documentation page.
func WithTitle(title string) Option {
	return func(s *Server) { s.title = title }
}

// Server serves the document produced by a Generator, through a
// doccache.Cache unless debug mode is on.
type Server struct {
	gen     Generator
	cache   doccache.Cache
	debug   bool
	limiter *rate.Limiter
	logger  *slog.Logger
	ui      DocsUI
	title   string

	// regen collapses concurrent regenerations on a cache miss.
	regen singleflight.Group
}

// New creates a server. A nil cache behaves like debug mode.
func New(gen Generator, cache doccache.Cache, opts ...Option) *Server {
	s := &Server{
		gen:    gen,
		cache:  cache,
		logger: slog.New(slog.DiscardHandler),
		title:  openapi.DefaultTitle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Document returns the current document entry. Outside debug mode a cached
// entry is served when present; otherwise the document is generated and
// stored. A failing cache never fails the request.
func (s *Server) Document(ctx context.Context) (*doccache.Entry, error) {
	if s.debug || s.cache == nil {
		if s.limiter != nil && !s.limiter.Allow() {
			return nil, ErrRateLimited
		}
		return s.generate(ctx)
	}

	if entry, ok := s.cached(ctx); ok {
		return entry, nil
	}

	// A shared flight is not cancelled by the caller that started it.
	flightCtx := context.WithoutCancel(ctx)
	ch := s.regen.DoChan("document", func() (any, error) {
		doc, err := s.gen.Generate(flightCtx)
		if err != nil {
			return nil, err
		}

		entry, err := s.cache.Store(flightCtx, doc)
		if err != nil {
			s.logger.Warn("document cache store failed", slog.Any("error", err))
			return doccache.NewEntry(doc, time.Now())
		}
		return entry, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*doccache.Entry), nil
	}
}

func (s *Server) cached(ctx context.Context) (*doccache.Entry, bool) {
	entry, err := s.cache.Get(ctx)
	if err == nil {
		return entry, true
	}
	if !errors.Is(err, doccache.ErrMiss) {
		s.logger.Warn("document cache lookup failed", slog.Any("error", err))
	}
	return nil, false
}

func (s *Server) generate(ctx context.Context) (*doccache.Entry, error) {
	doc, err := s.gen.Generate(ctx)
	if err != nil {
		return nil, err
	}
	return doccache.NewEntry(doc, time.Now())
}

// ServeJSON writes the document as JSON.
func (s *Server) ServeJSON(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.entry(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(entry.JSON)
}

// ServeYAML writes the document as YAML.
func (s *Server) ServeYAML(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.entry(w, r)
	if !ok {
		return
	}
	data, err := yaml.Marshal(entry.Document)
	if err != nil {
		s.logger.Error("failed to serialize document as YAML", slog.Any("error", err))
		http.Error(w, "failed to serialize OpenAPI document as YAML", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/x-yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// ServeDocs writes the interactive documentation page.
func (s *Server) ServeDocs(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(renderPage(s.ui, s.title, JSONPath)))
}

// entry resolves the document and answers conditional requests. It
// reports false when a response has already been written.
func (s *Server) entry(w http.ResponseWriter, r *http.Request) (*doccache.Entry, bool) {
	entry, err := s.Document(r.Context())
	if err != nil {
		if errors.Is(err, ErrRateLimited) {
			retry := 1
			if s.limiter != nil && s.limiter.Limit() > 0 {
				retry = max(1, int(1/float64(s.limiter.Limit())))
			}
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return nil, false
		}
		s.logger.Error("document generation failed", slog.Any("error", err))
		http.Error(w, "failed to generate OpenAPI document", http.StatusInternalServerError)
		return nil, false
	}

	etag := entry.ETag()
	w.Header().Set("ETag", etag)
	w.Header().Set("Last-Modified", entry.GeneratedAt.UTC().Format(http.TimeFormat))
	if s.debug {
		w.Header().Set("Cache-Control", "no-store")
	}

	if etagMatch(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return nil, false
	}

	return entry, true
}

// etagMatch reports whether an If-None-Match header value matches etag
// using the weak comparison.
//
// See: https://www.rfc-editor.org/rfc/rfc9110#section-13.1.2
func etagMatch(header, etag string) bool {
	etag = strings.TrimPrefix(etag, "W/")
	for candidate := range strings.SplitSeq(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || (candidate != "" && strings.TrimPrefix(candidate, "W/") == etag) {
			return true
		}
	}
	return false
}

// Handle registers the JSON, YAML and documentation endpoints on mux. Do
// not combine it with mounting Controller, which registers the same paths.
func (s *Server) Handle(mux *http.ServeMux) {
	mux.HandleFunc(http.MethodGet+" "+JSONPath, s.ServeJSON)
	mux.HandleFunc(http.MethodGet+" "+YAMLPath, s.ServeYAML)
	s.HandleDocs(mux)
}

// HandleDocs registers only the documentation page.
func (s *Server) HandleDocs(mux *http.ServeMux) {
	mux.HandleFunc(http.MethodGet+" "+DocsPath, s.ServeDocs)
	mux.HandleFunc(http.MethodGet+" "+DocsPath+"/{$}", s.ServeDocs)
}

// Controller describes the document endpoints so they appear in the
// generated document themselves. Its handlers serve this server.
func (s *Server) Controller() *meta.Controller {
	ctrl := meta.NewController(ControllerName, "").
		Tag("Swagger (Documentation)", "Documentation methods")

	ctrl.Route(http.MethodGet, JSONPath, "openapiSpec").
		Summary("Get documentation").
		Description("Returns the documentation for rendering").
		Returns(meta.TypeArray).
		HandlerFunc(s.ServeJSON)

	ctrl.Route(http.MethodGet, YAMLPath, "openapiSpecYaml").
		Summary("Get documentation as YAML").
		Description("Returns the documentation serialized as YAML").
		Returns(meta.TypeArray).
		HandlerFunc(s.ServeYAML)

	return ctrl.Build()
}
