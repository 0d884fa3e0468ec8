package openapi

import (
	"net/http"
	"strconv"
)

// Defaults used when Settings leave a value empty.
const (
	DefaultServerURL         = "http://localhost:8000"
	DefaultServerDescription = "Current server"
	DefaultTitle             = "API"
	DefaultAPIVersion        = "1.0.0"
	DefaultDescription       = "Automatically generated documentation"
	SuccessDescription       = "Successful response"
)

// Settings carries the document-level values that do not come from
// controllers.
type Settings struct {
	Info              Info
	ServerURL         string
	ServerDescription string
}

// withDefaults fills every empty value with its default.
func (s Settings) withDefaults() Settings {
	if s.Info.Title == "" {
		s.Info.Title = DefaultTitle
	}
	if s.Info.Version == "" {
		s.Info.Version = DefaultAPIVersion
	}
	if s.Info.Description == "" {
		s.Info.Description = DefaultDescription
	}
	if s.ServerURL == "" {
		s.ServerURL = DefaultServerURL
	}
	if s.ServerDescription == "" {
		s.ServerDescription = DefaultServerDescription
	}
	return s
}

// Assemble merges endpoints, in order, and the collected schemas into one
// document. Endpoints sharing a path share a path entry; a repeated
// (path, method) pair replaces the earlier operation. Tags are listed in
// first-seen order and keep the first description seen. Components are
// omitted when no schema was collected.
//
// See: https://spec.openapis.org/oas/v3.1.0#openapi-object
func Assemble(endpoints []Endpoint, registry *SchemaRegistry, settings Settings) *Document {
	settings = settings.withDefaults()

	doc := &Document{
		OpenAPI: Version,
		Info:    settings.Info,
		Servers: []Server{{URL: settings.ServerURL, Description: settings.ServerDescription}},
		Tags:    []Tag{},
		Paths:   make(map[string]map[string]*Operation),
	}

	seenTags := make(map[string]bool)

	for _, ep := range endpoints {
		methods, ok := doc.Paths[ep.Path]
		if !ok {
			methods = make(map[string]*Operation)
			doc.Paths[ep.Path] = methods
		}
		methods[ep.Method] = buildOperation(ep)

		if !seenTags[ep.Tag.Name] {
			seenTags[ep.Tag.Name] = true
			doc.Tags = append(doc.Tags, ep.Tag)
		}
	}

	if registry != nil && registry.Len() > 0 {
		doc.Components = &Components{Schemas: registry.Schemas()}
	}

	return doc
}

// buildOperation renders one endpoint. Path template parameters come
// first, then query parameters. Only the success response is documented.
func buildOperation(ep Endpoint) *Operation {
	op := &Operation{
		Tags:        []string{ep.Tag.Name},
		Summary:     ep.Summary,
		Description: ep.Description,
		OperationID: ep.OperationID,
		Parameters:  append(PathParameters(ep.Path), ep.Params.Parameters()...),
		RequestBody: ep.Params.Body,
		Responses: map[string]*Response{
			strconv.Itoa(http.StatusOK): {
				Description: SuccessDescription,
				Content: map[string]*MediaType{
					MediaTypeJSON: {Schema: ep.Response},
				},
			},
		},
	}
	return op
}
