package openapi

import "gopkg.in/yaml.v3"

// Version is the OpenAPI Specification version of generated documents.
//
// See: https://spec.openapis.org/oas/v3.1.0
const Version = "3.1.0"

// Document represents the root of a generated OpenAPI v3.1.0 document.
// Paths map an OpenAPI path to lower-case HTTP methods.
//
// See: https://spec.openapis.org/oas/v3.1.0#openapi-object
type Document struct {
	OpenAPI    string                           `json:"openapi" yaml:"openapi"`
	Info       Info                             `json:"info" yaml:"info"`
	Servers    []Server                         `json:"servers" yaml:"servers"`
	Tags       []Tag                            `json:"tags" yaml:"tags"`
	Paths      map[string]map[string]*Operation `json:"paths" yaml:"paths"`
	Components *Components                      `json:"components,omitempty" yaml:"components,omitempty"`
}

// Info provides metadata about the API.
//
// See: https://spec.openapis.org/oas/v3.1.0#info-object
type Info struct {
	Title       string `json:"title" yaml:"title"`
	Version     string `json:"version" yaml:"version"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Server represents a server.
//
// See: https://spec.openapis.org/oas/v3.1.0#server-object
type Server struct {
	URL         string `json:"url" yaml:"url"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Tag adds metadata to a single tag used by Operation Objects.
//
// See: https://spec.openapis.org/oas/v3.1.0#tag-object
type Tag struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Operation describes a single API operation on a path.
//
// See: https://spec.openapis.org/oas/v3.1.0#operation-object
type Operation struct {
	Tags        []string             `json:"tags,omitempty" yaml:"tags,omitempty"`
	Summary     string               `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string               `json:"description,omitempty" yaml:"description,omitempty"`
	OperationID string               `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Parameters  []*Parameter         `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	RequestBody *RequestBody         `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
	Responses   map[string]*Response `json:"responses" yaml:"responses"`
}

// Parameter describes a single operation parameter. Generated documents
// only contain query parameters.
//
// See: https://spec.openapis.org/oas/v3.1.0#parameter-object
type Parameter struct {
	Name     string  `json:"name" yaml:"name"`
	In       string  `json:"in" yaml:"in"`
	Required bool    `json:"required" yaml:"required"`
	Schema   *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// RequestBody describes a single request body.
//
// See: https://spec.openapis.org/oas/v3.1.0#request-body-object
type RequestBody struct {
	Required bool                  `json:"required" yaml:"required"`
	Content  map[string]*MediaType `json:"content" yaml:"content"`
}

// Response describes a single response from an API operation.
// The description field is REQUIRED per the specification.
//
// See: https://spec.openapis.org/oas/v3.1.0#response-object
type Response struct {
	Description string                `json:"description" yaml:"description"`
	Content     map[string]*MediaType `json:"content,omitempty" yaml:"content,omitempty"`
}

// MediaType describes a media type with a schema.
//
// See: https://spec.openapis.org/oas/v3.1.0#media-type-object
type MediaType struct {
	Schema *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// Schema is the subset of a JSON Schema object the generator emits: a
// primitive descriptor, a reference, an array wrapper or an object with
// properties.
//
// See: https://spec.openapis.org/oas/v3.1.0#schema-object
// See: https://json-schema.org/draft/2020-12/json-schema-core
type Schema struct {
	Ref         string             `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Type        string             `json:"type,omitempty" yaml:"type,omitempty"`
	Items       *Schema            `json:"items,omitempty" yaml:"items,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitzero" yaml:"properties,omitempty"`
	Example     any                `json:"example,omitempty" yaml:"example,omitempty"`
	Description string             `json:"description,omitempty" yaml:"description,omitempty"`
}

// MarshalYAML keeps an empty, non-nil Properties map as "properties: {}",
// matching the JSON encoding.
func (s *Schema) MarshalYAML() (any, error) {
	type plain Schema
	if s.Properties == nil || len(s.Properties) > 0 {
		return (*plain)(s), nil
	}

	var node yaml.Node
	if err := node.Encode((*plain)(s)); err != nil {
		return nil, err
	}
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "properties"},
		&yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Style: yaml.FlowStyle},
	)
	return &node, nil
}

// Components holds the named schemas collected during generation.
//
// See: https://spec.openapis.org/oas/v3.1.0#components-object
type Components struct {
	Schemas map[string]*Schema `json:"schemas" yaml:"schemas"`
}

// Operations returns the number of operations across all paths.
func (d *Document) Operations() int {
	var n int
	for _, methods := range d.Paths {
		n += len(methods)
	}
	return n
}
