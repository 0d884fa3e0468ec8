package openapi

import (
	"strings"

	"github.com/vitalvas/apidoc/meta"
)

// MediaTypeJSON is the only media type used for request and response bodies.
const MediaTypeJSON = "application/json"

// QueryParam is a single documented query-string parameter.
type QueryParam struct {
	Name   string
	Schema *Schema
}

// ParameterSet holds the documented inputs of one operation.
type ParameterSet struct {
	Query []QueryParam
	Body  *RequestBody
}

// ExtractParameters classifies the bound params of a route into query
// parameters and a request body. Params without a bind source, of a builtin
// type or of an unknown type are skipped, as are params bound from any
// source other than "json" and "query". Bound types are always inlined.
// A later "json" param replaces an earlier body; a later query field with
// the same name replaces the earlier schema in place.
//
// See: https://spec.openapis.org/oas/v3.1.0#parameter-object
// See: https://spec.openapis.org/oas/v3.1.0#request-body-object
func ExtractParameters(types TypeLookup, route meta.Route) ParameterSet {
	var set ParameterSet
	index := make(map[string]int)

	for _, param := range route.Params {
		if param.Source == "" {
			continue
		}

		desc, ok := types.Type(param.Type)
		if !ok {
			continue
		}

		switch param.Source {
		case meta.SourceJSON:
			set.Body = &RequestBody{
				Required: true,
				Content: map[string]*MediaType{
					MediaTypeJSON: {Schema: InlineSchema(desc)},
				},
			}

		case meta.SourceQuery:
			for _, f := range desc.Fields {
				schema := inlineFieldSchema(f)
				if i, seen := index[f.Name]; seen {
					set.Query[i].Schema = schema
					continue
				}
				index[f.Name] = len(set.Query)
				set.Query = append(set.Query, QueryParam{Name: f.Name, Schema: schema})
			}
		}
	}

	return set
}

// Parameters renders the query parameters as OpenAPI parameter objects.
func (s ParameterSet) Parameters() []*Parameter {
	if len(s.Query) == 0 {
		return nil
	}
	params := make([]*Parameter, 0, len(s.Query))
	for _, q := range s.Query {
		params = append(params, &Parameter{
			Name:     q.Name,
			In:       "query",
			Required: false,
			Schema:   q.Schema,
		})
	}
	return params
}

// PathParameters documents every {name} template segment of path as a
// required string path parameter, in template order. The ServeMux
// wildcard suffix "..." and the end anchor {$} are not parameters.
//
// See: https://spec.openapis.org/oas/v3.1.0#path-templating
func PathParameters(path string) []*Parameter {
	var params []*Parameter
	seen := make(map[string]bool)

	for segment := range strings.SplitSeq(path, "/") {
		name, ok := strings.CutPrefix(segment, "{")
		if !ok {
			continue
		}
		name, ok = strings.CutSuffix(name, "}")
		if !ok {
			continue
		}
		name = strings.TrimSuffix(name, "...")
		if name == "" || name == "$" || seen[name] {
			continue
		}
		seen[name] = true

		params = append(params, &Parameter{
			Name:     name,
			In:       "path",
			Required: true,
			Schema:   &Schema{Type: "string"},
		})
	}

	return params
}
