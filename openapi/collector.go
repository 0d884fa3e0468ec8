package openapi

import (
	"strings"

	"github.com/vitalvas/apidoc/meta"
)

// Fallback tag for controllers that declare none.
const (
	DefaultTagName        = "Default"
	DefaultTagDescription = "Basic operations"
)

// Endpoint is one documented (path, method) pair discovered on a
// controller.
type Endpoint struct {
	Path        string
	Method      string // lower-case
	OperationID string
	Summary     string
	Description string
	Tag         Tag
	Route       *meta.Route
	Response    *Schema
	Params      ParameterSet
}

// Collector turns controller descriptors into endpoints. Response schemas
// are resolved while collecting, so every referenced type ends up in the
// resolver's registry.
type Collector struct {
	resolver *Resolver
}

// NewCollector creates a collector resolving response types with resolver.
func NewCollector(resolver *Resolver) *Collector {
	return &Collector{resolver: resolver}
}

// Collect returns one endpoint per declared route of ctrl, in declaration
// order. A descriptor without the controller-level marker yields nothing.
func (c *Collector) Collect(ctrl *meta.Controller) []Endpoint {
	if !ctrl.IsController() {
		return nil
	}

	tag := controllerTag(ctrl)
	endpoints := make([]Endpoint, 0, len(ctrl.Routes))

	for i := range ctrl.Routes {
		route := &ctrl.Routes[i]

		summary := route.Summary
		if summary == "" {
			summary = route.Name
		}

		endpoints = append(endpoints, Endpoint{
			Path:        JoinPath(*ctrl.Prefix, route.Path),
			Method:      strings.ToLower(route.Method),
			OperationID: route.Name,
			Summary:     summary,
			Description: route.Description,
			Tag:         tag,
			Route:       route,
			Response:    c.responseSchema(route),
		})
	}

	return endpoints
}

// JoinPath joins a controller prefix and a route path with a single slash
// and makes sure the result starts with exactly one slash.
//
//	JoinPath("/users/", "profile")  // "/users/profile"
//	JoinPath("", "/openapi.json")   // "/openapi.json"
func JoinPath(prefix, path string) string {
	full := strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(path, "/")
	return "/" + strings.TrimLeft(full, "/")
}

// controllerTag returns the first declared tag of ctrl, falling back to
// the default tag.
func controllerTag(ctrl *meta.Controller) Tag {
	if len(ctrl.Tags) == 0 {
		return Tag{Name: DefaultTagName, Description: DefaultTagDescription}
	}
	tag := ctrl.Tags[0]
	if tag.Description == "" {
		return Tag{Name: tag.Name, Description: "Operations on " + tag.Name}
	}
	return Tag{Name: tag.Name, Description: tag.Description}
}

// responseSchema resolves the success response schema of a route. An
// explicit response marker naming a known type wins; otherwise the
// declared return type decides.
func (c *Collector) responseSchema(route *meta.Route) *Schema {
	if marker := route.Response; marker != nil {
		if ref, ok := c.resolver.Ref(marker.Type); ok {
			if marker.IsArray {
				return &Schema{Type: "array", Items: ref}
			}
			return ref
		}
	}

	switch route.Returns {
	case "":
		return &Schema{Type: "object"}
	case meta.TypeArray:
		return &Schema{Type: "array", Items: &Schema{Type: "object"}}
	}

	if ref, ok := c.resolver.Ref(route.Returns); ok {
		return ref
	}
	return &Schema{Type: "object"}
}
