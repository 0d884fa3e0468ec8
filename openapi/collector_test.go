package openapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitalvas/apidoc/meta"
)

func newTestCollector() (*Collector, *SchemaRegistry) {
	registry := NewSchemaRegistry()
	return NewCollector(NewResolver(testCatalog(), registry, nil)), registry
}

func TestJoinPath(t *testing.T) {
	for _, prefix := range []string{"users", "/users", "users/", "/users/", "//users//"} {
		for _, path := range []string{"profile", "/profile", "//profile"} {
			assert.Equal(t, "/users/profile", JoinPath(prefix, path), "%q + %q", prefix, path)
		}
	}

	assert.Equal(t, "/openapi.json", JoinPath("", "/openapi.json"))
	assert.Equal(t, "/openapi.json", JoinPath("/", "openapi.json"))
	assert.Equal(t, "/users/", JoinPath("/users", ""))
	assert.Equal(t, "/users/{id}", JoinPath("/users", "{id}"))
	assert.Equal(t, "/", JoinPath("", ""))
}

func TestCollectorCollect(t *testing.T) {
	t.Run("no controller marker", func(t *testing.T) {
		c, _ := newTestCollector()
		b := meta.NewPlain("app.Helper")
		b.Route(http.MethodGet, "/x", "x")

		assert.Empty(t, c.Collect(b.Build()))
	})

	t.Run("routes", func(t *testing.T) {
		c, _ := newTestCollector()
		endpoints := c.Collect(userController())
		require.Len(t, endpoints, 3)

		list := endpoints[0]
		assert.Equal(t, "/users/", list.Path)
		assert.Equal(t, "get", list.Method)
		assert.Equal(t, "listUsers", list.OperationID)
		assert.Equal(t, "List users", list.Summary)
		assert.Equal(t, Tag{Name: "Users", Description: "User management"}, list.Tag)

		create := endpoints[1]
		assert.Equal(t, "post", create.Method)
		assert.Equal(t, "Creates a new user", create.Description)
		assert.Equal(t, "createUser", create.Route.Name)

		profile := endpoints[2]
		assert.Equal(t, "/users/profile", profile.Path)
		assert.Equal(t, "get", profile.Method)
		assert.Equal(t, "profile", profile.Summary)
		assert.Empty(t, profile.Description)
	})

	t.Run("default tag", func(t *testing.T) {
		c, _ := newTestCollector()
		endpoints := c.Collect(healthController())
		require.Len(t, endpoints, 1)
		assert.Equal(t, Tag{Name: "Default", Description: "Basic operations"}, endpoints[0].Tag)
	})

	t.Run("tag without description", func(t *testing.T) {
		c, _ := newTestCollector()
		b := meta.NewController("app.Orders", "/orders").Tag("Orders", "").Tag("Ignored", "x")
		b.Route(http.MethodGet, "/", "list")

		endpoints := c.Collect(b.Build())
		require.Len(t, endpoints, 1)
		assert.Equal(t, Tag{Name: "Orders", Description: "Operations on Orders"}, endpoints[0].Tag)
	})

	t.Run("method lower cased", func(t *testing.T) {
		c, _ := newTestCollector()
		b := meta.NewController("app.Items", "/items")
		b.Route("PaTcH", "{id}", "patch")

		endpoints := c.Collect(b.Build())
		assert.Equal(t, "patch", endpoints[0].Method)
		assert.Equal(t, "/items/{id}", endpoints[0].Path)
	})
}

func TestCollectorResponseSchema(t *testing.T) {
	route := func(configure func(*meta.RouteBuilder)) *meta.Controller {
		b := meta.NewController("app.Ctrl", "/")
		configure(b.Route(http.MethodGet, "/r", "r"))
		return b.Build()
	}

	t.Run("array marker", func(t *testing.T) {
		c, registry := newTestCollector()
		ep := c.Collect(route(func(r *meta.RouteBuilder) { r.RespondsList(userDto) }))[0]

		assert.Equal(t, &Schema{Type: "array", Items: RefSchema("UserDto")}, ep.Response)
		assert.True(t, registry.Has("UserDto"))
	})

	t.Run("single marker", func(t *testing.T) {
		c, _ := newTestCollector()
		ep := c.Collect(route(func(r *meta.RouteBuilder) { r.Responds(addressDto) }))[0]
		assert.Equal(t, RefSchema("AddressDto"), ep.Response)
	})

	t.Run("marker wins over return type", func(t *testing.T) {
		c, _ := newTestCollector()
		ep := c.Collect(route(func(r *meta.RouteBuilder) { r.Responds(addressDto).Returns(userDto) }))[0]
		assert.Equal(t, RefSchema("AddressDto"), ep.Response)
	})

	t.Run("unknown marker falls back to return type", func(t *testing.T) {
		c, _ := newTestCollector()
		ep := c.Collect(route(func(r *meta.RouteBuilder) { r.RespondsList(missingType).Returns("array") }))[0]
		assert.Equal(t, &Schema{Type: "array", Items: &Schema{Type: "object"}}, ep.Response)
	})

	t.Run("structured return type", func(t *testing.T) {
		c, registry := newTestCollector()
		ep := c.Collect(route(func(r *meta.RouteBuilder) { r.Returns(userDto) }))[0]
		assert.Equal(t, RefSchema("UserDto"), ep.Response)
		assert.Equal(t, 2, registry.Len())
	})

	t.Run("no return type", func(t *testing.T) {
		c, registry := newTestCollector()
		ep := c.Collect(route(func(*meta.RouteBuilder) {}))[0]
		assert.Equal(t, &Schema{Type: "object"}, ep.Response)
		assert.Zero(t, registry.Len())
	})

	t.Run("builtin and unknown return types", func(t *testing.T) {
		c, _ := newTestCollector()
		for _, typeName := range []string{"string", "int", "bool", missingType} {
			ep := c.Collect(route(func(r *meta.RouteBuilder) { r.Returns(typeName) }))[0]
			assert.Equal(t, &Schema{Type: "object"}, ep.Response, typeName)
		}
	})
}
