package meta

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortName(t *testing.T) {
	t.Run("go import path", func(t *testing.T) {
		assert.Equal(t, "UserDto", ShortName("github.com/acme/shop/dto.UserDto"))
	})

	t.Run("slash separated", func(t *testing.T) {
		assert.Equal(t, "UserDto", ShortName("shop/dto/response/UserDto"))
	})

	t.Run("backslash separated", func(t *testing.T) {
		assert.Equal(t, "UserDto", ShortName(`App\Dto\Response\UserDto`))
	})

	t.Run("unqualified", func(t *testing.T) {
		assert.Equal(t, "UserDto", ShortName("UserDto"))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, ShortName(""))
	})
}

func TestIsBuiltin(t *testing.T) {
	for _, name := range []string{"int", "integer", "float", "double", "bool", "boolean", "string", "array"} {
		assert.True(t, IsBuiltin(name), name)
	}
	assert.False(t, IsBuiltin("shop/dto.UserDto"))
	assert.False(t, IsBuiltin(""))
}

func TestCatalog(t *testing.T) {
	t.Run("controller lookup", func(t *testing.T) {
		c := NewCatalog()
		c.AddController(NewController("shop.UserController", "/users").Build())

		ctrl, err := c.Controller("shop.UserController")
		require.NoError(t, err)
		assert.Equal(t, "shop.UserController", ctrl.Name)
		assert.True(t, ctrl.IsController())
	})

	t.Run("unknown controller", func(t *testing.T) {
		c := NewCatalog()

		_, err := c.Controller("shop.Missing")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnknownController))
		assert.Contains(t, err.Error(), "shop.Missing")
	})

	t.Run("builtin names never resolve", func(t *testing.T) {
		c := NewCatalog()
		c.AddType(&TypeDesc{Name: "string"})

		_, ok := c.Type("string")
		assert.False(t, ok)
	})

	t.Run("sorted listings", func(t *testing.T) {
		c := NewCatalog()
		c.AddController(NewPlain("b.Second").Build())
		c.AddController(NewPlain("a.First").Build())
		c.AddType(&TypeDesc{Name: "z.Last"})
		c.AddType(&TypeDesc{Name: "m.Middle"})

		assert.Equal(t, []string{"a.First", "b.Second"}, c.Controllers())
		assert.Equal(t, []string{"m.Middle", "z.Last"}, c.Types())
	})
}

func TestControllerBuilder(t *testing.T) {
	t.Run("plain descriptor has no marker", func(t *testing.T) {
		ctrl := NewPlain("shop.Helper").Build()
		assert.False(t, ctrl.IsController())
		assert.Nil(t, ctrl.Prefix)
	})

	t.Run("routes and params", func(t *testing.T) {
		b := NewController("shop.UserController", "/users/").Tag("Users", "User management")

		b.Route(http.MethodPost, "/", "createUser").
			Summary("Create").
			Description("Creates a user").
			Inject("req", "shop.Request").
			JSON("input", "shop.CreateUser").
			Responds("shop.UserDto")

		b.Route(http.MethodGet, "/", "listUsers").
			Query("filter", "shop.Filter").
			RespondsList("shop.UserDto").
			Returns("array")

		ctrl := b.Build()
		require.Len(t, ctrl.Routes, 2)
		assert.Equal(t, "/users/", *ctrl.Prefix)
		assert.Equal(t, []Tag{{Name: "Users", Description: "User management"}}, ctrl.Tags)

		create := ctrl.Routes[0]
		assert.Equal(t, "createUser", create.Name)
		assert.Equal(t, "Create", create.Summary)
		assert.Equal(t, "Creates a user", create.Description)
		assert.Equal(t, []Param{
			{Name: "req", Type: "shop.Request"},
			{Name: "input", Type: "shop.CreateUser", Source: SourceJSON},
		}, create.Params)
		assert.Equal(t, &ResponseMarker{Type: "shop.UserDto"}, create.Response)

		list := ctrl.Routes[1]
		assert.Equal(t, []Param{{Name: "filter", Type: "shop.Filter", Source: SourceQuery}}, list.Params)
		assert.Equal(t, &ResponseMarker{Type: "shop.UserDto", IsArray: true}, list.Response)
		assert.Equal(t, TypeArray, list.Returns)
	})

	t.Run("handler attached", func(t *testing.T) {
		b := NewController("shop.PingController", "")
		b.Route(http.MethodGet, "/ping", "ping").HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})

		route := b.Build().Routes[0]
		require.NotNil(t, route.Handler)

		w := httptest.NewRecorder()
		route.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestTypeBuilder(t *testing.T) {
	desc := NewType("shop.UserDto").
		Field("id", "int", Example(42), Describe("Identifier")).
		Field("name", "string").
		Build()

	assert.Equal(t, "UserDto", desc.ShortName())
	assert.Equal(t, []Field{
		{Name: "id", Type: "int", Example: 42, Description: "Identifier"},
		{Name: "name", Type: "string"},
	}, desc.Fields)
}
