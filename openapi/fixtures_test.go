package openapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/vitalvas/apidoc/meta"
)

const (
	userDto     = "app/dto/response.UserDto"
	addressDto  = "app/dto/response.AddressDto"
	otherUser   = "legacy/dto.UserDto"
	createUser  = "app/dto/request.CreateUser"
	userFilter  = "app/dto/request.UserFilter"
	emptyDto    = "app/dto/request.Empty"
	missingType = "app/dto/response.Missing"
)

func testCatalog() *meta.Catalog {
	c := meta.NewCatalog()

	c.AddType(meta.NewType(userDto).
		Field("id", "int", meta.Example(1), meta.Describe("User id")).
		Field("name", "string", meta.Example("Alice")).
		Field("address", addressDto).
		Field("manager", userDto).
		Build())

	c.AddType(meta.NewType(addressDto).
		Field("city", "string").
		Field("zip", "string").
		Build())

	c.AddType(meta.NewType(otherUser).
		Field("login", "string").
		Build())

	c.AddType(meta.NewType(createUser).
		Field("id", "int").
		Field("name", "string").
		Build())

	c.AddType(meta.NewType(userFilter).
		Field("page", "integer", meta.Example(2)).
		Field("active", "boolean", meta.Describe("Only active users")).
		Build())

	c.AddType(meta.NewType(emptyDto).Build())

	return c
}

type staticFinder []string

func (f staticFinder) Find(context.Context) ([]string, error) {
	return f, nil
}

type failingFinder struct{ err error }

func (f failingFinder) Find(context.Context) ([]string, error) {
	return nil, f.err
}

var errFinder = errors.New("scan failed")

func userController() *meta.Controller {
	b := meta.NewController("app/controllers.UserController", "/users/").
		Tag("Users", "User management")

	b.Route(http.MethodGet, "/", "listUsers").
		Summary("List users").
		Query("filter", userFilter).
		RespondsList(userDto)

	b.Route(http.MethodPost, "/", "createUser").
		Summary("Create user").
		Description("Creates a new user").
		Inject("request", "app/http.Request").
		JSON("input", createUser).
		Responds(userDto)

	b.Route("GET", "profile", "profile").
		Returns(userDto)

	return b.Build()
}

func healthController() *meta.Controller {
	b := meta.NewController("app/controllers.HealthController", "")
	b.Route(http.MethodGet, "/health", "health")
	return b.Build()
}
