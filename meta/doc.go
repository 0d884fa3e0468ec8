// Package meta declares route-handler controllers and their data-transfer
// types as explicit descriptors.
//
// Descriptors replace runtime annotations: every controller states its path
// prefix, tag and routes, and every data-transfer type states its fields.
// The openapi package reads descriptors from a Catalog and never inspects
// handlers or Go types itself.
//
// # Declaring Types
//
// Types are declared by hand:
//
//	catalog.AddType(meta.NewType("shop/dto/response.UserDto").
//	    Field("id", "int", meta.Example(42)).
//	    Field("name", "string", meta.Describe("Display name")).
//	    Field("address", "shop/dto/response.AddressDto").
//	    Build())
//
// or derived from Go structs, which also registers every nested named struct:
//
//	name := catalog.Register(UserDto{}) // "example.com/shop/dto.UserDto"
//
// # Declaring Controllers
//
//	users := meta.NewController("shop/controllers.UserController", "/users").
//	    Tag("Users", "")
//
//	users.Route(http.MethodGet, "/", "listUsers").
//	    Query("filter", "shop/dto/request.UserFilter").
//	    RespondsList("shop/dto/response.UserDto").
//	    HandlerFunc(listUsers)
//
//	catalog.AddController(users.Build())
//
// A route param without a bind source is treated as framework-injected and
// is never documented. A descriptor created with NewPlain has no
// controller-level marker and contributes no operations.
package meta
