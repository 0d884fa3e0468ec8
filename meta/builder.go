package meta

import (
	"net/http"
)

// ControllerBuilder declares a controller with a fluent API:
//
//	users := meta.NewController("shop/controllers.UserController", "/users").
//	    Tag("Users", "User management")
//
//	users.Route(http.MethodGet, "/{id}", "getUser").
//	    Summary("Get a user").
//	    Responds("shop/dto/response.UserDto")
//
//	catalog.AddController(users.Build())
type ControllerBuilder struct {
	ctrl *Controller
}

// NewController starts a controller carrying the controller-level marker
// with the given path prefix.
func NewController(name, prefix string) *ControllerBuilder {
	return &ControllerBuilder{ctrl: &Controller{Name: name, Prefix: &prefix}}
}

// NewPlain starts a descriptor without the controller-level marker. Its
// routes are never documented.
func NewPlain(name string) *ControllerBuilder {
	return &ControllerBuilder{ctrl: &Controller{Name: name}}
}

// Tag appends a tag marker. Only the first tag is used for grouping.
func (b *ControllerBuilder) Tag(name, description string) *ControllerBuilder {
	b.ctrl.Tags = append(b.ctrl.Tags, Tag{Name: name, Description: description})
	return b
}

// Route declares an operation on method name with the given HTTP method
// and path relative to the controller prefix.
func (b *ControllerBuilder) Route(method, path, name string) *RouteBuilder {
	b.ctrl.Routes = append(b.ctrl.Routes, Route{Name: name, Method: method, Path: path})
	return &RouteBuilder{ctrl: b.ctrl, idx: len(b.ctrl.Routes) - 1}
}

// Build returns the declared controller.
func (b *ControllerBuilder) Build() *Controller {
	return b.ctrl
}

// RouteBuilder configures a single declared route.
type RouteBuilder struct {
	ctrl *Controller
	idx  int
}

func (b *RouteBuilder) route() *Route {
	return &b.ctrl.Routes[b.idx]
}

// Summary sets the route summary.
func (b *RouteBuilder) Summary(s string) *RouteBuilder {
	b.route().Summary = s
	return b
}

// Description sets the route description.
func (b *RouteBuilder) Description(d string) *RouteBuilder {
	b.route().Description = d
	return b
}

// Handler attaches the callable serving the route.
func (b *RouteBuilder) Handler(h http.Handler) *RouteBuilder {
	b.route().Handler = h
	return b
}

// HandlerFunc attaches a function serving the route.
func (b *RouteBuilder) HandlerFunc(fn func(http.ResponseWriter, *http.Request)) *RouteBuilder {
	return b.Handler(http.HandlerFunc(fn))
}

// Bind declares a parameter bound from the given source.
func (b *RouteBuilder) Bind(name, source, typeName string) *RouteBuilder {
	r := b.route()
	r.Params = append(r.Params, Param{Name: name, Type: typeName, Source: source})
	return b
}

// JSON declares a parameter bound from the JSON request body.
func (b *RouteBuilder) JSON(name, typeName string) *RouteBuilder {
	return b.Bind(name, SourceJSON, typeName)
}

// Query declares a parameter bound from the query string.
func (b *RouteBuilder) Query(name, typeName string) *RouteBuilder {
	return b.Bind(name, SourceQuery, typeName)
}

// Inject declares a framework-injected parameter. It is never documented.
func (b *RouteBuilder) Inject(name, typeName string) *RouteBuilder {
	return b.Bind(name, "", typeName)
}

// Responds sets the response marker to a single value of typeName.
func (b *RouteBuilder) Responds(typeName string) *RouteBuilder {
	b.route().Response = &ResponseMarker{Type: typeName}
	return b
}

// RespondsList sets the response marker to a list of typeName.
func (b *RouteBuilder) RespondsList(typeName string) *RouteBuilder {
	b.route().Response = &ResponseMarker{Type: typeName, IsArray: true}
	return b
}

// Returns sets the declared return type of the method.
func (b *RouteBuilder) Returns(typeName string) *RouteBuilder {
	b.route().Returns = typeName
	return b
}

// TypeBuilder declares a data-transfer type field by field.
type TypeBuilder struct {
	t *TypeDesc
}

// NewType starts a type descriptor with the given fully-qualified name.
func NewType(name string) *TypeBuilder {
	return &TypeBuilder{t: &TypeDesc{Name: name}}
}

// FieldOption decorates a declared field.
type FieldOption func(*Field)

// Example sets the example value of a field.
func Example(v any) FieldOption {
	return func(f *Field) { f.Example = v }
}

// Describe sets the description of a field.
func Describe(s string) FieldOption {
	return func(f *Field) { f.Description = s }
}

// Field appends a field of the given type.
func (b *TypeBuilder) Field(name, typeName string, opts ...FieldOption) *TypeBuilder {
	f := Field{Name: name, Type: typeName}
	for _, opt := range opts {
		opt(&f)
	}
	b.t.Fields = append(b.t.Fields, f)
	return b
}

// Build returns the declared type.
func (b *TypeBuilder) Build() *TypeDesc {
	return b.t
}
