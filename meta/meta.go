package meta

import (
	"net/http"
	"strings"
)

// Bind sources understood by the document generator. Any other value on a
// Param is carried through but produces nothing in the document.
const (
	SourceJSON  = "json"
	SourceQuery = "query"
)

// TypeArray is the declared type of an untyped list return value.
const TypeArray = "array"

// builtinTypes lists declared type names that never resolve to a
// structured type, even if a catalog entry with the same name exists.
var builtinTypes = map[string]bool{
	"int": true, "integer": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true,
	"float": true, "double": true, "float32": true, "float64": true, "number": true,
	"bool": true, "boolean": true,
	"string": true, "array": true, "object": true, "mixed": true, "any": true,
}

// IsBuiltin reports whether the declared type name is a builtin
// (non-structured) type.
func IsBuiltin(typeName string) bool {
	return builtinTypes[typeName]
}

// ShortName returns the last segment of a fully-qualified type name.
// Segments are separated by '/', '\' or '.'.
//
//	ShortName("github.com/acme/shop/dto.UserDto") // "UserDto"
//	ShortName(`App\Dto\Response\UserDto`)          // "UserDto"
func ShortName(name string) string {
	if idx := strings.LastIndexAny(name, `/\.`); idx >= 0 {
		return name[idx+1:]
	}
	return name
}

// Field is a single declared field of a data-transfer type.
type Field struct {
	Name string
	// Type is a builtin type name or the fully-qualified name of a
	// structured type registered in the catalog.
	Type string
	// Example is the declared example value; nil when none is declared.
	Example any
	// Description is the declared description; empty when none is declared.
	Description string
}

// TypeDesc describes a structured data-transfer type.
type TypeDesc struct {
	Name   string
	Fields []Field
}

// ShortName returns the unqualified name of the type.
func (t *TypeDesc) ShortName() string {
	return ShortName(t.Name)
}

// Tag groups the operations of a controller.
type Tag struct {
	Name        string
	Description string
}

// ResponseMarker declares the response type of a route explicitly,
// overriding the declared return type.
type ResponseMarker struct {
	Type    string
	IsArray bool
}

// Param is a declared input of a route. Params without a Source are
// injected by the framework and never documented.
type Param struct {
	Name   string
	Type   string
	Source string
}

// Route is a single operation-level marker together with the facts about
// the method it is attached to.
type Route struct {
	// Name is the method identifier. It becomes the operation ID and the
	// fallback summary.
	Name        string
	Method      string
	Path        string
	Summary     string
	Description string
	Params      []Param
	Response    *ResponseMarker
	// Returns is the declared return type; empty when none is declared.
	Returns string
	Handler http.Handler
}

// Controller describes a route-handler type. A controller without a
// Prefix carries no controller-level marker and contributes nothing.
type Controller struct {
	Name   string
	Prefix *string
	Tags   []Tag
	Routes []Route
}

// IsController reports whether the controller-level marker is present.
func (c *Controller) IsController() bool {
	return c.Prefix != nil
}
