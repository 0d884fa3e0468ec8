package openapi

// SchemaRegistry collects named object schemas for one generation pass.
// A short name is claimed at most once; the claim happens before the
// schema's fields are resolved, which is what terminates recursion on
// self-referencing and mutually referencing types.
//
// See: https://spec.openapis.org/oas/v3.1.0#components-object (schemas)
type SchemaRegistry struct {
	schemas map[string]*Schema
	owners  map[string]string // short name -> fully-qualified type that claimed it
}

// NewSchemaRegistry creates an empty registry.
func NewSchemaRegistry() *SchemaRegistry {
	return &SchemaRegistry{
		schemas: make(map[string]*Schema),
		owners:  make(map[string]string),
	}
}

// Reserve claims name for the given fully-qualified owner type. It reports
// whether the name was newly claimed; a repeated claim is a no-op.
func (r *SchemaRegistry) Reserve(name, owner string) bool {
	if _, ok := r.owners[name]; ok {
		return false
	}
	r.owners[name] = owner
	r.schemas[name] = &Schema{Type: "object"}
	return true
}

// Set stores the schema for a previously reserved name.
func (r *SchemaRegistry) Set(name string, schema *Schema) {
	r.schemas[name] = schema
}

// Owner returns the fully-qualified type that claimed name.
func (r *SchemaRegistry) Owner(name string) string {
	return r.owners[name]
}

// Has reports whether name has been claimed.
func (r *SchemaRegistry) Has(name string) bool {
	_, ok := r.owners[name]
	return ok
}

// Len returns the number of claimed names.
func (r *SchemaRegistry) Len() int {
	return len(r.schemas)
}

// Schemas returns the collected schemas keyed by short name.
func (r *SchemaRegistry) Schemas() map[string]*Schema {
	return r.schemas
}
