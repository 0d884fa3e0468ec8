package openapi

import (
	"log/slog"

	"github.com/vitalvas/apidoc/meta"
)

// refPrefix is the JSON pointer prefix of component schema references.
const refPrefix = "#/components/schemas/"

// TypeLookup resolves fully-qualified type names to declared types.
// *meta.Catalog satisfies it.
type TypeLookup interface {
	Type(name string) (*meta.TypeDesc, bool)
}

// PrimitiveSchema maps a declared builtin type name to a JSON Schema type.
// Unknown or empty names default to "string".
//
// See: https://spec.openapis.org/oas/v3.1.0#data-types
func PrimitiveSchema(typeName string) *Schema {
	switch typeName {
	case "int", "integer", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64":
		return &Schema{Type: "integer"}
	case "float", "double", "float32", "float64", "number":
		return &Schema{Type: "number"}
	case "bool", "boolean":
		return &Schema{Type: "boolean"}
	}
	return &Schema{Type: "string"}
}

// RefSchema returns a reference to the component schema with the given
// short name.
//
// See: https://json-schema.org/draft/2020-12/json-schema-core#section-8.2.3 ($ref)
func RefSchema(name string) *Schema {
	return &Schema{Ref: refPrefix + name}
}

// Resolver converts declared types into schemas and collects every
// referenced structured type into a SchemaRegistry.
type Resolver struct {
	types    TypeLookup
	registry *SchemaRegistry
	logger   *slog.Logger
}

// NewResolver creates a resolver writing into registry. A nil logger
// discards output.
func NewResolver(types TypeLookup, registry *SchemaRegistry, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{types: types, registry: registry, logger: logger}
}

// Registry returns the registry the resolver writes into.
func (r *Resolver) Registry() *SchemaRegistry {
	return r.registry
}

// FieldSchema returns the schema of a declared field. Fields of a known
// structured type become a $ref and the type is collected first; every
// other field gets a primitive schema carrying the declared example and
// description.
func (r *Resolver) FieldSchema(f meta.Field) *Schema {
	if ref, ok := r.Ref(f.Type); ok {
		return ref
	}
	schema := PrimitiveSchema(f.Type)
	applyFieldMeta(schema, f)
	return schema
}

// Ref collects typeName and returns a reference to it. It reports false
// when the type is not a known structured type.
func (r *Resolver) Ref(typeName string) (*Schema, bool) {
	name, ok := r.Collect(typeName)
	if !ok {
		return nil, false
	}
	return RefSchema(name), true
}

// Collect registers the object schema of typeName under its short name and
// returns that name. Collecting an already registered name returns
// immediately. When two distinct types share a short name the first one
// keeps the entry and the collision is logged. It reports false when the
// type is not a known structured type.
func (r *Resolver) Collect(typeName string) (string, bool) {
	desc, ok := r.types.Type(typeName)
	if !ok {
		return "", false
	}

	name := desc.ShortName()
	if !r.registry.Reserve(name, desc.Name) {
		if owner := r.registry.Owner(name); owner != desc.Name {
			r.logger.Warn("schema name collision, keeping first registration",
				slog.String("schema", name),
				slog.String("kept", owner),
				slog.String("dropped", desc.Name),
			)
		}
		return name, true
	}

	schema := &Schema{Type: "object", Properties: make(map[string]*Schema, len(desc.Fields))}
	for _, f := range desc.Fields {
		schema.Properties[f.Name] = r.FieldSchema(f)
	}
	r.registry.Set(name, schema)

	r.logger.Debug("schema collected", slog.String("schema", name), slog.String("type", desc.Name))
	return name, true
}

// InlineSchema returns the object schema of a declared type with every
// field inlined as a primitive schema. No types are collected.
func InlineSchema(desc *meta.TypeDesc) *Schema {
	schema := &Schema{Type: "object", Properties: make(map[string]*Schema, len(desc.Fields))}
	for _, f := range desc.Fields {
		schema.Properties[f.Name] = inlineFieldSchema(f)
	}
	return schema
}

func inlineFieldSchema(f meta.Field) *Schema {
	schema := PrimitiveSchema(f.Type)
	applyFieldMeta(schema, f)
	return schema
}

// applyFieldMeta copies the declared example and description onto schema.
//
// See: https://json-schema.org/draft/2020-12/json-schema-validation#section-9
func applyFieldMeta(schema *Schema, f meta.Field) {
	if f.Example != nil {
		schema.Example = f.Example
	}
	if f.Description != "" {
		schema.Description = f.Description
	}
}
