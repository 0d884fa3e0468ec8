package meta

import (
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Register derives a type descriptor from the Go struct type of v and adds
// it to the catalog together with every named struct it references. It
// returns the fully-qualified name of the registered type, or the builtin
// type name when v is not a named struct.
//
// Field names follow the `json` tag (falling back to the Go field name);
// fields tagged `json:"-"` and unexported fields are skipped. Embedded
// structs without a json name are inlined, exported or not. The `openapi`
// tag supplies field metadata; a description runs to the end of the tag
// and may contain commas, so it goes last:
//
//	type UserDto struct {
//	    ID   int    `json:"id" openapi:"example=42,description=User identifier, primary key"`
//	    Name string `json:"name" openapi:"example=Alice"`
//	}
func (c *Catalog) Register(v any) string {
	if v == nil {
		return ""
	}
	return c.registerType(reflect.TypeOf(v), make(map[reflect.Type]bool))
}

// TypeName returns the fully-qualified name of a named Go type in the form
// "import/path.Name".
func TypeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.PkgPath() == "" {
		return t.Name()
	}
	return t.PkgPath() + "." + t.Name()
}

func (c *Catalog) registerType(t reflect.Type, visited map[reflect.Type]bool) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct || t.Name() == "" || t == reflect.TypeOf(time.Time{}) {
		return c.declaredType(t, visited)
	}

	name := TypeName(t)
	if visited[t] {
		return name
	}
	visited[t] = true

	desc := &TypeDesc{Name: name}
	c.collectFields(t, desc, visited)
	c.AddType(desc)
	return name
}

// declaredType maps a Go type to the type name stored on a Field.
func (c *Catalog) declaredType(t reflect.Type, visited map[reflect.Type]bool) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == reflect.TypeOf(time.Time{}) {
		return "string"
	}

	switch t.Kind() {
	case reflect.Bool:
		return "bool"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "int"
	case reflect.Float32, reflect.Float64:
		return "float"
	case reflect.String:
		return "string"
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return "string"
		}
		return TypeArray
	case reflect.Array:
		return TypeArray
	case reflect.Map:
		return "object"
	case reflect.Struct:
		if t.Name() == "" {
			return "object"
		}
		return c.registerType(t, visited)
	case reflect.Interface:
		return "mixed"
	}
	return "string"
}

func (c *Catalog) collectFields(t reflect.Type, desc *TypeDesc, visited map[reflect.Type]bool) {
	for i := range t.NumField() {
		sf := t.Field(i)
		jsonTag := sf.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}
		name, _, _ := strings.Cut(jsonTag, ",")

		// Same visibility rules as encoding/json: an unexported embedded
		// struct still promotes its exported fields.
		if sf.Anonymous {
			ft := sf.Type
			if ft.Kind() == reflect.Pointer {
				if !sf.IsExported() {
					continue
				}
				ft = ft.Elem()
			}
			if ft.Kind() != reflect.Struct && !sf.IsExported() {
				continue
			}
			if ft.Kind() == reflect.Struct && name == "" {
				c.collectFields(ft, desc, visited)
				continue
			}
		} else if !sf.IsExported() {
			continue
		}

		if name == "" {
			name = sf.Name
		}

		field := Field{Name: name, Type: c.declaredType(sf.Type, visited)}
		applyFieldTag(&field, sf.Tag.Get("openapi"))
		desc.Fields = append(desc.Fields, field)
	}
}

// applyFieldTag parses the `openapi` struct tag into field metadata.
func applyFieldTag(f *Field, tag string) {
	for tag != "" {
		var part string
		part, tag, _ = strings.Cut(tag, ",")
		key, value, _ := strings.Cut(part, "=")

		switch strings.TrimSpace(key) {
		case "description":
			// The description runs to the end of the tag.
			if tag != "" {
				value += "," + tag
				tag = ""
			}
			f.Description = strings.TrimSpace(value)
		case "example":
			f.Example = parseExample(f.Type, strings.TrimSpace(value))
		}
	}
}

// parseExample converts a tag value to the Go type matching the declared
// field type, keeping the raw string when conversion fails.
func parseExample(typeName, value string) any {
	switch typeName {
	case "int":
		if v, err := strconv.ParseInt(value, 10, 64); err == nil {
			return v
		}
	case "float":
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			return v
		}
	case "bool":
		if v, err := strconv.ParseBool(value); err == nil {
			return v
		}
	}
	return value
}
