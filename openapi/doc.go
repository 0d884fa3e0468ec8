// Package openapi generates OpenAPI v3.1.0 documents from declared
// controllers and data-transfer types.
//
// The package targets the OpenAPI Specification v3.1.0 and emits the
// subset of JSON Schema Draft 2020-12 needed to describe primitive fields,
// nested objects, arrays and references.
//
// See: https://spec.openapis.org/oas/v3.1.0
// See: https://json-schema.org/draft/2020-12/json-schema-core
//
// # Generation Pass
//
// A Generator asks its Finder for controller names, loads each controller
// from the Catalog and runs the pipeline:
//
//	Finder -> Collector -> ExtractParameters + Resolver -> Assemble
//
//	gen := openapi.NewGenerator(finder.Sorted(finder.Static(names...)), catalog,
//	    openapi.WithServerURL("https://api.example.com"),
//	    openapi.WithLogger(logger),
//	)
//	doc, err := gen.Generate(ctx)
//
// Each pass uses its own SchemaRegistry. Nothing is cached between passes;
// caching a finished document is left to the caller (see package doccache).
//
// # Paths
//
// The path of an operation is the controller prefix and the route path
// joined with one slash, always starting with exactly one slash:
//
//	"/users/" + "profile"  -> "/users/profile"
//	""        + "/health"  -> "/health"
//
// Methods are emitted in lower case. Two routes with the same path and
// method collapse into the one processed last.
//
// # Schemas
//
// Builtin field types map to JSON Schema types:
//
//	int, integer, int8..int64, uint..uint64  -> integer
//	float, double, float32, float64, number  -> number
//	bool, boolean                            -> boolean
//	anything else                            -> string
//
// A field whose type is a structured type known to the catalog becomes a
// reference to "#/components/schemas/<ShortName>", where the short name is
// the last segment of the fully-qualified type name. The referenced type is
// collected into components exactly once, including self-referencing types.
// Two types sharing a short name collide: the first one collected keeps the
// entry and a warning is logged.
//
// Request parameters are never referenced: a param bound from "json"
// becomes an inline required request body and a param bound from "query"
// contributes one optional query parameter per field.
//
// Path parameters are not declared by routes. Each {name} segment of the
// path is still listed as a required string parameter "in: path", ahead of
// the query parameters, since OpenAPI requires every template segment to
// have one. A route without templates emits query parameters only:
//
//	GET /pets/{petId}?status=  -> petId (path, required), status (query)
//	GET /pets?status=          -> status (query)
//
// Object schemas of collected and inlined types always carry a
// "properties" object, empty for a type without fields.
//
// # Responses
//
// Every operation documents only its 200 response. An explicit response
// marker wins over the declared return type:
//
//	Responds(T)      -> {"$ref": ".../T"}
//	RespondsList(T)  -> {"type": "array", "items": {"$ref": ".../T"}}
//	Returns("array") -> {"type": "array", "items": {"type": "object"}}
//	Returns(T)       -> {"$ref": ".../T"}
//	otherwise        -> {"type": "object"}
//
// # Tags
//
// Each operation carries the first tag of its controller, or the
// "Default" tag when the controller declares none. Document tags are
// listed in first-seen order.
package openapi
