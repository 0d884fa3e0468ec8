// Package validate checks generated documents against the OpenAPI object
// model using kin-openapi.
package validate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/vitalvas/apidoc/openapi"
)

// ErrInvalidDocument wraps every structural validation failure.
var ErrInvalidDocument = errors.New("validate: invalid document")

// Document round-trips doc through JSON into the kin-openapi model and
// validates it. Encoding failures are returned as is; validation failures
// wrap ErrInvalidDocument.
func Document(ctx context.Context, doc *openapi.Document) error {
	if doc == nil {
		return fmt.Errorf("%w: nil document", ErrInvalidDocument)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("validate: encode document: %w", err)
	}

	return Data(ctx, data)
}

// Data parses a JSON or YAML document and validates it.
func Data(ctx context.Context, data []byte) error {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	parsed, err := loader.LoadFromData(data)
	if err != nil {
		return fmt.Errorf("%w: parse: %w", ErrInvalidDocument, err)
	}

	if err := parsed.Validate(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	return nil
}
