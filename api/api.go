// Package api carries the OpenAPI description of the health endpoint
// contract. The document is embedded so the served description can never
// drift from the binary, and Load validates it at startup so a broken edit
// fails fast instead of surfacing as a confusing client error.
package api

import (
	_ "embed"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var specYAML []byte

// Spec returns the raw embedded OpenAPI document, as served at
// GET /api/openapi.yaml.
func Spec() []byte {
	return specYAML
}

// Load parses and validates the embedded OpenAPI document.
//
// Returns: (doc, nil) when the document is well-formed; (nil, err) on parse
// or validation failure.
//
// Called from cmd/main at startup (fail fast) and from tests.
func Load() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(specYAML)
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, err
	}
	return doc, nil
}
