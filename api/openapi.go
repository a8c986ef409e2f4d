// Package api embeds the OpenAPI document describing the HTTP surface.
package api

import _ "embed"

// OpenAPI is the OpenAPI 3 document served at GET /openapi.yaml.
//
//go:embed openapi.yaml
var OpenAPI []byte
