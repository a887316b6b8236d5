// Package swagger carries the OpenAPI document describing the REST surface.
package swagger

import _ "embed"

// Doc is the OpenAPI 3 document served at /swagger/openapi.json. It is
// embedded so the binary serves it from any working directory.
//
//go:embed openapi.json
var Doc []byte
