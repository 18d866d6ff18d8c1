package swagger

import _ "embed"

// OpenAPI contains the embedded Mega-Sena Engine API specification.
//
//go:embed openapi.yaml
var OpenAPI []byte
