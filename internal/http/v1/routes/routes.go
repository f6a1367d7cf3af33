package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/greeting-demo/internal/http/v1/greeting"
)

// APIConfig returns the huma configuration for the greeting API.
//
// The OpenAPI, docs and schema routes are disabled and the $schema link
// transformer is dropped, so GET / is the only route and its body is exactly
// the greeting object.
func APIConfig(version string) huma.Config {
	cfg := huma.DefaultConfig("Greeting API", version)
	cfg.OpenAPIPath = ""
	cfg.DocsPath = ""
	cfg.SchemasPath = ""
	cfg.CreateHooks = nil
	return cfg
}

// Register wires all HTTP routes into the provided API router.
func Register(api huma.API) {
	greeting.Register(api)
}
