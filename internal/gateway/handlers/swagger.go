package handlers

import (
	_ "embed"
	"strings"

	"github.com/gofiber/fiber/v3"
)

//go:embed openapi.yaml
var openAPISpec []byte

// ============================================================
// Swagger Handlers
// ============================================================

// SwaggerSpec отдаёт OpenAPI YAML публичного API.
func SwaggerSpec(c fiber.Ctx) error {
	c.Type("yaml")
	return c.Send(openAPISpec)
}

// SwaggerUI отдаёт страницу Swagger UI, которая читает спецификацию по specURL.
func SwaggerUI(specURL string) fiber.Handler {
	page := strings.ReplaceAll(swaggerPage, "{{SPEC_URL}}", specURL)
	return func(c fiber.Ctx) error {
		c.Type("html")
		return c.SendString(page)
	}
}

const swaggerPage = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Floor Planner API</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
<div id="docs"></div>
<script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
<script>
  SwaggerUIBundle({
    url: "{{SPEC_URL}}",
    dom_id: "#docs",
    deepLinking: true,
    tryItOutEnabled: true,
  });
</script>
</body>
</html>`
