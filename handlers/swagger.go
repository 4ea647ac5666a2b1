package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the AI gateway.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>resumeoptimizer-ai Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// OpenAPI document for the AI gateway.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "resumeoptimizer-ai", "version": "v0.1.0" },
  "components": {
    "securitySchemes": { "bearer": { "type": "http", "scheme": "bearer", "bearerFormat": "JWT" } },
    "schemas": {
      "Edit": { "type": "object", "required": ["section", "action"], "properties": {
        "section": { "type": "string" }, "action": { "type": "string", "enum": ["replace", "add", "remove"] },
        "find": { "type": "string" }, "replace": { "type": "string" }, "addition": { "type": "string" }, "reason": { "type": "string" } } },
      "Reply": { "type": "object", "required": ["message", "edits"], "properties": {
        "message": { "type": "string" }, "edits": { "type": "array", "items": { "$ref": "#/components/schemas/Edit" } } } }
    }
  },
  "paths": {
    "/api/auth/logout": {
      "post": { "summary": "Revoke the bearer token until it expires", "security": [{ "bearer": [] }], "responses": { "200": { "description": "logged out" }, "401": { "description": "missing, invalid or revoked token" } } }
    },
    "/api/ai/status": {
      "get": { "summary": "AI availability", "responses": { "200": { "description": "available, has_api_key, model, current_job_description" } } }
    },
    "/api/ai/chat": {
      "post": {
        "summary": "Ask about the open resume",
        "security": [{ "bearer": [] }],
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["message"],"properties":{"message":{"type":"string"},"resume_data":{"type":"object"}}}}}},
        "responses": { "200": { "description": "advice and edits", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Reply" } } } }, "400": { "description": "empty message" }, "401": { "description": "missing or invalid token" }, "503": { "description": "AI service unavailable" } }
      }
    },
    "/api/ai/section": {
      "post": {
        "summary": "Review one section",
        "security": [{ "bearer": [] }],
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"section_content":{"type":"string"},"user_question":{"type":"string"},"resume_data":{"type":"object"}}}}}},
        "responses": { "200": { "description": "advice and edits", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Reply" } } } } }
      }
    },
    "/api/ai/ats": {
      "post": {
        "summary": "ATS review of the whole resume",
        "security": [{ "bearer": [] }],
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"resume_data":{"type":"object"},"job_description":{"type":"string"}}}}}},
        "responses": { "200": { "description": "advice and edits", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Reply" } } } } }
      }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "text exposition" } } } }
  }
}`
