package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the board API.
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
    <title>litey API - Swagger</title>
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

// OpenAPI document for the note board endpoints.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "litey", "version": "v1.0.0" },
  "paths": {
    "/api/litey/get": {
      "get": { "summary": "List notes newest first, or fetch one by id", "parameters": [{"name":"id","in":"query","schema":{"type":"string"}}], "responses": { "200": { "description": "note, null or list of notes" } } }
    },
    "/api/litey/post": {
      "post": { "summary": "Post a note", "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["content"],"properties":{"content":{"type":"string"}}}}}}, "responses": { "200": { "description": "OK" }, "400": { "description": "malformed body" } } }
    },
    "/api/litey/delete": {
      "post": { "summary": "Delete a note (1 per 24h per client)", "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["id"],"properties":{"id":{"type":"string"}}}}}}, "responses": { "200": { "description": "OK" }, "429": { "description": "rate limited" } } }
    },
    "/api/litey/image-proxy": {
      "get": { "summary": "Fetch a remote image", "parameters": [{"name":"url","in":"query","required":true,"schema":{"type":"string"}}], "responses": { "200": { "description": "upstream bytes" }, "400": { "description": "bad url" }, "502": { "description": "upstream failure" } } }
    },
    "/api/ng/get": {
      "get": { "summary": "List NG words, newline separated", "responses": { "200": { "description": "plain text" } } }
    },
    "/api/ng/post": {
      "post": { "summary": "Register an NG word", "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["word"],"properties":{"word":{"type":"string"}}}}}}, "responses": { "200": { "description": "OK" }, "409": { "description": "already registered" } } }
    },
    "/api/ng/delete": {
      "post": { "summary": "Remove an NG word (1 per 24h per client)", "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["word"],"properties":{"word":{"type":"string"}}}}}}, "responses": { "200": { "description": "OK" }, "429": { "description": "rate limited" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
