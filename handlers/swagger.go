package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the site service.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>knst-site-services — Swagger</title>
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

// Minimal OpenAPI document describing the public content API and the admin surface.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "knst-site-services", "version": "v0.1.0" },
  "paths": {
    "/api/content": {
      "get": { "summary": "Full site content merged with defaults", "responses": { "200": { "description": "content document" } } }
    },
    "/api/content/sections": {
      "get": { "summary": "List editable sections", "responses": { "200": { "description": "section manifest" } } }
    },
    "/api/content/watch": {
      "get": { "summary": "Server-sent events stream of content updates", "responses": { "200": { "description": "SSE stream" } } }
    },
    "/api/admin/auth/login": {
      "post": {
        "summary": "Admin password login",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"password":{"type":"string"}}}}}},
        "responses": { "200": { "description": "tokens returned" }, "401": { "description": "wrong password" } }
      }
    },
    "/api/admin/auth/refresh": {
      "post": { "summary": "Refresh access token", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"refresh_token":{"type":"string"}}}}}}, "responses": { "200": { "description": "new access token" }, "401": { "description": "invalid refresh" } } }
    },
    "/api/admin/auth/logout": {
      "post": { "summary": "Logout and invalidate refresh token", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"refresh_token":{"type":"string"}}}}}}, "responses": { "200": { "description": "logged out" } } }
    },
    "/api/admin/content": {
      "patch": {
        "summary": "Update a single content field by dot path",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"path":{"type":"string"},"value":{}}}}}},
        "responses": { "200": { "description": "saved" }, "400": { "description": "unknown path or bad value" }, "502": { "description": "persistence failed" } }
      }
    },
    "/api/admin/content/images": {
      "post": {
        "summary": "Upload an image and point a content field at it",
        "requestBody": { "content": { "multipart/form-data": { "schema": {"type":"object","properties":{"path":{"type":"string"},"file":{"type":"string","format":"binary"}}}}}},
        "responses": { "200": { "description": "uploaded" }, "413": { "description": "file too large" }, "503": { "description": "storage not configured" } }
      }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
