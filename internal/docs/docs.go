// Package docs holds the Swagger spec served at /swagger/.
// Run 'make swagger' to regenerate it from the handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/wheel/config": {"get": {"tags": ["wheel"], "summary": "Wheel configuration", "responses": {"200": {"description": "OK"}}}},
        "/api/v1/wheel/spin": {"post": {"tags": ["wheel"], "summary": "Start a spin", "responses": {"200": {"description": "OK"}, "201": {"description": "external payment begun"}}}},
        "/api/v1/wheel/invoice": {"post": {"tags": ["wheel"], "summary": "Begin external payment", "responses": {"201": {"description": "Created"}}}},
        "/api/v1/wheel/payment": {"post": {"tags": ["wheel"], "summary": "Report external payment status", "responses": {"200": {"description": "OK"}}}},
        "/api/v1/wheel/session": {"get": {"tags": ["wheel"], "summary": "Current spin session", "responses": {"200": {"description": "OK"}}}},
        "/api/v1/wheel/outcome": {"get": {"tags": ["wheel"], "summary": "Spin outcome", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/api/v1/wheel/dismiss": {"post": {"tags": ["wheel"], "summary": "Dismiss outcome", "responses": {"200": {"description": "OK"}}}},
        "/api/v1/wheel/cancel": {"post": {"tags": ["wheel"], "summary": "Cancel spin", "responses": {"200": {"description": "OK"}}}},
        "/api/v1/wheel/history": {"get": {"tags": ["wheel"], "summary": "Spin history", "responses": {"200": {"description": "OK"}}}},
        "/api/v1/wheel/events": {"get": {"tags": ["wheel"], "summary": "Spin event stream", "produces": ["text/event-stream"], "responses": {"200": {"description": "OK"}}}},
        "/healthz": {"get": {"tags": ["health"], "summary": "Liveness check", "responses": {"200": {"description": "OK"}}}},
        "/readyz": {"get": {"tags": ["health"], "summary": "Readiness check", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}},
        "/version": {"get": {"tags": ["health"], "summary": "Build information", "responses": {"200": {"description": "OK"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Wheel Portal API",
	Description:      "Prize wheel spin orchestration for the Mini-App",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
