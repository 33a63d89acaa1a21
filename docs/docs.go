// Package docs registers the OpenAPI document served by the Swagger UI.
// Maintained by hand; keep it in sync with the handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/bridge": {
            "get": {
                "produces": ["application/json"],
                "tags": ["bridge"],
                "summary": "Get bridge info",
                "responses": {
                    "200": {"description": "OK"},
                    "502": {"description": "Bridge unreachable or errored"}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/devices": {
            "get": {
                "produces": ["application/json"],
                "tags": ["devices"],
                "summary": "List all devices",
                "responses": {
                    "200": {"description": "OK"},
                    "502": {"description": "Bridge unreachable or errored"}
                }
            }
        },
        "/devices/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["devices"],
                "summary": "Get device info",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true, "description": "Bond device identifier"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Device not found"},
                    "502": {"description": "Bridge unreachable or errored"}
                }
            }
        },
        "/devices/{id}/state": {
            "get": {
                "produces": ["application/json"],
                "tags": ["devices"],
                "summary": "Get device state",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true, "description": "Bond device identifier"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Device not found"},
                    "502": {"description": "Bridge unreachable or errored"}
                }
            }
        },
        "/devices/{id}/actions/{action}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["devices"],
                "summary": "Perform a device action",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true, "description": "Bond device identifier"},
                    {"type": "string", "name": "action", "in": "path", "required": true, "description": "Bond action name"},
                    {"name": "request", "in": "body", "description": "Optional action argument", "schema": {"type": "object", "properties": {"argument": {"type": "integer"}}}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Invalid argument for this action"},
                    "404": {"description": "Device not found"},
                    "502": {"description": "Bridge unreachable or errored"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "Bond MCP Server API",
	Description:      "REST facade over the Bond Bridge Local API",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
