// Package swagger registers the OpenAPI document served at /swagger/ in dev mode.
package swagger

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
        "/health": {
            "get": {
                "tags": ["system"],
                "summary": "Liveness probe used by remote theme sync",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/theme/colors": {
            "get": {
                "tags": ["theme"],
                "summary": "Active theme mapping",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/theme.Mapping"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["theme"],
                "summary": "Save a theme or reset to defaults",
                "description": "Body is {\"colors\": {...}} or {\"colors\": \"reset\"}. Requires the admin role.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/settings.ColorsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/theme.Mapping"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/settings.SettingsProblemDetail"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/settings.SettingsProblemDetail"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/settings.SettingsProblemDetail"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/settings.SettingsProblemDetail"}}
                }
            }
        },
        "/theme/tokens": {
            "get": {
                "tags": ["theme"],
                "summary": "Customizable tokens with CSS variables and defaults",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/settings.TokenInfo"}}}
                }
            }
        },
        "/menu": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["menu"],
                "summary": "Navigation entries visible to the caller's role",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/menu.Response"}},
                    "401": {"description": "Unauthorized"}
                }
            }
        }
    },
    "definitions": {
        "theme.Mapping": {
            "type": "object",
            "additionalProperties": {"type": "string"}
        },
        "settings.ColorsRequest": {
            "type": "object",
            "properties": {"colors": {"type": "object"}}
        },
        "settings.TokenInfo": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "group": {"type": "string"},
                "variable": {"type": "string"},
                "default": {"type": "string"}
            }
        },
        "settings.SettingsProblemDetail": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "title": {"type": "string"},
                "status": {"type": "integer"},
                "detail": {"type": "string"},
                "invalid_tokens": {"type": "array", "items": {"type": "string"}}
            }
        },
        "menu.Entry": {
            "type": "object",
            "properties": {
                "route": {"type": "string"},
                "label": {"type": "string"},
                "icon": {"type": "string"}
            }
        },
        "menu.Response": {
            "type": "object",
            "properties": {
                "role": {"type": "string"},
                "entries": {"type": "array", "items": {"$ref": "#/definitions/menu.Entry"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "SchoolDesk API",
	Description:      "Theme colors, live stylesheet and role-filtered menu for the SchoolDesk web app.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
