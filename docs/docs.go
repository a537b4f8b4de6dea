// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with `swag init -g cmd/main.go` after changing handler annotations.
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
        "/health": {
            "get": {"tags": ["system"], "summary": "Health check", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}}
        },
        "/auth/sign-up": {
            "post": {"tags": ["auth"], "summary": "Sign up",
                "description": "The first registered account becomes admin, later ones are viewers.",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.authCredentials"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/auth/sign-in": {
            "post": {"tags": ["auth"], "summary": "Sign in",
                "description": "Issues a bearer token and opens a session, which resumes polling.",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.authCredentials"}}],
                "responses": {"200": {"description": "token, role, expires_at"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}}
        },
        "/api/v1/auth/sign-out": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Sign out",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/api/v1/monitor/state": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["monitor"], "summary": "Get monitor state",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Snapshot"}}, "401": {"description": "Unauthorized"}}}
        },
        "/api/v1/monitor/history": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["monitor"], "summary": "Get history",
                "produces": ["application/json"],
                "responses": {"200": {"description": "range, count, samples"}, "401": {"description": "Unauthorized"}}}
        },
        "/api/v1/monitor/refresh": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["monitor"], "summary": "Refresh now",
                "responses": {"202": {"description": "Accepted"}, "401": {"description": "Unauthorized"}, "409": {"description": "Polling paused"}}}
        },
        "/api/v1/monitor/range": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["monitor"], "summary": "Set history range",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.SetRangeRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}}
        },
        "/api/v1/alerts": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["alerts"], "summary": "List incidents",
                "produces": ["application/json"],
                "responses": {"200": {"description": "count, unacknowledged, incidents"}, "401": {"description": "Unauthorized"}}}
        },
        "/api/v1/alerts/{id}/ack": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["alerts"], "summary": "Acknowledge incident",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true, "description": "Incident ID"}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "404": {"description": "Not Found"}}}
        },
        "/api/v1/thresholds": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["settings"], "summary": "Get thresholds",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Thresholds"}}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["settings"], "summary": "Update thresholds",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdateThresholdsRequest"}}],
                "responses": {"200": {"description": "OK"}, "202": {"description": "Applied locally, not persisted"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}}}
        },
        "/api/v1/preferences": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["settings"], "summary": "Get notification preferences",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Preferences"}}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["settings"], "summary": "Update notification preferences",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdatePreferencesRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Preferences"}}, "400": {"description": "Bad Request"}}}
        },
        "/api/v1/audit": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["audit"], "summary": "List audit entries",
                "parameters": [
                    {"type": "string", "in": "query", "name": "from"},
                    {"type": "string", "in": "query", "name": "to"},
                    {"type": "integer", "in": "query", "name": "limit"}
                ],
                "responses": {"200": {"description": "count, entries"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}}}
        },
        "/ws": {
            "get": {"tags": ["monitor"], "summary": "Live stream",
                "parameters": [{"type": "string", "in": "query", "name": "token", "required": true}],
                "responses": {"101": {"description": "Switching Protocols"}, "401": {"description": "Unauthorized"}}}
        }
    },
    "definitions": {
        "handlers.authCredentials": {"type": "object", "required": ["password", "username"],
            "properties": {"username": {"type": "string"}, "password": {"type": "string"}}},
        "handlers.SetRangeRequest": {"type": "object",
            "properties": {"range": {"type": "string", "example": "7d"}}},
        "handlers.UpdateThresholdsRequest": {"type": "object",
            "properties": {"temp_high": {"type": "number", "example": 30}, "temp_low": {"type": "number", "example": 15},
                "hum_high": {"type": "number", "example": 75}, "hum_low": {"type": "number", "example": 30}}},
        "handlers.UpdatePreferencesRequest": {"type": "object",
            "properties": {"sound_enabled": {"type": "boolean"}, "notifications_enabled": {"type": "boolean"}}},
        "models.Thresholds": {"type": "object",
            "properties": {"temp_high": {"type": "number"}, "temp_low": {"type": "number"}, "hum_high": {"type": "number"},
                "hum_low": {"type": "number"}, "updated_at": {"type": "string"}}},
        "models.Preferences": {"type": "object",
            "properties": {"sound_enabled": {"type": "boolean"}, "notifications_enabled": {"type": "boolean"}}},
        "models.Snapshot": {"type": "object",
            "properties": {"status": {"type": "string"}, "history_count": {"type": "integer"}, "range": {"type": "string"},
                "active_breaches": {"type": "array", "items": {"type": "string"}}, "last_sync": {"type": "string"},
                "last_error": {"type": "string"}, "unacknowledged": {"type": "integer"}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Environment Monitor API",
	Description:      "Polls a temperature/humidity feed, detects threshold breaches and serves the incident log.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
