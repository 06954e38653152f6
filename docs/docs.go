// Package docs registers the generated swagger spec. Regenerate with:
//
//	swag init -g cmd/main.go -o docs
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
        "/api/v1/audit": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["audit"],
                "summary": "List audit events",
                "parameters": [
                    {"type": "string", "name": "from", "in": "query"},
                    {"type": "string", "name": "to", "in": "query"},
                    {"enum": ["SIGNUP", "SIGNIN", "SIGNIN_FAILED", "PROFILE_UPDATE"], "type": "string", "name": "type", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "count, events", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object"}}
                }
            }
        },
        "/api/v1/user": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "Update own profile",
                "parameters": [
                    {"description": "Fields to change", "name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "message", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object"}}
                }
            }
        },
        "/api/v1/user/bulk": {
            "get": {
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "Bulk user search",
                "parameters": [
                    {"type": "string", "description": "Name substring", "name": "filter", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "users", "schema": {"type": "object"}}
                }
            }
        },
        "/api/v1/user/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "Own profile with account",
                "responses": {
                    "200": {"description": "user, account", "schema": {"type": "object"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object"}}
                }
            }
        },
        "/api/v1/user/signin": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "Sign in",
                "parameters": [
                    {"description": "Signin payload", "name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "token", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object"}}
                }
            }
        },
        "/api/v1/user/signup": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "Sign up",
                "parameters": [
                    {"description": "Signup payload", "name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "message, token", "schema": {"type": "object"}},
                    "409": {"description": "Conflict", "schema": {"type": "object"}},
                    "411": {"description": "Length Required", "schema": {"type": "object"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}}
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "walletapp API",
	Description:      "User-account backend: signup, signin, profile update, bulk search, audit trail.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
