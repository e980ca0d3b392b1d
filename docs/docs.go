// Package docs holds the OpenAPI description served at /swagger/*.
// Handler annotations are the source; regenerate with:
//
//	swag init -g cmd/veicsys/main.go -o docs
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
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a new user",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.registerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.authResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Login",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.authResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/session": {
            "get": {
                "tags": ["auth"],
                "summary": "Current session",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionResponse"}}}
            }
        },
        "/functions/v1/cnpj-lookup": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["cnpj"],
                "summary": "Look up a company by CNPJ",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.cnpjLookupRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.cnpjLookupResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/processes": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["processes"],
                "summary": "List service processes",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "status", "in": "query"},
                    {"type": "string", "name": "type", "in": "query"},
                    {"type": "string", "name": "search", "in": "query"},
                    {"type": "string", "name": "date_from", "in": "query"},
                    {"type": "string", "name": "date_to", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.listProcessesResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["processes"],
                "summary": "Open a service process",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "Idempotency-Key", "in": "header"},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.createProcessRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.createProcessResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/processes/{protocol}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["processes"],
                "summary": "Get a service process by protocol",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "protocol", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.processResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/processes/events": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["events"],
                "summary": "Report a process status change",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.processEventRequest"}}
                ],
                "responses": {"202": {"description": "Accepted", "schema": {"$ref": "#/definitions/handler.acceptedResponse"}}}
            }
        },
        "/v1/processes/events/batch": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["events"],
                "summary": "Report a batch of process status changes",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.processEventRequest"}}}
                ],
                "responses": {"202": {"description": "Accepted", "schema": {"$ref": "#/definitions/handler.acceptedResponse"}}}
            }
        },
        "/v1/users/{id}/role": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Assign a role to a user",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.assignRoleRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.profileResponse"}}}
            }
        },
        "/health": {
            "get": {"tags": ["health"], "summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}
        },
        "/health/ready": {
            "get": {"tags": ["health"], "summary": "Readiness probe", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}
        }
    },
    "definitions": {
        "handler.errorResponse": {"type": "object", "properties": {"error": {"type": "string"}}},
        "handler.registerRequest": {"type": "object", "required": ["name", "email", "password"], "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string", "minLength": 8}}},
        "handler.loginRequest": {"type": "object", "required": ["email", "password"], "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "handler.userResponse": {"type": "object", "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "email": {"type": "string"}, "created_at": {"type": "string"}}},
        "handler.authResponse": {"type": "object", "properties": {"token": {"type": "string"}, "user": {"$ref": "#/definitions/handler.userResponse"}}},
        "handler.sessionResponse": {"type": "object", "properties": {"state": {"type": "string"}, "user_id": {"type": "string"}, "email": {"type": "string"}, "role": {"type": "string"}, "home": {"type": "string"}}},
        "handler.assignRoleRequest": {"type": "object", "required": ["role"], "properties": {"role": {"type": "string", "enum": ["admin", "vendedor", "avulso", "despachante"]}}},
        "handler.profileResponse": {"type": "object", "properties": {"user_id": {"type": "string"}, "email": {"type": "string"}, "name": {"type": "string"}, "role": {"type": "string"}, "updated_at": {"type": "string"}}},
        "handler.cnpjLookupRequest": {"type": "object", "required": ["cnpj"], "properties": {"cnpj": {"type": "string"}}},
        "handler.cnpjLookupResponse": {"type": "object", "additionalProperties": true, "properties": {"from_cache": {"type": "boolean"}}},
        "handler.createProcessRequest": {"type": "object", "required": ["client_name", "client_document", "vehicle_plate", "type"], "properties": {"client_id": {"type": "string"}, "client_name": {"type": "string"}, "client_document": {"type": "string"}, "vehicle_plate": {"type": "string"}, "type": {"type": "string", "enum": ["emplacamento", "transferencia", "licenciamento"]}}},
        "handler.processLinks": {"type": "object", "properties": {"self": {"type": "string"}}},
        "handler.createProcessResponse": {"type": "object", "properties": {"protocol": {"type": "string"}, "status": {"type": "string"}, "created_at": {"type": "string"}, "_links": {"$ref": "#/definitions/handler.processLinks"}}},
        "handler.statusHistoryItemResponse": {"type": "object", "properties": {"status": {"type": "string"}, "timestamp": {"type": "string"}, "source": {"type": "string"}, "notes": {"type": "string"}}},
        "handler.processResponse": {"type": "object", "properties": {"protocol": {"type": "string"}, "status": {"type": "string"}, "type": {"type": "string"}, "client_id": {"type": "string"}, "client_name": {"type": "string"}, "client_document": {"type": "string"}, "vehicle_plate": {"type": "string"}, "created_at": {"type": "string"}, "updated_at": {"type": "string"}, "status_history": {"type": "array", "items": {"$ref": "#/definitions/handler.statusHistoryItemResponse"}}, "_links": {"$ref": "#/definitions/handler.processLinks"}}},
        "handler.paginationResponse": {"type": "object", "properties": {"total": {"type": "integer"}, "page": {"type": "integer"}, "limit": {"type": "integer"}, "total_pages": {"type": "integer"}}},
        "handler.listProcessesResponse": {"type": "object", "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/handler.processResponse"}}, "pagination": {"$ref": "#/definitions/handler.paginationResponse"}}},
        "handler.processEventRequest": {"type": "object", "required": ["protocol", "status", "timestamp", "source"], "properties": {"protocol": {"type": "string"}, "status": {"type": "string", "enum": ["em_analise", "em_andamento", "concluido", "cancelado"]}, "timestamp": {"type": "string"}, "source": {"type": "string"}, "notes": {"type": "string"}}},
        "handler.acceptedResponse": {"type": "object", "properties": {"message": {"type": "string"}, "count": {"type": "integer"}}}
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
	Title:            "VeícSys API",
	Description:      "Access gate, sessions, CNPJ lookup and service processes for VeícSys.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
