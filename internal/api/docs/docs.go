// Package docs holds the swagger document served under /swagger.
// It follows the layout produced by swag init.
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
        "/": {
            "get": {
                "produces": ["text/plain"],
                "tags": ["meta"],
                "summary": "Welcome banner",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["meta"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.StatusResponse"}}
                }
            }
        },
        "/readyz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["meta"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.StatusResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/api.StatusResponse"}}
                }
            }
        },
        "/tasks": {
            "get": {
                "produces": ["application/json"],
                "tags": ["tasks"],
                "summary": "List tasks",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Task"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Blank details are replaced by \"Non input details...\". updateDate starts at 0000/00/00 00:00:00.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tasks"],
                "summary": "Create a task",
                "parameters": [
                    {"description": "Task", "name": "task", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.TaskInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Task"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/tasks/summary": {
            "get": {
                "produces": ["application/json"],
                "tags": ["tasks"],
                "summary": "Task summary",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.TaskSummary"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/tasks/search": {
            "get": {
                "description": "Case-sensitive substring match on name or details. With date and no keyword, matches createDate or updateDate.",
                "produces": ["application/json"],
                "tags": ["search"],
                "summary": "Search tasks",
                "parameters": [
                    {"type": "string", "description": "Keyword", "name": "keyword", "in": "query"},
                    {"type": "string", "example": "2024/03/15", "description": "yyyy/MM/dd", "name": "date", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Task"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/tasks/search/date": {
            "get": {
                "produces": ["application/json"],
                "tags": ["search"],
                "summary": "Search by date",
                "parameters": [
                    {"type": "string", "example": "2024/03/15", "description": "yyyy/MM/dd", "name": "date", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Task"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/tasks/by-date": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["search"],
                "summary": "Delete by creation date",
                "parameters": [
                    {"type": "string", "example": "2024/03/15", "description": "yyyy/MM/dd", "name": "date", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.DeletedResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/tasks/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["tasks"],
                "summary": "Get a task",
                "parameters": [
                    {"type": "integer", "description": "Task ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Task"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tasks"],
                "summary": "Update a task",
                "parameters": [
                    {"type": "integer", "description": "Task ID", "name": "id", "in": "path", "required": true},
                    {"description": "Task", "name": "task", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.TaskInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Task"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["tasks"],
                "summary": "Delete a task",
                "parameters": [
                    {"type": "integer", "description": "Task ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/tasks/{id}/create-date": {
            "put": {
                "description": "Allowed only while createDate is unset. The value must match yyyy/MM/dd HH:mm:ss.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tasks"],
                "summary": "Backfill createDate",
                "parameters": [
                    {"type": "integer", "description": "Task ID", "name": "id", "in": "path", "required": true},
                    {"description": "Only createDate is read", "name": "task", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.TaskInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Task"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.DeletedResponse": {
            "type": "object",
            "properties": {
                "deleted": {"type": "integer", "example": 3}
            }
        },
        "api.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "INVALID_NAME"},
                "error": {"type": "string", "example": "name must not be empty or start with a space"}
            }
        },
        "api.StatusResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "ok"}
            }
        },
        "domain.Task": {
            "type": "object",
            "properties": {
                "createDate": {"type": "string"},
                "details": {"type": "string"},
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "updateDate": {"type": "string"}
            }
        },
        "domain.TaskInput": {
            "type": "object",
            "properties": {
                "createDate": {"type": "string", "example": "2024/01/02 09:30:00"},
                "details": {"type": "string", "example": "2 bottles"},
                "name": {"type": "string", "example": "Buy milk"}
            }
        },
        "services.TaskSummary": {
            "type": "object",
            "properties": {
                "missingCreateDate": {"type": "integer"},
                "neverUpdated": {"type": "integer"},
                "total": {"type": "integer"},
                "updated": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Task Manager API",
	Description:      "Create, update, search and delete tasks.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
