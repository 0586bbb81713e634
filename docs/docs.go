// Package docs holds the OpenAPI document served under /swagger/. It mirrors
// the handler annotations; regenerate with `swag init -g cmd/server/main.go`
// after changing them.
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.HealthResponse"}}
                }
            }
        },
        "/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a patient account",
                "parameters": [
                    {"description": "Registration data", "name": "request", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/handler.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.RegisterResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apperr.Response"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/apperr.Response"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/apperr.Response"}}
                }
            }
        },
        "/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in and receive an access token",
                "parameters": [
                    {"description": "Credentials", "name": "request", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/handler.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.LoginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apperr.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apperr.Response"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/apperr.Response"}}
                }
            }
        },
        "/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Revoke the presented access token",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MessageResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apperr.Response"}}
                }
            }
        },
        "/slots": {
            "get": {
                "description": "Missing slots in the range are generated first. Without both bounds the next seven days are used.",
                "produces": ["application/json"],
                "tags": ["slots"],
                "summary": "List available slots",
                "parameters": [
                    {"type": "string", "description": "First day, YYYY-MM-DD", "name": "from", "in": "query"},
                    {"type": "string", "description": "Last day (inclusive), YYYY-MM-DD", "name": "to", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.SlotResponse"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apperr.Response"}}
                }
            }
        },
        "/book": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "Book a slot",
                "parameters": [
                    {"description": "Slot to book", "name": "request", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/handler.BookRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.BookResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apperr.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apperr.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/apperr.Response"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/apperr.Response"}}
                }
            }
        },
        "/my-bookings": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "List the caller's bookings",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.BookingResponse"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apperr.Response"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/apperr.Response"}}
                }
            }
        },
        "/all-bookings": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "List every booking (admin)",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.BookingResponse"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apperr.Response"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/apperr.Response"}}
                }
            }
        },
        "/cancel/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "description": "Patients may cancel their own future bookings; admins any future booking.",
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "Cancel a booking",
                "parameters": [
                    {"type": "string", "description": "Booking ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.CancelResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apperr.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apperr.Response"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/apperr.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/apperr.Response"}}
                }
            }
        }
    },
    "definitions": {
        "apperr.Body": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "apperr.Response": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/apperr.Body"}
            }
        },
        "handler.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handler.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "handler.RegisterRequest": {
            "type": "object",
            "required": ["email", "name", "password"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handler.RegisterResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "user": {"$ref": "#/definitions/handler.UserResponse"}
            }
        },
        "handler.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handler.LoginResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "role": {"type": "string"},
                "user": {"$ref": "#/definitions/handler.UserResponse"}
            }
        },
        "handler.UserResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string", "enum": ["patient", "admin"]},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "handler.SlotResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "start_at": {"type": "string", "format": "date-time"},
                "end_at": {"type": "string", "format": "date-time"},
                "is_booked": {"type": "boolean"},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "handler.BookRequest": {
            "type": "object",
            "required": ["slotId"],
            "properties": {
                "slotId": {"type": "string"}
            }
        },
        "handler.BookResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "booking": {"$ref": "#/definitions/handler.BookingResponse"}
            }
        },
        "handler.BookingResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "user_id": {"type": "string"},
                "slot_id": {"type": "string"},
                "user_name": {"type": "string", "x-nullable": true},
                "user_email": {"type": "string", "x-nullable": true},
                "slot_start": {"type": "string", "format": "date-time", "x-nullable": true},
                "slot_end": {"type": "string", "format": "date-time", "x-nullable": true},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "handler.CancelResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "booking_id": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Appointment Booking API",
	Description:      "Patients book fixed time slots; admins see and cancel every booking.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
