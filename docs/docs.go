// Package docs registers the OpenAPI description served at /swagger/*.
//
// Regenerate with: swag init -g cmd/server/main.go -o docs
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
        "/allBloodDonationRequest": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["donationRequests"],
                "summary": "List donation requests (legacy path)",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "403": {"description": "Forbidden"}}
            }
        },
        "/donationRequests": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["donationRequests"],
                "summary": "List donation requests",
                "parameters": [
                    {"type": "string", "name": "status", "in": "query"},
                    {"type": "string", "name": "requesterEmail", "in": "query"},
                    {"type": "string", "name": "donorEmail", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "403": {"description": "Forbidden"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["donationRequests"],
                "summary": "Create a donation request",
                "parameters": [
                    {"type": "string", "name": "Idempotency-Key", "in": "header"}
                ],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}}
            }
        },
        "/donationRequests/pending": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["donationRequests"],
                "summary": "List pending donation requests",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/donationRequests/pending/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["donationRequests"],
                "summary": "Get a pending donation request",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            }
        },
        "/donationRequests/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["donationRequests"],
                "summary": "Get a donation request",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["donationRequests"],
                "summary": "Replace the details of a donation request",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["donationRequests"],
                "summary": "Partially update a donation request",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["donationRequests"],
                "summary": "Delete a donation request",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            }
        },
        "/donationRequests/{id}/confirm": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["donationRequests"],
                "summary": "Volunteer as donor for a pending request",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            }
        },
        "/donationRequests/{id}/status/donor": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["donationRequests"],
                "summary": "Mark an inprogress request done or canceled",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}, "409": {"description": "Conflict"}}
            }
        },
        "/donationRequests/{id}/status/admin": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["donationRequests"],
                "summary": "Move a request along the lifecycle as staff",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}, "409": {"description": "Conflict"}}
            }
        },
        "/jwt": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Create a session token",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/users": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "List users", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Register the calling user", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/users/search": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Search active donors", "responses": {"200": {"description": "OK"}}}
        },
        "/users/{email}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Get a user profile", "parameters": [{"type": "string", "name": "email", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Update a user profile", "parameters": [{"type": "string", "name": "email", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}
        },
        "/users/{email}/role": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Get the role of a user", "parameters": [{"type": "string", "name": "email", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/users/{id}/role": {
            "patch": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Change a user's role", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}
        },
        "/users/{id}/status": {
            "patch": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Block or unblock a user", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}
        },
        "/blogs": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["blogs"], "summary": "List blogs", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["blogs"], "summary": "Create a blog", "responses": {"201": {"description": "Created"}}}
        },
        "/blogs/{id}": {
            "delete": {"security": [{"BearerAuth": []}], "tags": ["blogs"], "summary": "Delete a blog", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/blogs/{id}/publish": {
            "patch": {"security": [{"BearerAuth": []}], "tags": ["blogs"], "summary": "Publish a blog", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/blogs/{id}/unpublish": {
            "patch": {"security": [{"BearerAuth": []}], "tags": ["blogs"], "summary": "Move a blog back to draft", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
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

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Blood Donation API",
	Description:      "Coordinates blood donation requests between requesters, donors and staff.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
