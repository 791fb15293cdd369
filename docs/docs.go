// Package docs is generated by swag init from the annotations in
// cmd/api and internal/handler. Regenerate instead of editing by hand.
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
                "summary": "Healthcheck",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}}
            }
        },
        "/auth/token": {
            "post": {
                "description": "Exchanges the operator API key for a bearer JWT",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Issue an API token",
                "parameters": [
                    {"description": "api key", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.tokenRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.tokenResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "string"}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "string"}}
                }
            }
        },
        "/books/top": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Top books by title",
                "parameters": [
                    {"type": "integer", "description": "number of books (default 10)", "name": "n", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.BookSummary"}}}}
            }
        },
        "/books/compare": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Unknown books or books without common raters are reported in the reason field",
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Compare two books",
                "parameters": [
                    {"type": "string", "description": "first ISBN", "name": "a", "in": "query", "required": true},
                    {"type": "string", "description": "second ISBN", "name": "b", "in": "query", "required": true},
                    {"type": "string", "description": "euclidean|manhattan|minkowski|cosine|pearson (default euclidean)", "name": "metric", "in": "query"},
                    {"type": "number", "description": "minkowski order (default 1)", "name": "p", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.compareResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "string"}}
                }
            }
        },
        "/books/{isbn}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Book details with its ratings",
                "parameters": [
                    {"type": "string", "description": "ISBN", "name": "isbn", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Book"}},
                    "404": {"description": "Not Found", "schema": {"type": "string"}}
                }
            }
        },
        "/books/{isbn}/similar": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Nearest books",
                "parameters": [
                    {"type": "string", "description": "ISBN", "name": "isbn", "in": "path", "required": true},
                    {"type": "integer", "description": "number of neighbors (default 10, max 1000)", "name": "n", "in": "query"},
                    {"type": "string", "description": "ranking metric (default euclidean)", "name": "metric", "in": "query"},
                    {"type": "number", "description": "minkowski order", "name": "p", "in": "query"},
                    {"type": "boolean", "description": "drop books without common raters", "name": "overlap_only", "in": "query"},
                    {"type": "boolean", "description": "skip the Redis cache", "name": "refresh", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.SimilarityDoc"}},
                    "400": {"description": "Bad Request", "schema": {"type": "string"}},
                    "404": {"description": "Not Found", "schema": {"type": "string"}}
                }
            }
        },
        "/books/{isbn}/ws/similar": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Sends a start message, one message per neighbor in rank order, then a done message with the full result",
                "tags": ["books"],
                "summary": "Nearest books over WebSocket",
                "parameters": [
                    {"type": "string", "description": "ISBN", "name": "isbn", "in": "path", "required": true},
                    {"type": "integer", "description": "number of neighbors (default 10, max 1000)", "name": "n", "in": "query"},
                    {"type": "string", "description": "ranking metric (default euclidean)", "name": "metric", "in": "query"},
                    {"type": "number", "description": "minkowski order", "name": "p", "in": "query"},
                    {"type": "boolean", "description": "drop books without common raters", "name": "overlap_only", "in": "query"},
                    {"type": "boolean", "description": "skip the Redis cache", "name": "refresh", "in": "query"}
                ],
                "responses": {"101": {"description": "Switching Protocols", "schema": {"type": "string"}}}
            }
        },
        "/users/top": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Top users by rating count",
                "parameters": [
                    {"type": "integer", "description": "number of users (default 10)", "name": "n", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.UserSummary"}}}}
            }
        },
        "/users/compare": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Compare two users",
                "parameters": [
                    {"type": "string", "description": "first user id", "name": "a", "in": "query", "required": true},
                    {"type": "string", "description": "second user id", "name": "b", "in": "query", "required": true},
                    {"type": "string", "description": "pearson|manhattan|euclidean|minkowski|cosine (default euclidean)", "name": "metric", "in": "query"},
                    {"type": "number", "description": "minkowski order (default 1)", "name": "p", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.compareResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "string"}}
                }
            }
        },
        "/users/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "User with its ratings",
                "parameters": [
                    {"type": "string", "description": "user id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.User"}},
                    "404": {"description": "Not Found", "schema": {"type": "string"}}
                }
            }
        },
        "/users/{id}/similar": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Nearest users",
                "parameters": [
                    {"type": "string", "description": "user id", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "description": "number of neighbors (default 10, max 1000)", "name": "n", "in": "query"},
                    {"type": "string", "description": "ranking metric (default euclidean)", "name": "metric", "in": "query"},
                    {"type": "number", "description": "minkowski order", "name": "p", "in": "query"},
                    {"type": "boolean", "description": "drop users without common books", "name": "overlap_only", "in": "query"},
                    {"type": "boolean", "description": "skip the Redis cache", "name": "refresh", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.SimilarityDoc"}},
                    "400": {"description": "Bad Request", "schema": {"type": "string"}},
                    "404": {"description": "Not Found", "schema": {"type": "string"}}
                }
            }
        },
        "/dataset/summary": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["dataset"],
                "summary": "Loaded dataset summary",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.DatasetSummary"}}}
            }
        }
    },
    "definitions": {
        "handler.tokenRequest": {
            "type": "object",
            "properties": {"apiKey": {"type": "string"}}
        },
        "handler.tokenResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}, "expiresAt": {"type": "string"}}
        },
        "handler.compareResponse": {
            "type": "object",
            "properties": {
                "a": {"type": "string"},
                "b": {"type": "string"},
                "metric": {"type": "string"},
                "score": {"type": "number"},
                "reason": {"type": "string"},
                "explanation": {"type": "string"},
                "commonRatings": {"type": "integer"}
            }
        },
        "models.Book": {
            "type": "object",
            "properties": {
                "isbn": {"type": "string"},
                "title": {"type": "string"},
                "author": {"type": "string"},
                "year": {"type": "string"},
                "ratings": {"type": "object", "additionalProperties": {}}
            }
        },
        "models.BookSummary": {
            "type": "object",
            "properties": {
                "isbn": {"type": "string"},
                "title": {"type": "string"},
                "author": {"type": "string"},
                "year": {"type": "string"},
                "ratingCount": {"type": "integer"}
            }
        },
        "models.User": {
            "type": "object",
            "properties": {
                "userId": {"type": "string"},
                "ratings": {"type": "object", "additionalProperties": {}}
            }
        },
        "models.UserSummary": {
            "type": "object",
            "properties": {"userId": {"type": "string"}, "ratingCount": {"type": "integer"}}
        },
        "models.Neighbor": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "score": {"type": "number"}, "reason": {"type": "string"}}
        },
        "models.SimilarityDoc": {
            "type": "object",
            "properties": {
                "kind": {"type": "string"},
                "id": {"type": "string"},
                "metric": {"type": "string"},
                "n": {"type": "integer"},
                "overlapOnly": {"type": "boolean"},
                "neighbors": {"type": "array", "items": {"$ref": "#/definitions/models.Neighbor"}},
                "cached": {"type": "boolean"},
                "generatedAt": {"type": "string"}
            }
        },
        "models.DatasetSummary": {
            "type": "object",
            "properties": {
                "source": {"type": "string"},
                "books": {"type": "integer"},
                "users": {"type": "integer"},
                "ratings": {"type": "integer"},
                "skippedBooks": {"type": "integer"},
                "skippedRatings": {"type": "integer"},
                "orphanRatings": {"type": "integer"},
                "loadedAt": {"type": "string"}
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

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Book Similarity API",
	Description:      "Similarity and nearest-neighbor queries over the book ratings dataset",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
