// Package docs is generated by swag init from the handler annotations.
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
        "/api/alerts/summary": {
            "get": {
                "description": "Insurance, inspections and documents bucketed into expired, expiring within 30 days and valid",
                "produces": ["application/json"],
                "tags": ["alerts"],
                "summary": "Expiration alert summary",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ds.AlertSummary"}},
                    "500": {"description": "error: message", "schema": {"type": "object"}}
                }
            }
        },
        "/api/metadata": {
            "get": {
                "produces": ["application/json"],
                "tags": ["metadata"],
                "summary": "List metadata fields",
                "parameters": [
                    {"type": "integer", "description": "Vessel ID", "name": "vessel", "in": "query"},
                    {"type": "string", "description": "Kind code", "name": "kind", "in": "query"}
                ],
                "responses": {"200": {"description": "data: []metaFieldResponse, count: int", "schema": {"type": "object"}}}
            },
            "post": {
                "description": "FILE and IMAGE kinds take a multipart file part named \"value\" or \"file\"; other kinds take a scalar \"value\"",
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["metadata"],
                "summary": "Create a metadata field",
                "parameters": [
                    {"type": "integer", "description": "Vessel ID", "name": "vessel_id", "in": "formData", "required": true},
                    {"type": "string", "description": "TEXT, NUMBER, DATE, TIME, BOOLEAN, URL, FILE or IMAGE", "name": "kind", "in": "formData", "required": true},
                    {"type": "string", "description": "Key name, unique per vessel", "name": "name", "in": "formData", "required": true},
                    {"type": "string", "description": "Scalar value or file", "name": "value", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "data: metaFieldResponse", "schema": {"type": "object"}},
                    "400": {"description": "error, detail", "schema": {"type": "object"}},
                    "404": {"description": "error: vessel not found", "schema": {"type": "object"}},
                    "409": {"description": "error: duplicate name", "schema": {"type": "object"}}
                }
            }
        },
        "/api/metadata/{id}/download": {
            "get": {
                "produces": ["application/json"],
                "tags": ["metadata"],
                "summary": "Download URL of a file metadata field",
                "parameters": [{"type": "integer", "description": "Metadata field ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "data: {url}", "schema": {"type": "object"}},
                    "400": {"description": "error: not a file field", "schema": {"type": "object"}},
                    "404": {"description": "error: no file attached", "schema": {"type": "object"}}
                }
            }
        },
        "/api/vessels": {
            "get": {
                "description": "Filter by search text, vessel type, owner, activity and build year range",
                "produces": ["application/json"],
                "tags": ["vessels"],
                "summary": "List vessels",
                "parameters": [
                    {"type": "string", "description": "Free text", "name": "search", "in": "query"},
                    {"type": "string", "description": "Vessel types, comma separated", "name": "type", "in": "query"},
                    {"type": "string", "description": "Owner IDs, comma separated", "name": "owner", "in": "query"},
                    {"type": "string", "description": "Activity IDs, comma separated", "name": "activity", "in": "query"},
                    {"type": "integer", "description": "Build year lower bound", "name": "year_min", "in": "query"},
                    {"type": "integer", "description": "Build year upper bound", "name": "year_max", "in": "query"}
                ],
                "responses": {"200": {"description": "data: []vesselResponse, count: int", "schema": {"type": "object"}}}
            }
        },
        "/api/vessels/export-csv": {
            "get": {
                "produces": ["text/csv"],
                "tags": ["vessels"],
                "summary": "Export every vessel as CSV",
                "responses": {"200": {"description": "OK", "schema": {"type": "file"}}}
            }
        },
        "/api/vessels/{id}/export-one-pdf": {
            "get": {
                "produces": ["application/pdf"],
                "tags": ["vessels"],
                "summary": "Export one vessel sheet as PDF",
                "parameters": [{"type": "integer", "description": "Vessel ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "404": {"description": "error: vessel not found", "schema": {"type": "object"}},
                    "500": {"description": "error: rendering failure", "schema": {"type": "object"}}
                }
            }
        },
        "/api/users/login": {
            "post": {
                "description": "Authenticate user, set session cookie and return JWT",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Login user",
                "responses": {
                    "200": {"description": "message: string, data: {token: string}", "schema": {"type": "object"}},
                    "401": {"description": "error: message", "schema": {"type": "object"}}
                }
            }
        }
    },
    "definitions": {
        "ds.AlertSummary": {
            "type": "object",
            "properties": {
                "documentsExpires": {"type": "integer"},
                "documentsBientotExpires": {"type": "integer"},
                "total_alertes": {"type": "integer"},
                "total_valide": {"type": "integer"},
                "liste_expires": {"type": "array", "items": {"type": "object"}},
                "documentsPresqueExpires": {"type": "array", "items": {"type": "object"}},
                "naviresRecents": {"type": "array", "items": {"type": "object"}}
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
	Title:            "Fleet Registry API",
	Description:      "Back-office API for registered vessels and their administrative records.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
