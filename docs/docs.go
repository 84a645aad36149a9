// Synthmap - Chemical Manufacturing Catalog Statistics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/synthmap

// Package docs registers the Swagger 2.0 document served at /swagger/doc.json.
// Keep it in step with the @Router annotations in internal/api.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "GitHub Repository",
            "url": "https://github.com/tomtom215/synthmap/issues"
        },
        "license": {
            "name": "AGPL-3.0-or-later",
            "url": "https://www.gnu.org/licenses/agpl-3.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/stats/locations": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Stats"],
                "summary": "Company counts by location",
                "description": "Groups matching companies by country, state or city, or returns one GeoJSON point per geocoded company.",
                "parameters": [
                    {"type": "string", "enum": ["point", "country", "state", "city"], "default": "country", "name": "level", "in": "query"},
                    {"type": "integer", "default": 200, "description": "Clamped to [1, 10000]", "name": "limit", "in": "query"},
                    {"$ref": "#/parameters/country"},
                    {"$ref": "#/parameters/state"},
                    {"$ref": "#/parameters/city"},
                    {"$ref": "#/parameters/chemistries"},
                    {"$ref": "#/parameters/certifications"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/api/stats/chemistries": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Stats"],
                "summary": "Company counts by chemistry",
                "description": "Counts distinct matching companies per available process code.",
                "parameters": [
                    {"type": "integer", "default": 50, "description": "Clamped to [1, 10000]", "name": "limit", "in": "query"},
                    {"$ref": "#/parameters/country"},
                    {"$ref": "#/parameters/state"},
                    {"$ref": "#/parameters/city"},
                    {"$ref": "#/parameters/chemistries"},
                    {"$ref": "#/parameters/certifications"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/models.APIResponse"},
                                {"type": "object", "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/models.ChemistryStat"}}}}
                            ]
                        }
                    },
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/api/stats/products": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Stats"],
                "summary": "Product counts",
                "description": "Counts products per matching company, or per product type across matching companies.",
                "parameters": [
                    {"type": "string", "enum": ["company", "global"], "default": "company", "name": "by", "in": "query"},
                    {"type": "integer", "default": 50, "description": "Clamped to [1, 10000]", "name": "limit", "in": "query"},
                    {"$ref": "#/parameters/country"},
                    {"$ref": "#/parameters/state"},
                    {"$ref": "#/parameters/city"},
                    {"$ref": "#/parameters/chemistries"},
                    {"$ref": "#/parameters/certifications"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/api/lookups/{family}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Lookups"],
                "summary": "Lookup codes",
                "description": "Lists the codes of one lookup family, ordered by code.",
                "parameters": [
                    {"type": "string", "enum": ["processes", "certifications", "equipment", "analytics", "services"], "name": "family", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/models.APIResponse"},
                                {"type": "object", "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/models.LookupEntry"}}}}
                            ]
                        }
                    },
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Core"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/health/live": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Core"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Core"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        }
    },
    "parameters": {
        "country": {"type": "string", "description": "Exact country match; blank means no restriction", "name": "country", "in": "query"},
        "state": {"type": "string", "description": "Exact state match; blank means no restriction", "name": "state", "in": "query"},
        "city": {"type": "string", "description": "Exact city match; blank means no restriction", "name": "city", "in": "query"},
        "chemistries": {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "description": "Process codes; a company must have all of them available", "name": "chemistries", "in": "query"},
        "certifications": {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "description": "Certification codes; a company must hold all of them", "name": "certifications", "in": "query"}
    },
    "definitions": {
        "models.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "VALIDATION_ERROR"},
                "message": {"type": "string"},
                "details": {"type": "object", "additionalProperties": true}
            }
        },
        "models.APIResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "success"},
                "data": {},
                "metadata": {"$ref": "#/definitions/models.Metadata"},
                "error": {"$ref": "#/definitions/models.APIError"}
            }
        },
        "models.Metadata": {
            "type": "object",
            "properties": {
                "timestamp": {"type": "string", "format": "date-time"},
                "query_time_ms": {"type": "integer"},
                "cached": {"type": "boolean"}
            }
        },
        "models.ChemistryStat": {
            "type": "object",
            "properties": {
                "chemistry": {"type": "string", "example": "Suzuki"},
                "company_count": {"type": "integer"}
            }
        },
        "models.LookupEntry": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "code": {"type": "string"},
                "name": {"type": "string"}
            }
        }
    },
    "tags": [
        {"name": "Stats", "description": "Aggregated counts over the companies matching a filter"},
        {"name": "Lookups", "description": "Reference codes used by the chemistries and certifications filters"},
        {"name": "Core", "description": "Health and readiness probes"}
    ]
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8000",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Synthmap API",
	Description:      "Read-only statistics over a catalog of chemical manufacturers.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
