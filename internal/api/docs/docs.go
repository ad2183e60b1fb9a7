// Package docs registers the job API's OpenAPI document with swag.
// Regenerate with: swag init -g cmd/wrangler-api/main.go -o internal/api/docs
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
        "/jobs": {
            "get": {
                "description": "Get all jobs with their current status, newest first",
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "List jobs",
                "responses": {
                    "200": {"description": "List of jobs", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Job"}}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Validate a job spec, store it and run the operation asynchronously",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "Create a job",
                "parameters": [
                    {"description": "Job specification", "name": "job", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.JobSpec"}}
                ],
                "responses": {
                    "202": {"description": "Job accepted", "schema": {"$ref": "#/definitions/handler.CreateJobResponse"}},
                    "400": {"description": "Invalid job spec", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/jobs/{id}": {
            "get": {
                "description": "Retrieve a job's spec and status",
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "Get job",
                "parameters": [{"type": "string", "description": "Job ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Job details", "schema": {"$ref": "#/definitions/model.Job"}},
                    "404": {"description": "Job not found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/jobs/{id}/errors": {
            "get": {
                "description": "Retrieve the errors recorded while a job ran",
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "Get job errors",
                "parameters": [{"type": "string", "description": "Job ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Job errors", "schema": {"$ref": "#/definitions/handler.JobErrorsResponse"}},
                    "404": {"description": "Job not found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/jobs/{id}/outputs": {
            "get": {
                "description": "Retrieve the files a job produced with their row counts",
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "Get job outputs",
                "parameters": [{"type": "string", "description": "Job ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Job outputs", "schema": {"$ref": "#/definitions/handler.JobOutputsResponse"}},
                    "404": {"description": "Job not found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.CreateJobResponse": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "string"},
                "jobID": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "handler.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handler.JobErrorsResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/model.JobError"}},
                "job_id": {"type": "string"}
            }
        },
        "handler.JobOutputsResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "job_id": {"type": "string"},
                "outputs": {"type": "array", "items": {"$ref": "#/definitions/model.JobOutput"}}
            }
        },
        "model.Job": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "string"},
                "id": {"type": "string"},
                "spec": {"$ref": "#/definitions/model.JobSpec"},
                "status": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "model.JobError": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "id": {"type": "integer"},
                "job_id": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "model.JobOutput": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "job_id": {"type": "string"},
                "path": {"type": "string"},
                "rows": {"type": "integer"}
            }
        },
        "model.JobParams": {
            "type": "object",
            "properties": {
                "chunkSize": {"type": "integer"},
                "compression": {"type": "string"},
                "cutoff": {"type": "number"},
                "input": {"type": "string"},
                "model": {"type": "string"},
                "negative": {"type": "number"},
                "org": {"type": "string"},
                "output": {"type": "string"},
                "outputName": {"type": "string"},
                "positive": {"type": "number"},
                "source": {"type": "string"},
                "speaker": {"type": "string"},
                "timing": {"type": "boolean"},
                "year": {"type": "string"}
            }
        },
        "model.JobSpec": {
            "type": "object",
            "required": ["operation"],
            "properties": {
                "operation": {"type": "string", "enum": ["chunk", "speaker", "combine", "confidence", "orgs", "sentiment", "categorize", "plot"]},
                "params": {"$ref": "#/definitions/model.JobParams"},
                "timeout": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Quote Wrangler API",
	Description:      "Runs quote-corpus operations as background jobs and reports their status and outputs.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
