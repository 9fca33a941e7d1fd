// Package swagger provides the generated OpenAPI specification for the
// VRP microservice HTTP API. Regenerate with:
//
//	swag init -g cmd/api/main.go -o docs/swagger --parseDependency
package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "email": "support@vrp-microservice.com"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Service health check",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/v1/vehicles": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["vehicles"],
                "summary": "Create a vehicle",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/api/v1/jobs": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "Create a job",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/api/v1/jobs/bulk": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "Bulk import jobs",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/api/v1/shipments": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["shipments"],
                "summary": "Create a shipment",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/api/v1/plans/run": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["plans"],
                "summary": "Run an optimization synchronously",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "502": {"description": "Solver unavailable"}
                }
            }
        },
        "/api/v1/plans/queue": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["plans"],
                "summary": "Queue an optimization for background processing",
                "responses": {
                    "202": {"description": "Accepted"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/api/v1/plans/solver/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["plans"],
                "summary": "Check solver availability",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "VRP Microservice API",
	Description:      "Vehicle routing microservice. Manages fleets, tasks and shipments, runs optimizations against a VROOM solver and stores the resulting plans with normalized route geometry.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
