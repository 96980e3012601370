package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Interview Autoscheduler API",
        "description": "Generates interview schedule proposals from inline rosters",
        "version": "0.2.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Scheduler", "description": "Schedule proposal generation and retrieval"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/metrics": {
            "get": {
                "summary": "Prometheus metrics",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/schedules/generate": {
            "post": {
                "tags": ["Scheduler"],
                "summary": "Generate an interview schedule proposal",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateScheduleRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/{id}": {
            "get": {
                "tags": ["Scheduler"],
                "summary": "Fetch a stored proposal",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Scheduler"],
                "summary": "Discard a stored proposal",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No content"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/{id}/report": {
            "get": {
                "tags": ["Scheduler"],
                "summary": "Download a proposal's schedule as CSV",
                "produces": ["text/csv"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "TimeRange": {
            "type": "object",
            "required": ["start", "end"],
            "properties": {
                "start": {"type": "string", "format": "date-time"},
                "end": {"type": "string", "format": "date-time"}
            }
        },
        "ApplicantInput": {
            "type": "object",
            "required": ["email", "availability"],
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string"},
                "teams": {"type": "array", "items": {"type": "string"}},
                "availability": {"type": "array", "items": {"$ref": "#/definitions/TimeRange"}}
            }
        },
        "RecruiterInput": {
            "type": "object",
            "required": ["id", "team", "availability"],
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "team": {"type": "string"},
                "availability": {"type": "array", "items": {"$ref": "#/definitions/TimeRange"}}
            }
        },
        "RoomInput": {
            "type": "object",
            "required": ["id", "availability"],
            "properties": {
                "id": {"type": "string"},
                "availability": {"type": "array", "items": {"$ref": "#/definitions/TimeRange"}}
            }
        },
        "SchedulerOptions": {
            "type": "object",
            "properties": {
                "windows": {"type": "array", "items": {"$ref": "#/definitions/TimeRange"}},
                "granularityMinutes": {"type": "integer"},
                "groupDurationMinutes": {"type": "integer"},
                "individualDurationMinutes": {"type": "integer"},
                "groupMinApplicants": {"type": "integer"},
                "groupMaxApplicants": {"type": "integer"},
                "groupMinRecruiters": {"type": "integer"},
                "spacingWindowMinutes": {"type": "integer"},
                "refineIterations": {"type": "integer"}
            }
        },
        "GenerateScheduleRequest": {
            "type": "object",
            "required": ["applicants", "recruiters", "rooms"],
            "properties": {
                "applicants": {"type": "array", "items": {"$ref": "#/definitions/ApplicantInput"}},
                "recruiters": {"type": "array", "items": {"$ref": "#/definitions/RecruiterInput"}},
                "rooms": {"type": "array", "items": {"$ref": "#/definitions/RoomInput"}},
                "options": {"$ref": "#/definitions/SchedulerOptions"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
