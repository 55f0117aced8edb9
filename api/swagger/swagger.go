package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Classroom API",
        "description": "Student roster, evaluation, analytics and document generation",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Students", "description": "Student roster and evaluations"},
        {"name": "Sections", "description": "Sections with computed counters"},
        {"name": "Schedules", "description": "Timetable entries"},
        {"name": "Import", "description": "Spreadsheet roster import"},
        {"name": "Analytics", "description": "Aggregated views and feeds"},
        {"name": "Reports", "description": "PDF reports and certificates"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"},
                    "503": {"description": "Database unreachable"}
                }
            }
        },
        "/api/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List students",
                "parameters": [
                    {"name": "section", "in": "query", "type": "string"},
                    {"name": "color", "in": "query", "type": "string", "description": "Comma separated colors"},
                    {"name": "search", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Student"}}},
                    "400": {"description": "Invalid color", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            },
            "post": {
                "tags": ["Students"],
                "summary": "Create a student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Student"}},
                    "400": {"description": "Missing student name or section", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/api/students/{id}": {
            "get": {
                "tags": ["Students"],
                "summary": "Get a student",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Student"}},
                    "404": {"description": "Student not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            },
            "put": {
                "tags": ["Students"],
                "summary": "Replace a student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Student"}},
                    "404": {"description": "Student not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Students"],
                "summary": "Delete a student",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Student not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/api/students/{id}/order": {
            "put": {
                "tags": ["Students"],
                "summary": "Set or clear a student's display order",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/OrderRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/OrderResponse"}},
                    "400": {"description": "Missing orderNumber", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/api/students/{id}/evaluate": {
            "post": {
                "tags": ["Students"],
                "summary": "Submit an evaluation",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EvaluateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/EvaluateResponse"}},
                    "400": {"description": "Score out of range", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "404": {"description": "Student not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/api/sections": {
            "get": {
                "tags": ["Sections"],
                "summary": "List sections",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Section"}}}}
            },
            "post": {
                "tags": ["Sections"],
                "summary": "Create a section",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SectionRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Section"}},
                    "409": {"description": "Section already exists", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/api/sections/{id}": {
            "delete": {
                "tags": ["Sections"],
                "summary": "Delete a section",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Deleted"}, "404": {"description": "Section not found"}}
            }
        },
        "/api/schedules": {
            "get": {
                "tags": ["Schedules"],
                "summary": "List schedules",
                "parameters": [{"name": "section", "in": "query", "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Schedule"}}}}
            },
            "post": {
                "tags": ["Schedules"],
                "summary": "Create a schedule entry",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ScheduleRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/Schedule"}}}
            }
        },
        "/api/schedules/{id}": {
            "delete": {
                "tags": ["Schedules"],
                "summary": "Delete a schedule entry",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Deleted"}, "404": {"description": "Schedule not found"}}
            }
        },
        "/api/upload-excel": {
            "post": {
                "tags": ["Import"],
                "summary": "Import students from a spreadsheet",
                "description": "The file base name is used as the section of every imported student.",
                "consumes": ["multipart/form-data"],
                "parameters": [{"name": "file", "in": "formData", "required": true, "type": "file"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ImportResult"}},
                    "400": {"description": "Missing or unsupported file", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "500": {"description": "Import failed", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/api/analytics/overview": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Cohort overview metrics",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/OverviewMetrics"}}}
            }
        },
        "/api/analytics/section-performance": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Per-section performance",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/SectionPerformance"}}}}
            }
        },
        "/api/analytics/leaderboard": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Students ranked by total points",
                "parameters": [
                    {"name": "section", "in": "query", "type": "string"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/LeaderboardEntry"}}}}
            }
        },
        "/api/analytics/behavior-trends": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Monthly behavior classification counts",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/BehaviorTrend"}}}}
            }
        },
        "/api/notifications": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Students needing attention and class reminders",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Notification"}}}}
            }
        },
        "/api/recent-activities": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Recently added students and sections",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Activity"}}}}
            }
        },
        "/api/generate-report": {
            "post": {
                "tags": ["Reports"],
                "summary": "Render a report document",
                "produces": ["application/pdf", "text/csv"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReportRequest"}},
                    {"name": "format", "in": "query", "type": "string", "enum": ["pdf", "csv"]}
                ],
                "responses": {
                    "200": {"description": "Attachment", "schema": {"type": "file"}},
                    "400": {"description": "Unsupported report type", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/generate-certificate": {
            "post": {
                "tags": ["Reports"],
                "summary": "Render a badge certificate",
                "produces": ["application/pdf"],
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CertificateRequest"}}],
                "responses": {
                    "200": {"description": "Attachment", "schema": {"type": "file"}},
                    "400": {"description": "Missing data", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Student": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "section": {"type": "string"},
                "grade": {"type": "string"},
                "badges": {"type": "array", "items": {"type": "string"}},
                "behavior": {"type": "string"},
                "orderNumber": {"type": "integer"},
                "behaviorScore": {"type": "integer"},
                "participationScore": {"type": "integer"},
                "homeworkScore": {"type": "integer"},
                "attendance": {"type": "integer"},
                "color": {"type": "string", "enum": ["green", "yellow", "blue", "red", "gray"]},
                "evaluatedAt": {"type": "string", "format": "date-time"},
                "createdAt": {"type": "string", "format": "date-time"},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "StudentRequest": {
            "type": "object",
            "required": ["name", "section"],
            "properties": {
                "name": {"type": "string"},
                "section": {"type": "string"},
                "grade": {"type": "string"},
                "badges": {"type": "array", "items": {"type": "string"}},
                "behavior": {"type": "string"}
            }
        },
        "OrderRequest": {
            "type": "object",
            "required": ["orderNumber"],
            "properties": {"orderNumber": {"type": "integer", "x-nullable": true}}
        },
        "OrderResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "orderNumber": {"type": "integer", "x-nullable": true}
            }
        },
        "EvaluateRequest": {
            "type": "object",
            "required": ["behaviorScore", "participationScore", "homeworkScore", "attendance"],
            "properties": {
                "behaviorScore": {"type": "integer", "minimum": 0, "maximum": 10},
                "participationScore": {"type": "integer", "minimum": 0, "maximum": 10},
                "homeworkScore": {"type": "integer", "minimum": 0, "maximum": 10},
                "attendance": {"type": "integer", "minimum": 0, "maximum": 100}
            }
        },
        "EvaluateResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "color": {"type": "string"}
            }
        },
        "Section": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "grade": {"type": "string"},
                "students": {"type": "integer"},
                "excellent": {"type": "integer"},
                "issues": {"type": "integer"},
                "createdAt": {"type": "string", "format": "date-time"},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "SectionRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"},
                "grade": {"type": "string"}
            }
        },
        "Schedule": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "time": {"type": "string"},
                "section": {"type": "string"},
                "teacher": {"type": "string"}
            }
        },
        "ScheduleRequest": {
            "type": "object",
            "required": ["name", "time", "section", "teacher"],
            "properties": {
                "name": {"type": "string"},
                "time": {"type": "string"},
                "section": {"type": "string"},
                "teacher": {"type": "string"}
            }
        },
        "ImportResult": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "students_added": {"type": "integer"},
                "rows_skipped": {"type": "integer"},
                "section": {"type": "string"}
            }
        },
        "OverviewMetrics": {
            "type": "object",
            "properties": {
                "totalStudents": {"type": "integer"},
                "excellentStudents": {"type": "integer"},
                "averageStudents": {"type": "integer"},
                "poorStudents": {"type": "integer"},
                "unevaluatedStudents": {"type": "integer"},
                "averageGrade": {"type": "number"},
                "attendanceRate": {"type": "number"},
                "homeworkCompletionRate": {"type": "number"},
                "behaviorScore": {"type": "number"}
            }
        },
        "SectionPerformance": {
            "type": "object",
            "properties": {
                "section": {"type": "string"},
                "average": {"type": "number"},
                "students": {"type": "integer"},
                "excellent": {"type": "integer"},
                "poor": {"type": "integer"}
            }
        },
        "LeaderboardEntry": {
            "type": "object",
            "properties": {
                "rank": {"type": "integer"},
                "studentId": {"type": "string"},
                "name": {"type": "string"},
                "section": {"type": "string"},
                "totalPoints": {"type": "number"},
                "participationPoints": {"type": "number"},
                "behaviorPoints": {"type": "number"},
                "homeworkPoints": {"type": "number"},
                "badges": {"type": "array", "items": {"type": "string"}},
                "starRating": {"type": "number"}
            }
        },
        "BehaviorTrend": {
            "type": "object",
            "properties": {
                "month": {"type": "string"},
                "excellent": {"type": "integer"},
                "good": {"type": "integer"},
                "poor": {"type": "integer"}
            }
        },
        "Notification": {
            "type": "object",
            "properties": {
                "studentId": {"type": "string"},
                "type": {"type": "string"},
                "message": {"type": "string"},
                "time": {"type": "string"},
                "priority": {"type": "string"},
                "severity": {"type": "string", "enum": ["urgent", "upcoming"]},
                "color": {"type": "string"}
            }
        },
        "Activity": {
            "type": "object",
            "properties": {
                "kind": {"type": "string"},
                "id": {"type": "string"},
                "action": {"type": "string"},
                "time": {"type": "string"},
                "createdAt": {"type": "string", "format": "date-time"}
            }
        },
        "ReportRequest": {
            "type": "object",
            "required": ["reportType", "data"],
            "properties": {
                "reportType": {"type": "string", "enum": ["leaderboard", "overview", "sectionPerformance", "behaviorTrends"]},
                "data": {"type": "object"}
            }
        },
        "CertificateRequest": {
            "type": "object",
            "required": ["student_name", "badge_name", "date_awarded"],
            "properties": {
                "student_name": {"type": "string"},
                "badge_name": {"type": "string"},
                "date_awarded": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "details": {"type": "string"},
                "fields": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "ErrorEnvelope": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/APIError"}
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
