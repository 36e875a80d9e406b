// Package docs registra a especificação Swagger servida em /swagger.
// Regenerar com: swag init -g cmd/api/docs.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "termsOfService": "http://swagger.io/terms/",
        "contact": {
            "name": "API Support",
            "url": "http://www.swagger.io/support",
            "email": "support@swagger.io"
        },
        "license": {
            "name": "Apache 2.0",
            "url": "http://www.apache.org/licenses/LICENSE-2.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/appointments": {
            "post": {
                "tags": ["appointments"],
                "summary": "Criar agendamento",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "appointment", "required": true, "schema": {"$ref": "#/definitions/dto.CreateAppointmentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.AppointmentResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/appointments/reserved-slots": {
            "get": {
                "tags": ["appointments"],
                "summary": "Horários ocupados",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "barber_id", "in": "query", "required": true},
                    {"type": "string", "name": "date", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/appointments/agenda": {
            "get": {
                "security": [{"Bearer": []}],
                "tags": ["appointments"],
                "summary": "Agenda do barbeiro",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "barber_id", "in": "query"},
                    {"type": "string", "name": "date", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/appointments/{id}/finalize": {
            "post": {
                "security": [{"Bearer": []}],
                "tags": ["appointments"],
                "summary": "Finalizar atendimento",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.FinalizeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/appointments/{id}/sale": {
            "get": {
                "security": [{"Bearer": []}],
                "tags": ["sales"],
                "summary": "Venda do agendamento",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "message": {"type": "string"},
                "details": {"type": "string"}
            }
        },
        "dto.CustomerRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "phone": {"type": "string"},
                "email": {"type": "string"}
            }
        },
        "dto.CreateAppointmentRequest": {
            "type": "object",
            "required": ["barber_id", "service_id", "scheduled_at", "customer"],
            "properties": {
                "barber_id": {"type": "string"},
                "service_id": {"type": "string"},
                "scheduled_at": {"type": "string"},
                "customer": {"$ref": "#/definitions/dto.CustomerRequest"},
                "notes": {"type": "string"},
                "wants_free_cut_redemption": {"type": "boolean"}
            }
        },
        "dto.AppointmentResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "barber_id": {"type": "string"},
                "service_id": {"type": "string"},
                "status": {"type": "string"},
                "queue_stage": {"type": "string"},
                "queue_position": {"type": "integer"},
                "charged_price": {"type": "string"},
                "sale_generated": {"type": "boolean"}
            }
        },
        "dto.LineRequest": {
            "type": "object",
            "required": ["id"],
            "properties": {
                "id": {"type": "string"},
                "quantity": {"type": "integer"}
            }
        },
        "dto.FinalizeRequest": {
            "type": "object",
            "required": ["payment_method"],
            "properties": {
                "payment_method": {"type": "string", "enum": ["cash", "card", "transfer", "other"]},
                "notes": {"type": "string"},
                "extra_services": {"type": "array", "items": {"$ref": "#/definitions/dto.LineRequest"}},
                "products": {"type": "array", "items": {"$ref": "#/definitions/dto.LineRequest"}}
            }
        }
    },
    "securityDefinitions": {
        "Bearer": {
            "description": "Cabeçalho de autenticação JWT usando o esquema Bearer. Exemplo: \"Bearer {token}\"",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo contém as informações exportadas da especificação
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Barbearia API",
	Description:      "API de agendamentos, fila de atendimento, fidelidade e vendas da barbearia",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
