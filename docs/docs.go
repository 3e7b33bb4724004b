// Package docs registra el documento OpenAPI que sirve /swagger.
// Se regenera con `swag init -g cmd/api/main.go`; editar a mano solo para ajustes menores.
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
        "/litters": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["litters"],
                "summary": "Crear camada",
                "parameters": [
                    {"type": "string", "description": "Solo en modo dev, ID de usuario para depuración", "name": "X-Debug-User-ID", "in": "header"},
                    {"type": "string", "description": "Bearer token en producción", "name": "Authorization", "in": "header"},
                    {"description": "Datos de la camada", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/puppies.createLitterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/puppies.litterResponse"}},
                    "400": {"description": "invalid json / birth_date inválido", "schema": {"type": "string"}},
                    "401": {"description": "unauthorized", "schema": {"type": "string"}}
                }
            }
        },
        "/litters/{litterID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["litters"],
                "summary": "Obtener camada",
                "parameters": [
                    {"type": "string", "description": "ID de la camada", "name": "litterID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/puppies.litterResponse"}},
                    "401": {"description": "unauthorized", "schema": {"type": "string"}},
                    "404": {"description": "not found", "schema": {"type": "string"}}
                }
            }
        },
        "/litters/{litterID}/puppies": {
            "get": {
                "produces": ["application/json"],
                "tags": ["puppies"],
                "summary": "Listar cachorros de la camada",
                "parameters": [
                    {"type": "string", "description": "ID de la camada", "name": "litterID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/puppies.puppyResponse"}}},
                    "404": {"description": "not found", "schema": {"type": "string"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["puppies"],
                "summary": "Registrar cachorro",
                "parameters": [
                    {"type": "string", "description": "ID de la camada", "name": "litterID", "in": "path", "required": true},
                    {"description": "Datos del cachorro", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/puppies.createPuppyRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/puppies.puppyResponse"}},
                    "400": {"description": "invalid json / reglas de negocio", "schema": {"type": "string"}},
                    "404": {"description": "litter not found", "schema": {"type": "string"}}
                }
            }
        },
        "/litters/{litterID}/development": {
            "get": {
                "produces": ["application/json"],
                "tags": ["development"],
                "summary": "Estado de desarrollo de la camada",
                "parameters": [
                    {"type": "string", "description": "ID de la camada", "name": "litterID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "404": {"description": "not found", "schema": {"type": "string"}}
                }
            }
        },
        "/puppies/{puppyID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["puppies"],
                "summary": "Obtener cachorro",
                "parameters": [
                    {"type": "string", "description": "ID del cachorro", "name": "puppyID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/puppies.puppyResponse"}},
                    "404": {"description": "not found", "schema": {"type": "string"}}
                }
            }
        },
        "/puppies/{puppyID}/development": {
            "get": {
                "produces": ["application/json"],
                "tags": ["development"],
                "summary": "Estado de desarrollo del cachorro",
                "parameters": [
                    {"type": "string", "description": "ID del cachorro", "name": "puppyID", "in": "path", "required": true},
                    {"type": "string", "description": "desc = pesadas más recientes primero", "name": "order", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "404": {"description": "not found", "schema": {"type": "string"}}
                }
            }
        },
        "/puppies/{puppyID}/protocols/{protocol}/events": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["development"],
                "summary": "Registrar evento de protocolo",
                "parameters": [
                    {"type": "string", "description": "Solo en modo dev, nombre del executor", "name": "X-Debug-User-Name", "in": "header"},
                    {"type": "string", "description": "ID del cachorro", "name": "puppyID", "in": "path", "required": true},
                    {"type": "string", "description": "neurological, olfactory, auditory o sensory", "name": "protocol", "in": "path", "required": true},
                    {"description": "Evento", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/puppies.protocolEventRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "400": {"description": "invalid json / evento inválido", "schema": {"type": "string"}},
                    "404": {"description": "not found", "schema": {"type": "string"}},
                    "409": {"description": "fuera de ventana / protocolo bloqueado / sin fecha de nacimiento", "schema": {"type": "string"}},
                    "503": {"description": "persistence failure (cambio revertido)", "schema": {"type": "string"}}
                }
            }
        },
        "/puppies/{puppyID}/weights": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["development"],
                "summary": "Registrar peso",
                "parameters": [
                    {"type": "string", "description": "ID del cachorro", "name": "puppyID", "in": "path", "required": true},
                    {"description": "Pesada", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/puppies.addWeightRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "400": {"description": "invalid json / peso o fecha inválidos", "schema": {"type": "string"}},
                    "503": {"description": "persistence failure (cambio revertido)", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "puppies.createLitterRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "dam_name": {"type": "string"},
                "sire_name": {"type": "string"},
                "birth_date": {"type": "string"}
            }
        },
        "puppies.litterResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "dam_name": {"type": "string"},
                "sire_name": {"type": "string"},
                "birth_date": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "puppies.createPuppyRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "sex": {"type": "string", "enum": ["male", "female", "unknown"]},
                "color": {"type": "string"},
                "birth_weight": {"type": "number"}
            }
        },
        "puppies.puppyResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "litter_id": {"type": "string"},
                "name": {"type": "string"},
                "sex": {"type": "string"},
                "color": {"type": "string"},
                "birth_weight": {"type": "number"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "puppies.protocolEventRequest": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "enum": ["toggle_exercise", "set_scent", "toggle_item"]},
                "day": {"type": "integer"},
                "exercise_id": {"type": "string"},
                "scent": {"type": "string"},
                "item_id": {"type": "string"}
            }
        },
        "puppies.addWeightRequest": {
            "type": "object",
            "properties": {
                "weight": {"type": "number"},
                "date": {"type": "string"}
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
	Title:            "Litter Milestones API",
	Description:      "Seguimiento de protocolos de estimulación temprana y curva de peso por cachorro.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
