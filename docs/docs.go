// Package docs holds the Swagger 2.0 description served under
// /api/v1/swagger/. It is kept by hand in the layout swag emits and must
// follow the handler annotations in cmd/api; `swag init -g cmd/api/main.go`
// rewrites it from them.
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
        "/health": {
            "get": {
                "description": "Store reachability and the configured backends",
                "produces": ["application/json"],
                "tags": ["ops"],
                "summary": "Healthcheck",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/main.HealthResponse"}}
                }
            }
        },
        "/items/{item_id}/audit": {
            "get": {
                "description": "Latest flag changes of a menu item, newest first",
                "produces": ["application/json"],
                "tags": ["items"],
                "summary": "Item flag history",
                "parameters": [
                    {"type": "string", "description": "Item ID", "name": "item_id", "in": "path", "required": true},
                    {"type": "integer", "description": "Maximum number of records", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.ItemFlagAudit"}}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/items/{item_id}/flags": {
            "patch": {
                "description": "Queue a change of one overlay flag of a menu item",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["items"],
                "summary": "Update an item flag",
                "parameters": [
                    {"type": "string", "description": "Item ID", "name": "item_id", "in": "path", "required": true},
                    {"description": "Flag update request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/main.UpdateItemFlagRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/menu": {
            "get": {
                "description": "Assemble the menu from the sheets and the item overlays",
                "produces": ["application/json"],
                "tags": ["menu"],
                "summary": "Get menu",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Menu"}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/orders": {
            "post": {
                "description": "Store the order and return the WhatsApp link that sends it to the store",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Submit an order",
                "parameters": [
                    {"description": "Order", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.OrderRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.CreateOrderResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/overlays/{key}": {
            "get": {
                "description": "Current item id to flag mapping of one overlay",
                "produces": ["application/json"],
                "tags": ["items"],
                "summary": "Get an overlay document",
                "parameters": [
                    {"enum": ["item_status", "item_visibility", "item_extras_status", "pizza_half_status"], "type": "string", "description": "Overlay key", "name": "key", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "boolean"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "domain.Address": {
            "type": "object",
            "properties": {
                "bairro": {"type": "string"},
                "clientName": {"type": "string"},
                "numero": {"type": "string"},
                "referencia": {"type": "string"},
                "rua": {"type": "string"}
            }
        },
        "domain.Extra": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "placement": {"type": "string"},
                "price": {"type": "number"}
            }
        },
        "domain.ItemFlagAudit": {
            "type": "object",
            "properties": {
                "event_type": {"type": "string"},
                "flag": {"type": "string"},
                "id": {"type": "string"},
                "item_id": {"type": "string"},
                "new_value": {"type": "boolean"},
                "old_value": {"type": "boolean"},
                "reason": {"type": "string"},
                "timestamp": {"type": "string"},
                "user_id": {"type": "string"}
            }
        },
        "domain.Menu": {
            "type": "object",
            "properties": {
                "cardapio": {"type": "array", "items": {"type": "object", "additionalProperties": true}},
                "contact": {"type": "array", "items": {"type": "object", "additionalProperties": true}},
                "deliveryFees": {"type": "array", "items": {"type": "object", "additionalProperties": true}},
                "ingredientesHamburguer": {"type": "array", "items": {"type": "object", "additionalProperties": true}},
                "ingredientesPizza": {"type": "array", "items": {"type": "object", "additionalProperties": true}},
                "promocoes": {"type": "array", "items": {"type": "object", "additionalProperties": true}}
            }
        },
        "domain.OrderItem": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "extras": {"type": "array", "items": {"$ref": "#/definitions/domain.Extra"}},
                "name": {"type": "string"},
                "price": {"type": "number"}
            }
        },
        "domain.OrderRequest": {
            "type": "object",
            "required": ["order", "selectedAddress", "total"],
            "properties": {
                "observation": {"type": "string"},
                "order": {"type": "array", "minItems": 1, "items": {"$ref": "#/definitions/domain.OrderItem"}},
                "paymentMethod": {},
                "selectedAddress": {"$ref": "#/definitions/domain.Address"},
                "total": {"$ref": "#/definitions/domain.OrderTotal"},
                "whatsappNumber": {"type": "string"}
            }
        },
        "domain.OrderTotal": {
            "type": "object",
            "properties": {
                "deliveryFee": {"type": "number"},
                "discount": {"type": "number"},
                "finalTotal": {"type": "number"},
                "subtotal": {"type": "number"}
            }
        },
        "main.CreateOrderResponse": {
            "type": "object",
            "properties": {
                "pdvError": {"type": "string"},
                "pdvSaved": {"type": "boolean"},
                "success": {"type": "boolean"},
                "whatsappUrl": {"type": "string"}
            }
        },
        "main.HealthResponse": {
            "type": "object",
            "properties": {
                "services": {"type": "object", "additionalProperties": {"type": "string"}},
                "version": {"type": "string"},
                "status": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        },
        "main.UpdateItemFlagRequest": {
            "type": "object",
            "required": ["flag", "value"],
            "properties": {
                "flag": {"type": "string", "enum": ["available", "visible", "accepts_extras", "allow_half"]},
                "reason": {"type": "string"},
                "user_id": {"type": "string"},
                "value": {"type": "boolean"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Cardápio Samia",
	Description:      "Menu and ordering API",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
