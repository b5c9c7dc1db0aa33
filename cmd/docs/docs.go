// Package docs registers the OpenAPI description served by gin-swagger.
// Keep it in step with the handler annotations.
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
        "/batches": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["batches"],
                "summary": "List batches",
                "parameters": [
                    {"type": "string", "description": "mine or review", "name": "scope", "in": "query"},
                    {"type": "string", "description": "Filter by status", "name": "status", "in": "query"},
                    {"type": "integer", "default": 20, "description": "Page size", "name": "limit", "in": "query"},
                    {"type": "string", "description": "Token from the previous page", "name": "nextToken", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ListBatchesResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["batches"],
                "summary": "Create a new batch",
                "parameters": [
                    {"description": "Batch details", "name": "batch", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateBatchRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.BatchResponse"}}
                }
            }
        },
        "/batches/summary": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/octet-stream"],
                "tags": ["batches"],
                "summary": "Download a summary of the caller's batches",
                "parameters": [
                    {"type": "string", "default": "csv", "description": "csv or xlsx", "name": "format", "in": "query"}
                ],
                "responses": {"200": {"description": "Batch summary", "schema": {"type": "file"}}}
            }
        },
        "/batches/{batchID}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["batches"],
                "summary": "Get a batch",
                "parameters": [{"type": "string", "description": "Batch ID", "name": "batchID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.GetBatchResponse"}}}
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["batches"],
                "summary": "Update a draft batch",
                "parameters": [
                    {"type": "string", "description": "Batch ID", "name": "batchID", "in": "path", "required": true},
                    {"type": "string", "description": "Expected batch version", "name": "If-Match", "in": "header"},
                    {"description": "Fields to change", "name": "batch", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateBatchRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.GetBatchResponse"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["batches"],
                "summary": "Delete a draft batch",
                "parameters": [
                    {"type": "string", "description": "Batch ID", "name": "batchID", "in": "path", "required": true},
                    {"type": "string", "description": "Expected batch version", "name": "If-Match", "in": "header"}
                ],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/batches/{batchID}/items": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["batches"],
                "summary": "Add a line item",
                "parameters": [
                    {"type": "string", "description": "Batch ID", "name": "batchID", "in": "path", "required": true},
                    {"type": "string", "description": "Expected batch version", "name": "If-Match", "in": "header"},
                    {"description": "Line item", "name": "item", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.AddLineItemRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.LineItemMutationResponse"}}}
            }
        },
        "/batches/{batchID}/items/{itemID}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["batches"],
                "summary": "Remove a line item",
                "parameters": [
                    {"type": "string", "description": "Batch ID", "name": "batchID", "in": "path", "required": true},
                    {"type": "string", "description": "Line item ID", "name": "itemID", "in": "path", "required": true},
                    {"type": "string", "description": "Expected batch version", "name": "If-Match", "in": "header"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.LineItemMutationResponse"}}}
            }
        },
        "/batches/{batchID}/submit": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["batches"],
                "summary": "Submit a batch for approval",
                "parameters": [
                    {"type": "string", "description": "Batch ID", "name": "batchID", "in": "path", "required": true},
                    {"type": "string", "description": "Expected batch version", "name": "If-Match", "in": "header"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.GetBatchResponse"}}}
            }
        },
        "/batches/{batchID}/approve": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["batches"],
                "summary": "Approve a pending batch",
                "parameters": [
                    {"type": "string", "description": "Batch ID", "name": "batchID", "in": "path", "required": true},
                    {"type": "string", "description": "Expected batch version", "name": "If-Match", "in": "header"},
                    {"description": "Optional remarks", "name": "decision", "in": "body", "schema": {"$ref": "#/definitions/dto.ApproveBatchRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.GetBatchResponse"}}}
            }
        },
        "/batches/{batchID}/reject": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["batches"],
                "summary": "Reject a pending batch",
                "parameters": [
                    {"type": "string", "description": "Batch ID", "name": "batchID", "in": "path", "required": true},
                    {"type": "string", "description": "Expected batch version", "name": "If-Match", "in": "header"},
                    {"description": "Rejection reason", "name": "decision", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.RejectBatchRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.GetBatchResponse"}}}
            }
        },
        "/batches/{batchID}/export": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["text/plain"],
                "tags": ["batches"],
                "summary": "Download the EFT file of an approved batch",
                "parameters": [
                    {"type": "string", "description": "Batch ID", "name": "batchID", "in": "path", "required": true},
                    {"type": "string", "default": "txt", "description": "txt or csv", "name": "format", "in": "query"}
                ],
                "responses": {"200": {"description": "EFT file", "schema": {"type": "string"}}}
            }
        },
        "/batches/{batchID}/audit": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["batches"],
                "summary": "List a batch's audit trail",
                "parameters": [{"type": "string", "description": "Batch ID", "name": "batchID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.AuditEventResponse"}}}}
            }
        },
        "/eft-files/validate": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["eft-files"],
                "summary": "Validate an EFT file",
                "parameters": [
                    {"description": "File content", "name": "request", "in": "body", "schema": {"$ref": "#/definitions/dto.ValidateFileRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ValidateFileResponse"}},
                    "400": {"description": "File is malformed", "schema": {"$ref": "#/definitions/dto.ValidateFileResponse"}}
                }
            }
        },
        "/lookups/schemes/{schemeID}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["lookups"],
                "summary": "Get scheme details",
                "parameters": [{"type": "string", "description": "Scheme ID", "name": "schemeID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SchemeDetailsResponse"}}}
            }
        },
        "/lookups/suppliers/{supplierID}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["lookups"],
                "summary": "Get supplier details",
                "parameters": [{"type": "string", "description": "Supplier ID", "name": "supplierID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SupplierDetailsResponse"}}}
            }
        },
        "/lookups/debit-accounts/{debitAccountID}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["lookups"],
                "summary": "Get a debit account",
                "parameters": [{"type": "string", "description": "Debit account ID", "name": "debitAccountID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.DebitAccountResponse"}}}
            }
        }
    },
    "definitions": {
        "dto.CreateBatchRequest": {"type": "object", "required": ["batchName"], "properties": {"batchName": {"type": "string"}, "currencyCode": {"type": "string"}, "fileReference": {"type": "string"}}},
        "dto.UpdateBatchRequest": {"type": "object", "properties": {"batchName": {"type": "string"}, "fileReference": {"type": "string"}}},
        "dto.ApproveBatchRequest": {"type": "object", "properties": {"remarks": {"type": "string"}}},
        "dto.RejectBatchRequest": {"type": "object", "required": ["reason"], "properties": {"reason": {"type": "string"}}},
        "dto.BatchResponse": {"type": "object", "properties": {"batchID": {"type": "string"}, "batchReference": {"type": "string"}, "batchName": {"type": "string"}, "status": {"type": "string"}, "totalAmount": {"type": "string"}, "recordCount": {"type": "integer"}, "version": {"type": "integer"}}},
        "dto.GetBatchResponse": {"type": "object", "properties": {"batch": {"$ref": "#/definitions/dto.BatchResponse"}, "items": {"type": "array", "items": {"$ref": "#/definitions/dto.LineItemResponse"}}}},
        "dto.ListBatchesResponse": {"type": "object", "properties": {"batches": {"type": "array", "items": {"$ref": "#/definitions/dto.BatchResponse"}}, "nextToken": {"type": "string"}}},
        "dto.AddLineItemRequest": {"type": "object", "properties": {"amount": {"type": "string", "example": "250.50"}, "debitAccountID": {"type": "string"}, "payeeID": {"type": "string"}, "schemeID": {"type": "string"}, "zoneID": {"type": "string"}, "narration": {"type": "string"}, "referenceNumber": {"type": "string"}, "employeeNumber": {"type": "string"}, "nationalID": {"type": "string"}, "costCenter": {"type": "string"}, "sourceReference": {"type": "string"}}},
        "dto.LineItemResponse": {"type": "object", "properties": {"lineItemID": {"type": "string"}, "sequenceNumber": {"type": "string"}, "amount": {"type": "string"}, "payeeName": {"type": "string"}, "schemeCode": {"type": "string"}, "zoneCode": {"type": "string"}}},
        "dto.LineItemMutationResponse": {"type": "object", "properties": {"item": {"$ref": "#/definitions/dto.LineItemResponse"}, "batchTotal": {"type": "string"}, "recordCount": {"type": "integer"}, "version": {"type": "integer"}}},
        "dto.AuditEventResponse": {"type": "object", "properties": {"action": {"type": "string"}, "actorID": {"type": "string"}, "remarks": {"type": "string"}, "timestamp": {"type": "string"}}},
        "dto.ValidateFileRequest": {"type": "object", "required": ["content"], "properties": {"content": {"type": "string"}}},
        "dto.ValidateFileResponse": {"type": "object", "properties": {"valid": {"type": "boolean"}, "message": {"type": "string"}, "batchName": {"type": "string"}, "currencyCode": {"type": "string"}, "totalAmount": {"type": "string"}, "recordCount": {"type": "integer"}, "line": {"type": "integer"}}},
        "dto.SchemeDetailsResponse": {"type": "object", "properties": {"schemeID": {"type": "string"}, "schemeCode": {"type": "string"}, "zoneID": {"type": "string"}, "zoneCode": {"type": "string"}, "costCenter": {"type": "string"}}},
        "dto.SupplierDetailsResponse": {"type": "object", "properties": {"supplierID": {"type": "string"}, "name": {"type": "string"}, "accountNumber": {"type": "string"}, "bankCode": {"type": "string"}}},
        "dto.DebitAccountResponse": {"type": "object", "properties": {"debitAccountID": {"type": "string"}, "accountNumber": {"type": "string"}}}
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the JWT.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "EFT Batch Service API",
	Description:      "Prepares, approves and exports EFT payment batches.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
