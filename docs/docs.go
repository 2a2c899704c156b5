// Package docs holds the OpenAPI document served at /swagger.
// Regenerate with: swag init -g cmd/server/main.go -o docs
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
        "/company": {
            "get": {
                "tags": ["company"],
                "summary": "Get company details",
                "produces": ["application/json"],
                "responses": {"200": {"description": "Company profile", "schema": {"$ref": "#/definitions/handler.Response"}}}
            }
        },
        "/customers": {
            "get": {
                "tags": ["customers"],
                "summary": "List customers",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Case-insensitive match on name or GSTIN", "name": "q", "in": "query"}],
                "responses": {"200": {"description": "List of customers", "schema": {"$ref": "#/definitions/handler.Response"}}}
            }
        },
        "/customers/{gstin}": {
            "get": {
                "tags": ["customers"],
                "summary": "Get a customer",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "gstin", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Customer", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "404": {"description": "Customer not found", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            },
            "put": {
                "tags": ["customers"],
                "summary": "Create or update a customer",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "gstin", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.SaveCustomerRequest"}}
                ],
                "responses": {
                    "200": {"description": "Saved customer", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            },
            "delete": {
                "tags": ["customers"],
                "summary": "Delete a customer",
                "parameters": [{"type": "string", "name": "gstin", "in": "path", "required": true}],
                "responses": {"200": {"description": "Customer deleted", "schema": {"$ref": "#/definitions/handler.Response"}}}
            }
        },
        "/invoices": {
            "get": {
                "tags": ["invoices"],
                "summary": "List invoices",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Match on invoice number, customer name or GSTIN", "name": "q", "in": "query"},
                    {"type": "string", "description": "Use 'date' for newest first", "name": "sort", "in": "query"}
                ],
                "responses": {"200": {"description": "List of invoices", "schema": {"$ref": "#/definitions/handler.Response"}}}
            },
            "post": {
                "tags": ["invoices"],
                "summary": "Issue an invoice",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.InvoiceInput"}}],
                "responses": {
                    "201": {"description": "Issued invoice", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "409": {"description": "Invoice number already exists", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "422": {"description": "Total beyond the amount-in-words range", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/invoices/preview": {
            "post": {
                "tags": ["invoices"],
                "summary": "Preview invoice totals",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.InvoiceInput"}}],
                "responses": {"200": {"description": "Computed preview", "schema": {"$ref": "#/definitions/handler.Response"}}}
            }
        },
        "/invoices/next-number": {
            "get": {
                "tags": ["invoices"],
                "summary": "Next invoice number",
                "produces": ["application/json"],
                "responses": {"200": {"description": "Next number", "schema": {"$ref": "#/definitions/handler.Response"}}}
            }
        },
        "/invoices/{id}": {
            "get": {
                "tags": ["invoices"],
                "summary": "Get an invoice",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Invoice", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "404": {"description": "Invoice not found", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            },
            "delete": {
                "tags": ["invoices"],
                "summary": "Delete an invoice",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Invoice deleted", "schema": {"$ref": "#/definitions/handler.Response"}}}
            }
        },
        "/invoices/export/csv": {
            "get": {
                "tags": ["invoices"],
                "summary": "Export the sales register as CSV",
                "produces": ["text/csv"],
                "responses": {"200": {"description": "CSV file", "schema": {"type": "file"}}}
            }
        },
        "/invoices/export/xlsx": {
            "get": {
                "tags": ["invoices"],
                "summary": "Export the sales register as XLSX",
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "responses": {"200": {"description": "XLSX file", "schema": {"type": "file"}}}
            }
        },
        "/data/export": {
            "get": {
                "tags": ["data"],
                "summary": "Export all data",
                "produces": ["application/json"],
                "responses": {"200": {"description": "Transfer bundle", "schema": {"$ref": "#/definitions/domain.TransferBundle"}}}
            }
        },
        "/data/import": {
            "post": {
                "tags": ["data"],
                "summary": "Import data",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.TransferBundle"}}],
                "responses": {
                    "200": {"description": "Import result", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Malformed bundle", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/words": {
            "get": {
                "tags": ["utilities"],
                "summary": "Amount in words",
                "produces": ["application/json"],
                "parameters": [{"type": "number", "description": "Amount in rupees", "name": "amount", "in": "query", "required": true}],
                "responses": {
                    "200": {"description": "Amount in words", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Missing, malformed or negative amount", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "422": {"description": "Amount beyond the supported range", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        }
    },
    "definitions": {
        "handler.APIError": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "message": {"type": "string"}}
        },
        "handler.ErrorResponseBody": {
            "type": "object",
            "properties": {"success": {"type": "boolean", "example": false}, "error": {"$ref": "#/definitions/handler.APIError"}}
        },
        "handler.ListMeta": {
            "type": "object",
            "properties": {"total": {"type": "integer"}}
        },
        "handler.Response": {
            "type": "object",
            "properties": {"success": {"type": "boolean", "example": true}, "data": {}, "meta": {"$ref": "#/definitions/handler.ListMeta"}}
        },
        "handler.SaveCustomerRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string", "example": "Sri Murugan Traders"},
                "address": {"type": "string"},
                "state": {"type": "string", "example": "TAMIL NADU"},
                "stateCode": {"type": "string", "example": "33"},
                "phone": {"type": "string"},
                "email": {"type": "string"}
            }
        },
        "domain.CustomerDetails": {
            "type": "object",
            "properties": {
                "gstin": {"type": "string"},
                "name": {"type": "string"},
                "address": {"type": "string"},
                "state": {"type": "string"},
                "stateCode": {"type": "string"},
                "phone": {"type": "string"},
                "email": {"type": "string"}
            }
        },
        "domain.InvoiceItem": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "description": {"type": "string"},
                "hsnCode": {"type": "string"},
                "quantity": {"type": "number"},
                "unit": {"type": "string", "enum": ["PCS", "KGS", "LTR"]},
                "rate": {"type": "number"},
                "amount": {"type": "number"}
            }
        },
        "domain.InvoiceData": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "invoiceNumber": {"type": "string", "example": "INV001"},
                "date": {"type": "string", "example": "2025-03-14"},
                "billNo": {"type": "string"},
                "truckNo": {"type": "string"},
                "placeOfSupply": {"type": "string"},
                "reverseCharge": {"type": "boolean"},
                "customer": {"$ref": "#/definitions/domain.CustomerDetails"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/domain.InvoiceItem"}},
                "cgst": {"type": "number"},
                "sgst": {"type": "number"},
                "igst": {"type": "number"},
                "totalTaxableValue": {"type": "number"},
                "totalAmount": {"type": "number"},
                "amountInWords": {"type": "string"}
            }
        },
        "domain.TransferBundle": {
            "type": "object",
            "properties": {
                "customers": {"type": "array", "items": {"$ref": "#/definitions/domain.CustomerDetails"}},
                "invoices": {"type": "array", "items": {"$ref": "#/definitions/domain.InvoiceData"}}
            }
        },
        "service.InvoiceInput": {
            "type": "object",
            "properties": {
                "invoiceNumber": {"type": "string"},
                "date": {"type": "string"},
                "billNo": {"type": "string"},
                "truckNo": {"type": "string"},
                "placeOfSupply": {"type": "string"},
                "reverseCharge": {"type": "boolean"},
                "customer": {"$ref": "#/definitions/domain.CustomerDetails"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/domain.InvoiceItem"}}
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
	Title:            "gstbill API",
	Description:      "GST sales invoicing: tax split, amount in words, invoice numbering, customer and invoice stores.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
