// Package docs builds the OpenAPI 3 description of the employee API.
package docs

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

type Document struct {
	OpenAPI    string              `json:"openapi" yaml:"openapi"`
	Info       Info                `json:"info" yaml:"info"`
	Servers    []Server            `json:"servers,omitempty" yaml:"servers,omitempty"`
	Paths      map[string]PathItem `json:"paths" yaml:"paths"`
	Components Components          `json:"components" yaml:"components"`
}

type Info struct {
	Title          string  `json:"title" yaml:"title"`
	Description    string  `json:"description,omitempty" yaml:"description,omitempty"`
	TermsOfService string  `json:"termsOfService,omitempty" yaml:"termsOfService,omitempty"`
	Version        string  `json:"version" yaml:"version"`
	Contact        Contact `json:"contact" yaml:"contact"`
	License        License `json:"license" yaml:"license"`
}

type Contact struct {
	Name  string `json:"name" yaml:"name"`
	URL   string `json:"url,omitempty" yaml:"url,omitempty"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

type License struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url,omitempty" yaml:"url,omitempty"`
}

type Server struct {
	URL         string `json:"url" yaml:"url"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// PathItem maps lower-case HTTP methods to operations
type PathItem map[string]Operation

type Operation struct {
	Summary     string              `json:"summary" yaml:"summary"`
	OperationID string              `json:"operationId" yaml:"operationId"`
	Tags        []string            `json:"tags,omitempty" yaml:"tags,omitempty"`
	Parameters  []Parameter         `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	RequestBody *RequestBody        `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
	Responses   map[string]Response `json:"responses" yaml:"responses"`
}

type Parameter struct {
	Name     string `json:"name" yaml:"name"`
	In       string `json:"in" yaml:"in"`
	Required bool   `json:"required" yaml:"required"`
	Schema   Schema `json:"schema" yaml:"schema"`
}

type RequestBody struct {
	Required bool                 `json:"required" yaml:"required"`
	Content  map[string]MediaType `json:"content" yaml:"content"`
}

type Response struct {
	Description string               `json:"description" yaml:"description"`
	Content     map[string]MediaType `json:"content,omitempty" yaml:"content,omitempty"`
}

type MediaType struct {
	Schema Schema `json:"schema" yaml:"schema"`
}

type Schema struct {
	Ref        string            `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Type       string            `json:"type,omitempty" yaml:"type,omitempty"`
	Format     string            `json:"format,omitempty" yaml:"format,omitempty"`
	Required   []string          `json:"required,omitempty" yaml:"required,omitempty"`
	MaxLength  int               `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Properties map[string]Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Items      *Schema           `json:"items,omitempty" yaml:"items,omitempty"`
}

type Components struct {
	Schemas map[string]Schema `json:"schemas" yaml:"schemas"`
}

const (
	jsonType = "application/json"
	tag      = "Employees"
)

func ref(name string) Schema {
	return Schema{Ref: "#/components/schemas/" + name}
}

func jsonContent(s Schema) map[string]MediaType {
	return map[string]MediaType{jsonType: {Schema: s}}
}

func pathParam(name, typ, format string) Parameter {
	return Parameter{Name: name, In: "path", Required: true, Schema: Schema{Type: typ, Format: format}}
}

var (
	idParam       = pathParam("id", "integer", "int64")
	employeeBody  = &RequestBody{Required: true, Content: jsonContent(ref("EmployeeDto"))}
	employeeList  = Schema{Type: "array", Items: &Schema{Ref: "#/components/schemas/EmployeeDto"}}
	badRequest    = Response{Description: "Malformed request", Content: jsonContent(ref("ErrorResponse"))}
	serverError   = Response{Description: "Unknown field or query failure", Content: jsonContent(ref("ErrorResponse"))}
	notFound      = Response{Description: "Employee not found", Content: jsonContent(ref("ErrorResponse"))}
	listResponses = map[string]Response{
		"200": {Description: "Employees", Content: jsonContent(employeeList)},
	}
)

// NewDocument describes the employee endpoints mounted under basePath
func NewDocument(basePath, version string) *Document {
	base := basePath + "/employees"

	return &Document{
		OpenAPI: "3.0.1",
		Info: Info{
			Title:          "Employee Management API",
			Description:    "This API exposes endpoints to manage employees.",
			TermsOfService: "https://www.mrugesh.com/terms",
			Version:        version,
			Contact: Contact{
				Name:  "Mrugesh",
				URL:   "https://www.mrugesh.com",
				Email: "mrugeshrlimbachiya@gmail.com",
			},
			License: License{Name: "MIT License", URL: "https://choosealicense.com/licenses/mit/"},
		},
		Paths: map[string]PathItem{
			base: {
				"get": {Summary: "List all employees", OperationID: "getAllEmployees", Tags: []string{tag}, Responses: listResponses},
				"post": {
					Summary:     "Create an employee",
					OperationID: "createEmployee",
					Tags:        []string{tag},
					Parameters: []Parameter{
						{Name: "Idempotency-Key", In: "header", Schema: Schema{Type: "string"}},
					},
					RequestBody: employeeBody,
					Responses: map[string]Response{
						"201": {Description: "Employee created", Content: jsonContent(ref("EmployeeDto"))},
						"400": badRequest,
						"409": {Description: "A request with this idempotency key is still in progress", Content: jsonContent(ref("ErrorResponse"))},
						"422": {Description: "Idempotency key reused with a different body", Content: jsonContent(ref("ErrorResponse"))},
					},
				},
			},
			base + "/{id}": {
				"get": {
					Summary:     "Get an employee by id",
					OperationID: "getEmployeeById",
					Tags:        []string{tag},
					Parameters:  []Parameter{idParam},
					Responses: map[string]Response{
						"200": {Description: "Employee", Content: jsonContent(ref("EmployeeDto"))},
						"404": notFound,
					},
				},
				"put": {
					Summary:     "Replace an employee's fields",
					OperationID: "updateEmployee",
					Tags:        []string{tag},
					Parameters:  []Parameter{idParam},
					RequestBody: employeeBody,
					Responses: map[string]Response{
						"200": {Description: "Employee updated", Content: jsonContent(ref("EmployeeDto"))},
						"400": badRequest,
						"404": notFound,
					},
				},
				"delete": {
					Summary:     "Delete an employee",
					OperationID: "deleteEmployee",
					Tags:        []string{tag},
					Parameters:  []Parameter{idParam},
					Responses: map[string]Response{
						"200": {Description: "Employee deleted", Content: map[string]MediaType{"text/plain": {Schema: Schema{Type: "string"}}}},
						"404": notFound,
					},
				},
			},
			base + "/pagination/{offset}/{pageSize}": {
				"get": {
					Summary:     "Get one page of employees",
					OperationID: "getAllEmployeesWithPagination",
					Tags:        []string{tag},
					Parameters: []Parameter{
						pathParam("offset", "integer", "int32"),
						pathParam("pageSize", "integer", "int32"),
					},
					Responses: map[string]Response{
						"200": {Description: "Page of employees", Content: jsonContent(ref("PageEmployeeDto"))},
						"400": badRequest,
					},
				},
			},
			base + "/sort/{field}": {
				"get": {
					Summary:     "List employees sorted ascending by a field",
					OperationID: "getAllEmployeesWithSorting",
					Tags:        []string{tag},
					Parameters:  []Parameter{pathParam("field", "string", "")},
					Responses: map[string]Response{
						"200": listResponses["200"],
						"500": serverError,
					},
				},
			},
			base + "/filter": {
				"get": {
					Summary:     "List employees whose email contains a value",
					OperationID: "getAllEmployeesWithFilter",
					Tags:        []string{tag},
					Parameters: []Parameter{
						{Name: "email", In: "query", Required: true, Schema: Schema{Type: "string"}},
					},
					Responses: map[string]Response{
						"200": listResponses["200"],
						"400": badRequest,
					},
				},
			},
		},
		Components: Components{
			Schemas: map[string]Schema{
				"EmployeeDto": {
					Type:     "object",
					Required: []string{"email"},
					Properties: map[string]Schema{
						"id":        {Type: "integer", Format: "int64"},
						"firstName": {Type: "string", MaxLength: 255},
						"lastName":  {Type: "string", MaxLength: 255},
						"email":     {Type: "string", MaxLength: 255},
					},
				},
				"PageEmployeeDto": {
					Type: "object",
					Properties: map[string]Schema{
						"content":          employeeList,
						"number":           {Type: "integer", Format: "int32"},
						"size":             {Type: "integer", Format: "int32"},
						"totalElements":    {Type: "integer", Format: "int64"},
						"totalPages":       {Type: "integer", Format: "int32"},
						"numberOfElements": {Type: "integer", Format: "int32"},
						"first":            {Type: "boolean"},
						"last":             {Type: "boolean"},
						"empty":            {Type: "boolean"},
					},
				},
				"ErrorResponse": {
					Type: "object",
					Properties: map[string]Schema{
						"success": {Type: "boolean"},
						"message": {Type: "string"},
						"errors":  {Type: "object"},
					},
				},
			},
		},
	}
}

func (d *Document) JSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

func (d *Document) YAML() ([]byte, error) {
	return yaml.Marshal(d)
}
