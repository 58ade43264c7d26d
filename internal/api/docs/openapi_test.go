package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNewDocument(t *testing.T) {
	doc := NewDocument("/api", "1.0")

	assert.Equal(t, "Employee Management API", doc.Info.Title)
	assert.Equal(t, "MIT License", doc.Info.License.Name)

	for _, path := range []string{
		"/api/employees",
		"/api/employees/{id}",
		"/api/employees/pagination/{offset}/{pageSize}",
		"/api/employees/sort/{field}",
		"/api/employees/filter",
	} {
		assert.Contains(t, doc.Paths, path)
	}
	assert.Len(t, doc.Paths["/api/employees/{id}"], 3)
}

func TestDocument_Encodings(t *testing.T) {
	doc := NewDocument("/api", "1.0")

	raw, err := doc.JSON()
	require.NoError(t, err)
	var fromJSON map[string]any
	require.NoError(t, json.Unmarshal(raw, &fromJSON))
	assert.Equal(t, "3.0.1", fromJSON["openapi"])

	raw, err = doc.YAML()
	require.NoError(t, err)
	var fromYAML map[string]any
	require.NoError(t, yaml.Unmarshal(raw, &fromYAML))
	assert.Equal(t, "3.0.1", fromYAML["openapi"])

	ref := fromYAML["paths"].(map[string]any)["/api/employees/{id}"].(map[string]any)["get"].(map[string]any)["responses"].(map[string]any)["200"].(map[string]any)["content"].(map[string]any)["application/json"].(map[string]any)["schema"].(map[string]any)["$ref"]
	assert.Equal(t, "#/components/schemas/EmployeeDto", ref)
}
