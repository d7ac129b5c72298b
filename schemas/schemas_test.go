package schemas_test

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/jonathan/cv-builder/internal/schemas"
	schemafiles "github.com/jonathan/cv-builder/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	schemaFiles := []string{
		"document.schema.json",
	}

	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(schemaFile)
			require.NoError(t, err, "should be able to read schema file")

			var v interface{}
			err = json.Unmarshal(data, &v)
			assert.NoError(t, err, "schema file should be valid JSON: %s", schemaFile)
		})
	}
}

func TestEmbeddedDocumentMatchesFile(t *testing.T) {
	data, err := os.ReadFile("document.schema.json")
	require.NoError(t, err)
	assert.Equal(t, data, schemafiles.Document)
}

func TestDocumentSchema_AcceptsMinimalDocument(t *testing.T) {
	err := schemas.ValidateDocument([]byte(`{"header": {"name": ""}, "sections": []}`))
	assert.NoError(t, err)
}
