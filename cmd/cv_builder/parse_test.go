package main

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/jonathan/cv-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

func TestParseCommand_JSON(t *testing.T) {
	binaryPath := getBinaryPath(t)
	input := writeCV(t, sampleCV)

	cmd := exec.Command(binaryPath, "parse", input)
	cmd.Dir = filepath.Dir(input)
	output, err := cmd.Output()
	require.NoError(t, err)

	var doc types.Document
	require.NoError(t, json.Unmarshal(output, &doc))

	assert.Equal(t, "Jane Doe", doc.Header.Name)
	require.Len(t, doc.Header.Links, 1)
	assert.Equal(t, types.LinkLinkedIn, doc.Header.Links[0].Label)
	require.Len(t, doc.Sections, 2)
	assert.Equal(t, "EXPERIENCE", doc.Sections[0].Name)
	assert.Equal(t, "SKILLS", doc.Sections[1].Name)
	require.Len(t, doc.Experience, 1)
	assert.Equal(t, "Led the platform team.", doc.Experience[0].Intro)
	assert.Equal(t, []types.SkillCategory{{Category: "Languages", Items: []string{"Go", "Python"}}}, doc.Skills)
}

func TestParseCommand_YAMLToFile(t *testing.T) {
	binaryPath := getBinaryPath(t)
	input := writeCV(t, sampleCV)
	outFile := filepath.Join(t.TempDir(), "nested", "cv.yaml")

	cmd := exec.Command(binaryPath, "parse", "--format", "yaml", "--out", outFile, input)
	cmd.Dir = filepath.Dir(input)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, string(output))
	assert.Contains(t, string(output), "Output: "+outFile)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)

	var doc types.Document
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, "Jane Doe", doc.Header.Name)
	assert.Equal(t, "Acme Corp", doc.Experience[0].Company)
}

func TestParseCommand_UnsupportedFormat(t *testing.T) {
	binaryPath := getBinaryPath(t)
	input := writeCV(t, sampleCV)

	cmd := exec.Command(binaryPath, "parse", "--format", "xml", input)
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), `unsupported format "xml"`)
}

func TestParseCommand_CustomSchemaRejects(t *testing.T) {
	binaryPath := getBinaryPath(t)
	input := writeCV(t, sampleCV)
	schema := filepath.Join(t.TempDir(), "strict.json")
	require.NoError(t, os.WriteFile(schema, []byte(`{"type": "object", "required": ["projects"]}`), 0644))

	cmd := exec.Command(binaryPath, "parse", "--schema", schema, input)
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "failed validation")
}

func TestParseCommand_MissingFile(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "parse", filepath.Join(t.TempDir(), "nope.txt"))
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "failed to read CV file")
}
