package definition

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPath(name string) string {
	return filepath.Join("testdata", name)
}

func TestValidateFile_ValidDefinitions(t *testing.T) {
	for _, file := range []string{"valid.yaml", "valid.toml", "valid.json"} {
		t.Run(file, func(t *testing.T) {
			result, err := ValidateFile(testPath(file))
			require.NoError(t, err)
			assert.True(t, result.Valid, "issues: %v", result.Issues)
		})
	}
}

func TestValidateFile_InvalidDefinitions(t *testing.T) {
	tests := []struct {
		file    string
		path    string
		keyword string
	}{
		{"invalid-missing-name.yaml", "/root/children/0", "required"},
		{"invalid-bad-type.yaml", "/root/type", "enum"},
		{"invalid-select-without-options.yaml", "/root", "required"},
		{"invalid-unknown-field.yaml", "/root", "additionalProperties"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			result, err := ValidateFile(testPath(tt.file))
			require.NoError(t, err)
			require.False(t, result.Valid)
			require.NotEmpty(t, result.Issues)

			found := false
			for _, issue := range result.Issues {
				if issue.Path == tt.path && issue.Keyword == tt.keyword {
					found = true
					assert.NotEmpty(t, issue.Message)
				}
			}
			assert.True(t, found, "no %s issue at %s in %v", tt.keyword, tt.path, result.Issues)
		})
	}
}

func TestValidate_WrongDefaultType(t *testing.T) {
	data := []byte(`
name: broken
version: 1.0.0
root:
  type: number
  name: port
  default: eighty
`)
	result, err := Validate(data, FormatYAML)
	require.NoError(t, err)
	assert.False(t, result.Valid)
}

func TestValidate_MalformedInput(t *testing.T) {
	_, err := Validate([]byte("name: [unclosed"), FormatYAML)
	assert.Error(t, err)

	_, err = Validate([]byte("name = "), FormatTOML)
	assert.Error(t, err)

	_, err = Validate([]byte("{"), FormatJSON)
	assert.Error(t, err)
}

func TestValidate_EmptyDocument(t *testing.T) {
	result, err := Validate([]byte(""), FormatYAML)
	require.NoError(t, err)
	assert.False(t, result.Valid)
}

func TestValidateFile_UnsupportedExtension(t *testing.T) {
	_, err := ValidateFile("questions.ini")
	assert.ErrorContains(t, err, "unsupported file extension")
}

func TestNormalize(t *testing.T) {
	in := map[string]any{
		"a": map[any]any{1: "one"},
		"b": []map[string]any{{"x": 1}},
	}
	out := normalize(in).(map[string]any)

	assert.Equal(t, map[string]any{"1": "one"}, out["a"])
	assert.Equal(t, []any{map[string]any{"x": 1}}, out["b"])
}
