package validation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_Keywords(t *testing.T) {
	tests := []struct {
		name   string
		schema *Schema
		value  any
		valid  bool
	}{
		{"nil schema", nil, "anything", true},
		{"equals match", &Schema{Equals: "x"}, "x", true},
		{"equals mismatch", &Schema{Equals: "x"}, "y", false},
		{"equals number", &Schema{Equals: 3}, 3.0, true},
		{"not equals match", &Schema{NotEquals: "x"}, "x", false},
		{"not equals mismatch", &Schema{NotEquals: "x"}, "y", true},
		{"enum member", &Schema{Enum: []any{"a", "b"}}, "b", true},
		{"enum non member", &Schema{Enum: []any{"a", "b"}}, "c", false},
		{"min length ok", &Schema{MinLength: Int(2)}, "ab", true},
		{"min length short", &Schema{MinLength: Int(2)}, "a", false},
		{"max length long", &Schema{MaxLength: Int(3)}, "abcd", false},
		{"pattern ok", &Schema{Pattern: `^[a-z][a-z0-9-]*$`}, "my-app", true},
		{"pattern bad", &Schema{Pattern: `^[a-z][a-z0-9-]*$`}, "My App", false},
		{"starts with", &Schema{StartsWith: "a.b"}, "a.bc", true},
		{"starts with literal dot", &Schema{StartsWith: "a.b"}, "axbc", false},
		{"ends with", &Schema{EndsWith: ".go"}, "main.go", true},
		{"includes", &Schema{Includes: "bot"}, "my-bot-app", true},
		{"includes missing", &Schema{Includes: "bot"}, "my-tab", false},
		{"minimum", &Schema{Minimum: Float(1)}, 0.5, false},
		{"maximum", &Schema{Maximum: Float(10)}, 10, true},
		{"exclusive maximum", &Schema{ExclusiveMaximum: Float(10)}, 10, false},
		{"multiple of", &Schema{MultipleOf: Float(5)}, 15, true},
		{"min items", &Schema{MinItems: Int(1)}, []string{}, false},
		{"max items", &Schema{MaxItems: Int(1)}, []string{"a", "b"}, false},
		{"unique items", &Schema{UniqueItems: true}, []string{"a", "a"}, false},
		{"contains", &Schema{Contains: "bot"}, []string{"tab", "bot"}, true},
		{"contains missing", &Schema{Contains: "bot"}, []string{"tab"}, false},
		{"contains all", &Schema{ContainsAll: []any{"a", "b"}}, []string{"b", "c", "a"}, true},
		{"contains all partial", &Schema{ContainsAll: []any{"a", "b"}}, []string{"a"}, false},
		{"contains any", &Schema{ContainsAny: []any{"bot", "message-extension"}}, []string{"tab", "bot"}, true},
		{"contains any none", &Schema{ContainsAny: []any{"bot", "message-extension"}}, []string{"tab"}, false},
		{"contains any on string", &Schema{ContainsAny: []any{"bot"}}, "bot", false},
		{"semver satisfied", &Schema{Semver: ">=1.21"}, "1.22.3", true},
		{"semver with v prefix", &Schema{Semver: ">=1.21"}, "v1.21.0", true},
		{"semver too old", &Schema{Semver: ">=1.21"}, "1.20.0", false},
		{"semver not a version", &Schema{Semver: ">=1.21"}, "latest", false},
		{"nil value optional", &Schema{MinLength: Int(3)}, nil, true},
		{"nil value required", &Schema{Required: true}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := Check(context.Background(), tt.schema, tt.value, nil)
			require.NoError(t, err)
			if tt.valid {
				assert.Empty(t, msg)
			} else {
				assert.NotEmpty(t, msg)
			}
		})
	}
}

func TestCheck_MessageOverride(t *testing.T) {
	s := &Schema{Pattern: `^\d+$`, Message: "digits only"}

	msg, err := Check(context.Background(), s, "abc", nil)
	require.NoError(t, err)
	assert.Equal(t, "digits only", msg)
}

func TestCheck_Func(t *testing.T) {
	s := &Schema{
		MinLength: Int(1),
		Func: func(_ context.Context, value any, answers map[string]any) (string, error) {
			if value == answers["taken"] {
				return "name already taken", nil
			}
			return "", nil
		},
	}
	answers := map[string]any{"taken": "alpha"}

	msg, err := Check(context.Background(), s, "alpha", answers)
	require.NoError(t, err)
	assert.Equal(t, "name already taken", msg)

	msg, err = Check(context.Background(), s, "beta", answers)
	require.NoError(t, err)
	assert.Empty(t, msg)
}

func TestCheck_FuncNotRunWhenKeywordsFail(t *testing.T) {
	called := false
	s := &Schema{
		MinLength: Int(5),
		Func: func(context.Context, any, map[string]any) (string, error) {
			called = true
			return "", nil
		},
	}

	msg, err := Check(context.Background(), s, "abc", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, msg)
	assert.False(t, called)
}

func TestCheck_FuncError(t *testing.T) {
	boom := errors.New("lookup failed")
	s := &Schema{Func: func(context.Context, any, map[string]any) (string, error) {
		return "", boom
	}}

	_, err := Check(context.Background(), s, "x", nil)
	assert.ErrorIs(t, err, boom)
}

func TestCheck_MalformedSchema(t *testing.T) {
	_, err := Check(context.Background(), &Schema{Pattern: "(["}, "x", nil)
	assert.Error(t, err)

	_, err = Check(context.Background(), &Schema{Semver: "bogus"}, "1.0.0", nil)
	assert.Error(t, err)
}

func TestCheck_ObjectValue(t *testing.T) {
	type item struct {
		ID string `json:"id"`
	}
	msg, err := Check(context.Background(), &Schema{Required: true}, item{ID: "a"}, nil)
	require.NoError(t, err)
	assert.Empty(t, msg)
}

func TestCompile(t *testing.T) {
	assert.NoError(t, Compile(nil))
	assert.NoError(t, Compile(&Schema{Pattern: "^a", Semver: "^1.0.0"}))
	assert.Error(t, Compile(&Schema{Pattern: "(["}))
	assert.Error(t, Compile(&Schema{Semver: "bogus"}))
}

func TestCheck_KeepsCompiledSchema(t *testing.T) {
	s := &Schema{Pattern: "^a"}
	assert.Nil(t, s.compiled)

	_, err := Check(context.Background(), s, "abc", nil)
	require.NoError(t, err)
	first := s.compiled
	require.NotNil(t, first)

	msg, err := Check(context.Background(), s, "xyz", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, msg)
	assert.Same(t, first, s.compiled)

	// a schema that fails to compile keeps failing
	bad := &Schema{Pattern: "(["}
	_, err1 := Check(context.Background(), bad, "x", nil)
	_, err2 := Check(context.Background(), bad, "x", nil)
	assert.Error(t, err1)
	assert.Equal(t, err1, err2)
}
