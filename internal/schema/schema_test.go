package schema

import (
	"testing"

	stderrors "errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaathavan18/jot/internal/errors"
	"github.com/jaathavan18/jot/internal/models"
	"github.com/jaathavan18/jot/internal/parser"
)

func doc(t *testing.T, s string) models.Value {
	t.Helper()
	v, err := parser.ParseString(s)
	require.NoError(t, err)
	return v
}

const userSchema = `{
	"type": "object",
	"required": ["name", "age"],
	"properties": {
		"name": {"type": "string", "minLength": 1},
		"age": {"type": "integer", "minimum": 0},
		"email": {"type": "string"}
	}
}`

func TestValidate_Pass(t *testing.T) {
	result, err := Validate(doc(t, `{"name":"Alice","age":30}`), doc(t, userSchema))
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.Zero(t, result.ErrorCount)
}

func TestValidate_Failures(t *testing.T) {
	result, err := Validate(doc(t, `{"name":"","age":-3}`), doc(t, userSchema))
	require.NoError(t, err, "violations are results, not errors")
	assert.False(t, result.Valid)
	assert.Equal(t, len(result.Errors), result.ErrorCount)
	require.NotEmpty(t, result.Errors)

	paths := make(map[string]bool)
	for _, violation := range result.Errors {
		paths[violation.Path] = true
		assert.NotEmpty(t, violation.Message)
	}
	assert.True(t, paths["/name"], "minLength violation addressed at /name, got %v", result.Errors)
	assert.True(t, paths["/age"], "minimum violation addressed at /age, got %v", result.Errors)
}

func TestValidate_MissingRequired(t *testing.T) {
	result, err := Validate(doc(t, `{"name":"Alice"}`), doc(t, userSchema))
	require.NoError(t, err)
	assert.False(t, result.Valid)
}

func TestValidate_TypeViolation(t *testing.T) {
	result, err := Validate(doc(t, `[1,2,3]`), doc(t, `{"type":"object"}`))
	require.NoError(t, err)
	assert.False(t, result.Valid)
}

func TestValidate_SchemaMustBeObject(t *testing.T) {
	_, err := Validate(doc(t, `{"a":1}`), doc(t, `["not","an","object"]`))
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, &errors.AppError{Type: errors.ErrorTypeSchema}))
}

func TestValidate_BadSchemaReportsError(t *testing.T) {
	// A schema that fails compilation is an error, not a result.
	_, err := Validate(doc(t, `{"a":1}`), doc(t, `{"type":"no-such-type"}`))
	assert.Error(t, err)
}
