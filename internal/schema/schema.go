// Package schema validates a document Value against a JSON Schema value.
//
// The schema language itself is a black-box collaborator: compilation and
// evaluation are delegated to the jsonschema library (draft 7). This
// package only adapts between the Value model and the validator's
// decoded-JSON world and flattens the validator's error tree into a flat
// violation list.
package schema

import (
	stderrors "errors"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/jaathavan18/jot/internal/errors"
	"github.com/jaathavan18/jot/internal/format"
	"github.com/jaathavan18/jot/internal/models"
)

// A Violation is one schema failure, addressed by the validator's own
// JSON-pointer instance location ("" is the document root).
type Violation struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// A Result reports the outcome of validating one document.
type Result struct {
	Valid      bool        `json:"valid"`
	Errors     []Violation `json:"errors"`
	ErrorCount int         `json:"error_count"`
}

// Validate checks doc against sch. The schema root must be an object. A
// non-nil error means validation could not run at all (bad schema); schema
// violations are reported in the Result, not as an error.
func Validate(doc, sch models.Value) (Result, error) {
	if _, ok := sch.(models.Object); !ok {
		return Result{}, errors.NewSchemaError("schema must be a JSON object", nil)
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	if err := compiler.AddResource("schema.json", strings.NewReader(format.Format(sch, 0))); err != nil {
		return Result{}, errors.NewSchemaError("failed to load schema", err)
	}
	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		return Result{}, errors.NewSchemaError("failed to compile schema", err)
	}

	err = compiled.Validate(models.ToGo(doc))
	if err == nil {
		return Result{Valid: true, Errors: []Violation{}}, nil
	}
	var ve *jsonschema.ValidationError
	if !stderrors.As(err, &ve) {
		return Result{}, errors.NewSchemaError("validation failed", err)
	}

	violations := flatten(ve, nil)
	return Result{Valid: false, Errors: violations, ErrorCount: len(violations)}, nil
}

// flatten collects the leaf causes of the validation error tree; inner
// nodes only restate their children.
func flatten(ve *jsonschema.ValidationError, out []Violation) []Violation {
	if len(ve.Causes) == 0 {
		return append(out, Violation{Path: ve.InstanceLocation, Message: ve.Message})
	}
	for _, cause := range ve.Causes {
		out = flatten(cause, out)
	}
	return out
}
