// Package jsonschema validates JSON documents against JSON Schemas. It
// backs the get command's --schema flag.
package jsonschema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ValidationErrors represents a collection of validation errors
type ValidationErrors []error

// Error implements the error interface for ValidationErrors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, err := range ve {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// compile parses and compiles a schema document.
func compile(schemaStr string) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", strings.NewReader(schemaStr)); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	return schema, nil
}

// Validate validates a JSON string against a JSON Schema. A schema or
// document parse problem is an error; a document that merely fails the
// schema returns (false, nil).
func Validate(jsonStr, schemaStr string) (bool, error) {
	schema, err := compile(schemaStr)
	if err != nil {
		return false, err
	}

	var doc interface{}
	if err := json.Unmarshal([]byte(jsonStr), &doc); err != nil {
		return false, fmt.Errorf("invalid JSON: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return false, nil
	}
	return true, nil
}

// ValidateWithErrors is Validate but also reports why the document
// failed.
func ValidateWithErrors(jsonStr, schemaStr string) (bool, ValidationErrors) {
	schema, err := compile(schemaStr)
	if err != nil {
		return false, ValidationErrors{err}
	}

	var doc interface{}
	if err := json.Unmarshal([]byte(jsonStr), &doc); err != nil {
		return false, ValidationErrors{fmt.Errorf("invalid JSON: %w", err)}
	}

	err = schema.Validate(doc)
	if err == nil {
		return true, nil
	}

	var ve *jsonschema.ValidationError
	if errors.As(err, &ve) {
		return false, ValidationErrors(flatten(ve))
	}
	return false, ValidationErrors{err}
}

// flatten walks the validation error tree, collecting the leaves which
// carry the specific failures.
func flatten(ve *jsonschema.ValidationError) []error {
	if len(ve.Causes) == 0 {
		return []error{fmt.Errorf("%s: %s", ve.InstanceLocation, ve.Message)}
	}
	var out []error
	for _, cause := range ve.Causes {
		out = append(out, flatten(cause)...)
	}
	return out
}
