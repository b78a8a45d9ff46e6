package config

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	pipelineerrors "github.com/flowforge/pipeline/pkg/errors"
)

var (
	validatorOnce sync.Once
	validatorInst *validator.Validate
)

func sharedValidator() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInst = validator.New()
	})
	return validatorInst
}

// Validate checks doc against the document's required shape:
// pipeline.name, pipeline.entrypoint, and each node's name/type are
// required; duplicate node names are rejected. Every violation found is
// collected into a single SchemaError instead of stopping at the first,
// the same way validate_pipeline_schema reports every failing field at once.
func Validate(doc *Document) error {
	var violations []string

	if err := sharedValidator().Struct(doc); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				violations = append(violations, describeFieldError(fe))
			}
		} else {
			violations = append(violations, err.Error())
		}
	}

	seen := make(map[string]int, len(doc.Pipeline.Nodes))
	for i, n := range doc.Pipeline.Nodes {
		if n.Name == "" {
			continue // already reported by the struct-tag pass above
		}
		if prior, exists := seen[n.Name]; exists {
			violations = append(violations, fmt.Sprintf("nodes[%d] and nodes[%d] both declare name %q", prior, i, n.Name))
			continue
		}
		seen[n.Name] = i
	}

	if len(violations) > 0 {
		return pipelineerrors.NewSchemaError(violations)
	}
	return nil
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Namespace())
	case "min":
		return fmt.Sprintf("%s must have at least %s element(s)", fe.Namespace(), fe.Param())
	default:
		return fmt.Sprintf("%s failed validation %q", fe.Namespace(), fe.Tag())
	}
}
