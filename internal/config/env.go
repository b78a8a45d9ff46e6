package config

import (
	"os"
	"regexp"

	pipelineerrors "github.com/flowforge/pipeline/pkg/errors"
)

// placeholderPattern matches "${NAME}" tokens, the same grammar
// pipeline_loader.py's resolve_env_vars uses.
var placeholderPattern = regexp.MustCompile(`\$\{(\w+)\}`)

// ExpandEnv recursively walks a decoded YAML tree (maps, slices, and
// scalars, as produced by yaml.Unmarshal into an `any`), substituting every
// "${NAME}" occurrence in string values with the process environment
// variable NAME. It fails with UnresolvedVariableError on the first name
// with no environment value. Non-string scalars are returned unchanged.
func ExpandEnv(value any) (any, error) {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, elem := range v {
			expanded, err := ExpandEnv(elem)
			if err != nil {
				return nil, err
			}
			out[k] = expanded
		}
		return out, nil

	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			expanded, err := ExpandEnv(elem)
			if err != nil {
				return nil, err
			}
			out[i] = expanded
		}
		return out, nil

	case string:
		return expandString(v)

	default:
		return v, nil
	}
}

func expandString(s string) (string, error) {
	var firstErr error
	result := placeholderPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}
		name := placeholderPattern.FindStringSubmatch(match)[1]
		val, ok := os.LookupEnv(name)
		if !ok {
			firstErr = pipelineerrors.NewUnresolvedVariableError(name)
			return match
		}
		return val
	})
	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}
