// Package nodeconfig provides the small config-decoder helper each node
// type uses to extract and validate the keys it cares about at
// construction time, failing with MissingRequiredConfigError on violation.
// Node params arrive from the loader as a free-form map[string]any tree;
// Decode turns that tree into the node's own typed config struct.
package nodeconfig

import (
	"github.com/mitchellh/mapstructure"

	pipelineerrors "github.com/flowforge/pipeline/pkg/errors"
)

// Decode populates dst (a pointer to a struct tagged with `mapstructure`)
// from params, turning a generic configuration map into a typed struct.
func Decode(params map[string]any, dst any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           dst,
		WeaklyTypedInput: true,
		ErrorUnused:      false,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(params)
}

// RequireString extracts a required string key, failing with
// MissingRequiredConfigError (naming nodeName and key) when it is absent
// or empty.
func RequireString(nodeName, key string, params map[string]any) (string, error) {
	raw, ok := params[key]
	if !ok {
		return "", pipelineerrors.NewMissingRequiredConfigError(nodeName, key)
	}
	s, ok := raw.(string)
	if !ok || s == "" {
		return "", pipelineerrors.NewMissingRequiredConfigError(nodeName, key)
	}
	return s, nil
}
