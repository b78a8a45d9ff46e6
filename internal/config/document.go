// Package config implements the declarative pipeline document: decoding,
// environment-variable expansion, and schema validation. Instantiating and
// wiring nodes from a validated Document lives in internal/loader, which
// consumes the *Document this package produces.
package config

import (
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	pipelineerrors "github.com/flowforge/pipeline/pkg/errors"
)

// NodeSpec is one entry of pipeline.nodes.
type NodeSpec struct {
	Name    string         `mapstructure:"name" validate:"required"`
	Type    string         `mapstructure:"type" validate:"required"`
	Params  map[string]any `mapstructure:"params"`
	Outputs []string       `mapstructure:"outputs"`
}

// PipelineSpec is the pipeline: document section.
type PipelineSpec struct {
	Name       string     `mapstructure:"name" validate:"required"`
	Entrypoint string     `mapstructure:"entrypoint" validate:"required"`
	Nodes      []NodeSpec `mapstructure:"nodes" validate:"required,min=1,dive"`
}

// Document is the full decoded pipeline document.
type Document struct {
	Pipeline PipelineSpec `mapstructure:"pipeline" validate:"required"`
}

// Load reads path from disk, expands environment variables, validates the
// resulting shape, and returns the decoded Document. Instantiating nodes
// from the result is the loader package's job.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadBytes(data)
}

// LoadBytes is Load without the filesystem read, used directly by tests
// and by callers that already have the document in memory.
func LoadBytes(data []byte) (*Document, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	expanded, err := ExpandEnv(raw)
	if err != nil {
		return nil, err
	}

	var doc Document
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &doc,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(expanded); err != nil {
		return nil, pipelineerrors.NewSchemaError([]string{err.Error()})
	}

	if err := Validate(&doc); err != nil {
		return nil, err
	}

	return &doc, nil
}
