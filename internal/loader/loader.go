// Package loader turns a validated pipeline document into a wired
// execution graph: it resolves each node's declared type through a
// registry, constructs and registers every node, wires declared output
// edges (registering both directions), and checks declared edge type
// compatibility before handing the graph to the engine.
package loader

import (
	"fmt"

	"github.com/flowforge/pipeline/internal/config"
	"github.com/flowforge/pipeline/internal/engine"
	"github.com/flowforge/pipeline/internal/node"
	"github.com/flowforge/pipeline/internal/registry"
	"github.com/flowforge/pipeline/internal/typedesc"
	pipelineerrors "github.com/flowforge/pipeline/pkg/errors"
)

// LoadFile reads, expands, validates, instantiates, and wires the pipeline
// document at path in one call.
func LoadFile(path string, nodes *registry.Registry[node.Node]) (*engine.Graph, string, string, error) {
	doc, err := config.Load(path)
	if err != nil {
		return nil, "", "", err
	}
	return Build(doc, nodes)
}

// Build instantiates and wires every node named in doc against nodes,
// returning the wired graph, the pipeline's entrypoint name, and its
// display name.
func Build(doc *config.Document, nodes *registry.Registry[node.Node]) (*engine.Graph, string, string, error) {
	g := engine.NewGraph()

	for _, spec := range doc.Pipeline.Nodes {
		n, err := nodes.New(spec.Type, spec.Name, spec.Params)
		if err != nil {
			return nil, "", "", err
		}
		g.AddNode(n)
	}

	for _, spec := range doc.Pipeline.Nodes {
		producer := g.Node(spec.Name)

		for _, target := range spec.Outputs {
			consumer := g.Node(target)
			if consumer == nil {
				return nil, "", "", pipelineerrors.NewSchemaError([]string{
					fmt.Sprintf("node %q declares output %q, which is not a defined node", spec.Name, target),
				})
			}

			outType := node.DeclaredOutputType(producer)
			inType := node.DeclaredInputType(consumer)
			if !typedesc.Compatible(outType, inType) {
				return nil, "", "", pipelineerrors.NewEdgeTypeError(spec.Name, target, outType, inType)
			}

			g.Connect(spec.Name, target)
		}
	}

	if !g.Has(doc.Pipeline.Entrypoint) {
		return nil, "", "", pipelineerrors.NewUnknownEntrypointError(doc.Pipeline.Entrypoint)
	}
	if doc.Pipeline.Name == "" {
		return nil, "", "", pipelineerrors.NewMissingPipelineNameError()
	}

	return g, doc.Pipeline.Entrypoint, doc.Pipeline.Name, nil
}
