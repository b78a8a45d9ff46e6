package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flowforge/pipeline/internal/engine"
	"github.com/flowforge/pipeline/internal/loader"
	"github.com/flowforge/pipeline/internal/logger"
	"github.com/flowforge/pipeline/internal/metrics"
	"github.com/flowforge/pipeline/nodes"
)

type runOptions struct {
	ConfigPath string
	Workers    int
	Inputs     []string
}

func newRunCmd(root *rootFlags) *cobra.Command {
	opts := runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Load a pipeline document and execute it to completion",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to the pipeline document")
	cmd.MarkFlagRequired("config") //nolint:errcheck
	cmd.Flags().IntVar(&opts.Workers, "workers", engine.DefaultMaxWorkers, "Maximum concurrent deliveries")
	cmd.Flags().StringArrayVar(&opts.Inputs, "input", nil, "Initial input as key=value (repeatable)")

	return cmd
}

func runPipeline(root *rootFlags, opts runOptions) error {
	level := "info"
	if root.verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{Level: level, HumanReadable: root.pretty})
	if err != nil {
		return err
	}

	initial, err := parseInitialInput(opts.Inputs)
	if err != nil {
		return err
	}

	graph, entrypoint, name, err := loader.LoadFile(opts.ConfigPath, nodes.Default())
	if err != nil {
		return fmt.Errorf("loading %s: %w", opts.ConfigPath, err)
	}

	log.WithFields(map[string]any{"pipeline": name, "entrypoint": entrypoint}).Info("pipeline loaded")

	e := engine.New(graph, opts.Workers, metrics.NewCollector())
	if err := e.Run(context.Background(), entrypoint, initial, true, log); err != nil {
		return err
	}

	log.WithFields(map[string]any{"pipeline": name}).Info("pipeline finished")
	return nil
}

func parseInitialInput(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	input := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid --input %q: expected key=value", pair)
		}
		input[key] = value
	}
	return input, nil
}
