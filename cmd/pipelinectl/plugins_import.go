package main

// Blank import ensures node plugin init() registration runs for the CLI
// binary.
import (
	_ "github.com/flowforge/pipeline/nodes/all"
)
