// Package all pulls in every bundled node plugin so their init()
// registration runs. Binaries and integration tests blank-import this
// package instead of naming plugins one by one.
package all

import (
	_ "github.com/flowforge/pipeline/nodes/collect"
	_ "github.com/flowforge/pipeline/nodes/emit"
	_ "github.com/flowforge/pipeline/nodes/exprfilter"
	_ "github.com/flowforge/pipeline/nodes/join"
	_ "github.com/flowforge/pipeline/nodes/passthrough"
)
