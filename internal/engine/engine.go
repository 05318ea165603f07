package engine

import (
	"taskflow/internal/api"
	"taskflow/internal/config"
)

// Engine derives blocked/unblocked state and the flow projection from
// the edge store and the task record accessor. It holds no durable
// state of its own; everything it returns is recomputed from current
// edges and task statuses, with an optional explicitly-invalidated
// cache for the flow projection only.
type Engine struct {
	resolveParallelism int
	flowCache          *flowCache
}

// Options tunes engine behavior; zero values take the config defaults.
type Options struct {
	// FlowCacheEnabled turns the per-project flow projection cache on.
	FlowCacheEnabled bool

	// ResolveParallelism bounds concurrent block status recomputation
	// during a resolution cascade.
	ResolveParallelism int
}

// New creates a derivation engine. When the flow cache is enabled its
// invalidation hook is subscribed to graph events immediately.
func New(opts Options) *Engine {
	parallelism := opts.ResolveParallelism
	if parallelism < 1 {
		parallelism = config.DefaultResolveParallelism
	}

	e := &Engine{resolveParallelism: parallelism}
	if opts.FlowCacheEnabled {
		e.flowCache = newFlowCache()
		api.SubscribeToGraphEvents(e.flowCache)
	}
	return e
}
