package config

// TaskflowConfig is the top-level configuration structure for taskflow.
type TaskflowConfig struct {
	Server ServerConfig `yaml:"server"`
	Engine EngineConfig `yaml:"engine"`
}

const (
	// TransportStreamableHTTP is the streamable HTTP transport.
	TransportStreamableHTTP = "streamable-http"
	// TransportSSE is the Server-Sent Events transport.
	TransportSSE = "sse"
	// TransportStdio is the standard I/O transport.
	TransportStdio = "stdio"
)

// ServerConfig defines the configuration for the MCP graph server.
type ServerConfig struct {
	Port       int    `yaml:"port,omitempty"`       // Port for the HTTP transports (default: 8090)
	Host       string `yaml:"host,omitempty"`       // Host to bind to (default: localhost)
	Transport  string `yaml:"transport,omitempty"`  // Transport to use (default: streamable-http)
	ToolPrefix string `yaml:"toolPrefix,omitempty"` // Prefix for all exposed tools (default: "taskflow")
}

// EngineConfig tunes the derivation engine.
type EngineConfig struct {
	// FlowCacheEnabled controls the read-through projection cache for
	// getProjectDependencyFlow. Invalidation is per-project on edge
	// mutation; disable for tests that assert on fresh reads.
	FlowCacheEnabled *bool `yaml:"flowCacheEnabled,omitempty"`

	// CreateRetries bounds the validate-write-verify rounds for a single
	// edge insert before surfacing CYCLE_DETECTED (default: 3).
	CreateRetries int `yaml:"createRetries,omitempty"`

	// ResolveParallelism bounds concurrent block status recomputation in
	// the resolution cascade (default: 8).
	ResolveParallelism int `yaml:"resolveParallelism,omitempty"`
}

// FlowCacheOn resolves the tri-state FlowCacheEnabled flag.
func (e EngineConfig) FlowCacheOn() bool {
	if e.FlowCacheEnabled == nil {
		return true
	}
	return *e.FlowCacheEnabled
}
