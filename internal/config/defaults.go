package config

const (
	// DefaultServerPort is the port the graph server binds to when no
	// configuration overrides it.
	DefaultServerPort = 8090

	// DefaultToolPrefix prefixes every tool exposed on the MCP surface.
	DefaultToolPrefix = "taskflow"

	// DefaultCreateRetries bounds the optimistic edge insert loop.
	DefaultCreateRetries = 3

	// DefaultResolveParallelism bounds concurrent cascade recomputation.
	DefaultResolveParallelism = 8
)

// GetDefaultConfig returns the default configuration for taskflow.
func GetDefaultConfig() TaskflowConfig {
	return TaskflowConfig{
		Server: ServerConfig{
			Port:       DefaultServerPort,
			Host:       "localhost",
			Transport:  TransportStreamableHTTP,
			ToolPrefix: DefaultToolPrefix,
		},
		Engine: EngineConfig{
			CreateRetries:      DefaultCreateRetries,
			ResolveParallelism: DefaultResolveParallelism,
		},
	}
}
