package graphserver

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"taskflow/internal/config"
	"taskflow/pkg/logging"

	"github.com/mark3labs/mcp-go/server"
)

// GraphServer exposes the dependency graph operations as MCP tools over
// the configured transport (stdio, SSE, or streamable-http).
type GraphServer struct {
	config  config.ServerConfig
	version string
	server  *server.MCPServer

	// Transport-specific servers
	sseServer            *server.SSEServer
	streamableHTTPServer *server.StreamableHTTPServer
	stdioServer          *server.StdioServer

	// Lifecycle management
	ctx        context.Context
	cancelFunc context.CancelFunc
	mu         sync.RWMutex
}

// NewGraphServer creates a graph server for the given configuration.
func NewGraphServer(cfg config.ServerConfig, version string) *GraphServer {
	return &GraphServer{
		config:  cfg,
		version: version,
	}
}

// Start creates the MCP server, registers the graph tools, and starts
// the configured transport. HTTP transports serve in the background;
// stdio serves until the context is cancelled.
func (g *GraphServer) Start(ctx context.Context) error {
	g.mu.Lock()
	if g.server != nil {
		g.mu.Unlock()
		return fmt.Errorf("graph server already started")
	}

	g.ctx, g.cancelFunc = context.WithCancel(ctx)

	mcpServer := server.NewMCPServer(
		"taskflow",
		g.version,
		server.WithToolCapabilities(true),
	)
	g.server = mcpServer

	provider := NewGraphToolProvider()
	mcpServer.AddTools(createServerTools(provider, g.config.ToolPrefix)...)

	addr := fmt.Sprintf("%s:%d", g.config.Host, g.config.Port)

	switch g.config.Transport {
	case config.TransportSSE:
		logging.Info("GraphServer", "Starting graph server with SSE transport on %s", addr)
		baseURL := fmt.Sprintf("http://%s:%d", g.config.Host, g.config.Port)
		g.sseServer = server.NewSSEServer(
			g.server,
			server.WithBaseURL(baseURL),
			server.WithSSEEndpoint("/sse"),
			server.WithMessageEndpoint("/message"),
			server.WithKeepAlive(true),
			server.WithKeepAliveInterval(30*time.Second),
		)
		sseServer := g.sseServer
		g.mu.Unlock()
		go func() {
			if err := sseServer.Start(addr); err != nil && err != http.ErrServerClosed {
				logging.Error("GraphServer", err, "SSE server error")
			}
		}()

	case config.TransportStdio:
		logging.Info("GraphServer", "Starting graph server with stdio transport")
		g.stdioServer = server.NewStdioServer(g.server)
		stdioServer := g.stdioServer
		serveCtx := g.ctx
		g.mu.Unlock()
		go func() {
			if err := stdioServer.Listen(serveCtx, os.Stdin, os.Stdout); err != nil {
				logging.Error("GraphServer", err, "Stdio server error")
			}
		}()

	case config.TransportStreamableHTTP:
		fallthrough
	default:
		logging.Info("GraphServer", "Starting graph server with streamable-http transport on %s", addr)
		g.streamableHTTPServer = server.NewStreamableHTTPServer(g.server)
		streamableServer := g.streamableHTTPServer
		g.mu.Unlock()
		go func() {
			if err := streamableServer.Start(addr); err != nil && err != http.ErrServerClosed {
				logging.Error("GraphServer", err, "Streamable HTTP server error")
			}
		}()
	}

	return nil
}

// Stop shuts down the transport servers and releases the MCP server.
func (g *GraphServer) Stop(ctx context.Context) error {
	g.mu.Lock()
	if g.server == nil {
		g.mu.Unlock()
		return fmt.Errorf("graph server not started")
	}

	logging.Info("GraphServer", "Stopping graph server")

	cancelFunc := g.cancelFunc
	sseServer := g.sseServer
	streamableServer := g.streamableHTTPServer
	g.mu.Unlock()

	if cancelFunc != nil {
		cancelFunc()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if sseServer != nil {
		if err := sseServer.Shutdown(shutdownCtx); err != nil {
			logging.Error("GraphServer", err, "Error shutting down SSE server")
		}
	}
	if streamableServer != nil {
		if err := streamableServer.Shutdown(shutdownCtx); err != nil {
			logging.Error("GraphServer", err, "Error shutting down streamable HTTP server")
		}
	}
	// Stdio server stops on context cancellation, no explicit shutdown needed.

	g.mu.Lock()
	g.server = nil
	g.sseServer = nil
	g.streamableHTTPServer = nil
	g.stdioServer = nil
	g.mu.Unlock()

	return nil
}

// Endpoint returns the URL clients should connect to, or "" for stdio.
func (g *GraphServer) Endpoint() string {
	switch g.config.Transport {
	case config.TransportSSE:
		return fmt.Sprintf("http://%s:%d/sse", g.config.Host, g.config.Port)
	case config.TransportStdio:
		return ""
	default:
		return fmt.Sprintf("http://%s:%d/mcp", g.config.Host, g.config.Port)
	}
}
