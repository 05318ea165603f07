package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// TransportType defines the transport type for graph server connections
type TransportType string

const (
	TransportSSE            TransportType = "sse"
	TransportStreamableHTTP TransportType = "streamable-http"
)

// Client is a thin MCP client for talking to a running taskflow graph
// server. It connects, initializes the session, and executes tool calls.
type Client struct {
	endpoint  string
	transport TransportType
	client    client.MCPClient
	timeout   time.Duration
}

// NewClient creates a graph server client with the specified transport.
func NewClient(endpoint string, transport TransportType) *Client {
	return &Client{
		endpoint:  endpoint,
		transport: transport,
		timeout:   30 * time.Second,
	}
}

// Connect establishes the transport and performs the MCP handshake.
func (c *Client) Connect(ctx context.Context) error {
	mcpClient, err := c.createClient(ctx)
	if err != nil {
		return err
	}
	c.client = mcpClient

	if err := c.initialize(ctx); err != nil {
		c.client.Close()
		c.client = nil
		return fmt.Errorf("initialization failed: %w", err)
	}
	return nil
}

func (c *Client) createClient(ctx context.Context) (client.MCPClient, error) {
	switch c.transport {
	case TransportSSE:
		sseClient, err := client.NewSSEMCPClient(c.endpoint)
		if err != nil {
			return nil, fmt.Errorf("failed to create SSE client: %w", err)
		}
		if err := sseClient.Start(ctx); err != nil {
			return nil, fmt.Errorf("failed to start SSE client: %w", err)
		}
		return sseClient, nil

	case TransportStreamableHTTP:
		httpClient, err := client.NewStreamableHttpClient(c.endpoint)
		if err != nil {
			return nil, fmt.Errorf("failed to create streamable-http client: %w", err)
		}
		if err := httpClient.Start(ctx); err != nil {
			return nil, fmt.Errorf("failed to start streamable-http client: %w", err)
		}
		return httpClient, nil

	default:
		return nil, fmt.Errorf("unsupported transport type: %s", c.transport)
	}
}

func (c *Client) initialize(ctx context.Context) error {
	req := mcp.InitializeRequest{
		Params: struct {
			ProtocolVersion string                 `json:"protocolVersion"`
			Capabilities    mcp.ClientCapabilities `json:"capabilities"`
			ClientInfo      mcp.Implementation     `json:"clientInfo"`
		}{
			ProtocolVersion: "2024-11-05",
			ClientInfo: mcp.Implementation{
				Name:    "taskflow-cli",
				Version: "1.0.0",
			},
			Capabilities: mcp.ClientCapabilities{},
		},
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	_, err := c.client.Initialize(timeoutCtx, req)
	return err
}

// CallTool executes a tool and returns the raw result.
func (c *Client) CallTool(ctx context.Context, name string, args map[string]interface{}) (*mcp.CallToolResult, error) {
	if c.client == nil {
		return nil, fmt.Errorf("client not connected")
	}

	req := mcp.CallToolRequest{
		Params: struct {
			Name      string    `json:"name"`
			Arguments any       `json:"arguments,omitempty"`
			Meta      *mcp.Meta `json:"_meta,omitempty"`
		}{
			Name:      name,
			Arguments: args,
		},
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result, err := c.client.CallTool(timeoutCtx, req)
	if err != nil {
		return nil, fmt.Errorf("tool call failed: %w", err)
	}
	return result, nil
}

// CallToolText executes a tool and returns its first text content block.
// Error results are surfaced as a Go error with the server's message.
func (c *Client) CallToolText(ctx context.Context, name string, args map[string]interface{}) (string, error) {
	result, err := c.CallTool(ctx, name, args)
	if err != nil {
		return "", err
	}

	var texts []string
	for _, content := range result.Content {
		if textContent, ok := mcp.AsTextContent(content); ok {
			texts = append(texts, textContent.Text)
		}
	}

	if result.IsError {
		return "", fmt.Errorf("%s", strings.Join(texts, "\n"))
	}
	if len(texts) == 0 {
		return "", nil
	}
	return texts[0], nil
}

// CallToolJSON executes a tool and decodes its text content into out.
func (c *Client) CallToolJSON(ctx context.Context, name string, args map[string]interface{}, out interface{}) error {
	text, err := c.CallToolText(ctx, name, args)
	if err != nil {
		return err
	}
	if text == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("failed to parse tool result: %w", err)
	}
	return nil
}

// ListTools returns the server's tool list.
func (c *Client) ListTools(ctx context.Context) ([]mcp.Tool, error) {
	if c.client == nil {
		return nil, fmt.Errorf("client not connected")
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result, err := c.client.ListTools(timeoutCtx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, err
	}
	return result.Tools, nil
}

// Close tears down the connection.
func (c *Client) Close() error {
	if c.client == nil {
		return nil
	}
	err := c.client.Close()
	c.client = nil
	return err
}
