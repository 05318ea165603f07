package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectServerEndpointOverride(t *testing.T) {
	endpoint, transport := DetectServerEndpoint("http://example.com:9000/mcp")
	assert.Equal(t, "http://example.com:9000/mcp", endpoint)
	assert.Equal(t, TransportStreamableHTTP, transport)
}

func TestDetectServerEndpointOverrideSSE(t *testing.T) {
	endpoint, transport := DetectServerEndpoint("http://example.com:9000/sse")
	assert.Equal(t, "http://example.com:9000/sse", endpoint)
	assert.Equal(t, TransportSSE, transport)
}

func TestDetectServerEndpointEnvVar(t *testing.T) {
	t.Setenv(EndpointEnvVar, "http://envhost:7000/mcp")
	endpoint, transport := DetectServerEndpoint("")
	assert.Equal(t, "http://envhost:7000/mcp", endpoint)
	assert.Equal(t, TransportStreamableHTTP, transport)
}

func TestDetectServerEndpointFlagBeatsEnv(t *testing.T) {
	t.Setenv(EndpointEnvVar, "http://envhost:7000/mcp")
	endpoint, _ := DetectServerEndpoint("http://flaghost:7001/mcp")
	assert.Equal(t, "http://flaghost:7001/mcp", endpoint)
}

func TestFormatMessages(t *testing.T) {
	assert.Equal(t, "✓ done", FormatSuccess("done"))
	assert.Equal(t, "⚠ careful", FormatWarning("careful"))
	assert.Contains(t, FormatError(assert.AnError), "Error:")
}
