package cli

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"taskflow/internal/config"
)

// EndpointEnvVar is the environment variable name for setting the default endpoint.
const EndpointEnvVar = "TASKFLOW_ENDPOINT"

// GetDefaultEndpoint returns the endpoint from environment variable if set.
func GetDefaultEndpoint() string {
	return os.Getenv(EndpointEnvVar)
}

// DetectServerEndpoint builds the graph server endpoint from configuration.
// The --endpoint flag and TASKFLOW_ENDPOINT take precedence over config.
func DetectServerEndpoint(override string) (string, TransportType) {
	if override == "" {
		override = GetDefaultEndpoint()
	}
	if override != "" {
		if strings.HasSuffix(override, "/sse") {
			return override, TransportSSE
		}
		return override, TransportStreamableHTTP
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return "http://localhost:8090/mcp", TransportStreamableHTTP
	}

	host := cfg.Server.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Server.Port
	if port == 0 {
		port = config.DefaultServerPort
	}

	if cfg.Server.Transport == config.TransportSSE {
		return fmt.Sprintf("http://%s:%d/sse", host, port), TransportSSE
	}
	return fmt.Sprintf("http://%s:%d/mcp", host, port), TransportStreamableHTTP
}

// CheckServerRunning probes the graph server endpoint before connecting so
// the user gets a direct hint instead of an MCP transport error.
func CheckServerRunning(endpoint string) error {
	client := &http.Client{
		Timeout: 5 * time.Second,
	}

	resp, err := client.Get(endpoint)
	if err != nil {
		return fmt.Errorf("taskflow server is not running. Start it with: taskflow serve")
	}
	defer resp.Body.Close()

	// Streamable-http answers GET probes with 200 or 202; SSE holds the
	// stream open, so any response at all means the server is up.
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("taskflow server is not responding correctly (status: %d). Try restarting with: taskflow serve", resp.StatusCode)
	}
	return nil
}

// FormatError formats an error message for CLI output
func FormatError(err error) string {
	return fmt.Sprintf("Error: %v", err)
}

// FormatSuccess formats a success message for CLI output
func FormatSuccess(msg string) string {
	return fmt.Sprintf("✓ %s", msg)
}

// FormatWarning formats a warning message for CLI output
func FormatWarning(msg string) string {
	return fmt.Sprintf("⚠ %s", msg)
}
