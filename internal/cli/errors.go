package cli

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// ConnectionErrorType categorizes the type of connection error.
type ConnectionErrorType int

const (
	// ConnectionErrorUnknown indicates an unclassified connection error.
	ConnectionErrorUnknown ConnectionErrorType = iota
	// ConnectionErrorNetwork indicates a network connectivity error (e.g., refused, unreachable).
	ConnectionErrorNetwork
	// ConnectionErrorTimeout indicates a connection timeout.
	ConnectionErrorTimeout
	// ConnectionErrorDNS indicates a DNS resolution failure.
	ConnectionErrorDNS
)

// String returns a human-readable name for the connection error type.
func (t ConnectionErrorType) String() string {
	switch t {
	case ConnectionErrorNetwork:
		return "Network error"
	case ConnectionErrorTimeout:
		return "Connection timeout"
	case ConnectionErrorDNS:
		return "DNS resolution error"
	default:
		return "Connection error"
	}
}

// ConnectionError indicates a connection failure to a taskflow server.
// It wraps the underlying error and provides categorization for better
// user feedback.
type ConnectionError struct {
	// Endpoint is the URL that could not be reached.
	Endpoint string
	// Type categorizes the connection error.
	Type ConnectionErrorType
	// Reason is the underlying error.
	Reason error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	msg := fmt.Sprintf("%s connecting to %s", e.Type, e.Endpoint)
	switch e.Type {
	case ConnectionErrorNetwork:
		msg += "\nIs the server running? Start it with: taskflow serve"
	case ConnectionErrorTimeout:
		msg += "\nThe server did not respond in time."
	case ConnectionErrorDNS:
		msg += "\nCheck the endpoint hostname."
	}
	if e.Reason != nil {
		msg += fmt.Sprintf("\nUnderlying error: %v", e.Reason)
	}
	return msg
}

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ConnectionError) Unwrap() error {
	return e.Reason
}

// ClassifyConnectionError analyzes an error and returns a ConnectionError
// with the appropriate type. If the error is nil, returns nil.
func ClassifyConnectionError(err error, endpoint string) error {
	if err == nil {
		return nil
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &ConnectionError{Endpoint: endpoint, Type: ConnectionErrorDNS, Reason: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &ConnectionError{Endpoint: endpoint, Type: ConnectionErrorTimeout, Reason: err}
	}

	if isNetworkError(err.Error()) {
		return &ConnectionError{Endpoint: endpoint, Type: ConnectionErrorNetwork, Reason: err}
	}

	return &ConnectionError{Endpoint: endpoint, Type: ConnectionErrorUnknown, Reason: err}
}

func isNetworkError(msg string) bool {
	patterns := []string{
		"connection refused",
		"no route to host",
		"network is unreachable",
		"connection reset by peer",
		"broken pipe",
	}
	lower := strings.ToLower(msg)
	for _, p := range patterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
