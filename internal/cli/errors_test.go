package cli

import (
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyConnectionErrorNil(t *testing.T) {
	assert.Nil(t, ClassifyConnectionError(nil, "http://localhost:8090/mcp"))
}

func TestClassifyConnectionErrorDNS(t *testing.T) {
	dnsErr := &net.DNSError{Err: "no such host", Name: "bogus.invalid"}
	err := ClassifyConnectionError(fmt.Errorf("dial: %w", dnsErr), "http://bogus.invalid/mcp")

	var connErr *ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, ConnectionErrorDNS, connErr.Type)
}

func TestClassifyConnectionErrorRefused(t *testing.T) {
	err := ClassifyConnectionError(errors.New("dial tcp 127.0.0.1:8090: connect: connection refused"), "http://localhost:8090/mcp")

	var connErr *ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, ConnectionErrorNetwork, connErr.Type)
	assert.Contains(t, connErr.Error(), "taskflow serve")
}

func TestClassifyConnectionErrorUnknown(t *testing.T) {
	err := ClassifyConnectionError(errors.New("something odd"), "http://localhost:8090/mcp")

	var connErr *ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, ConnectionErrorUnknown, connErr.Type)
}

func TestConnectionErrorUnwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := ClassifyConnectionError(inner, "http://localhost:8090/mcp")
	assert.ErrorIs(t, err, inner)
}

func TestConnectionErrorTypeString(t *testing.T) {
	assert.Equal(t, "Network error", ConnectionErrorNetwork.String())
	assert.Equal(t, "Connection timeout", ConnectionErrorTimeout.String())
	assert.Equal(t, "DNS resolution error", ConnectionErrorDNS.String())
	assert.Equal(t, "Connection error", ConnectionErrorUnknown.String())
}
