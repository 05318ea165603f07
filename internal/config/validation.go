package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for multiple validation errors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// HasErrors returns true if there are any validation errors
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Add adds a new validation error
func (ve *ValidationErrors) Add(field, message string, value ...interface{}) {
	var val interface{}
	if len(value) > 0 {
		val = value[0]
	}
	*ve = append(*ve, ValidationError{
		Field:   field,
		Value:   val,
		Message: message,
	})
}

// GetSummary returns a multi-line summary of all collected errors.
func (ve ValidationErrors) GetSummary() string {
	var b strings.Builder
	for _, err := range ve {
		b.WriteString("  - ")
		b.WriteString(err.Error())
		b.WriteString("\n")
	}
	return b.String()
}

// ValidateRequired checks that a required string field is not empty.
func ValidateRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return ValidationError{Field: field, Message: "is required"}
	}
	return nil
}

// ValidateTransport checks that a transport name is one of the supported
// MCP transports.
func ValidateTransport(transport string) error {
	switch transport {
	case TransportStreamableHTTP, TransportSSE, TransportStdio:
		return nil
	}
	return ValidationError{
		Field:   "transport",
		Value:   transport,
		Message: fmt.Sprintf("must be one of %s, %s, %s", TransportStreamableHTTP, TransportSSE, TransportStdio),
	}
}

// Validate checks a loaded TaskflowConfig for configuration errors.
func (c TaskflowConfig) Validate() error {
	var errs ValidationErrors

	if err := ValidateTransport(c.Server.Transport); err != nil {
		errs = append(errs, err.(ValidationError))
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs.Add("server.port", "must be between 0 and 65535", c.Server.Port)
	}
	if c.Engine.CreateRetries < 1 {
		errs.Add("engine.createRetries", "must be at least 1", c.Engine.CreateRetries)
	}
	if c.Engine.ResolveParallelism < 1 {
		errs.Add("engine.resolveParallelism", "must be at least 1", c.Engine.ResolveParallelism)
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
