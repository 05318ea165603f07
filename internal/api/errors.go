package api

import (
	"errors"
	"fmt"
)

// ValidationCode classifies why a graph mutation was rejected.
type ValidationCode string

const (
	// CodeSelfDependency indicates a task was asked to depend on itself.
	CodeSelfDependency ValidationCode = "SELF_DEPENDENCY"

	// CodeDuplicateEdge indicates the exact ordered pair already exists.
	CodeDuplicateEdge ValidationCode = "DUPLICATE_EDGE"

	// CodeCycleDetected indicates the insert would close a dependency cycle.
	CodeCycleDetected ValidationCode = "CYCLE_DETECTED"

	// CodeCrossProject indicates the two endpoints belong to different projects.
	CodeCrossProject ValidationCode = "CROSS_PROJECT"
)

// ValidationError represents a semantically invalid graph mutation request.
// These errors are returned synchronously to the caller and are never
// retried internally - the request itself was wrong, not the system.
type ValidationError struct {
	// Code categorizes the violation for programmatic handling.
	Code ValidationCode

	// Message is a human-readable description of the violation.
	Message string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return string(e.Code)
}

// NewValidationError creates a ValidationError with a formatted message.
//
// Example:
//
//	return api.NewValidationError(api.CodeDuplicateEdge,
//	    "dependency from %s to %s already exists", dependentID, prerequisiteID)
func NewValidationError(code ValidationCode, format string, args ...interface{}) *ValidationError {
	return &ValidationError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// IsValidation checks if an error is a ValidationError using error unwrapping.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// IsCode checks if an error is a ValidationError carrying the given code.
//
// Example:
//
//	_, err := handler.CreateDependency(ctx, a, b, user)
//	if api.IsCode(err, api.CodeCycleDetected) {
//	    // report the cycle to the user
//	}
func IsCode(err error, code ValidationCode) bool {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Code == code
	}
	return false
}

// NotFoundError represents a resource not found error with contextual
// information. Query operations treat a dangling reference (e.g. an edge
// endpoint whose task was deleted out-of-band) by omitting it from
// results rather than returning this error; it is reserved for lookups
// where the caller named the missing resource directly.
type NotFoundError struct {
	// ResourceType categorizes the type of resource that was not found
	// (e.g., "task", "edge", "project").
	ResourceType string

	// ResourceName is the specific identifier of the resource.
	ResourceName string

	// Message provides a custom error message if the default format is
	// insufficient.
	Message string
}

// Error implements the error interface for NotFoundError.
func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s not found", e.ResourceType, e.ResourceName)
}

// IsNotFound checks if an error is a NotFoundError using error unwrapping.
func IsNotFound(err error) bool {
	var nfErr *NotFoundError
	return errors.As(err, &nfErr)
}

// NewNotFoundError creates a new NotFoundError with the specified
// resource type and name.
func NewNotFoundError(resourceType, resourceName string) *NotFoundError {
	return &NotFoundError{
		ResourceType: resourceType,
		ResourceName: resourceName,
	}
}

// Specific NotFoundError constructors for each resource type.
var (
	// NewTaskNotFoundError creates a task not found error.
	NewTaskNotFoundError = func(id string) *NotFoundError {
		return NewNotFoundError("task", id)
	}

	// NewEdgeNotFoundError creates a dependency edge not found error.
	NewEdgeNotFoundError = func(id string) *NotFoundError {
		return NewNotFoundError("edge", id)
	}

	// NewProjectNotFoundError creates a project not found error.
	NewProjectNotFoundError = func(id string) *NotFoundError {
		return NewNotFoundError("project", id)
	}
)

// ConsistencyError indicates the write-then-verify discipline detected a
// concurrent mutation that invalidated an edge insert, and the bounded
// internal retries were exhausted. The edge manager converts this to
// CYCLE_DETECTED before it reaches callers; the type exists so the retry
// loop and its tests can distinguish the condition.
type ConsistencyError struct {
	// Attempts is how many full validate-write-verify rounds were tried.
	Attempts int
}

// Error implements the error interface for ConsistencyError.
func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("edge insert failed post-write verification after %d attempts", e.Attempts)
}

// IsConsistency checks if an error is a ConsistencyError.
func IsConsistency(err error) bool {
	var cerr *ConsistencyError
	return errors.As(err, &cerr)
}

// Common errors for API operations. These indicate that required handlers
// are not available in the service locator.
var (
	// ErrDependencyGraphNotRegistered indicates the dependency graph handler is not registered
	ErrDependencyGraphNotRegistered = errors.New("dependency graph handler not registered")

	// ErrBlockStatusNotRegistered indicates the block status handler is not registered
	ErrBlockStatusNotRegistered = errors.New("block status handler not registered")

	// ErrFlowNotRegistered indicates the flow handler is not registered
	ErrFlowNotRegistered = errors.New("flow handler not registered")

	// ErrTaskStoreNotRegistered indicates the task store handler is not registered
	ErrTaskStoreNotRegistered = errors.New("task store handler not registered")
)

// HandleError creates an appropriate CallToolResult based on the error type.
// All errors (including NotFoundError) are treated as error conditions so
// the MCP surface reports them uniformly.
func HandleError(err error) *CallToolResult {
	return &CallToolResult{
		Content: []interface{}{fmt.Sprintf("Operation failed: %v", err)},
		IsError: true,
	}
}

// HandleErrorWithPrefix creates a CallToolResult with a custom prefix for
// more specific error context.
func HandleErrorWithPrefix(err error, prefix string) *CallToolResult {
	return &CallToolResult{
		Content: []interface{}{fmt.Sprintf("%s: %v", prefix, err)},
		IsError: true,
	}
}
