// Package mcp provides an MCP (Model Context Protocol) server adapter for Rocket Fuel.
// It lets AI assistants search questions, read threads and browse tags.
package mcp

import "errors"

// ErrMissingQuestionService is returned when the question service is not provided.
var ErrMissingQuestionService = errors.New("mcp: question service is required")

// ErrServiceUnavailable is returned by a handler whose port was not provided.
var ErrServiceUnavailable = errors.New("mcp: service not available")
