// Package mcp provides an MCP (Model Context Protocol) server adapter for Docchat.
// It enables AI assistants like Claude to search and question the loaded document.
package mcp

import "errors"

// ErrMissingRetrievalService is returned when the retrieval service is not provided.
var ErrMissingRetrievalService = errors.New("mcp: retrieval service is required")
