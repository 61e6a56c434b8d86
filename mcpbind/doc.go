// Package mcpbind exposes resource providers on an MCP server.
//
// Parameterless resources are registered as MCP resources under their URI.
// Parameterized resources are registered as resource templates; a read
// extracts the parameter values from the requested URI and forwards them to
// the owning provider.
package mcpbind
