package resource

import (
	"fmt"
	"strings"
)

// AccessType classifies where a resource's content comes from.
type AccessType string

const (
	// AccessPublic resources are fetched from public HTTP endpoints.
	AccessPublic AccessType = "public"
	// AccessInternal resources are produced by handler functions inside the
	// provider. "mcp_server" is the configuration literal.
	AccessInternal AccessType = "mcp_server"
)

// ParseAccessType converts a configuration literal to an AccessType.
// "internal" is accepted as an alias for "mcp_server".
func ParseAccessType(s string) (AccessType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(AccessPublic):
		return AccessPublic, nil
	case string(AccessInternal), "internal":
		return AccessInternal, nil
	default:
		return "", fmt.Errorf("invalid access type %q (want %q or %q)", s, AccessPublic, AccessInternal)
	}
}

// Valid reports whether a is a known access type.
func (a AccessType) Valid() bool {
	return a == AccessPublic || a == AccessInternal
}
