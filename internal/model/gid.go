package model

import "strings"

// GID builds a platform global ID from a resource type and a bare numeric id.
// Shared utility so handlers and webhooks accept both id forms interchangeably.
// Ids already carrying the gid scheme pass through unchanged.
// Examples: GID("Order", "123") → "gid://shopify/Order/123",
// GID("Order", "gid://shopify/Order/123") → "gid://shopify/Order/123"
func GID(resource, id string) string {
	if strings.HasPrefix(id, "gid://") {
		return id
	}
	return "gid://shopify/" + resource + "/" + id
}

// NumericID extracts the trailing id segment from a platform global ID.
// Returns the input unchanged when it does not carry the gid scheme.
// Examples: "gid://shopify/GenericFile/42" → "42", "42" → "42"
func NumericID(gid string) string {
	if !strings.HasPrefix(gid, "gid://") {
		return gid
	}
	idx := strings.LastIndex(gid, "/")
	if idx < 0 || idx == len(gid)-1 {
		return gid
	}
	return gid[idx+1:]
}
