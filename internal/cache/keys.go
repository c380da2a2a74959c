package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
)

// KeyParams identifies a cacheable request.
type KeyParams struct {
	// Operation names the client call, e.g. "list" or "page".
	Operation string

	// Path is the absolute request URL without its query string.
	Path string

	Query url.Values
}

// GenerateKey returns the hex SHA256 of the normalized params. Operation is
// case- and space-insensitive; query parameters are order-insensitive.
func GenerateKey(p KeyParams) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(strings.TrimSpace(p.Operation)))
	b.WriteByte('\n')
	b.WriteString(strings.TrimRight(strings.TrimSpace(p.Path), "/"))
	b.WriteByte('\n')
	b.WriteString(p.Query.Encode())

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
