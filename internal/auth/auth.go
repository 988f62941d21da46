package auth

import (
	"crypto/subtle"
	"strings"
)

// NewGate builds a gate for secret. An empty secret rejects everything.
func NewGate(secret string) *Gate {
	return &Gate{secret: []byte(secret)}
}

// reports whether presented equals the shared secret, in constant time
func (g *Gate) Valid(presented string) bool {
	if len(g.secret) == 0 || presented == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(presented), g.secret) == 1
}

// extracts the token from an "Authorization: Bearer <token>" header value
func BearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
