package utils

import (
	"github.com/google/uuid"
)

// GenerateSessionToken returns a new random session token.
func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// ParseSessionToken parses a token previously issued by GenerateSessionToken.
func ParseSessionToken(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}
