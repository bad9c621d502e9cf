package utils

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
)

// ParseID converts a path or query parameter into a positive row id.
func ParseID(value string) (int64, error) {
	if value == "" {
		return 0, fmt.Errorf("invalid id: empty")
	}

	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", value, err)
	}

	if id < 1 {
		return 0, fmt.Errorf("invalid id %q: must be positive", value)
	}

	return id, nil
}

// ClientIP returns the host part of the request's remote address.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
