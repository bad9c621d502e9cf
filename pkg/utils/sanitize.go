package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// ugcPolicy allows the markup a rich text editor produces and strips
// scripts, handlers and unknown elements.
var ugcPolicy = bluemonday.UGCPolicy()

func SanitizeHTML(s string) string {
	return strings.TrimSpace(ugcPolicy.Sanitize(s))
}
