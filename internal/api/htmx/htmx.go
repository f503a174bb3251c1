// Package htmx detects requests issued by htmx so handlers can answer with fragments.
package htmx

import (
	"net/http"
	"strings"
)

const requestHeader = "HX-Request"

// IsRequest reports whether r was sent by htmx.
func IsRequest(r *http.Request) bool {
	return strings.EqualFold(strings.TrimSpace(r.Header.Get(requestHeader)), "true")
}
