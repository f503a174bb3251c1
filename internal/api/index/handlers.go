// internal/api/index/handlers.go
package index

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/codr1/leagueapi/internal/api/apiutil"
	"github.com/codr1/leagueapi/internal/api/htmx"
	indextempl "github.com/codr1/leagueapi/internal/templates/components/index"
	"github.com/codr1/leagueapi/internal/templates/layouts"
)

var (
	appName   = "League API"
	endpoints = []indextempl.Endpoint{}
)

// InitHandlers sets the name and the documented routes shown on the index.
func InitHandlers(name string, routes []indextempl.Endpoint) {
	if strings.TrimSpace(name) != "" {
		appName = name
	}
	if routes != nil {
		endpoints = routes
	}
}

// GET / and GET /api/v1/index
func HandleIndex(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if !wantsHTML(r) {
		if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{
			"name":      appName,
			"endpoints": endpoints,
		}); err != nil {
			logger.Error().Err(err).Msg("Failed to write index response")
		}
		return
	}

	component := indextempl.EndpointTable(appName, endpoints)
	if !htmx.IsRequest(r) {
		component = layouts.Base(appName, component)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		logger.Error().Err(err).Msg("Failed to render index")
	}
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html") || htmx.IsRequest(r)
}
