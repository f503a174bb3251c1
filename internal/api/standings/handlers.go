// internal/api/standings/handlers.go
package standings

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/codr1/leagueapi/internal/api/apiutil"
	appdb "github.com/codr1/leagueapi/internal/db"
	dbgen "github.com/codr1/leagueapi/internal/db/generated"
	table "github.com/codr1/leagueapi/internal/standings"
)

var queries *dbgen.Queries

func InitHandlers(database *appdb.DB) {
	if database == nil {
		return
	}
	queries = database.Queries
}

func loadQueries() *dbgen.Queries {
	return queries
}

// GET /api/v1/standings
func HandleStandings(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), apiutil.QueryTimeout)
	defer cancel()

	rows, err := table.Calculate(ctx, q)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to calculate standings")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Failed to calculate standings")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, apiutil.ListResponse("standings", rows)); err != nil {
		logger.Error().Err(err).Msg("Failed to write standings response")
	}
}
