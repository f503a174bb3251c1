// internal/api/leagues/handlers.go
package leagues

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/codr1/leagueapi/internal/api/apiutil"
	appdb "github.com/codr1/leagueapi/internal/db"
	dbgen "github.com/codr1/leagueapi/internal/db/generated"
)

const (
	leagueIDPathKey          = "id"
	maxLeagueNameLength      = 3
	maxLeagueDescriptionSize = 100
)

var (
	queries *dbgen.Queries
)

type leagueRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(database *appdb.DB) {
	if database == nil {
		return
	}
	queries = database.Queries
}

func loadQueries() *dbgen.Queries {
	return queries
}

// GET /api/v1/leagues
func HandleLeaguesList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), apiutil.QueryTimeout)
	defer cancel()

	leagues, err := q.ListLeagues(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list leagues")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Failed to list leagues")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, apiutil.ListResponse("leagues", leagues)); err != nil {
		logger.Error().Err(err).Msg("Failed to write leagues response")
	}
}

// GET /api/v1/leagues/{id}
func HandleLeagueDetail(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	leagueID, err := apiutil.PathID(r, leagueIDPathKey)
	if err != nil {
		apiutil.WriteError(w, logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), apiutil.QueryTimeout)
	defer cancel()

	league, err := q.GetLeague(ctx, leagueID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, logger, apiutil.NotFound("League"))
			return
		}
		logger.Error().Err(err).Int64("league_id", leagueID).Msg("Failed to load league")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Failed to load league")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, league); err != nil {
		logger.Error().Err(err).Int64("league_id", leagueID).Msg("Failed to write league response")
	}
}

// POST /api/v1/leagues
func HandleLeagueCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	params, err := decodeLeagueRequest(r)
	if err != nil {
		apiutil.WriteError(w, logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), apiutil.QueryTimeout)
	defer cancel()

	league, err := q.CreateLeague(ctx, params)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create league")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Failed to create league")
		return
	}

	logger.Info().Int64("league_id", league.ID).Msg("League created")
	if err := apiutil.WriteJSON(w, http.StatusCreated, league); err != nil {
		logger.Error().Err(err).Int64("league_id", league.ID).Msg("Failed to write league response")
	}
}

// PUT /api/v1/leagues/{id}
func HandleLeagueUpdate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	leagueID, err := apiutil.PathID(r, leagueIDPathKey)
	if err != nil {
		apiutil.WriteError(w, logger, err)
		return
	}

	params, err := decodeLeagueRequest(r)
	if err != nil {
		apiutil.WriteError(w, logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), apiutil.QueryTimeout)
	defer cancel()

	league, err := q.UpdateLeague(ctx, dbgen.UpdateLeagueParams{
		Name:        params.Name,
		Description: params.Description,
		ID:          leagueID,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, logger, apiutil.NotFound("League"))
			return
		}
		logger.Error().Err(err).Int64("league_id", leagueID).Msg("Failed to update league")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Failed to update league")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, league); err != nil {
		logger.Error().Err(err).Int64("league_id", leagueID).Msg("Failed to write league response")
	}
}

// DELETE /api/v1/leagues/{id}
func HandleLeagueDelete(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	leagueID, err := apiutil.PathID(r, leagueIDPathKey)
	if err != nil {
		apiutil.WriteError(w, logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), apiutil.QueryTimeout)
	defer cancel()

	deleted, err := q.DeleteLeague(ctx, leagueID)
	if err != nil {
		logger.Error().Err(err).Int64("league_id", leagueID).Msg("Failed to delete league")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Failed to delete league")
		return
	}
	if deleted == 0 {
		apiutil.WriteError(w, logger, apiutil.NotFound("League"))
		return
	}

	logger.Info().Int64("league_id", leagueID).Msg("League deleted")
	if err := apiutil.WriteMessage(w, http.StatusOK, "League deleted successfully"); err != nil {
		logger.Error().Err(err).Int64("league_id", leagueID).Msg("Failed to write delete response")
	}
}

func decodeLeagueRequest(r *http.Request) (dbgen.CreateLeagueParams, error) {
	var req leagueRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		return dbgen.CreateLeagueParams{}, apiutil.BadRequest("Invalid request body: " + err.Error())
	}
	name, err := apiutil.RequireText(req.Name, "name", maxLeagueNameLength)
	if err != nil {
		return dbgen.CreateLeagueParams{}, err
	}
	description, err := apiutil.OptionalText(req.Description, "description", maxLeagueDescriptionSize)
	if err != nil {
		return dbgen.CreateLeagueParams{}, err
	}
	return dbgen.CreateLeagueParams{Name: name, Description: description}, nil
}
