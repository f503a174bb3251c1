// internal/api/matches/handlers.go
package matches

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/codr1/leagueapi/internal/api/apiutil"
	appdb "github.com/codr1/leagueapi/internal/db"
	dbgen "github.com/codr1/leagueapi/internal/db/generated"
)

const matchIDPathKey = "id"

var queries *dbgen.Queries

// A match is one player's score in one game.
type matchRequest struct {
	GameID   *int64 `json:"game_id"`
	PlayerID *int64 `json:"player_id"`
	Score    *int64 `json:"score"`
}

func InitHandlers(database *appdb.DB) {
	if database == nil {
		return
	}
	queries = database.Queries
}

func loadQueries() *dbgen.Queries {
	return queries
}

// GET /api/v1/matches
func HandleMatchesList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), apiutil.QueryTimeout)
	defer cancel()

	matches, err := q.ListMatches(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list matches")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Failed to list matches")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, apiutil.ListResponse("matches", matches)); err != nil {
		logger.Error().Err(err).Msg("Failed to write matches response")
	}
}

// GET /api/v1/matches/{id}
func HandleMatchDetail(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	matchID, err := apiutil.PathID(r, matchIDPathKey)
	if err != nil {
		apiutil.WriteError(w, logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), apiutil.QueryTimeout)
	defer cancel()

	match, err := q.GetMatch(ctx, matchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, logger, apiutil.NotFound("Match"))
			return
		}
		logger.Error().Err(err).Int64("match_id", matchID).Msg("Failed to load match")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Failed to load match")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, match); err != nil {
		logger.Error().Err(err).Int64("match_id", matchID).Msg("Failed to write match response")
	}
}

// POST /api/v1/matches
func HandleMatchCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	params, err := decodeMatchRequest(r)
	if err != nil {
		apiutil.WriteError(w, logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), apiutil.QueryTimeout)
	defer cancel()

	match, err := q.CreateMatch(ctx, params)
	if err != nil {
		if apiutil.IsForeignKeyViolation(err) {
			apiutil.WriteMessage(w, http.StatusBadRequest, "game_id and player_id must reference an existing game and player")
			return
		}
		logger.Error().Err(err).Msg("Failed to create match")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Failed to create match")
		return
	}

	logger.Info().Int64("match_id", match.ID).Int64("game_id", match.GameID).Msg("Match created")
	if err := apiutil.WriteJSON(w, http.StatusCreated, match); err != nil {
		logger.Error().Err(err).Int64("match_id", match.ID).Msg("Failed to write match response")
	}
}

// PUT /api/v1/matches/{id}
func HandleMatchUpdate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	matchID, err := apiutil.PathID(r, matchIDPathKey)
	if err != nil {
		apiutil.WriteError(w, logger, err)
		return
	}

	params, err := decodeMatchRequest(r)
	if err != nil {
		apiutil.WriteError(w, logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), apiutil.QueryTimeout)
	defer cancel()

	match, err := q.UpdateMatch(ctx, dbgen.UpdateMatchParams{
		GameID:   params.GameID,
		PlayerID: params.PlayerID,
		Score:    params.Score,
		ID:       matchID,
	})
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			apiutil.WriteError(w, logger, apiutil.NotFound("Match"))
		case apiutil.IsForeignKeyViolation(err):
			apiutil.WriteMessage(w, http.StatusBadRequest, "game_id and player_id must reference an existing game and player")
		default:
			logger.Error().Err(err).Int64("match_id", matchID).Msg("Failed to update match")
			apiutil.WriteMessage(w, http.StatusInternalServerError, "Failed to update match")
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, match); err != nil {
		logger.Error().Err(err).Int64("match_id", matchID).Msg("Failed to write match response")
	}
}

// DELETE /api/v1/matches/{id}
func HandleMatchDelete(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	matchID, err := apiutil.PathID(r, matchIDPathKey)
	if err != nil {
		apiutil.WriteError(w, logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), apiutil.QueryTimeout)
	defer cancel()

	deleted, err := q.DeleteMatch(ctx, matchID)
	if err != nil {
		logger.Error().Err(err).Int64("match_id", matchID).Msg("Failed to delete match")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Failed to delete match")
		return
	}
	if deleted == 0 {
		apiutil.WriteError(w, logger, apiutil.NotFound("Match"))
		return
	}

	logger.Info().Int64("match_id", matchID).Msg("Match deleted")
	if err := apiutil.WriteMessage(w, http.StatusOK, "Match deleted successfully"); err != nil {
		logger.Error().Err(err).Int64("match_id", matchID).Msg("Failed to write delete response")
	}
}

func decodeMatchRequest(r *http.Request) (dbgen.CreateMatchParams, error) {
	var req matchRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		return dbgen.CreateMatchParams{}, apiutil.BadRequest("Invalid request body: " + err.Error())
	}

	gameID, err := apiutil.RequirePositiveID(req.GameID, "game_id")
	if err != nil {
		return dbgen.CreateMatchParams{}, err
	}
	playerID, err := apiutil.RequirePositiveID(req.PlayerID, "player_id")
	if err != nil {
		return dbgen.CreateMatchParams{}, err
	}
	score, err := apiutil.RequireIntInRange(req.Score, "score", 0, math.MaxInt32)
	if err != nil {
		return dbgen.CreateMatchParams{}, err
	}

	return dbgen.CreateMatchParams{GameID: gameID, PlayerID: playerID, Score: score}, nil
}
