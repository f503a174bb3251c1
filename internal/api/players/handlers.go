// internal/api/players/handlers.go
package players

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/codr1/leagueapi/internal/api/apiutil"
	appdb "github.com/codr1/leagueapi/internal/db"
	"github.com/codr1/leagueapi/internal/db/dbtypes"
	dbgen "github.com/codr1/leagueapi/internal/db/generated"
	rank "github.com/codr1/leagueapi/internal/players"
)

const (
	playerIDPathKey      = "id"
	maxPlayerNameLength  = 50
	maxPlayerBioLength   = 100
	maxPlayerAge         = 150
	defaultTopPercentile = 90
)

var (
	queries *dbgen.Queries

	maxAverageScore = decimal.NewFromInt(1000)
)

type playerRequest struct {
	Name         string           `json:"name"`
	Bio          string           `json:"bio"`
	Age          *int64           `json:"age"`
	Height       *int64           `json:"height"`
	AverageScore *decimal.Decimal `json:"average_score"`
	TeamID       *int64           `json:"team_id"`
}

type searchRequest struct {
	Name string `json:"name"`
}

type teamSearchRequest struct {
	Team string `json:"team"`
}

type topPlayersRequest struct {
	Team       *int64   `json:"team"`
	Percentile *float64 `json:"percentile"`
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

// GET /api/v1/players
func HandlePlayersList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), apiutil.QueryTimeout)
	defer cancel()

	roster, err := q.ListPlayers(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list players")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Failed to list players")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, apiutil.ListResponse("players", roster)); err != nil {
		logger.Error().Err(err).Msg("Failed to write players response")
	}
}

// GET /api/v1/players/{id}
func HandlePlayerDetail(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	playerID, err := apiutil.PathID(r, playerIDPathKey)
	if err != nil {
		apiutil.WriteError(w, logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), apiutil.QueryTimeout)
	defer cancel()

	player, err := q.GetPlayer(ctx, playerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, logger, apiutil.NotFound("Player"))
			return
		}
		logger.Error().Err(err).Int64("player_id", playerID).Msg("Failed to load player")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Failed to load player")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, player); err != nil {
		logger.Error().Err(err).Int64("player_id", playerID).Msg("Failed to write player response")
	}
}

// POST /api/v1/players
func HandlePlayerCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	params, err := decodePlayerRequest(r)
	if err != nil {
		apiutil.WriteError(w, logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), apiutil.QueryTimeout)
	defer cancel()

	player, err := q.CreatePlayer(ctx, params)
	if err != nil {
		if apiutil.IsForeignKeyViolation(err) {
			apiutil.WriteMessage(w, http.StatusBadRequest, "team_id does not reference an existing team")
			return
		}
		logger.Error().Err(err).Msg("Failed to create player")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Failed to create player")
		return
	}

	logger.Info().Int64("player_id", player.ID).Int64("team_id", player.TeamID).Msg("Player created")
	if err := apiutil.WriteJSON(w, http.StatusCreated, player); err != nil {
		logger.Error().Err(err).Int64("player_id", player.ID).Msg("Failed to write player response")
	}
}

// PUT /api/v1/players/{id}
func HandlePlayerUpdate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	playerID, err := apiutil.PathID(r, playerIDPathKey)
	if err != nil {
		apiutil.WriteError(w, logger, err)
		return
	}

	params, err := decodePlayerRequest(r)
	if err != nil {
		apiutil.WriteError(w, logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), apiutil.QueryTimeout)
	defer cancel()

	player, err := q.UpdatePlayer(ctx, dbgen.UpdatePlayerParams{
		Name:         params.Name,
		Bio:          params.Bio,
		Age:          params.Age,
		Height:       params.Height,
		AverageScore: params.AverageScore,
		TeamID:       params.TeamID,
		ID:           playerID,
	})
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			apiutil.WriteError(w, logger, apiutil.NotFound("Player"))
		case apiutil.IsForeignKeyViolation(err):
			apiutil.WriteMessage(w, http.StatusBadRequest, "team_id does not reference an existing team")
		default:
			logger.Error().Err(err).Int64("player_id", playerID).Msg("Failed to update player")
			apiutil.WriteMessage(w, http.StatusInternalServerError, "Failed to update player")
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, player); err != nil {
		logger.Error().Err(err).Int64("player_id", playerID).Msg("Failed to write player response")
	}
}

// DELETE /api/v1/players/{id}
func HandlePlayerDelete(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	playerID, err := apiutil.PathID(r, playerIDPathKey)
	if err != nil {
		apiutil.WriteError(w, logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), apiutil.QueryTimeout)
	defer cancel()

	deleted, err := q.DeletePlayer(ctx, playerID)
	if err != nil {
		logger.Error().Err(err).Int64("player_id", playerID).Msg("Failed to delete player")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Failed to delete player")
		return
	}
	if deleted == 0 {
		apiutil.WriteError(w, logger, apiutil.NotFound("Player"))
		return
	}

	logger.Info().Int64("player_id", playerID).Msg("Player deleted")
	if err := apiutil.WriteMessage(w, http.StatusOK, "Player deleted successfully"); err != nil {
		logger.Error().Err(err).Int64("player_id", playerID).Msg("Failed to write delete response")
	}
}

// POST /api/v1/players/search
func HandlePlayerSearch(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	var req searchRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteMessage(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	name, err := apiutil.RequireText(req.Name, "name", maxPlayerNameLength)
	if err != nil {
		apiutil.WriteError(w, logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), apiutil.QueryTimeout)
	defer cancel()

	roster, err := q.SearchPlayersByName(ctx, apiutil.EscapeLike(name))
	if err != nil {
		logger.Error().Err(err).Msg("Failed to search players by name")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Failed to search players")
		return
	}
	if len(roster) == 0 {
		apiutil.WriteMessage(w, http.StatusNotFound, "No player found with that name")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, apiutil.ListResponse("players", roster)); err != nil {
		logger.Error().Err(err).Msg("Failed to write player search response")
	}
}

// POST /api/v1/players/search/team
func HandlePlayerSearchByTeam(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	var req teamSearchRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteMessage(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	team, err := apiutil.RequireText(req.Team, "team", maxPlayerNameLength)
	if err != nil {
		apiutil.WriteError(w, logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), apiutil.QueryTimeout)
	defer cancel()

	roster, err := q.SearchPlayersByTeamName(ctx, apiutil.EscapeLike(team))
	if err != nil {
		logger.Error().Err(err).Msg("Failed to search players by team")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Failed to search players")
		return
	}
	if len(roster) == 0 {
		apiutil.WriteMessage(w, http.StatusNotFound, "No player found in that team")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, apiutil.ListResponse("players", roster)); err != nil {
		logger.Error().Err(err).Msg("Failed to write team search response")
	}
}

// POST /api/v1/players/top
func HandleTopPlayers(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	var req topPlayersRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteMessage(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	teamID, err := apiutil.RequirePositiveID(req.Team, "team")
	if err != nil {
		apiutil.WriteError(w, logger, err)
		return
	}
	percentile := float64(defaultTopPercentile)
	if req.Percentile != nil {
		percentile = *req.Percentile
	}
	if err := rank.ValidatePercentile(percentile); err != nil {
		apiutil.WriteMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), apiutil.QueryTimeout)
	defer cancel()

	roster, err := q.ListPlayersByTeam(ctx, teamID)
	if err != nil {
		logger.Error().Err(err).Int64("team_id", teamID).Msg("Failed to list team players")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Failed to load players")
		return
	}

	top, err := rank.FilterAbovePercentile(roster, percentile)
	switch {
	case errors.Is(err, rank.ErrEmptyInput):
		apiutil.WriteMessage(w, http.StatusNotFound, "No players found for that team")
		return
	case errors.Is(err, rank.ErrInvalidPercentile):
		apiutil.WriteMessage(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		logger.Error().Err(err).Int64("team_id", teamID).Float64("percentile", percentile).Msg("Failed to rank players")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Failed to rank players")
		return
	}

	logger.Debug().
		Int64("team_id", teamID).
		Float64("percentile", percentile).
		Int("roster_size", len(roster)).
		Int("top_size", len(top)).
		Msg("Top players computed")
	if err := apiutil.WriteJSON(w, http.StatusOK, apiutil.ListResponse("players", top)); err != nil {
		logger.Error().Err(err).Int64("team_id", teamID).Msg("Failed to write top players response")
	}
}

func decodePlayerRequest(r *http.Request) (dbgen.CreatePlayerParams, error) {
	var req playerRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		return dbgen.CreatePlayerParams{}, apiutil.BadRequest("Invalid request body: " + err.Error())
	}

	name, err := apiutil.RequireText(req.Name, "name", maxPlayerNameLength)
	if err != nil {
		return dbgen.CreatePlayerParams{}, err
	}
	bio, err := apiutil.OptionalText(req.Bio, "bio", maxPlayerBioLength)
	if err != nil {
		return dbgen.CreatePlayerParams{}, err
	}
	age, err := apiutil.RequireIntInRange(req.Age, "age", 0, maxPlayerAge)
	if err != nil {
		return dbgen.CreatePlayerParams{}, err
	}
	height, err := apiutil.RequireIntInRange(req.Height, "height", 1, math.MaxInt32)
	if err != nil {
		return dbgen.CreatePlayerParams{}, err
	}
	score, err := validateAverageScore(req.AverageScore)
	if err != nil {
		return dbgen.CreatePlayerParams{}, err
	}
	teamID, err := apiutil.RequirePositiveID(req.TeamID, "team_id")
	if err != nil {
		return dbgen.CreatePlayerParams{}, err
	}

	return dbgen.CreatePlayerParams{
		Name:         name,
		Bio:          bio,
		Age:          age,
		Height:       height,
		AverageScore: score,
		TeamID:       teamID,
	}, nil
}

// validateAverageScore accepts 0 <= score < 1000 with at most two decimals.
func validateAverageScore(score *decimal.Decimal) (dbtypes.Score, error) {
	if score == nil {
		return dbtypes.Score{}, apiutil.FieldError{Field: "average_score", Reason: "is required"}
	}
	if score.IsNegative() || score.GreaterThanOrEqual(maxAverageScore) {
		return dbtypes.Score{}, apiutil.FieldError{Field: "average_score", Reason: "must be at least 0 and below 1000"}
	}
	if !score.Equal(score.Round(2)) {
		return dbtypes.Score{}, apiutil.FieldError{Field: "average_score", Reason: "must have at most 2 decimal places"}
	}
	return dbtypes.NewScore(*score), nil
}
