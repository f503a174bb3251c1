// internal/api/games/handlers.go
package games

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

const (
	gameIDPathKey          = "id"
	maxGameNameLength      = 50
	maxGameDescriptionSize = 100
	maxVenueLength         = 50
)

var queries *dbgen.Queries

type gameRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	HomeTeamID  *int64 `json:"home_team_id"`
	HomeScore   *int64 `json:"home_score"`
	AwayTeamID  *int64 `json:"away_team_id"`
	AwayScore   *int64 `json:"away_score"`
	Venue       string `json:"venue"`
	Date        string `json:"date"`
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

// GET /api/v1/games
func HandleGamesList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), apiutil.QueryTimeout)
	defer cancel()

	games, err := q.ListGames(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list games")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Failed to list games")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, apiutil.ListResponse("games", games)); err != nil {
		logger.Error().Err(err).Msg("Failed to write games response")
	}
}

// GET /api/v1/games/{id}
func HandleGameDetail(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	gameID, err := apiutil.PathID(r, gameIDPathKey)
	if err != nil {
		apiutil.WriteError(w, logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), apiutil.QueryTimeout)
	defer cancel()

	game, err := q.GetGame(ctx, gameID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, logger, apiutil.NotFound("Game"))
			return
		}
		logger.Error().Err(err).Int64("game_id", gameID).Msg("Failed to load game")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Failed to load game")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, game); err != nil {
		logger.Error().Err(err).Int64("game_id", gameID).Msg("Failed to write game response")
	}
}

// POST /api/v1/games
func HandleGameCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	params, err := decodeGameRequest(r)
	if err != nil {
		apiutil.WriteError(w, logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), apiutil.QueryTimeout)
	defer cancel()

	game, err := q.CreateGame(ctx, params)
	if err != nil {
		if apiutil.IsForeignKeyViolation(err) {
			apiutil.WriteMessage(w, http.StatusBadRequest, "home_team_id and away_team_id must reference existing teams")
			return
		}
		logger.Error().Err(err).Msg("Failed to create game")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Failed to create game")
		return
	}

	logger.Info().
		Int64("game_id", game.ID).
		Int64("home_team_id", game.HomeTeamID).
		Int64("away_team_id", game.AwayTeamID).
		Msg("Game created")
	if err := apiutil.WriteJSON(w, http.StatusCreated, game); err != nil {
		logger.Error().Err(err).Int64("game_id", game.ID).Msg("Failed to write game response")
	}
}

// PUT /api/v1/games/{id}
func HandleGameUpdate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	gameID, err := apiutil.PathID(r, gameIDPathKey)
	if err != nil {
		apiutil.WriteError(w, logger, err)
		return
	}

	params, err := decodeGameRequest(r)
	if err != nil {
		apiutil.WriteError(w, logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), apiutil.QueryTimeout)
	defer cancel()

	game, err := q.UpdateGame(ctx, dbgen.UpdateGameParams{
		Name:        params.Name,
		Description: params.Description,
		HomeTeamID:  params.HomeTeamID,
		HomeScore:   params.HomeScore,
		AwayTeamID:  params.AwayTeamID,
		AwayScore:   params.AwayScore,
		Venue:       params.Venue,
		Date:        params.Date,
		ID:          gameID,
	})
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			apiutil.WriteError(w, logger, apiutil.NotFound("Game"))
		case apiutil.IsForeignKeyViolation(err):
			apiutil.WriteMessage(w, http.StatusBadRequest, "home_team_id and away_team_id must reference existing teams")
		default:
			logger.Error().Err(err).Int64("game_id", gameID).Msg("Failed to update game")
			apiutil.WriteMessage(w, http.StatusInternalServerError, "Failed to update game")
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, game); err != nil {
		logger.Error().Err(err).Int64("game_id", gameID).Msg("Failed to write game response")
	}
}

// DELETE /api/v1/games/{id}
func HandleGameDelete(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	gameID, err := apiutil.PathID(r, gameIDPathKey)
	if err != nil {
		apiutil.WriteError(w, logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), apiutil.QueryTimeout)
	defer cancel()

	deleted, err := q.DeleteGame(ctx, gameID)
	if err != nil {
		logger.Error().Err(err).Int64("game_id", gameID).Msg("Failed to delete game")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Failed to delete game")
		return
	}
	if deleted == 0 {
		apiutil.WriteError(w, logger, apiutil.NotFound("Game"))
		return
	}

	logger.Info().Int64("game_id", gameID).Msg("Game deleted")
	if err := apiutil.WriteMessage(w, http.StatusOK, "Game deleted successfully"); err != nil {
		logger.Error().Err(err).Int64("game_id", gameID).Msg("Failed to write delete response")
	}
}

func decodeGameRequest(r *http.Request) (dbgen.CreateGameParams, error) {
	var req gameRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		return dbgen.CreateGameParams{}, apiutil.BadRequest("Invalid request body: " + err.Error())
	}

	name, err := apiutil.RequireText(req.Name, "name", maxGameNameLength)
	if err != nil {
		return dbgen.CreateGameParams{}, err
	}
	description, err := apiutil.OptionalText(req.Description, "description", maxGameDescriptionSize)
	if err != nil {
		return dbgen.CreateGameParams{}, err
	}
	homeTeamID, err := apiutil.RequirePositiveID(req.HomeTeamID, "home_team_id")
	if err != nil {
		return dbgen.CreateGameParams{}, err
	}
	awayTeamID, err := apiutil.RequirePositiveID(req.AwayTeamID, "away_team_id")
	if err != nil {
		return dbgen.CreateGameParams{}, err
	}
	if homeTeamID == awayTeamID {
		return dbgen.CreateGameParams{}, apiutil.FieldError{Field: "away_team_id", Reason: "must differ from home_team_id"}
	}
	homeScore, err := apiutil.RequireIntInRange(req.HomeScore, "home_score", 0, math.MaxInt32)
	if err != nil {
		return dbgen.CreateGameParams{}, err
	}
	awayScore, err := apiutil.RequireIntInRange(req.AwayScore, "away_score", 0, math.MaxInt32)
	if err != nil {
		return dbgen.CreateGameParams{}, err
	}
	venue, err := apiutil.RequireText(req.Venue, "venue", maxVenueLength)
	if err != nil {
		return dbgen.CreateGameParams{}, err
	}
	date, err := apiutil.ParseDate(req.Date, "date")
	if err != nil {
		return dbgen.CreateGameParams{}, err
	}

	return dbgen.CreateGameParams{
		Name:        name,
		Description: description,
		HomeTeamID:  homeTeamID,
		HomeScore:   homeScore,
		AwayTeamID:  awayTeamID,
		AwayScore:   awayScore,
		Venue:       venue,
		Date:        date,
	}, nil
}
