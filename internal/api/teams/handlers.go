// internal/api/teams/handlers.go
package teams

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/codr1/leagueapi/internal/api/apiutil"
	"github.com/codr1/leagueapi/internal/api/authz"
	appdb "github.com/codr1/leagueapi/internal/db"
	dbgen "github.com/codr1/leagueapi/internal/db/generated"
)

const (
	teamIDPathKey          = "id"
	maxTeamNameLength      = 50
	maxTeamDescriptionSize = 100
)

var (
	queries *dbgen.Queries
)

// coach_id defaults to the caller; only staff may name someone else.
type teamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CoachID     *int64 `json:"coach_id"`
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

// GET /api/v1/teams
func HandleTeamsList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), apiutil.QueryTimeout)
	defer cancel()

	teams, err := q.ListTeams(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list teams")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Failed to list teams")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, apiutil.ListResponse("teams", teams)); err != nil {
		logger.Error().Err(err).Msg("Failed to write teams response")
	}
}

// GET /api/v1/teams/{id}
func HandleTeamDetail(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	teamID, err := apiutil.PathID(r, teamIDPathKey)
	if err != nil {
		apiutil.WriteError(w, logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), apiutil.QueryTimeout)
	defer cancel()

	team, err := loadTeam(ctx, q, teamID)
	if err != nil {
		apiutil.WriteError(w, logger, err)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, team); err != nil {
		logger.Error().Err(err).Int64("team_id", teamID).Msg("Failed to write team response")
	}
}

// POST /api/v1/teams
func HandleTeamCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	user, err := authz.RequireUser(r.Context())
	if err != nil {
		apiutil.WriteAuthzError(w, logger, err)
		return
	}

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	req, err := decodeTeamRequest(r)
	if err != nil {
		apiutil.WriteError(w, logger, err)
		return
	}

	coachID := user.ID
	if req.CoachID != nil {
		if coachID, err = apiutil.RequirePositiveID(req.CoachID, "coach_id"); err != nil {
			apiutil.WriteError(w, logger, err)
			return
		}
		if coachID != user.ID && !authz.IsStaff(user) {
			apiutil.WriteAuthzError(w, logger, authz.ErrForbidden)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), apiutil.QueryTimeout)
	defer cancel()

	team, err := q.CreateTeam(ctx, dbgen.CreateTeamParams{
		Name:        req.Name,
		Description: req.Description,
		CoachID:     coachID,
	})
	if err != nil {
		if apiutil.IsForeignKeyViolation(err) {
			apiutil.WriteMessage(w, http.StatusBadRequest, "coach_id does not reference an existing user")
			return
		}
		logger.Error().Err(err).Msg("Failed to create team")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Failed to create team")
		return
	}

	logger.Info().Int64("team_id", team.ID).Int64("coach_id", team.CoachID).Msg("Team created")
	if err := apiutil.WriteJSON(w, http.StatusCreated, team); err != nil {
		logger.Error().Err(err).Int64("team_id", team.ID).Msg("Failed to write team response")
	}
}

// PUT /api/v1/teams/{id}
func HandleTeamUpdate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	teamID, err := apiutil.PathID(r, teamIDPathKey)
	if err != nil {
		apiutil.WriteError(w, logger, err)
		return
	}

	req, err := decodeTeamRequest(r)
	if err != nil {
		apiutil.WriteError(w, logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), apiutil.QueryTimeout)
	defer cancel()

	existing, err := loadTeam(ctx, q, teamID)
	if err != nil {
		apiutil.WriteError(w, logger, err)
		return
	}
	if err := authz.RequireTeamManager(r.Context(), existing.CoachID); err != nil {
		apiutil.WriteAuthzError(w, logger, err)
		return
	}

	coachID := existing.CoachID
	if req.CoachID != nil {
		if coachID, err = apiutil.RequirePositiveID(req.CoachID, "coach_id"); err != nil {
			apiutil.WriteError(w, logger, err)
			return
		}
	}

	team, err := q.UpdateTeam(ctx, dbgen.UpdateTeamParams{
		Name:        req.Name,
		Description: req.Description,
		CoachID:     coachID,
		ID:          teamID,
	})
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			apiutil.WriteError(w, logger, apiutil.NotFound("Team"))
		case apiutil.IsForeignKeyViolation(err):
			apiutil.WriteMessage(w, http.StatusBadRequest, "coach_id does not reference an existing user")
		default:
			logger.Error().Err(err).Int64("team_id", teamID).Msg("Failed to update team")
			apiutil.WriteMessage(w, http.StatusInternalServerError, "Failed to update team")
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, team); err != nil {
		logger.Error().Err(err).Int64("team_id", teamID).Msg("Failed to write team response")
	}
}

// DELETE /api/v1/teams/{id}
func HandleTeamDelete(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	teamID, err := apiutil.PathID(r, teamIDPathKey)
	if err != nil {
		apiutil.WriteError(w, logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), apiutil.QueryTimeout)
	defer cancel()

	existing, err := loadTeam(ctx, q, teamID)
	if err != nil {
		apiutil.WriteError(w, logger, err)
		return
	}
	if err := authz.RequireTeamManager(r.Context(), existing.CoachID); err != nil {
		apiutil.WriteAuthzError(w, logger, err)
		return
	}

	deleted, err := q.DeleteTeam(ctx, teamID)
	if err != nil {
		logger.Error().Err(err).Int64("team_id", teamID).Msg("Failed to delete team")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Failed to delete team")
		return
	}
	if deleted == 0 {
		apiutil.WriteError(w, logger, apiutil.NotFound("Team"))
		return
	}

	logger.Info().Int64("team_id", teamID).Msg("Team deleted")
	if err := apiutil.WriteMessage(w, http.StatusOK, "Team deleted successfully"); err != nil {
		logger.Error().Err(err).Int64("team_id", teamID).Msg("Failed to write delete response")
	}
}

func loadTeam(ctx context.Context, q *dbgen.Queries, teamID int64) (dbgen.Team, error) {
	team, err := q.GetTeam(ctx, teamID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dbgen.Team{}, apiutil.NotFound("Team")
		}
		return dbgen.Team{}, apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to load team", Err: err}
	}
	return team, nil
}

func decodeTeamRequest(r *http.Request) (teamRequest, error) {
	var req teamRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		return teamRequest{}, apiutil.BadRequest("Invalid request body: " + err.Error())
	}
	name, err := apiutil.RequireText(req.Name, "name", maxTeamNameLength)
	if err != nil {
		return teamRequest{}, err
	}
	description, err := apiutil.OptionalText(req.Description, "description", maxTeamDescriptionSize)
	if err != nil {
		return teamRequest{}, err
	}
	req.Name = name
	req.Description = description
	return req, nil
}
