package games

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appdb "github.com/codr1/leagueapi/internal/db"
	dbgen "github.com/codr1/leagueapi/internal/db/generated"
	"github.com/codr1/leagueapi/internal/testutil"
)

func setupGames(t *testing.T) (*appdb.DB, *http.ServeMux) {
	t.Helper()

	database := testutil.NewTestDB(t)
	prevQueries := queries
	t.Cleanup(func() { queries = prevQueries })
	InitHandlers(database)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/games", HandleGamesList)
	mux.HandleFunc("POST /api/v1/games", HandleGameCreate)
	mux.HandleFunc("GET /api/v1/games/{id}", HandleGameDetail)
	mux.HandleFunc("PUT /api/v1/games/{id}", HandleGameUpdate)
	mux.HandleFunc("DELETE /api/v1/games/{id}", HandleGameDelete)
	return database, mux
}

func createTeams(t *testing.T, database *appdb.DB) (int64, int64) {
	t.Helper()
	coach := testutil.CreateUser(t, database, "coach", false)
	home := testutil.CreateTeam(t, database, "Lakers", coach.ID)
	away := testutil.CreateTeam(t, database, "Celtics", coach.ID)
	return home.ID, away.ID
}

func serve(mux http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func gameBody(home, away int64, homeScore, awayScore int, date string) string {
	return fmt.Sprintf(`{"name":"Finals","home_team_id":%d,"home_score":%d,"away_team_id":%d,"away_score":%d,"venue":"Arena","date":%q}`,
		home, homeScore, away, awayScore, date)
}

func TestGameLifecycle(t *testing.T) {
	database, mux := setupGames(t)
	home, away := createTeams(t, database)

	rec := serve(mux, http.MethodPost, "/api/v1/games", gameBody(home, away, 101, 99, "2024-06-01"))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var game dbgen.Game
	if err := json.Unmarshal(rec.Body.Bytes(), &game); err != nil {
		t.Fatalf("decode game: %v", err)
	}
	if game.Date != "2024-06-01" || game.HomeScore != 101 {
		t.Fatalf("unexpected game %+v", game)
	}

	path := fmt.Sprintf("/api/v1/games/%d", game.ID)
	rec = serve(mux, http.MethodPut, path, gameBody(home, away, 101, 105, "2024-06-02"))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"away_score":105`) {
		t.Fatalf("expected updated game, got %d %s", rec.Code, rec.Body.String())
	}

	rec = serve(mux, http.MethodGet, "/api/v1/games", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"games":[`) {
		t.Fatalf("expected games list, got %d %s", rec.Code, rec.Body.String())
	}

	rec = serve(mux, http.MethodDelete, path, "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Game deleted successfully") {
		t.Fatalf("expected delete to succeed, got %d %s", rec.Code, rec.Body.String())
	}
	if rec := serve(mux, http.MethodGet, path, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 after delete, got %d", rec.Code)
	}
}

func TestGameValidation(t *testing.T) {
	database, mux := setupGames(t)
	home, away := createTeams(t, database)

	tests := []struct {
		name string
		body string
	}{
		{"same teams", gameBody(home, home, 1, 2, "2024-06-01")},
		{"negative score", gameBody(home, away, -1, 2, "2024-06-01")},
		{"bad date", gameBody(home, away, 1, 2, "06/01/2024")},
		{"impossible date", gameBody(home, away, 1, 2, "2024-02-30")},
		{"unknown team", gameBody(home, 999, 1, 2, "2024-06-01")},
		{"missing scores", fmt.Sprintf(`{"name":"Finals","home_team_id":%d,"away_team_id":%d,"date":"2024-06-01"}`, home, away)},
		{"long venue", fmt.Sprintf(`{"name":"Finals","home_team_id":%d,"home_score":1,"away_team_id":%d,"away_score":2,"venue":%q,"date":"2024-06-01"}`,
			home, away, strings.Repeat("v", 51))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(mux, http.MethodPost, "/api/v1/games", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestGameUpdateMissing(t *testing.T) {
	database, mux := setupGames(t)
	home, away := createTeams(t, database)

	rec := serve(mux, http.MethodPut, "/api/v1/games/42", gameBody(home, away, 1, 2, "2024-06-01"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d: %s", rec.Code, rec.Body.String())
	}
}
