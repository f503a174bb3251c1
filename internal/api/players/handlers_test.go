package players

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	appdb "github.com/codr1/leagueapi/internal/db"
	dbgen "github.com/codr1/leagueapi/internal/db/generated"
	"github.com/codr1/leagueapi/internal/testutil"
	"github.com/shopspring/decimal"
)

func setupPlayers(t *testing.T) (*appdb.DB, *http.ServeMux) {
	t.Helper()

	database := testutil.NewTestDB(t)
	prevQueries := queries
	t.Cleanup(func() { queries = prevQueries })
	InitHandlers(database)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/players", HandlePlayersList)
	mux.HandleFunc("POST /api/v1/players", HandlePlayerCreate)
	mux.HandleFunc("GET /api/v1/players/{id}", HandlePlayerDetail)
	mux.HandleFunc("PUT /api/v1/players/{id}", HandlePlayerUpdate)
	mux.HandleFunc("DELETE /api/v1/players/{id}", HandlePlayerDelete)
	mux.HandleFunc("POST /api/v1/players/search", HandlePlayerSearch)
	mux.HandleFunc("POST /api/v1/players/search/team", HandlePlayerSearchByTeam)
	mux.HandleFunc("POST /api/v1/players/top", HandleTopPlayers)
	return database, mux
}

func createTeam(t *testing.T, database *appdb.DB, name string) dbgen.Team {
	t.Helper()
	coach := testutil.CreateUser(t, database, "coach-"+name, false)
	return testutil.CreateTeam(t, database, name, coach.ID)
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

func decodeRoster(t *testing.T, rec *httptest.ResponseRecorder) []dbgen.Player {
	t.Helper()
	var payload struct {
		Players []dbgen.Player `json:"players"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode players: %v (%s)", err, rec.Body.String())
	}
	return payload.Players
}

func rosterNames(roster []dbgen.Player) []string {
	names := make([]string, 0, len(roster))
	for _, p := range roster {
		names = append(names, p.Name)
	}
	return names
}

func playerPath(id int64) string {
	return "/api/v1/players/" + strconv.FormatInt(id, 10)
}

func TestPlayerLifecycle(t *testing.T) {
	database, mux := setupPlayers(t)
	team := createTeam(t, database, "Lakers")
	teamID := strconv.FormatInt(team.ID, 10)

	rec := serve(mux, http.MethodPost, "/api/v1/players",
		`{"name":"LeBron","bio":"forward","age":39,"height":206,"average_score":"27.25","team_id":`+teamID+`}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created dbgen.Player
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode player: %v", err)
	}
	if !created.AverageScore.Equal(decimal.RequireFromString("27.25")) {
		t.Fatalf("expected average score 27.25, got %s", created.AverageScore)
	}

	rec = serve(mux, http.MethodPut, playerPath(created.ID),
		`{"name":"LeBron James","age":40,"height":206,"average_score":30,"team_id":`+teamID+`}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = serve(mux, http.MethodGet, playerPath(created.ID), "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "LeBron James") {
		t.Fatalf("expected updated player, got %d %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"average_score":"30.00"`) {
		t.Fatalf("expected average score with two places, got %s", rec.Body.String())
	}

	rec = serve(mux, http.MethodDelete, playerPath(created.ID), "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Player deleted successfully") {
		t.Fatalf("expected delete to succeed, got %d %s", rec.Code, rec.Body.String())
	}
	if rec := serve(mux, http.MethodDelete, playerPath(created.ID), ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 on second delete, got %d", rec.Code)
	}
}

func TestPlayersListEmpty(t *testing.T) {
	_, mux := setupPlayers(t)

	rec := serve(mux, http.MethodGet, "/api/v1/players", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != `{"players":[]}` {
		t.Fatalf("expected empty players list, got %s", rec.Body.String())
	}
}

func TestPlayerCreateValidation(t *testing.T) {
	database, mux := setupPlayers(t)
	team := createTeam(t, database, "Lakers")
	teamID := strconv.FormatInt(team.ID, 10)

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"age":20,"height":200,"average_score":"1","team_id":` + teamID + `}`},
		{"long name", `{"name":"` + strings.Repeat("x", 51) + `","age":20,"height":200,"average_score":"1","team_id":` + teamID + `}`},
		{"negative age", `{"name":"A","age":-1,"height":200,"average_score":"1","team_id":` + teamID + `}`},
		{"zero height", `{"name":"A","age":20,"height":0,"average_score":"1","team_id":` + teamID + `}`},
		{"score too large", `{"name":"A","age":20,"height":200,"average_score":"1000","team_id":` + teamID + `}`},
		{"score negative", `{"name":"A","age":20,"height":200,"average_score":"-0.5","team_id":` + teamID + `}`},
		{"score precision", `{"name":"A","age":20,"height":200,"average_score":"1.234","team_id":` + teamID + `}`},
		{"missing team", `{"name":"A","age":20,"height":200,"average_score":"1"}`},
		{"unknown team", `{"name":"A","age":20,"height":200,"average_score":"1","team_id":999}`},
		{"unknown field", `{"name":"A","age":20,"height":200,"average_score":"1","team_id":` + teamID + `,"rank":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(mux, http.MethodPost, "/api/v1/players", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestPlayerSearch(t *testing.T) {
	database, mux := setupPlayers(t)
	lakers := createTeam(t, database, "Lakers")
	celtics := createTeam(t, database, "Celtics")
	testutil.CreatePlayer(t, database, lakers.ID, "Anthony Davis", "24.10")
	testutil.CreatePlayer(t, database, celtics.ID, "Jayson Tatum", "26.90")
	testutil.CreatePlayer(t, database, celtics.ID, "100% Shooter", "10.00")

	rec := serve(mux, http.MethodPost, "/api/v1/players/search", `{"name":"davis"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if names := rosterNames(decodeRoster(t, rec)); len(names) != 1 || names[0] != "Anthony Davis" {
		t.Fatalf("expected [Anthony Davis], got %v", names)
	}

	rec = serve(mux, http.MethodPost, "/api/v1/players/search", `{"name":"%"}`)
	if names := rosterNames(decodeRoster(t, rec)); len(names) != 1 || names[0] != "100% Shooter" {
		t.Fatalf("expected literal %% match only, got %v", names)
	}

	rec = serve(mux, http.MethodPost, "/api/v1/players/search", `{"name":"nobody"}`)
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "No player found with that name") {
		t.Fatalf("expected 404 for unknown name, got %d %s", rec.Code, rec.Body.String())
	}

	rec = serve(mux, http.MethodPost, "/api/v1/players/search/team", `{"team":"celt"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if roster := decodeRoster(t, rec); len(roster) != 2 {
		t.Fatalf("expected 2 celtics players, got %d", len(roster))
	}

	rec = serve(mux, http.MethodPost, "/api/v1/players/search/team", `{"team":"Bulls"}`)
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "No player found in that team") {
		t.Fatalf("expected 404 for unknown team, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestTopPlayers(t *testing.T) {
	database, mux := setupPlayers(t)
	team := createTeam(t, database, "Lakers")
	for i, score := range []string{"30.00", "10.00", "50.00", "20.00", "40.00"} {
		testutil.CreatePlayer(t, database, team.ID, "P"+strconv.Itoa(i), score)
	}
	teamID := strconv.FormatInt(team.ID, 10)

	tests := []struct {
		name       string
		percentile string
		want       []string
	}{
		{"80th", "80", []string{"P2"}},
		{"50th", "50", []string{"P0", "P2", "P4"}},
		{"100th clamps to max", "100", []string{"P2"}},
		{"1st keeps all", "1", []string{"P0", "P1", "P2", "P3", "P4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(mux, http.MethodPost, "/api/v1/players/top",
				`{"team":`+teamID+`,"percentile":`+tt.percentile+`}`)
			if rec.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
			}
			got := rosterNames(decodeRoster(t, rec))
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestTopPlayersErrors(t *testing.T) {
	database, mux := setupPlayers(t)
	team := createTeam(t, database, "Lakers")
	empty := createTeam(t, database, "Empty")
	testutil.CreatePlayer(t, database, team.ID, "Solo", "12.00")

	rec := serve(mux, http.MethodPost, "/api/v1/players/top",
		`{"team":`+strconv.FormatInt(empty.ID, 10)+`,"percentile":50}`)
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "No players found for that team") {
		t.Fatalf("expected 404 for empty team, got %d %s", rec.Code, rec.Body.String())
	}

	for _, percentile := range []string{"0", "101", "-5"} {
		rec := serve(mux, http.MethodPost, "/api/v1/players/top",
			`{"team":`+strconv.FormatInt(team.ID, 10)+`,"percentile":`+percentile+`}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400 for percentile %s, got %d", percentile, rec.Code)
		}
	}

	if rec := serve(mux, http.MethodPost, "/api/v1/players/top", `{"percentile":50}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 without team, got %d", rec.Code)
	}
}

func TestTopPlayersDefaultPercentile(t *testing.T) {
	database, mux := setupPlayers(t)
	team := createTeam(t, database, "Lakers")
	for i := 1; i <= 10; i++ {
		testutil.CreatePlayer(t, database, team.ID, "P"+strconv.Itoa(i), strconv.Itoa(i*10))
	}

	rec := serve(mux, http.MethodPost, "/api/v1/players/top", `{"team":`+strconv.FormatInt(team.ID, 10)+`}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if names := rosterNames(decodeRoster(t, rec)); len(names) != 1 || names[0] != "P10" {
		t.Fatalf("expected [P10], got %v", names)
	}
}
