// Package testutil provides migrated SQLite databases and fixtures for tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/codr1/leagueapi/internal/db"
	"github.com/codr1/leagueapi/internal/db/dbtypes"
	dbgen "github.com/codr1/leagueapi/internal/db/generated"
)

// NewTestDB creates a temporary SQLite database with migrations applied.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	database, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("create test db: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	return database
}

// CreateUser inserts a user whose email is derived from username.
func CreateUser(t *testing.T, database *db.DB, username string, isStaff bool) dbgen.User {
	t.Helper()

	user, err := database.Queries.CreateUser(context.Background(), dbgen.CreateUserParams{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		IsStaff:      isStaff,
		CreatedAt:    time.Now().Unix(),
	})
	if err != nil {
		t.Fatalf("create user %q: %v", username, err)
	}
	return user
}

func CreateTeam(t *testing.T, database *db.DB, name string, coachID int64) dbgen.Team {
	t.Helper()

	team, err := database.Queries.CreateTeam(context.Background(), dbgen.CreateTeamParams{Name: name, CoachID: coachID})
	if err != nil {
		t.Fatalf("create team %q: %v", name, err)
	}
	return team
}

// CreatePlayer inserts a player with fixed age and height and the given score.
func CreatePlayer(t *testing.T, database *db.DB, teamID int64, name, score string) dbgen.Player {
	t.Helper()

	player, err := database.Queries.CreatePlayer(context.Background(), dbgen.CreatePlayerParams{
		Name:         name,
		Age:          25,
		Height:       200,
		AverageScore: dbtypes.RequireScore(score),
		TeamID:       teamID,
	})
	if err != nil {
		t.Fatalf("create player %q: %v", name, err)
	}
	return player
}
