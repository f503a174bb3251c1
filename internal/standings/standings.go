// Package standings ranks teams by their game results.
package standings

import (
	"context"
	"errors"
	"fmt"
	"sort"

	dbgen "github.com/codr1/leagueapi/internal/db/generated"
)

type TeamStanding struct {
	TeamID            int64  `json:"team_id"`
	TeamName          string `json:"team_name"`
	Played            int    `json:"played"`
	Wins              int    `json:"wins"`
	Losses            int    `json:"losses"`
	Draws             int    `json:"draws"`
	PointsFor         int64  `json:"points_for"`
	PointsAgainst     int64  `json:"points_against"`
	PointDifferential int64  `json:"point_differential"`
}

type record struct {
	TeamStanding
	beat map[int64]int
}

// Calculate loads every team with its games and returns the ordered table.
func Calculate(ctx context.Context, q *dbgen.Queries) ([]TeamStanding, error) {
	if q == nil {
		return nil, errors.New("queries are required")
	}

	rows, err := q.GetStandingsData(ctx)
	if err != nil {
		return nil, fmt.Errorf("load standings data: %w", err)
	}
	return Compute(rows)
}

// Compute orders teams by wins, then wins against the other tied teams,
// then point differential, then name. Teams without games are listed
// with zero records.
func Compute(rows []dbgen.GetStandingsDataRow) ([]TeamStanding, error) {
	records := make(map[int64]*record)
	for _, row := range rows {
		rec, ok := records[row.TeamID]
		if !ok {
			rec = &record{
				TeamStanding: TeamStanding{TeamID: row.TeamID, TeamName: row.TeamName},
				beat:         make(map[int64]int),
			}
			records[row.TeamID] = rec
		}

		if !row.GameID.Valid {
			continue
		}
		if !row.HomeTeamID.Valid || !row.AwayTeamID.Valid || !row.HomeScore.Valid || !row.AwayScore.Valid {
			return nil, fmt.Errorf("game %d is missing scores", row.GameID.Int64)
		}

		own, other, opponentID, err := sideOf(row, rec.TeamID)
		if err != nil {
			return nil, err
		}

		rec.Played++
		rec.PointsFor += own
		rec.PointsAgainst += other
		rec.PointDifferential = rec.PointsFor - rec.PointsAgainst
		switch {
		case own > other:
			rec.Wins++
			rec.beat[opponentID]++
		case own < other:
			rec.Losses++
		default:
			rec.Draws++
		}
	}

	ordered := make([]*record, 0, len(records))
	for _, rec := range records {
		ordered = append(ordered, rec)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Wins != ordered[j].Wins {
			return ordered[i].Wins > ordered[j].Wins
		}
		return ordered[i].TeamName < ordered[j].TeamName
	})
	breakTies(ordered)

	table := make([]TeamStanding, 0, len(ordered))
	for _, rec := range ordered {
		table = append(table, rec.TeamStanding)
	}
	return table, nil
}

func sideOf(row dbgen.GetStandingsDataRow, teamID int64) (int64, int64, int64, error) {
	switch teamID {
	case row.HomeTeamID.Int64:
		return row.HomeScore.Int64, row.AwayScore.Int64, row.AwayTeamID.Int64, nil
	case row.AwayTeamID.Int64:
		return row.AwayScore.Int64, row.HomeScore.Int64, row.HomeTeamID.Int64, nil
	default:
		return 0, 0, 0, fmt.Errorf("game %d does not include team %d", row.GameID.Int64, teamID)
	}
}

// breakTies reorders each run of teams with equal wins in place.
func breakTies(ordered []*record) {
	for start := 0; start < len(ordered); {
		end := start + 1
		for end < len(ordered) && ordered[end].Wins == ordered[start].Wins {
			end++
		}
		if end-start > 1 {
			group := ordered[start:end]
			members := make(map[int64]struct{}, len(group))
			for _, rec := range group {
				members[rec.TeamID] = struct{}{}
			}
			sort.SliceStable(group, func(i, j int) bool {
				hi, hj := winsWithin(group[i], members), winsWithin(group[j], members)
				if hi != hj {
					return hi > hj
				}
				if group[i].PointDifferential != group[j].PointDifferential {
					return group[i].PointDifferential > group[j].PointDifferential
				}
				return group[i].TeamName < group[j].TeamName
			})
		}
		start = end
	}
}

func winsWithin(rec *record, members map[int64]struct{}) int {
	total := 0
	for opponentID, wins := range rec.beat {
		if _, ok := members[opponentID]; ok {
			total += wins
		}
	}
	return total
}
