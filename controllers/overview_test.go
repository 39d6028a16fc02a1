package controllers

import (
	"testing"
	"time"

	"github.com/hoshifest/backend/models"
)

func overviewFixture() ([]models.User, []models.GameResult) {
	users := []models.User{
		{ID: 1, Username: "mika", Email: "mika@example.com", ReadableID: "0412"},
		{ID: 2, Username: "rin", Email: "rin@example.com", ReadableID: "7781"},
	}
	guess := models.Game{ID: 10, Key: "guess", Name: "Guess the Idol"}
	puzzle := models.Game{ID: 11, Key: "puzzle", Name: "Sliding Puzzle"}
	results := []models.GameResult{
		{ID: 100, UserID: 2, GameID: 10, Game: guess, Score: 10, Attempts: 1,
			CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
		{ID: 101, UserID: 2, GameID: 11, Game: puzzle, Score: 20, Attempts: 3,
			CreatedAt: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)},
	}
	return users, results
}

func TestBuildOverviewAggregatesAndSorts(t *testing.T) {
	users, results := overviewFixture()
	out, scores := buildOverview(users, results)

	if len(out) != 2 {
		t.Fatalf("expected 2 overview users, got %d", len(out))
	}
	// rin has 30 points across 2 games and must sort first
	if out[0].Username != "rin" {
		t.Fatalf("expected rin first, got %s", out[0].Username)
	}
	if out[0].TotalScore != 30 || out[0].GamesPlayed != 2 {
		t.Fatalf("rin stats wrong: total=%d games=%d", out[0].TotalScore, out[0].GamesPlayed)
	}
	if out[0].LastPlayed == nil || !out[0].LastPlayed.Equal(results[1].CreatedAt) {
		t.Fatalf("lastPlayed should be the max result timestamp, got %v", out[0].LastPlayed)
	}

	// mika has no results but still appears with zero stats
	if out[1].Username != "mika" {
		t.Fatalf("expected mika second, got %s", out[1].Username)
	}
	if out[1].TotalScore != 0 || out[1].GamesPlayed != 0 || out[1].LastPlayed != nil {
		t.Fatalf("zero-result user stats wrong: %+v", out[1])
	}

	if len(scores) != 2 {
		t.Fatalf("expected 2 flattened scores, got %d", len(scores))
	}
	if scores[0].Username != "rin" || scores[0].GameKey != "guess" {
		t.Fatalf("flattened score missing user/game enrichment: %+v", scores[0])
	}
}

func TestBuildOverviewDropsOrphanResults(t *testing.T) {
	users, results := overviewFixture()
	results = append(results,
		models.GameResult{ID: 102, UserID: 0, GameID: 10, Score: 99},
		models.GameResult{ID: 103, UserID: 42, GameID: 10, Score: 99},
	)

	out, scores := buildOverview(users, results)
	if len(scores) != 2 {
		t.Fatalf("orphan results must be dropped, got %d scores", len(scores))
	}
	for _, u := range out {
		if u.TotalScore > 30 {
			t.Fatalf("orphan score leaked into aggregation: %+v", u)
		}
	}
}

func TestBuildOverviewTieBreaksOnGamesPlayed(t *testing.T) {
	users := []models.User{
		{ID: 1, Username: "one-game"},
		{ID: 2, Username: "two-games"},
	}
	game := models.Game{ID: 10, Key: "guess"}
	results := []models.GameResult{
		{ID: 1, UserID: 1, GameID: 10, Game: game, Score: 30},
		{ID: 2, UserID: 2, GameID: 10, Game: game, Score: 10},
		{ID: 3, UserID: 2, GameID: 11, Game: models.Game{ID: 11, Key: "puzzle"}, Score: 20},
	}

	out, _ := buildOverview(users, results)
	if out[0].Username != "two-games" {
		t.Fatalf("equal totals must tie-break on games played, got %s first", out[0].Username)
	}
}
