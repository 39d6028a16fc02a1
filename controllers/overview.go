package controllers

import (
	"sort"
	"time"

	"github.com/hoshifest/backend/models"
)

// OverviewUser is one row of the admin dashboard's per-user statistics table.
// Users with no recorded results appear with zero counts and a null LastPlayed.
type OverviewUser struct {
	UserID      uint       `json:"user_id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	ReadableID  string     `json:"readable_id"`
	GamesPlayed int        `json:"gamesPlayed"`
	TotalScore  int        `json:"totalScore"`
	LastPlayed  *time.Time `json:"lastPlayed"`
	CreatedAt   time.Time  `json:"created_at"`
}

// OverviewScore is one flattened result row enriched with user display fields,
// from which the dashboard builds per-game leaderboards client-side.
type OverviewScore struct {
	ResultID   uint      `json:"result_id"`
	UserID     uint      `json:"user_id"`
	Username   string    `json:"username"`
	ReadableID string    `json:"readable_id"`
	GameKey    string    `json:"game_key"`
	GameName   string    `json:"game_name"`
	Score      int       `json:"score"`
	Attempts   int       `json:"attempts"`
	TimeTaken  float64   `json:"time_taken"`
	CreatedAt  time.Time `json:"created_at"`
}

// buildOverview aggregates result rows per user entirely in memory. Results
// whose owner no longer exists are dropped; users without results are merged
// in with zero stats. Sorted by total score, then games played, descending.
func buildOverview(users []models.User, results []models.GameResult) ([]OverviewUser, []OverviewScore) {
	byID := make(map[uint]*OverviewUser, len(users))
	order := make([]uint, 0, len(users))
	for _, u := range users {
		byID[u.ID] = &OverviewUser{
			UserID:     u.ID,
			Username:   u.Username,
			Email:      u.Email,
			ReadableID: u.ReadableID,
			CreatedAt:  u.CreatedAt,
		}
		order = append(order, u.ID)
	}

	scores := make([]OverviewScore, 0, len(results))
	for _, r := range results {
		stats, ok := byID[r.UserID]
		if r.UserID == 0 || !ok {
			continue // orphaned result
		}

		stats.GamesPlayed++
		stats.TotalScore += r.Score
		if stats.LastPlayed == nil || r.CreatedAt.After(*stats.LastPlayed) {
			played := r.CreatedAt
			stats.LastPlayed = &played
		}

		scores = append(scores, OverviewScore{
			ResultID:   r.ID,
			UserID:     r.UserID,
			Username:   stats.Username,
			ReadableID: stats.ReadableID,
			GameKey:    r.Game.Key,
			GameName:   r.Game.Name,
			Score:      r.Score,
			Attempts:   r.Attempts,
			TimeTaken:  r.TimeTaken(),
			CreatedAt:  r.CreatedAt,
		})
	}

	out := make([]OverviewUser, 0, len(order))
	for _, id := range order {
		out = append(out, *byID[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalScore != out[j].TotalScore {
			return out[i].TotalScore > out[j].TotalScore
		}
		return out[i].GamesPlayed > out[j].GamesPlayed
	})

	return out, scores
}
