package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hoshifest/backend/models"
	"github.com/hoshifest/backend/utils"
)

// GameController handles score submission, play-limit queries, the public game
// catalog and the per-game leaderboard.
type GameController struct {
	db *gorm.DB
}

// NewGameController creates a new controller instance.
func NewGameController(db *gorm.DB) *GameController {
	return &GameController{db: db}
}

type submitRequest struct {
	GameID  uint           `json:"game_id"`
	GameKey string         `json:"game_key"`
	Score   *int           `json:"score" binding:"required"`
	Details map[string]any `json:"details" binding:"required"`
}

// submission captures the outcome of one submission transaction.
type submission struct {
	result  models.GameResult
	setting models.GameSetting
	action  string
}

// SubmitResult records a play result, enforcing the play limit and the
// best-score-wins update policy. The whole check-and-write runs inside one
// transaction with the result row locked, so two simultaneous submissions
// cannot both slip under the limit.
func (g *GameController) SubmitResult(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req submitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}
	if req.GameID == 0 && strings.TrimSpace(req.GameKey) == "" {
		utils.Error(ctx, http.StatusBadRequest, 40021, "game_id or game_key is required")
		return
	}

	game, err := g.resolveGame(req.GameID, req.GameKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40420, "game not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50020, err.Error())
		return
	}

	detailsJSON, err := json.Marshal(req.Details)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40022, "invalid details payload")
		return
	}

	var sub submission
	err = g.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("game_id = ?", game.ID).First(&sub.setting).Error; err != nil {
			return err
		}

		if !sub.setting.IsEnabled {
			sub.action = actionRejectedDisabled
			return nil
		}

		var existing models.GameResult
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND game_id = ?", userID, game.ID).
			First(&existing).Error
		hasPrior := err == nil
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		attemptsSoFar := 0
		if hasPrior {
			attemptsSoFar = existing.Attempts
		}
		if attemptsSoFar >= sub.setting.PlayLimit {
			sub.action = actionRejectedLimit
			sub.result = existing
			return nil
		}

		if !hasPrior {
			sub.result = models.GameResult{
				UserID:   userID,
				GameID:   game.ID,
				Score:    *req.Score,
				Attempts: 1,
				Details:  datatypes.JSON(detailsJSON),
			}
			sub.action = actionInserted
			return tx.Create(&sub.result).Error
		}

		if isImprovement(*req.Score, existing.Score, models.DetailTime(req.Details), existing.TimeTaken()) {
			existing.Score = *req.Score
			existing.Details = datatypes.JSON(detailsJSON)
			existing.Attempts++
			sub.action = actionUpdated
		} else {
			// Not a better run: the attempt still counts, the stored best stays.
			existing.Attempts++
			sub.action = actionRejectedScore
		}
		sub.result = existing
		return tx.Save(&existing).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40421, "game settings not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50021, err.Error())
		return
	}

	data := gin.H{
		"action":     sub.action,
		"result":     sub.result,
		"is_enabled": sub.setting.IsEnabled,
		"play_limit": sub.setting.PlayLimit,
		"attempts":   sub.result.Attempts,
	}

	switch sub.action {
	case actionInserted, actionUpdated:
		utils.CacheDelete(utils.CacheKeyLeaderboard + game.Key)
		utils.Success(ctx, data)
	case actionRejectedScore:
		utils.ErrorData(ctx, http.StatusConflict, 40920, "not a better score", data)
	case actionRejectedDisabled:
		utils.ErrorData(ctx, http.StatusForbidden, 40320, "game is disabled", data)
	case actionRejectedLimit:
		utils.ErrorData(ctx, http.StatusForbidden, 40321, "play limit reached", data)
	}
}

// CheckPlayLimit is the pre-flight play check the client runs before starting
// a game. Advisory only; SubmitResult re-validates inside its transaction.
func (g *GameController) CheckPlayLimit(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		GameKey string `json:"gameKey" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40023, "gameKey is required")
		return
	}

	g.respondPlayState(ctx, userID, req.GameKey)
}

// UserPlayCount is the query-parameter variant of CheckPlayLimit.
func (g *GameController) UserPlayCount(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	gameKey := strings.TrimSpace(ctx.Query("gameKey"))
	if gameKey == "" {
		utils.Error(ctx, http.StatusBadRequest, 40023, "gameKey is required")
		return
	}

	g.respondPlayState(ctx, userID, gameKey)
}

func (g *GameController) respondPlayState(ctx *gin.Context, userID uint, gameKey string) {
	game, err := g.resolveGame(0, gameKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40420, "game not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50022, err.Error())
		return
	}

	var setting models.GameSetting
	if err := g.db.Where("game_id = ?", game.ID).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40421, "game settings not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50022, err.Error())
		return
	}

	// The attempts column on the single stored row is the authoritative count.
	playCount := 0
	var result models.GameResult
	err = g.db.Where("user_id = ? AND game_id = ?", userID, game.ID).First(&result).Error
	if err == nil {
		playCount = result.Attempts
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(ctx, http.StatusInternalServerError, 50022, err.Error())
		return
	}

	utils.Success(ctx, gin.H{
		"canPlay":        setting.IsEnabled && canPlay(playCount, setting.PlayLimit),
		"isEnabled":      setting.IsEnabled,
		"playCount":      playCount,
		"playLimit":      setting.PlayLimit,
		"remainingPlays": remainingPlays(playCount, setting.PlayLimit),
	})
}

// ListGames returns the public game catalog.
func (g *GameController) ListGames(ctx *gin.Context) {
	var games []models.Game
	if err := g.db.Order("id").Find(&games).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50023, err.Error())
		return
	}
	utils.Success(ctx, gin.H{"games": games})
}

// GameSettings returns the public settings map keyed by game key. Clients poll
// this endpoint, so responses come from a short-lived cache that admin setting
// writes invalidate.
func (g *GameController) GameSettings(ctx *gin.Context) {
	if b, ok := utils.CacheGetBytes(utils.CacheKeyGameSettings); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	var settings []models.GameSetting
	if err := g.db.Preload("Game").Find(&settings).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50024, err.Error())
		return
	}

	byKey := gin.H{}
	for _, s := range settings {
		byKey[s.Game.Key] = gin.H{
			"is_enabled": s.IsEnabled,
			"play_limit": s.PlayLimit,
		}
	}

	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: gin.H{"gameSettings": byKey}}
	utils.CacheSetJSON(utils.CacheKeyGameSettings, wrapper, 30*time.Second)
	utils.Success(ctx, gin.H{"gameSettings": byKey})
}

// leaderboardEntry is one row of the public per-game leaderboard.
type leaderboardEntry struct {
	Rank       int       `json:"rank"`
	UserID     uint      `json:"user_id"`
	Username   string    `json:"username"`
	ReadableID string    `json:"readable_id"`
	Score      int       `json:"score"`
	TimeTaken  float64   `json:"time_taken"`
	PlayedAt   time.Time `json:"played_at"`
}

// Leaderboard returns results for one game sorted best-first. Ordering uses
// the same two-key comparison as the submission policy: score descending, then
// elapsed time ascending.
func (g *GameController) Leaderboard(ctx *gin.Context) {
	gameKey := strings.TrimSpace(ctx.Param("gameKey"))
	if gameKey == "" {
		utils.Error(ctx, http.StatusBadRequest, 40023, "gameKey is required")
		return
	}

	cacheKey := utils.CacheKeyLeaderboard + gameKey
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	game, err := g.resolveGame(0, gameKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40420, "game not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50025, err.Error())
		return
	}

	var results []models.GameResult
	if err := g.db.Preload("User").Where("game_id = ?", game.ID).Find(&results).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50025, err.Error())
		return
	}

	entries := make([]leaderboardEntry, 0, len(results))
	for _, r := range results {
		if r.User.ID == 0 {
			continue // orphaned result
		}
		entries = append(entries, leaderboardEntry{
			UserID:     r.UserID,
			Username:   r.User.Username,
			ReadableID: r.User.ReadableID,
			Score:      r.Score,
			TimeTaken:  r.TimeTaken(),
			PlayedAt:   r.CreatedAt,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].TimeTaken < entries[j].TimeTaken
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	payload := gin.H{"game": game.Key, "entries": entries}
	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON(cacheKey, wrapper, 30*time.Second)
	utils.Success(ctx, payload)
}

// resolveGame loads a game by id when given, otherwise by key.
func (g *GameController) resolveGame(id uint, key string) (models.Game, error) {
	var game models.Game
	var err error
	if id != 0 {
		err = g.db.First(&game, id).Error
	} else {
		err = g.db.Where("key = ?", strings.TrimSpace(key)).First(&game).Error
	}
	return game, err
}
