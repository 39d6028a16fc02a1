package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hoshifest/backend/config"
	"github.com/hoshifest/backend/models"
	"github.com/hoshifest/backend/utils"
)

// AdminController backs the dashboard: aggregated statistics, game setting
// management and destructive user/result operations. Every route is guarded by
// middleware.AdminRequired.
type AdminController struct {
	db *gorm.DB
}

// NewAdminController creates a new controller instance.
func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{db: db}
}

// Check is the authorization probe the dashboard calls on load. Reaching the
// handler at all means the gate passed.
func (a *AdminController) Check(ctx *gin.Context) {
	utils.Success(ctx, gin.H{"authorized": true})
}

// Overview returns per-user aggregated play statistics plus the flattened
// per-result list. Both tables are loaded fully and joined in handler memory;
// the user base of a single festival stays small enough for that.
func (a *AdminController) Overview(ctx *gin.Context) {
	var users []models.User
	if err := a.db.Order("created_at").Find(&users).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50060, err.Error())
		return
	}

	var results []models.GameResult
	if err := a.db.Preload("Game").Find(&results).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50061, err.Error())
		return
	}

	overviewUsers, scores := buildOverview(users, results)
	utils.Success(ctx, gin.H{
		"users":  overviewUsers,
		"scores": scores,
	})
}

// ListSettings returns every game's setting row with the game preloaded.
func (a *AdminController) ListSettings(ctx *gin.Context) {
	var settings []models.GameSetting
	if err := a.db.Preload("Game").Order("game_id").Find(&settings).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50062, err.Error())
		return
	}

	out := make([]gin.H, 0, len(settings))
	for _, s := range settings {
		out = append(out, gin.H{
			"game_key":   s.Game.Key,
			"game_name":  s.Game.Name,
			"is_enabled": s.IsEnabled,
			"play_limit": s.PlayLimit,
			"updated_at": s.UpdatedAt,
		})
	}
	utils.Success(ctx, gin.H{"settings": out})
}

// UpdateSetting toggles a game or changes its play limit.
func (a *AdminController) UpdateSetting(ctx *gin.Context) {
	var req struct {
		GameKey   string `json:"gameKey" binding:"required"`
		IsEnabled *bool  `json:"isEnabled"`
		PlayLimit *int   `json:"playLimit"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40060, "invalid request payload")
		return
	}
	if req.IsEnabled == nil && req.PlayLimit == nil {
		utils.Error(ctx, http.StatusBadRequest, 40061, "nothing to update")
		return
	}
	if req.PlayLimit != nil && *req.PlayLimit < 1 {
		utils.Error(ctx, http.StatusBadRequest, 40062, "play limit must be at least 1")
		return
	}

	var game models.Game
	if err := a.db.Where("key = ?", strings.TrimSpace(req.GameKey)).First(&game).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40420, "game not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50063, err.Error())
		return
	}

	var setting models.GameSetting
	if err := a.db.Where("game_id = ?", game.ID).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40421, "game settings not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50063, err.Error())
		return
	}

	if req.IsEnabled != nil {
		setting.IsEnabled = *req.IsEnabled
	}
	if req.PlayLimit != nil {
		setting.PlayLimit = *req.PlayLimit
	}
	if err := a.db.Save(&setting).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50063, err.Error())
		return
	}

	utils.CacheDelete(utils.CacheKeyGameSettings)
	utils.InvalidateByPrefix(utils.CacheKeyLeaderboard)

	utils.Success(ctx, gin.H{
		"setting": gin.H{
			"game_key":   game.Key,
			"is_enabled": setting.IsEnabled,
			"play_limit": setting.PlayLimit,
		},
	})
}

// DeleteUser removes one user and all of their game results.
func (a *AdminController) DeleteUser(ctx *gin.Context) {
	id := strings.TrimSpace(ctx.Param("id"))
	if id == "" {
		utils.Error(ctx, http.StatusBadRequest, 40063, "missing user id")
		return
	}

	var user models.User
	if err := a.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50064, err.Error())
		return
	}

	err := a.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.GameResult{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50064, err.Error())
		return
	}

	utils.InvalidateByPrefix(utils.CacheKeyLeaderboard)
	utils.Success(ctx, gin.H{"message": "user deleted"})
}

// DeleteAllUsers wipes every non-admin account and their results.
func (a *AdminController) DeleteAllUsers(ctx *gin.Context) {
	cfg := config.Get()

	var users []models.User
	if err := a.db.Find(&users).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50065, err.Error())
		return
	}

	deleted := 0
	err := a.db.Transaction(func(tx *gorm.DB) error {
		for _, user := range users {
			if cfg.IsAdminEmail(user.Email) {
				continue
			}
			if err := tx.Where("user_id = ?", user.ID).Delete(&models.GameResult{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&user).Error; err != nil {
				return err
			}
			deleted++
		}
		return nil
	})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50065, err.Error())
		return
	}

	utils.InvalidateByPrefix(utils.CacheKeyLeaderboard)
	utils.Success(ctx, gin.H{"message": "users deleted", "deleted": deleted})
}

// DeleteGameResult removes a single result row.
func (a *AdminController) DeleteGameResult(ctx *gin.Context) {
	id := strings.TrimSpace(ctx.Param("id"))
	if id == "" {
		utils.Error(ctx, http.StatusBadRequest, 40064, "missing result id")
		return
	}

	res := a.db.Delete(&models.GameResult{}, id)
	if res.Error != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50066, res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(ctx, http.StatusNotFound, 40422, "game result not found")
		return
	}

	utils.InvalidateByPrefix(utils.CacheKeyLeaderboard)
	utils.Success(ctx, gin.H{"message": "game result deleted"})
}

// DeleteAllGameResults wipes the results table.
func (a *AdminController) DeleteAllGameResults(ctx *gin.Context) {
	if err := a.db.Where("1 = 1").Delete(&models.GameResult{}).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50067, err.Error())
		return
	}

	utils.InvalidateByPrefix(utils.CacheKeyLeaderboard)
	utils.Success(ctx, gin.H{"message": "all game results deleted"})
}
