package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hoshifest/backend/models"
	"github.com/hoshifest/backend/utils"
)

// UpdateController serves the daily-updates announcement feed. Reads are
// public and polled by clients; writes are admin-only.
type UpdateController struct {
	db *gorm.DB
}

// NewUpdateController creates a new controller instance.
func NewUpdateController(db *gorm.DB) *UpdateController {
	return &UpdateController{db: db}
}

// List returns announcements newest first, behind a short-lived cache.
func (u *UpdateController) List(ctx *gin.Context) {
	if b, ok := utils.CacheGetBytes(utils.CacheKeyUpdates); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	var updates []models.Update
	if err := u.db.Order("created_at DESC").Find(&updates).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50040, err.Error())
		return
	}

	payload := gin.H{"updates": updates}
	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON(utils.CacheKeyUpdates, wrapper, 30*time.Second)
	utils.Success(ctx, payload)
}

// Create stores a new announcement. The message may carry markup, so it goes
// through the HTML sanitizer before it hits the database.
func (u *UpdateController) Create(ctx *gin.Context) {
	var req struct {
		Title   string `json:"title"`
		Message string `json:"message" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, "message is required")
		return
	}

	update := models.Update{
		Title:   strings.TrimSpace(req.Title),
		Message: utils.Sanitize(req.Message),
	}
	if err := u.db.Create(&update).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50041, err.Error())
		return
	}

	utils.CacheDelete(utils.CacheKeyUpdates)
	utils.Success(ctx, gin.H{"update": update})
}

// Delete removes an announcement by id.
func (u *UpdateController) Delete(ctx *gin.Context) {
	id := strings.TrimSpace(ctx.Param("id"))
	if id == "" {
		utils.Error(ctx, http.StatusBadRequest, 40041, "missing update id")
		return
	}

	res := u.db.Delete(&models.Update{}, id)
	if res.Error != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50042, res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(ctx, http.StatusNotFound, 40440, "update not found")
		return
	}

	utils.CacheDelete(utils.CacheKeyUpdates)
	utils.Success(ctx, gin.H{"message": "update deleted"})
}
