package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hoshifest/backend/config"
	"github.com/hoshifest/backend/models"
	"github.com/hoshifest/backend/utils"
)

// AuthController handles registration, login and session endpoints. Accounts
// are keyed by email; phone signups are folded into the email column through a
// synthesized address.
type AuthController struct {
	db *gorm.DB
}

// NewAuthController creates an AuthController.
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

const readableIDMaxRetries = 20

// Register handles account creation with either an email address or a phone number.
func (a *AuthController) Register(ctx *gin.Context) {
	type request struct {
		Username string `json:"username" binding:"required,min=2,max=32"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Password string `json:"password" binding:"required,min=6,max=64"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	cfg := config.Get()
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Phone = models.NormalizePhone(req.Phone)

	if (req.Email == "") == (req.Phone == "") {
		utils.Error(ctx, http.StatusBadRequest, 40002, "exactly one of email or phone is required")
		return
	}
	if req.Email != "" && !strings.Contains(req.Email, "@") {
		utils.Error(ctx, http.StatusBadRequest, 40003, "invalid email address")
		return
	}
	if req.Phone != "" {
		if len(req.Phone) < 8 || len(req.Phone) > 15 {
			utils.Error(ctx, http.StatusBadRequest, 40004, "invalid phone number")
			return
		}
		req.Email = models.SynthesizePhoneEmail(req.Phone, cfg.PhoneEmailDomain)
	}

	// Anti-abuse: ban check, cooldown, per-IP daily limit
	ip := ctx.ClientIP()
	if utils.RegistrationIsBanned(ip) {
		utils.Error(ctx, http.StatusTooManyRequests, 42920, "registration temporarily blocked for this address")
		return
	}
	if !utils.RegistrationCooldownTry(ip) {
		utils.Error(ctx, http.StatusTooManyRequests, 42910, "too many attempts, slow down")
		return
	}
	if !utils.RegistrationDailyLimitCheck(ip) {
		utils.Error(ctx, http.StatusTooManyRequests, 42921, "daily registration limit reached")
		return
	}

	var existing models.User
	if err := a.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		utils.Error(ctx, http.StatusConflict, 40901, "account already exists")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to hash password")
		return
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		RegisterIP:   ip,
	}

	// The 4-digit readable id is unique; retry on index collisions.
	created := false
	for i := 0; i < readableIDMaxRetries; i++ {
		user.ReadableID = models.NewReadableID()
		var clash models.User
		if err := a.db.Where("readable_id = ?", user.ReadableID).First(&clash).Error; err == nil {
			continue
		}
		if err := a.db.Create(&user).Error; err != nil {
			continue
		}
		created = true
		break
	}
	if !created {
		utils.Error(ctx, http.StatusInternalServerError, 50002, "failed to create user")
		fails := utils.RegistrationFailRecord(ip)
		if fails >= config.Get().RegisterFailedMaxPerIPPerHour {
			utils.RegistrationBan(ip)
		}
		return
	}
	utils.RegistrationDailyIncrement(ip)

	token, err := utils.GenerateToken(user.ID, user.Username, user.Email, tokenTTL())
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to issue token")
		return
	}

	utils.Success(ctx, gin.H{
		"token": token,
		"user":  publicUser(user, cfg.PhoneEmailDomain),
	})
}

// Login authenticates by email or phone number plus password.
func (a *AuthController) Login(ctx *gin.Context) {
	type request struct {
		Identifier string `json:"identifier" binding:"required"`
		Password   string `json:"password" binding:"required"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	cfg := config.Get()
	identifier := strings.ToLower(strings.TrimSpace(req.Identifier))
	if !strings.Contains(identifier, "@") {
		// Not an email: treat the identifier as a phone number.
		identifier = models.SynthesizePhoneEmail(identifier, cfg.PhoneEmailDomain)
	}

	var user models.User
	if err := a.db.Where("email = ?", identifier).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusUnauthorized, 40106, "invalid credentials")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50004, err.Error())
		return
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		utils.Error(ctx, http.StatusUnauthorized, 40106, "invalid credentials")
		return
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := a.db.Model(&user).Update("last_login_at", now).Error; err != nil {
		utils.Sugar.Warnf("failed to record last login for user %d: %v", user.ID, err)
	}

	token, err := utils.GenerateToken(user.ID, user.Username, user.Email, tokenTTL())
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to issue token")
		return
	}

	utils.Success(ctx, gin.H{
		"token": token,
		"user":  publicUser(user, cfg.PhoneEmailDomain),
	})
}

// Logout revokes the presented token until its natural expiry.
func (a *AuthController) Logout(ctx *gin.Context) {
	authHeader := ctx.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		utils.Error(ctx, http.StatusBadRequest, 40005, "missing bearer token")
		return
	}
	token := strings.TrimSpace(parts[1])

	claims, err := utils.ParseToken(token)
	if err != nil {
		utils.Error(ctx, http.StatusUnauthorized, 40105, "invalid token")
		return
	}
	utils.BlacklistToken(token, claims.ExpiresAt.Time)

	utils.Success(ctx, gin.H{"message": "logged out"})
}

// Me returns the authenticated user's profile.
func (a *AuthController) Me(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var user models.User
	if err := a.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50005, err.Error())
		return
	}

	utils.Success(ctx, publicUser(user, config.Get().PhoneEmailDomain))
}

func tokenTTL() time.Duration {
	return time.Duration(config.Get().TokenTTLHours) * time.Hour
}

// publicUser shapes a user record for API responses, hiding the synthesized
// email behind the original phone number.
func publicUser(u models.User, phoneDomain string) gin.H {
	out := gin.H{
		"id":            u.ID,
		"username":      u.Username,
		"readable_id":   u.ReadableID,
		"created_at":    u.CreatedAt,
		"last_login_at": u.LastLoginAt,
	}
	if models.IsPhoneEmail(u.Email, phoneDomain) {
		out["phone"] = u.Phone
	} else {
		out["email"] = u.Email
	}
	return out
}
