package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hoshifest/backend/config"
	"github.com/hoshifest/backend/utils"
)

// AdminRequired gates administrative routes. It runs after AuthRequired and
// checks the session token's email against the configured administrator list.
// The legacy header-only email compare was dropped: a client-supplied header
// proves nothing, so admin status is bound to a verified session claim.
func AdminRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		cfg := config.Get()
		if len(cfg.AdminEmails) == 0 {
			utils.Error(ctx, http.StatusInternalServerError, 50070, "admin email not configured")
			ctx.Abort()
			return
		}

		email := ctx.GetString(ContextEmailKey)
		if !cfg.IsAdminEmail(email) {
			utils.Error(ctx, http.StatusForbidden, 40370, "admin access denied")
			ctx.Abort()
			return
		}

		ctx.Next()
	}
}
