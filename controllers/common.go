package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/hoshifest/backend/middleware"
)

// getUserID extracts the authenticated user id placed in the context by AuthRequired.
func getUserID(ctx *gin.Context) (uint, bool) {
	v, ok := ctx.Get(middleware.ContextUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
