package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/hoshifest/backend/config"
)

func adminTestRouter(emailClaim string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// stand-in for AuthRequired: inject the verified token email
	r.Use(func(ctx *gin.Context) {
		if emailClaim != "" {
			ctx.Set(ContextEmailKey, emailClaim)
		}
		ctx.Next()
	})
	r.GET("/admin/check", AdminRequired(), func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"authorized": true})
	})
	return r
}

func TestAdminRequiredAllowsConfiguredAdmin(t *testing.T) {
	config.SetForTesting(config.AppConfig{AdminEmails: []string{"Staff@hoshifest.app"}})

	r := adminTestRouter("staff@hoshifest.app")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/check", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
}

func TestAdminRequiredRejectsNonAdminToken(t *testing.T) {
	config.SetForTesting(config.AppConfig{AdminEmails: []string{"staff@hoshifest.app"}})

	r := adminTestRouter("visitor@example.com")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/check", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status %d, got %d", http.StatusForbidden, w.Code)
	}
}

func TestAdminRequiredRejectsMissingClaim(t *testing.T) {
	config.SetForTesting(config.AppConfig{AdminEmails: []string{"staff@hoshifest.app"}})

	r := adminTestRouter("")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/check", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status %d, got %d", http.StatusForbidden, w.Code)
	}
}

func TestAdminRequiredFailsWithoutConfiguration(t *testing.T) {
	config.SetForTesting(config.AppConfig{})

	r := adminTestRouter("staff@hoshifest.app")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/check", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
}
