package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/hoshifest/backend/config"
)

func testRouterConfig(t *testing.T) config.AppConfig {
	t.Helper()
	return config.AppConfig{
		JWTSecret:      "test-secret",
		GinMode:        "test",
		GinPath:        filepath.Join(t.TempDir(), "gin.log"),
		AllowedOrigins: []string{"*"},
	}
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	body := map[string]any{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body %q: %v", w.Body.String(), err)
	}
	return body
}

func TestHealthEndpoint(t *testing.T) {
	config.SetForTesting(testRouterConfig(t))
	r := SetupRouter(nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	body := decodeBody(t, w)
	data, _ := body["data"].(map[string]any)
	if data["status"] != "ok" {
		t.Fatalf("unexpected health payload: %v", body)
	}
}

func TestUnknownAPIRouteReturnsJSON404(t *testing.T) {
	config.SetForTesting(testRouterConfig(t))
	r := SetupRouter(nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
	body := decodeBody(t, w)
	if body["message"] != "api route not found" {
		t.Fatalf("unexpected 404 payload: %v", body)
	}
}

func TestScoreSubmissionRequiresAuth(t *testing.T) {
	config.SetForTesting(testRouterConfig(t))
	r := SetupRouter(nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/game-results", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	config.SetForTesting(testRouterConfig(t))
	r := SetupRouter(nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/check", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}
