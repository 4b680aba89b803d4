package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/adaptiveplay/tictactoe/backend/internal/config"
)

func corsRouter(t *testing.T, origins ...string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	old := config.AppConfig
	config.AppConfig = &config.Config{AllowedOrigins: origins}
	t.Cleanup(func() { config.AppConfig = old })

	router := gin.New()
	router.Use(CORSMiddleware())
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func doPing(router *gin.Engine, method, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/ping", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	router := corsRouter(t, "http://localhost:5173")
	got := doPing(router, http.MethodGet, "http://localhost:5173")
	if got.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", got.Code)
	}
	if header := got.Header().Get("Access-Control-Allow-Origin"); header != "http://localhost:5173" {
		t.Fatalf("expected origin echoed, got %q", header)
	}
}

func TestCORSRejectsUnknownOrigin(t *testing.T) {
	router := corsRouter(t, "http://localhost:5173")
	got := doPing(router, http.MethodGet, "http://evil.example.com")
	if got.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", got.Code)
	}
}

func TestCORSAllowsRequestsWithoutOrigin(t *testing.T) {
	router := corsRouter(t, "http://localhost:5173")
	got := doPing(router, http.MethodGet, "")
	if got.Code != http.StatusOK {
		t.Fatalf("expected 200 for same-origin request, got %d", got.Code)
	}
}

func TestCORSAnswersPreflight(t *testing.T) {
	router := corsRouter(t, "http://localhost:5173")
	got := doPing(router, http.MethodOptions, "http://localhost:5173")
	if got.Code != http.StatusOK {
		t.Fatalf("expected 200 preflight, got %d", got.Code)
	}
	if header := got.Header().Get("Access-Control-Allow-Methods"); header == "" {
		t.Fatal("expected allowed methods header on preflight")
	}
}
