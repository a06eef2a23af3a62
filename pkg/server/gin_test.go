package server

import (
	"Moments/config"
	"Moments/handler"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := config.Default()
	cfg.App.Debug = true
	return NewGinEngine(cfg, &Handlers{
		Auth:         &handler.Auth{},
		User:         &handler.User{},
		Settings:     &handler.Settings{},
		Photo:        &handler.Photo{},
		Comment:      &handler.Comment{},
		Tag:          &handler.Tag{},
		Search:       &handler.Search{},
		Notification: &handler.Notification{},
		Admin:        &handler.Admin{},
		Media:        &handler.Media{},
	})
}

func TestCORSPreflight(t *testing.T) {
	r := newTestEngine()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/v1/photos", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("missing allow origin header")
	}
}

func TestHealthAndMetrics(t *testing.T) {
	r := newTestEngine()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Fatalf("healthz: %d %q", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "moments_http_requests_total") {
		t.Fatalf("request counter not exported")
	}
}

func TestUnknownRoute(t *testing.T) {
	r := newTestEngine()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v2/nothing", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
}
