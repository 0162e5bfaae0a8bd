package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	healthy := NewHealthHandler("1.0.0", map[string]Checker{
		"database": func(context.Context) error { return nil },
	})
	degraded := NewHealthHandler("1.0.0", map[string]Checker{
		"database": func(context.Context) error { return nil },
		"cache":    func(context.Context) error { return errors.New("connection refused") },
	})

	r := gin.New()
	r.GET("/ok/health", healthy.HealthCheck)
	r.GET("/ok/ready", healthy.ReadinessCheck)
	r.GET("/bad/health", degraded.HealthCheck)
	r.GET("/bad/ready", degraded.ReadinessCheck)
	r.GET("/live", degraded.LivenessCheck)

	tests := []struct {
		path string
		want int
	}{
		{"/ok/health", http.StatusOK},
		{"/ok/ready", http.StatusOK},
		{"/bad/health", http.StatusServiceUnavailable},
		{"/bad/ready", http.StatusServiceUnavailable},
		{"/live", http.StatusOK},
	}
	for _, tt := range tests {
		w := doJSON(r, http.MethodGet, tt.path, nil)
		if w.Code != tt.want {
			t.Errorf("%s: expected status %d, got %d", tt.path, tt.want, w.Code)
		}
	}

	w := doJSON(r, http.MethodGet, "/bad/health", nil)
	var resp HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if resp.Services["database"] != "healthy" {
		t.Errorf("Expected database healthy, got %q", resp.Services["database"])
	}
	if resp.Services["cache"] == "healthy" {
		t.Error("Expected cache to be reported unhealthy")
	}
}
