package handler

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/messmate/mess-client/internal/adapters/api"
	"github.com/messmate/mess-client/internal/adapters/messaging"
)

// HealthHandler reports gateway health following Kubernetes probe
// conventions: liveness is "is the process up", readiness checks the
// backend API and whichever optional dependencies are configured.
type HealthHandler struct {
	client      *api.Client
	redisClient *redis.Client    // nil when the file token store is used
	relay       *messaging.Relay // nil when event auditing is disabled
	startTime   time.Time
	version     string
}

func NewHealthHandler(client *api.Client, redisClient *redis.Client, relay *messaging.Relay) *HealthHandler {
	version := os.Getenv("APP_VERSION")
	if version == "" {
		version = "unknown"
	}
	return &HealthHandler{
		client:      client,
		redisClient: redisClient,
		relay:       relay,
		startTime:   time.Now(),
		version:     version,
	}
}

type HealthResponse struct {
	Status    string           `json:"status"`
	Timestamp string           `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
}

type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Health is a simple liveness check - just confirms the process is running
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	checks := map[string]Check{"process": {Status: "UP"}}
	if h.relay != nil && !h.relay.IsHealthy() {
		checks["event_relay"] = Check{Status: "DOWN", Message: "Relay loop is not running"}
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "UP",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version,
		Checks:    checks,
	})
}

// Ready checks whether the gateway can serve traffic (readiness probe).
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	checks := make(map[string]Check)
	status := "UP"
	httpStatus := http.StatusOK

	backendCheck := h.checkBackend()
	checks["backend"] = backendCheck
	if backendCheck.Status != "UP" {
		status = "DOWN"
		httpStatus = http.StatusServiceUnavailable
	}

	if h.redisClient != nil {
		redisCheck := h.checkRedis()
		checks["redis"] = redisCheck
		if redisCheck.Status != "UP" {
			status = "DOWN"
			httpStatus = http.StatusServiceUnavailable
		}
	}

	if h.relay != nil && !h.relay.IsReady() {
		// A stuck audit stream degrades readiness but is worth
		// reporting separately from the backend.
		checks["event_relay"] = Check{Status: "DOWN", Message: "Relay is stuck or stopped"}
		status = "DOWN"
		httpStatus = http.StatusServiceUnavailable
	}

	response := map[string]any{
		"status": status,
		"checks": checks,
	}

	writeJSON(w, httpStatus, response)
}

// Live is an alias for Health - simple liveness check
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	h.Health(w, r)
}

func (h *HealthHandler) checkBackend() Check {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := h.client.Ping(ctx); err != nil {
		return Check{
			Status:  "DOWN",
			Message: "Cannot reach backend API",
		}
	}
	return Check{Status: "UP"}
}

func (h *HealthHandler) checkRedis() Check {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := h.redisClient.Ping(ctx).Err(); err != nil {
		return Check{
			Status:  "DOWN",
			Message: "Cannot connect to Redis",
		}
	}
	return Check{Status: "UP"}
}
