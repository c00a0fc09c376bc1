package handler

import (
	"net/http"

	"github.com/meridian/catalog/api/internal/database"
)

// HealthHandler reports service liveness and database reachability
type HealthHandler struct {
	db database.Database
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db database.Database) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	dbStatus := "ok"
	code := http.StatusOK

	if err := h.db.Ping(r.Context()); err != nil {
		status = "degraded"
		dbStatus = "unreachable"
		code = http.StatusServiceUnavailable
	}

	WriteJSON(w, code, map[string]string{
		"status":   status,
		"database": dbStatus,
	})
}
