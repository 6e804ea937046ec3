package handlers

import (
	"database/sql"
	"net/http"
)

// HealthHandler reports liveness and, when a database handle is wired,
// readiness. A nil DB skips the readiness probe so tests and local setups
// without Postgres still get a liveness answer.
type HealthHandler struct {
	DB *sql.DB
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if h.DB != nil {
		if err := h.DB.PingContext(r.Context()); err != nil {
			writeError(w, r, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
