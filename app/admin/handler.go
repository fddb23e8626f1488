package admin

import (
	"encoding/json"
	"net/http"

	"github.com/electromaison/storefront-api/models"
)

type StatsProvider interface {
	Stats() (models.Stats, error)
}

type AdminHandler struct {
	repo StatsProvider
}

func NewAdminHandler(r StatsProvider) *AdminHandler {
	return &AdminHandler{repo: r}
}

// HandleStats returns the dashboard counters.
func (h *AdminHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.repo.Stats()
	if err != nil {
		jsonError(w, "Failed to fetch stats", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
