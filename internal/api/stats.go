package api

import (
	"net/http"
	"time"

	"wardrobe/internal/catalog"
	"wardrobe/internal/stats"
)

// StatsHandler handles the statistics endpoint.
type StatsHandler struct {
	Catalog *catalog.Catalog
}

// Get handles GET /api/stats.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, stats.Compute(h.Catalog.Items(), time.Now().UTC()))
}
