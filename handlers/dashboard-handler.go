package handlers

import (
	"net/http"

	"taskhub-project/backend/logging"
	"taskhub-project/backend/services"
)

type DashboardHandler struct {
	Service *services.DashboardService
}

func NewDashboardHandler(service *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{Service: service}
}

// GetStats serves GET /api/dashboard. Admin only; any failing query aborts
// the whole snapshot.
func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := services.DashboardFilter{
		TaskStatus: query.Get("status"),
		From:       query.Get("from"),
		To:         query.Get("to"),
		UserID:     query.Get("user"),
	}

	stats, err := h.Service.GetStats(r.Context(), filter)
	if err != nil {
		logging.Logger.Errorf("Event ID: DASHBOARD_STATS_FAILED, Description: Dashboard aggregation failed: %v", err)
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
