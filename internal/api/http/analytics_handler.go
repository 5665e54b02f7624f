package http

import (
	"net/http"

	"wheelshare-backend/internal/service"
)

type AnalyticsHandler struct {
	analytics service.AnalyticsService
}

func NewAnalyticsHandler(analytics service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

func (h *AnalyticsHandler) AdminOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.analytics.AdminOverview(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

func (h *AnalyticsHandler) OwnerOverview(w http.ResponseWriter, r *http.Request) {
	actor, _ := userFrom(r.Context())
	overview, err := h.analytics.OwnerOverview(r.Context(), actor.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}
