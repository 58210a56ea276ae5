package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"grafeio-data/internal/service"
)

type StatsHandler struct {
	svc    service.StatsService
	logger *zap.Logger
}

func NewStatsHandler(svc service.StatsService, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{svc: svc, logger: logger}
}

func (h *StatsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Dashboard(r.Context())
	if err != nil {
		writeJSON(w, http.StatusOK, Fail("failed to build dashboard"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(stats))
}

func (h *StatsHandler) Activity(w http.ResponseWriter, r *http.Request) {
	window := r.URL.Query().Get("window")
	activity, err := h.svc.Activity(r.Context(), window)
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(activity))
}
