package handlers

import (
	"log/slog"
	"net/http"

	"ctjot-server/internal/seed"
	"ctjot-server/internal/shared/response"
)

type StatsHandler struct {
	service *seed.Service
}

func NewStatsHandler(service *seed.Service) *StatsHandler {
	return &StatsHandler{service: service}
}

func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "stats")

	stats, err := h.service.Stats(r.Context())
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, stats)
}
