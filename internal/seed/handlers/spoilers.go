package handlers

import (
	"log/slog"
	"net/http"

	"ctjot-server/internal/shared/errors"
	"ctjot-server/internal/shared/response"
)

func (h *SeedHandler) SpoilerText(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "spoiler_text")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	shareID := r.PathValue("share_id")
	if shareID == "" {
		response.Error(w, r, logger, errors.Validation("share ID is required"))
		return
	}

	spoilers, err := h.service.SpoilerText(ctx, shareID)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Text(w, http.StatusOK, spoilers)
}

func (h *SeedHandler) SpoilerJSON(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "spoiler_json")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	shareID := r.PathValue("share_id")
	if shareID == "" {
		response.Error(w, r, logger, errors.Validation("share ID is required"))
		return
	}

	spoilers, err := h.service.SpoilerJSON(ctx, shareID)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	// The artifact is already JSON rendered by the engine.
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(spoilers))
}

func (h *SeedHandler) WebSpoilers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "web_spoilers")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	shareID := r.PathValue("share_id")
	if shareID == "" {
		response.Error(w, r, logger, errors.Validation("share ID is required"))
		return
	}

	spoilers, err := h.service.WebSpoilers(ctx, shareID)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, spoilers)
}
