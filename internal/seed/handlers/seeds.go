package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"ctjot-server/internal/rando"
	"ctjot-server/internal/seed"
	"ctjot-server/internal/shared/errors"
	"ctjot-server/internal/shared/response"
)

type SeedHandler struct {
	service *seed.Service
}

func NewSeedHandler(service *seed.Service) *SeedHandler {
	return &SeedHandler{service: service}
}

func (h *SeedHandler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "generate_seed")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	var form rando.GenerateForm
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid JSON in request body", err))
		return
	}

	summary, err := h.service.Generate(ctx, &form)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusCreated, summary)
}

func (h *SeedHandler) GetShare(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "get_share")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	shareID := r.PathValue("share_id")
	if shareID == "" {
		response.Error(w, r, logger, errors.Validation("share ID is required"))
		return
	}

	details, err := h.service.ShareDetails(ctx, shareID)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, details)
}

type cloneRequest struct {
	SpoilerLog bool `json:"spoiler_log"`
}

func (h *SeedHandler) Clone(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "clone_seed")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	shareID := r.PathValue("share_id")
	if shareID == "" {
		response.Error(w, r, logger, errors.Validation("share ID is required"))
		return
	}

	var req cloneRequest
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid JSON in request body", err))
		return
	}

	summary, err := h.service.Clone(ctx, shareID, req.SpoilerLog)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusCreated, summary)
}

func (h *SeedHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "delete_seed")

	if r.Method != http.MethodDelete {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	shareID := r.PathValue("share_id")
	if shareID == "" {
		response.Error(w, r, logger, errors.Validation("share ID is required"))
		return
	}

	if err := h.service.Delete(ctx, shareID); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusNoContent, nil)
}
