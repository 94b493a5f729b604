package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"ctjot-server/internal/rando"
	"ctjot-server/internal/shared/errors"
	"ctjot-server/internal/shared/response"
)

// maxUploadBytes bounds the multipart upload: a headered ROM plus form
// fields fits comfortably in 8 MiB.
const maxUploadBytes = 8 << 20

// PatchROM handles the seed download page: the player uploads their
// own vanilla ROM together with cosmetic choices and gets back the
// patched ROM for this seed.
func (h *SeedHandler) PatchROM(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "patch_rom")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	shareID := r.PathValue("share_id")
	if shareID == "" {
		response.Error(w, r, logger, errors.Validation("share ID is required"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid multipart form", err))
		return
	}

	file, _, err := r.FormFile("rom_file")
	if err != nil {
		response.Error(w, r, logger, errors.WrapValidation("ROM file is required", err))
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Warn("Failed to close uploaded file", "error", err)
		}
	}()

	romData, err := io.ReadAll(file)
	if err != nil {
		response.Error(w, r, logger, errors.WrapValidation("failed to read uploaded ROM", err))
		return
	}

	form := romFormFromRequest(r, shareID)

	name, patched, err := h.service.PatchROM(ctx, romData, form)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Attachment(w, name, patched)
}

// romFormFromRequest maps the multipart fields onto a RomForm. Boolean
// options only apply when the field was submitted, matching the form's
// "leave untouched" semantics.
func romFormFromRequest(r *http.Request, shareID string) *rando.RomForm {
	form := &rando.RomForm{
		ShareID: shareID,

		ReduceFlashes:     formChecked(r, "reduce_flashes"),
		ZenanAltMusic:     formChecked(r, "zenan_alt_battle_music"),
		DeathPeakAltMusic: formChecked(r, "death_peak_alt_music"),
		QuietMode:         formChecked(r, "quiet_mode"),

		CronoName: r.FormValue("crono_name"),
		MarleName: r.FormValue("marle_name"),
		LuccaName: r.FormValue("lucca_name"),
		RoboName:  r.FormValue("robo_name"),
		FrogName:  r.FormValue("frog_name"),
		AylaName:  r.FormValue("ayla_name"),
		MagusName: r.FormValue("magus_name"),
		EpochName: r.FormValue("epoch_name"),

		StereoAudio:      formOptionalBool(r, "stereo_audio"),
		SaveMenuCursor:   formOptionalBool(r, "save_menu_cursor"),
		SaveBattleCursor: formOptionalBool(r, "save_battle_cursor"),
		SkillItemInfo:    formOptionalBool(r, "skill_item_info"),
		ConsistentPaging: formOptionalBool(r, "consistent_paging"),

		BattleSpeed:         formInt(r, "battle_speed"),
		BackgroundSelection: formInt(r, "background_selection"),
		BattleMessageSpeed:  formInt(r, "battle_message_speed"),
		BattleGaugeStyle:    formOptionalInt(r, "battle_gauge_style"),
	}

	return form
}

func formChecked(r *http.Request, key string) bool {
	switch r.FormValue(key) {
	case "on", "true", "1":
		return true
	}
	return false
}

func formPresent(r *http.Request, key string) bool {
	if r.MultipartForm == nil {
		return false
	}
	_, ok := r.MultipartForm.Value[key]
	return ok
}

func formOptionalBool(r *http.Request, key string) *bool {
	if !formPresent(r, key) {
		return nil
	}
	value := formChecked(r, key)
	return &value
}

// formInt returns 0 for absent or unparseable fields; zero means
// "unset" for the 1-based integer options.
func formInt(r *http.Request, key string) int {
	value, err := strconv.Atoi(r.FormValue(key))
	if err != nil {
		return 0
	}
	return value
}

func formOptionalInt(r *http.Request, key string) *int {
	if !formPresent(r, key) {
		return nil
	}
	value, err := strconv.Atoi(r.FormValue(key))
	if err != nil {
		return nil
	}
	return &value
}
