package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/smkbisa/backend/internal/model"
	"github.com/smkbisa/backend/internal/repository"
	"github.com/smkbisa/backend/internal/service"
)

// SekolahHandler serves the single-row site identity and social link records.
type SekolahHandler struct {
	sekolahService service.SekolahService
}

// NewSekolahHandler creates a SekolahHandler.
func NewSekolahHandler(sekolahService service.SekolahService) *SekolahHandler {
	return &SekolahHandler{sekolahService: sekolahService}
}

// GetIdentitas handles GET /api/identitas. An empty record (not 404) is
// returned before first setup so the public site renders with defaults.
func (h *SekolahHandler) GetIdentitas(w http.ResponseWriter, r *http.Request) {
	rec, err := h.sekolahService.GetIdentitas(r.Context())
	if errors.Is(err, repository.ErrNotFound) {
		writeJSON(w, http.StatusOK, &model.IdentitasSekolah{})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "get_failed")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// SaveIdentitas handles PUT /api/admin/identitas (insert-or-update).
func (h *SekolahHandler) SaveIdentitas(w http.ResponseWriter, r *http.Request) {
	var rec model.IdentitasSekolah
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if err := h.sekolahService.SaveIdentitas(r.Context(), &rec); err != nil {
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// GetMedsos handles GET /api/medsos.
func (h *SekolahHandler) GetMedsos(w http.ResponseWriter, r *http.Request) {
	rec, err := h.sekolahService.GetMedsos(r.Context())
	if errors.Is(err, repository.ErrNotFound) {
		writeJSON(w, http.StatusOK, &model.MedsosSekolah{})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "get_failed")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// SaveMedsos handles PUT /api/admin/medsos (insert-or-update).
func (h *SekolahHandler) SaveMedsos(w http.ResponseWriter, r *http.Request) {
	var rec model.MedsosSekolah
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if err := h.sekolahService.SaveMedsos(r.Context(), &rec); err != nil {
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
