package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/smkbisa/backend/internal/model"
	"github.com/smkbisa/backend/internal/repository"
	"github.com/smkbisa/backend/internal/service"
)

// GuruHandler handles the teacher/staff directory.
type GuruHandler struct {
	guruService service.GuruService
}

// NewGuruHandler creates a GuruHandler.
func NewGuruHandler(guruService service.GuruService) *GuruHandler {
	return &GuruHandler{guruService: guruService}
}

type guruListResponse struct {
	Guru []model.Guru `json:"guru"`
}

// List handles GET /api/guru (program name joined in).
func (h *GuruHandler) List(w http.ResponseWriter, r *http.Request) {
	out, err := h.guruService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list_failed")
		return
	}
	writeJSON(w, http.StatusOK, guruListResponse{Guru: out})
}

type guruRequest struct {
	Nama      string `json:"nama" validate:"required"`
	NIP       string `json:"nip"`
	Mapel     string `json:"mapel"`
	JurusanID string `json:"jurusan_id"`
	Foto      string `json:"foto"`
}

// Create handles POST /api/admin/guru.
func (h *GuruHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req guruRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	g := &model.Guru{
		Nama:      req.Nama,
		NIP:       req.NIP,
		Mapel:     req.Mapel,
		JurusanID: req.JurusanID,
		Foto:      req.Foto,
	}
	if err := h.guruService.Create(r.Context(), g); err != nil {
		writeError(w, http.StatusInternalServerError, "create_failed")
		return
	}
	writeJSON(w, http.StatusCreated, g)
}

// Update handles PUT /api/admin/guru/{id}.
func (h *GuruHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req guruRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	g := &model.Guru{
		ID:        r.PathValue("id"),
		Nama:      req.Nama,
		NIP:       req.NIP,
		Mapel:     req.Mapel,
		JurusanID: req.JurusanID,
		Foto:      req.Foto,
	}
	err := h.guruService.Update(r.Context(), g)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "update_failed")
		return
	}
	writeJSON(w, http.StatusOK, g)
}

// Delete handles DELETE /api/admin/guru/{id}.
func (h *GuruHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.guruService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, http.StatusInternalServerError, "delete_failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"ok": "true"})
}
