package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/smkbisa/backend/internal/model"
	"github.com/smkbisa/backend/internal/repository"
	"github.com/smkbisa/backend/internal/service"
)

// JurusanHandler handles the academic program catalog.
type JurusanHandler struct {
	jurusanService service.JurusanService
}

// NewJurusanHandler creates a JurusanHandler.
func NewJurusanHandler(jurusanService service.JurusanService) *JurusanHandler {
	return &JurusanHandler{jurusanService: jurusanService}
}

type jurusanListResponse struct {
	Jurusan []model.Jurusan `json:"jurusan"`
}

// List handles GET /api/jurusan (also used by the admin UI).
func (h *JurusanHandler) List(w http.ResponseWriter, r *http.Request) {
	out, err := h.jurusanService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list_failed")
		return
	}
	writeJSON(w, http.StatusOK, jurusanListResponse{Jurusan: out})
}

type jurusanRequest struct {
	NamaJurusan string `json:"nama_jurusan" validate:"required"`
	Singkatan   string `json:"singkatan" validate:"required"`
	Deskripsi   string `json:"deskripsi"`
	Icon        string `json:"icon"`
}

// Create handles POST /api/admin/jurusan.
func (h *JurusanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req jurusanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	j := &model.Jurusan{
		NamaJurusan: req.NamaJurusan,
		Singkatan:   req.Singkatan,
		Deskripsi:   req.Deskripsi,
		Icon:        req.Icon,
	}
	if err := h.jurusanService.Create(r.Context(), j); err != nil {
		writeError(w, http.StatusInternalServerError, "create_failed")
		return
	}
	writeJSON(w, http.StatusCreated, j)
}

// Update handles PUT /api/admin/jurusan/{id}.
func (h *JurusanHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req jurusanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	j := &model.Jurusan{
		ID:          r.PathValue("id"),
		NamaJurusan: req.NamaJurusan,
		Singkatan:   req.Singkatan,
		Deskripsi:   req.Deskripsi,
		Icon:        req.Icon,
	}
	err := h.jurusanService.Update(r.Context(), j)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "update_failed")
		return
	}
	writeJSON(w, http.StatusOK, j)
}

// Delete handles DELETE /api/admin/jurusan/{id}.
func (h *JurusanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.jurusanService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, http.StatusInternalServerError, "delete_failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"ok": "true"})
}
