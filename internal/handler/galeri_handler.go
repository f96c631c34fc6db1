package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/smkbisa/backend/internal/model"
	"github.com/smkbisa/backend/internal/repository"
	"github.com/smkbisa/backend/internal/service"
)

// GaleriHandler handles the photo gallery.
type GaleriHandler struct {
	galeriService service.GaleriService
}

// NewGaleriHandler creates a GaleriHandler.
func NewGaleriHandler(galeriService service.GaleriService) *GaleriHandler {
	return &GaleriHandler{galeriService: galeriService}
}

type galeriListResponse struct {
	Galeri []model.Galeri `json:"galeri"`
}

// List handles GET /api/galeri.
func (h *GaleriHandler) List(w http.ResponseWriter, r *http.Request) {
	out, err := h.galeriService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list_failed")
		return
	}
	writeJSON(w, http.StatusOK, galeriListResponse{Galeri: out})
}

type galeriRequest struct {
	Judul     string `json:"judul" validate:"required"`
	Deskripsi string `json:"deskripsi"`
	ImageURL  string `json:"image_url" validate:"required"`
}

// Create handles POST /api/admin/galeri.
func (h *GaleriHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req galeriRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	g := &model.Galeri{
		Judul:     req.Judul,
		Deskripsi: req.Deskripsi,
		ImageURL:  req.ImageURL,
	}
	if err := h.galeriService.Create(r.Context(), g); err != nil {
		writeError(w, http.StatusInternalServerError, "create_failed")
		return
	}
	writeJSON(w, http.StatusCreated, g)
}

// Update handles PUT /api/admin/galeri/{id}.
func (h *GaleriHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req galeriRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	g := &model.Galeri{
		ID:        r.PathValue("id"),
		Judul:     req.Judul,
		Deskripsi: req.Deskripsi,
		ImageURL:  req.ImageURL,
	}
	err := h.galeriService.Update(r.Context(), g)
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

// Delete handles DELETE /api/admin/galeri/{id}.
func (h *GaleriHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.galeriService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, http.StatusInternalServerError, "delete_failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"ok": "true"})
}
