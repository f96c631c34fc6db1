package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/smkbisa/backend/internal/model"
	"github.com/smkbisa/backend/internal/repository"
	"github.com/smkbisa/backend/internal/service"
)

// BeritaHandler handles public news reads and admin news CRUD.
type BeritaHandler struct {
	beritaService service.BeritaService
}

// NewBeritaHandler creates a BeritaHandler.
func NewBeritaHandler(beritaService service.BeritaService) *BeritaHandler {
	return &BeritaHandler{beritaService: beritaService}
}

type beritaListResponse struct {
	Berita []model.Berita `json:"berita"`
}

// List handles GET /api/berita (published only, newest first).
func (h *BeritaHandler) List(w http.ResponseWriter, r *http.Request) {
	out, err := h.beritaService.ListPublished(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list_failed")
		return
	}
	writeJSON(w, http.StatusOK, beritaListResponse{Berita: out})
}

// BySlug handles GET /api/berita/{slug}.
func (h *BeritaHandler) BySlug(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	b, err := h.beritaService.GetBySlug(r.Context(), slug)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "get_failed")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// AdminList handles GET /api/admin/berita (drafts included).
func (h *BeritaHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	out, err := h.beritaService.ListAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list_failed")
		return
	}
	writeJSON(w, http.StatusOK, beritaListResponse{Berita: out})
}

type beritaRequest struct {
	Judul     string `json:"judul" validate:"required"`
	Konten    string `json:"konten" validate:"required"`
	Thumbnail string `json:"thumbnail"`
	Status    string `json:"status"`
	Penulis   string `json:"penulis"`
}

// Create handles POST /api/admin/berita. Slug is derived from the title and
// status defaults to draft.
func (h *BeritaHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req beritaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	b := &model.Berita{
		Judul:     req.Judul,
		Konten:    req.Konten,
		Thumbnail: req.Thumbnail,
		Status:    req.Status,
		Penulis:   req.Penulis,
	}
	if err := h.beritaService.Create(r.Context(), b); err != nil {
		writeError(w, http.StatusInternalServerError, "create_failed")
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

// Update handles PUT /api/admin/berita/{id}.
func (h *BeritaHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req beritaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	b := &model.Berita{
		ID:        id,
		Judul:     req.Judul,
		Konten:    req.Konten,
		Thumbnail: req.Thumbnail,
		Status:    req.Status,
		Penulis:   req.Penulis,
	}
	err := h.beritaService.Update(r.Context(), b)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "update_failed")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// Delete handles DELETE /api/admin/berita/{id}.
func (h *BeritaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.beritaService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, http.StatusInternalServerError, "delete_failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"ok": "true"})
}
