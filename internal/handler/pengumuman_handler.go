package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/smkbisa/backend/internal/model"
	"github.com/smkbisa/backend/internal/repository"
	"github.com/smkbisa/backend/internal/service"
)

// PengumumanHandler handles public active announcements and admin CRUD.
type PengumumanHandler struct {
	pengumumanService service.PengumumanService
}

// NewPengumumanHandler creates a PengumumanHandler.
func NewPengumumanHandler(pengumumanService service.PengumumanService) *PengumumanHandler {
	return &PengumumanHandler{pengumumanService: pengumumanService}
}

type pengumumanListResponse struct {
	Pengumuman []model.Pengumuman `json:"pengumuman"`
}

// ListActive handles GET /api/pengumuman.
func (h *PengumumanHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	out, err := h.pengumumanService.ListActive(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list_failed")
		return
	}
	writeJSON(w, http.StatusOK, pengumumanListResponse{Pengumuman: out})
}

// AdminList handles GET /api/admin/pengumuman (inactive included).
func (h *PengumumanHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	out, err := h.pengumumanService.ListAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list_failed")
		return
	}
	writeJSON(w, http.StatusOK, pengumumanListResponse{Pengumuman: out})
}

// pengumumanRequest carries dates as "2006-01-02" strings (HTML date inputs).
type pengumumanRequest struct {
	Judul          string `json:"judul" validate:"required"`
	Isi            string `json:"isi" validate:"required"`
	TanggalMulai   string `json:"tanggal_mulai" validate:"required"`
	TanggalSelesai string `json:"tanggal_selesai"`
	Status         bool   `json:"status"`
}

func (req *pengumumanRequest) toModel(id string) (*model.Pengumuman, error) {
	mulai, err := time.Parse("2006-01-02", req.TanggalMulai)
	if err != nil {
		return nil, err
	}
	p := &model.Pengumuman{
		ID:           id,
		Judul:        req.Judul,
		Isi:          req.Isi,
		TanggalMulai: mulai,
		Status:       req.Status,
	}
	if req.TanggalSelesai != "" {
		selesai, err := time.Parse("2006-01-02", req.TanggalSelesai)
		if err != nil {
			return nil, err
		}
		p.TanggalSelesai = &selesai
	}
	return p, nil
}

// Create handles POST /api/admin/pengumuman.
func (h *PengumumanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req pengumumanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	p, err := req.toModel("")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_date")
		return
	}
	if err := h.pengumumanService.Create(r.Context(), p); err != nil {
		writeError(w, http.StatusInternalServerError, "create_failed")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// Update handles PUT /api/admin/pengumuman/{id}.
func (h *PengumumanHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req pengumumanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	p, err := req.toModel(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_date")
		return
	}
	err = h.pengumumanService.Update(r.Context(), p)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "update_failed")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Delete handles DELETE /api/admin/pengumuman/{id}.
func (h *PengumumanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.pengumumanService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, http.StatusInternalServerError, "delete_failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"ok": "true"})
}
