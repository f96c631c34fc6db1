package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/smkbisa/backend/internal/inbox"
	"github.com/smkbisa/backend/internal/model"
	"github.com/smkbisa/backend/internal/repository"
	"github.com/smkbisa/backend/internal/service"
)

// PPDBHandler handles public admission submission and the admin applicant
// list. Admin status changes go through the status controller.
type PPDBHandler struct {
	ppdbService service.PPDBService
	controller  *inbox.StatusController
}

// NewPPDBHandler creates a PPDBHandler.
func NewPPDBHandler(ppdbService service.PPDBService, controller *inbox.StatusController) *PPDBHandler {
	return &PPDBHandler{ppdbService: ppdbService, controller: controller}
}

type ppdbSubmitRequest struct {
	Nama           string `json:"nama" validate:"required"`
	AsalSekolah    string `json:"asal_sekolah" validate:"required"`
	JurusanPilihan string `json:"jurusan_pilihan" validate:"required"`
	NoHP           string `json:"no_hp" validate:"required"`
	Alamat         string `json:"alamat"`
}

// Submit handles POST /api/ppdb (public, rate limited).
func (h *PPDBHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req ppdbSubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	p := &model.PPDBPendaftar{
		Nama:           req.Nama,
		AsalSekolah:    req.AsalSekolah,
		JurusanPilihan: req.JurusanPilihan,
		NoHP:           req.NoHP,
		Alamat:         req.Alamat,
	}
	if err := h.ppdbService.Submit(r.Context(), p); err != nil {
		writeError(w, http.StatusInternalServerError, "submit_failed")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"ok": "true"})
}

type ppdbListResponse struct {
	Pendaftar []model.PPDBPendaftar `json:"pendaftar"`
}

// AdminList handles GET /api/admin/ppdb. The controller is refreshed from the
// backend on every list so newly submitted applicants appear.
func (h *PPDBHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.Load(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "list_failed")
		return
	}
	writeJSON(w, http.StatusOK, ppdbListResponse{Pendaftar: h.controller.Snapshot()})
}

type ppdbStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /api/admin/ppdb/{id}/status.
func (h *PPDBHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req ppdbStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	p, err := h.controller.SetStatus(r.Context(), id, req.Status)
	if errors.Is(err, inbox.ErrUnknownStatus) {
		writeError(w, http.StatusBadRequest, "invalid_status")
		return
	}
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

// Delete handles DELETE /api/admin/ppdb/{id}.
func (h *PPDBHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.controller.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "delete_failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"ok": "true"})
}
