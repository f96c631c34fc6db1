package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/smkbisa/backend/internal/model"
	"github.com/smkbisa/backend/internal/repository"
	"github.com/smkbisa/backend/internal/service"
	"github.com/smkbisa/backend/pkg/auth"
)

// UsersHandler manages operator accounts. Every route requires the admin
// role; operators cannot manage accounts.
type UsersHandler struct {
	profileService service.ProfileService
}

// NewUsersHandler creates a UsersHandler.
func NewUsersHandler(profileService service.ProfileService) *UsersHandler {
	return &UsersHandler{profileService: profileService}
}

// requireAdmin writes the error response and returns false unless the
// context carries the admin role.
func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if !auth.IsAdmin(r.Context()) {
		writeError(w, http.StatusForbidden, "forbidden")
		return false
	}
	return true
}

type usersListResponse struct {
	Users []model.Profile `json:"users"`
}

// List handles GET /api/admin/users.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	out, err := h.profileService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list_failed")
		return
	}
	writeJSON(w, http.StatusOK, usersListResponse{Users: out})
}

type userCreateRequest struct {
	Nama     string `json:"nama" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required"`
}

// Create handles POST /api/admin/users.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	var req userCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	p, err := h.profileService.Create(r.Context(), req.Nama, req.Email, req.Password, req.Role)
	if errors.Is(err, service.ErrInvalidStatus) {
		writeError(w, http.StatusBadRequest, "invalid_role")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "create_failed")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

type userUpdateRequest struct {
	Nama string `json:"nama" validate:"required"`
	Role string `json:"role" validate:"required"`
}

// Update handles PUT /api/admin/users/{id} (name and role only).
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	id := r.PathValue("id")
	var req userUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	err := h.profileService.Update(r.Context(), id, req.Nama, req.Role)
	if errors.Is(err, service.ErrInvalidStatus) {
		writeError(w, http.StatusBadRequest, "invalid_role")
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
	writeJSON(w, http.StatusOK, map[string]string{"ok": "true"})
}

// Delete handles DELETE /api/admin/users/{id}. Deleting your own account is
// refused so the back office cannot lock itself out.
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	id := r.PathValue("id")
	if userID, _ := auth.UserIDFromContext(r.Context()); userID == id {
		writeError(w, http.StatusBadRequest, "cannot_delete_self")
		return
	}
	if err := h.profileService.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "delete_failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"ok": "true"})
}
