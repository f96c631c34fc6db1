package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/smkbisa/backend/internal/service"
	"github.com/smkbisa/backend/pkg/auth"
)

// validate checks request payloads across the handler package.
var validate = validator.New()

// AuthHandler serves operator login, logout and first-run setup.
type AuthHandler struct {
	profileService service.ProfileService
	sessionSecret  []byte
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(profileService service.ProfileService, sessionSecret string) *AuthHandler {
	return &AuthHandler{
		profileService: profileService,
		sessionSecret:  auth.SessionSecretBytes(sessionSecret),
	}
}

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName(),
		Value:    token,
		Path:     "/",
		MaxAge:   60 * 60 * 24 * 7, // 7 days
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   os.Getenv("ENV") == "production",
	})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	p, err := h.profileService.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, "invalid_credentials")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "login_failed")
		return
	}

	setSessionCookie(w, auth.CreateSessionToken(p.ID, h.sessionSecret))
	writeJSON(w, http.StatusOK, p)
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
	})
	writeJSON(w, http.StatusOK, map[string]string{"ok": "true"})
}

// Me handles GET /api/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	p, err := h.profileService.Get(r.Context(), userID)
	if err != nil {
		// The session may outlive its account.
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type setupRequest struct {
	Nama     string `json:"nama" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Setup handles POST /api/setup: it creates the first admin account and is
// refused once any account exists.
func (h *AuthHandler) Setup(w http.ResponseWriter, r *http.Request) {
	var req setupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	p, err := h.profileService.Setup(r.Context(), req.Nama, req.Email, req.Password)
	if errors.Is(err, service.ErrSetupDone) {
		writeError(w, http.StatusConflict, "setup_done")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "setup_failed")
		return
	}

	setSessionCookie(w, auth.CreateSessionToken(p.ID, h.sessionSecret))
	writeJSON(w, http.StatusCreated, p)
}
