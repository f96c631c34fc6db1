package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/smkbisa/backend/internal/model"
	"github.com/smkbisa/backend/internal/service"
	"github.com/smkbisa/backend/pkg/auth"
)

// ---------------------------------------------------------------------------
// Mock ProfileService
// ---------------------------------------------------------------------------

type mockProfileService struct {
	loginFunc  func(ctx context.Context, email, password string) (*model.Profile, error)
	setupFunc  func(ctx context.Context, nama, email, password string) (*model.Profile, error)
	getFunc    func(ctx context.Context, id string) (*model.Profile, error)
	listFunc   func(ctx context.Context) ([]model.Profile, error)
	createFunc func(ctx context.Context, nama, email, password, role string) (*model.Profile, error)
	updateFunc func(ctx context.Context, id, nama, role string) error
	deleteFunc func(ctx context.Context, id string) error
}

func (m *mockProfileService) Login(ctx context.Context, email, password string) (*model.Profile, error) {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, email, password)
	}
	return nil, service.ErrInvalidCredentials
}

func (m *mockProfileService) Setup(ctx context.Context, nama, email, password string) (*model.Profile, error) {
	if m.setupFunc != nil {
		return m.setupFunc(ctx, nama, email, password)
	}
	return nil, service.ErrSetupDone
}

func (m *mockProfileService) Get(ctx context.Context, id string) (*model.Profile, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return &model.Profile{ID: id}, nil
}

func (m *mockProfileService) List(ctx context.Context) ([]model.Profile, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockProfileService) Create(ctx context.Context, nama, email, password, role string) (*model.Profile, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, nama, email, password, role)
	}
	return &model.Profile{Nama: nama, Email: email, Role: role}, nil
}

func (m *mockProfileService) Update(ctx context.Context, id, nama, role string) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, nama, role)
	}
	return nil
}

func (m *mockProfileService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

const testSecret = "dev-secret-change-in-production-32bytes"

func TestAuthHandler_Login_Success_SetsSessionCookie(t *testing.T) {
	mock := &mockProfileService{
		loginFunc: func(ctx context.Context, email, password string) (*model.Profile, error) {
			return &model.Profile{ID: "op-1", Email: email, Role: model.RoleAdmin}, nil
		},
	}
	h := NewAuthHandler(mock, testSecret)

	body := `{"email":"admin@smk.sch.id","password":"rahasia123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d — body: %s", rec.Code, rec.Body.String())
	}

	var sessionCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.SessionCookieName() {
			sessionCookie = c
		}
	}
	if sessionCookie == nil {
		t.Fatal("expected session cookie set")
	}
	if !sessionCookie.HttpOnly {
		t.Error("expected HttpOnly session cookie")
	}
	userID, err := auth.VerifySessionToken(sessionCookie.Value, auth.SessionSecretBytes(testSecret))
	if err != nil {
		t.Fatalf("VerifySessionToken() error: %v", err)
	}
	if userID != "op-1" {
		t.Errorf("expected token for op-1, got %q", userID)
	}
}

func TestAuthHandler_Login_InvalidCredentials_Returns401(t *testing.T) {
	h := NewAuthHandler(&mockProfileService{}, testSecret)

	body := `{"email":"admin@smk.sch.id","password":"salah"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("expected no cookie on failed login")
	}
}

func TestAuthHandler_Login_MissingFields_Returns400(t *testing.T) {
	h := NewAuthHandler(&mockProfileService{}, testSecret)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"admin@smk.sch.id"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	h := NewAuthHandler(&mockProfileService{}, testSecret)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge != -1 {
		t.Errorf("expected expired session cookie, got %+v", cookies)
	}
}

func TestAuthHandler_Me_ReturnsProfile(t *testing.T) {
	mock := &mockProfileService{
		getFunc: func(ctx context.Context, id string) (*model.Profile, error) {
			return &model.Profile{ID: id, Nama: "Admin", Role: model.RoleAdmin}, nil
		},
	}
	h := NewAuthHandler(mock, testSecret)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req = req.WithContext(auth.WithUserID(req.Context(), "op-1"))
	rec := httptest.NewRecorder()
	h.Me(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"op-1"`) {
		t.Errorf("expected profile in body, got %s", rec.Body.String())
	}
}

func TestAuthHandler_Me_NoSession_Returns401(t *testing.T) {
	h := NewAuthHandler(&mockProfileService{}, testSecret)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	rec := httptest.NewRecorder()
	h.Me(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_Setup_FirstRun_CreatesAdmin(t *testing.T) {
	mock := &mockProfileService{
		setupFunc: func(ctx context.Context, nama, email, password string) (*model.Profile, error) {
			return &model.Profile{ID: "op-1", Nama: nama, Email: email, Role: model.RoleAdmin}, nil
		},
	}
	h := NewAuthHandler(mock, testSecret)

	body := `{"nama":"Admin","email":"admin@smk.sch.id","password":"rahasia123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/setup", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Setup(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d — body: %s", rec.Code, rec.Body.String())
	}
}

func TestAuthHandler_Setup_AlreadyDone_Returns409(t *testing.T) {
	h := NewAuthHandler(&mockProfileService{}, testSecret)

	body := `{"nama":"Admin","email":"admin@smk.sch.id","password":"rahasia123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/setup", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Setup(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}
}
