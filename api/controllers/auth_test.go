package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/arjunmehta/rechargehub-backend/api/middleware"
	"github.com/arjunmehta/rechargehub-backend/internal/auth"
	"github.com/arjunmehta/rechargehub-backend/pkg/db/models"
	"github.com/arjunmehta/rechargehub-backend/pkg/enums"
	pkgerrors "github.com/arjunmehta/rechargehub-backend/pkg/errors"
)

type stubAuthService struct {
	registered  *models.User
	loginResult *auth.LoginResult
	err         error
	loggedOut   []string
}

func (s *stubAuthService) Register(ctx context.Context, input auth.RegisterInput) (*models.User, error) {
	return s.registered, s.err
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*auth.LoginResult, error) {
	return s.loginResult, s.err
}

func (s *stubAuthService) AdminLogin(ctx context.Context, email, password string) (*auth.LoginResult, error) {
	return s.loginResult, s.err
}

func (s *stubAuthService) Logout(ctx context.Context, accessID string) error {
	s.loggedOut = append(s.loggedOut, accessID)
	return s.err
}

func TestAuthRegisterReturnsCreatedUser(t *testing.T) {
	created := &models.User{
		ID:    uuid.New(),
		Name:  "Priya Sharma",
		Email: "priya@example.com",
		Role:  enums.UserRoleUser,
	}
	handler := AuthRegister(&stubAuthService{registered: created}, nil)

	body := []byte(`{"name":"Priya Sharma","email":"priya@example.com","phone":"9876543210","password":"secret-pass"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", rec.Code)
	}

	var envelope struct {
		Data struct {
			User struct {
				Email string `json:"email"`
			} `json:"user"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.User.Email != "priya@example.com" {
		t.Fatalf("unexpected email %q", envelope.Data.User.Email)
	}
	if bytes.Contains(rec.Body.Bytes(), []byte("password")) {
		t.Fatal("response leaked password material")
	}
}

func TestAuthRegisterPropagatesConflict(t *testing.T) {
	handler := AuthRegister(&stubAuthService{err: pkgerrors.New(pkgerrors.CodeConflict, "user already exists")}, nil)

	body := []byte(`{"name":"Priya","email":"priya@example.com","password":"secret-pass"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", rec.Code)
	}
}

func TestAuthLoginReturnsTokenInBody(t *testing.T) {
	result := &auth.LoginResult{
		User:        models.User{ID: uuid.New(), Email: "priya@example.com", Role: enums.UserRoleUser},
		AccessToken: "signed-token",
	}
	handler := AuthLogin(&stubAuthService{loginResult: result}, nil)

	body := []byte(`{"email":"priya@example.com","password":"secret-pass"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var envelope struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Token != "signed-token" {
		t.Fatalf("unexpected token %q", envelope.Data.Token)
	}
}

func TestAuthAdminLoginPropagatesForbidden(t *testing.T) {
	handler := AuthAdminLogin(&stubAuthService{err: pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")}, nil)

	body := []byte(`{"email":"priya@example.com","password":"secret-pass"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", rec.Code)
	}
}

func TestAuthLogoutRevokesSession(t *testing.T) {
	svc := &stubAuthService{}
	handler := AuthLogout(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req = req.WithContext(middleware.WithAccessID(req.Context(), "session-jti"))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if len(svc.loggedOut) != 1 || svc.loggedOut[0] != "session-jti" {
		t.Fatalf("expected logout of session-jti, got %v", svc.loggedOut)
	}
}

func TestAuthLogoutWithoutSessionUnauthorized(t *testing.T) {
	handler := AuthLogout(&stubAuthService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestAuthControllersNilService(t *testing.T) {
	for name, handler := range map[string]http.HandlerFunc{
		"register": AuthRegister(nil, nil),
		"login":    AuthLogin(nil, nil),
		"logout":   AuthLogout(nil, nil),
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/"+name, bytes.NewReader([]byte(`{}`)))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("%s: expected 500 got %d", name, rec.Code)
		}
	}
}
