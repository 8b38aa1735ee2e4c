package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/chamathdew/hiruayurvedaresorts/internal/core/domain"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, username, password, role, hotelBranch string) (*domain.User, error)
	loginFn    func(ctx context.Context, username, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, username, password, role, hotelBranch string) (*domain.User, error) {
	return s.registerFn(ctx, username, password, role, hotelBranch)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, username, password)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, password, role, hotelBranch string) (*domain.User, error) {
			if username != "villa" || role != domain.RoleFrontOffice || hotelBranch != domain.BranchHiruVilla {
				t.Fatalf("unexpected args: %s %s %s", username, role, hotelBranch)
			}
			return &domain.User{Username: username, Role: role, HotelBranch: hotelBranch, PasswordHash: "secret-hash"}, nil
		},
	}
	handler := NewAuthHandler(stub)

	body := strings.NewReader(`{"username":"villa","password":"secret1","role":"Front Office","hotelBranch":"Hiru Villa"}`)
	req := httptest.NewRequest(http.MethodPost, "/register", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}

	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["username"] != "villa" || user["role"] != domain.RoleFrontOffice {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, password, role, hotelBranch string) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{"username":"bob"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Register(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.User, error) {
			if username != "admin" || password != "admin123" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return "token123", &domain.User{
				Username:     "admin",
				Role:         domain.RoleAdmin,
				HotelBranch:  domain.BranchAll,
				PasswordHash: "must-never-leak",
			}, nil
		},
	}
	handler := NewAuthHandler(stub)

	body := strings.NewReader(`{"username":"admin","password":"admin123"}`)
	req := httptest.NewRequest(http.MethodPost, "/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	payload := rec.Body.String()
	if !strings.Contains(payload, `"token":"token123"`) {
		t.Fatalf("token missing from payload: %s", payload)
	}
	if strings.Contains(payload, "must-never-leak") {
		t.Fatalf("password hash leaked into payload: %s", payload)
	}
}

func TestAuthHandler_Login_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"wrong password", domain.ErrInvalidCredentials},
		{"unknown user", domain.ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEcho()
			stub := &stubAuthService{
				loginFn: func(ctx context.Context, username, password string) (string, *domain.User, error) {
					return "", nil, tt.err
				},
			}
			handler := NewAuthHandler(stub)

			body := strings.NewReader(`{"username":"ghost","password":"pass"}`)
			req := httptest.NewRequest(http.MethodPost, "/login", body)
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := handler.Login(c)
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected %v, got %v", tt.err, err)
			}
		})
	}
}
