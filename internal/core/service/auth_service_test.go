package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/chamathdew/hiruayurvedaresorts/internal/core/domain"
)

type stubAuthRepo struct {
	users map[string]*domain.User
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = user.Username
	}
	r.users[copy.Username] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubAuthRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	user, err := svc.Register(context.Background(), "villa", "pass123", domain.RoleFrontOffice, domain.BranchHiruVilla)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user == nil {
		t.Fatalf("expected user, got nil")
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleFrontOffice || user.HotelBranch != domain.BranchHiruVilla {
		t.Fatalf("unexpected role/branch: %s/%s", user.Role, user.HotelBranch)
	}
}

func TestAuthService_Register_AdminDefaultsToAllBranches(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	user, err := svc.Register(context.Background(), "boss", "s3cret", domain.RoleAdmin, "")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.HotelBranch != domain.BranchAll {
		t.Fatalf("expected branch All, got %q", user.HotelBranch)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	if _, err := svc.Register(context.Background(), "", "pass", domain.RoleManager, domain.BranchHiruOm); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "bob", "pass", "Janitor", domain.BranchHiruOm); err != domain.ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "bob", "pass", domain.RoleManager, "Hiru Nowhere"); err != domain.ErrInvalidBranch {
		t.Fatalf("expected ErrInvalidBranch, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	_, _ = svc.Register(context.Background(), "om", "pass", domain.RoleFrontOffice, domain.BranchHiruOm)
	if _, err := svc.Register(context.Background(), "om", "pass2", domain.RoleFrontOffice, domain.BranchHiruOm); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", 72*time.Hour)

	if _, err := svc.Register(context.Background(), "mudhra", "s3cret", domain.RoleFrontOffice, domain.BranchHiruMudhra); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "mudhra", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.Username != "mudhra" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["role"] != domain.RoleFrontOffice {
		t.Fatalf("expected role %s, got %v", domain.RoleFrontOffice, claims["role"])
	}
	if claims["hotel_branch"] != domain.BranchHiruMudhra {
		t.Fatalf("expected branch %s, got %v", domain.BranchHiruMudhra, claims["hotel_branch"])
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		t.Fatalf("expected exp claim")
	}
	wantExp := time.Now().Add(72 * time.Hour).Unix()
	if int64(exp) < wantExp-60 || int64(exp) > wantExp+60 {
		t.Fatalf("exp = %v, want about %v", int64(exp), wantExp)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	_, _ = svc.Register(context.Background(), "aadya", "goodpass", domain.RoleFrontOffice, domain.BranchHiruAadya)
	if _, _, err := svc.Login(context.Background(), "aadya", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	if _, _, err := svc.Login(context.Background(), "ghost", "pass"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
