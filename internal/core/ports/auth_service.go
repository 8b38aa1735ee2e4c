package ports

import (
	"context"

	"github.com/chamathdew/hiruayurvedaresorts/internal/core/domain"
)

// AuthService covers account provisioning and login.
type AuthService interface {
	Register(ctx context.Context, username, password, role, hotelBranch string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
