package domain

import (
	"errors"
	"time"
)

// Staff capability tiers.
const (
	RoleAdmin       = "Admin"
	RoleManager     = "Manager"
	RoleAccounts    = "Accounts"
	RoleFrontOffice = "Front Office"
)

// Hotel branches. BranchAll is a sentinel granting cross-branch visibility
// and is only valid on staff accounts, never on guest records.
const (
	BranchHiruVilla  = "Hiru Villa"
	BranchHiruOm     = "Hiru Om"
	BranchHiruMudhra = "Hiru Mudhra"
	BranchHiruAadya  = "Hiru Aadya"
	BranchAll        = "All"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidRole = errors.New("invalid role")
var ErrInvalidBranch = errors.New("invalid hotel branch")

// User models an authenticated staff member.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	HotelBranch  string    `json:"hotelBranch,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ValidRole reports whether role is one of the known staff tiers.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleAccounts, RoleFrontOffice:
		return true
	}
	return false
}

// ValidBranch reports whether branch names one of the four properties.
func ValidBranch(branch string) bool {
	switch branch {
	case BranchHiruVilla, BranchHiruOm, BranchHiruMudhra, BranchHiruAadya:
		return true
	}
	return false
}

// ValidUserBranch additionally accepts the All sentinel.
func ValidUserBranch(branch string) bool {
	return branch == BranchAll || ValidBranch(branch)
}
