package ports

import (
	"context"
	"time"

	"github.com/chamathdew/hiruayurvedaresorts/internal/core/domain"
)

// CreateGuestInput carries the registration-form fields for a new guest.
// Numeric fields default to zero when absent; balance and payment status are
// always derived server-side.
type CreateGuestInput struct {
	FullName         string
	Nationality      string
	PassportNumber   string
	PassportCopyURL  string
	DateOfBirth      *time.Time
	Gender           string
	ContactNumber    string
	Email            string
	HotelBranch      string
	RoomNumber       string
	ArrivalDate      *time.Time
	DepartureDate    *time.Time
	TreatmentPackage string
	SpecialNotes     string
	TotalAmount      float64
	AdvancePayment   float64
}

// UpdateGuestInput is a partial update: nil pointers leave the stored value
// untouched.
type UpdateGuestInput struct {
	FullName         *string
	Nationality      *string
	PassportNumber   *string
	PassportCopyURL  *string
	DateOfBirth      *time.Time
	Gender           *string
	ContactNumber    *string
	Email            *string
	HotelBranch      *string
	RoomNumber       *string
	ArrivalDate      *time.Time
	DepartureDate    *time.Time
	TreatmentPackage *string
	SpecialNotes     *string
	TotalAmount      *float64
	AdvancePayment   *float64
}

// GuestService defines the guest-record use cases. Every operation takes the
// caller identity so role and branch policy is enforced in one place.
type GuestService interface {
	Create(ctx context.Context, caller domain.Identity, input CreateGuestInput) (*domain.Guest, error)
	Get(ctx context.Context, caller domain.Identity, id string) (*domain.Guest, error)
	List(ctx context.Context, caller domain.Identity) ([]domain.Guest, error)
	Update(ctx context.Context, caller domain.Identity, id string, input UpdateGuestInput) (*domain.Guest, error)
	Delete(ctx context.Context, caller domain.Identity, id string) error
	Stats(ctx context.Context, caller domain.Identity) (*GuestStats, error)
}
