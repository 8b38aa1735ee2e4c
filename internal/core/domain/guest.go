package domain

import (
	"errors"
	"time"
)

// PaymentStatus is derived from the amounts on a guest record; it is never
// trusted from client input.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPartial PaymentStatus = "Partial"
	PaymentPaid    PaymentStatus = "Paid"
)

// Guest genders accepted on the registration form.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

var ErrGuestNotFound = errors.New("guest not found")
var ErrForbidden = errors.New("access forbidden")
var ErrMissingFullName = errors.New("full name is required")

// Guest is the core aggregate: one registered guest at one branch.
type Guest struct {
	ID               string        `json:"id"`
	FullName         string        `json:"fullName"`
	Nationality      string        `json:"nationality,omitempty"`
	PassportNumber   string        `json:"passportNumber,omitempty"`
	PassportCopyURL  string        `json:"passportCopyUrl,omitempty"`
	DateOfBirth      *time.Time    `json:"dateOfBirth,omitempty"`
	Gender           string        `json:"gender,omitempty"`
	ContactNumber    string        `json:"contactNumber,omitempty"`
	Email            string        `json:"email,omitempty"`
	HotelBranch      string        `json:"hotelBranch"`
	RoomNumber       string        `json:"roomNumber,omitempty"`
	ArrivalDate      *time.Time    `json:"arrivalDate,omitempty"`
	DepartureDate    *time.Time    `json:"departureDate,omitempty"`
	TreatmentPackage string        `json:"treatmentPackage,omitempty"`
	SpecialNotes     string        `json:"specialNotes,omitempty"`
	PaymentStatus    PaymentStatus `json:"paymentStatus"`
	TotalAmount      float64       `json:"totalAmount"`
	AdvancePayment   float64       `json:"advancePayment"`
	Balance          float64       `json:"balance"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// Normalize recomputes the derived payment fields from the amounts. Every
// write path must call it before persisting, so a stale or client-supplied
// balance/status never survives a save.
func (g *Guest) Normalize() {
	g.Balance = g.TotalAmount - g.AdvancePayment
	switch {
	case g.Balance <= 0 && g.TotalAmount > 0:
		g.PaymentStatus = PaymentPaid
	case g.AdvancePayment > 0:
		g.PaymentStatus = PaymentPartial
	default:
		g.PaymentStatus = PaymentPending
	}
}

// Validate checks the required fields and enum values.
func (g *Guest) Validate() error {
	if g.FullName == "" {
		return ErrMissingFullName
	}
	if !ValidBranch(g.HotelBranch) {
		return ErrInvalidBranch
	}
	if g.Gender != "" && g.Gender != GenderMale && g.Gender != GenderFemale && g.Gender != GenderOther {
		return errors.New("invalid gender")
	}
	return nil
}
