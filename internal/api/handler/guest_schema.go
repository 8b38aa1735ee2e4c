package handler

import (
	"time"

	"github.com/chamathdew/hiruayurvedaresorts/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

// createGuestForm is bound from the multipart registration form. The optional
// passportCopy file part is read separately from the multipart payload.
type createGuestForm struct {
	FullName         string  `form:"fullName" validate:"required"`
	Nationality      string  `form:"nationality"`
	PassportNumber   string  `form:"passportNumber"`
	DateOfBirth      string  `form:"dateOfBirth"`
	Gender           string  `form:"gender" validate:"omitempty,oneof=Male Female Other"`
	ContactNumber    string  `form:"contactNumber"`
	Email            string  `form:"email" validate:"omitempty,email"`
	HotelBranch      string  `form:"hotelBranch" validate:"required"`
	RoomNumber       string  `form:"roomNumber"`
	ArrivalDate      string  `form:"arrivalDate"`
	DepartureDate    string  `form:"departureDate"`
	TreatmentPackage string  `form:"treatmentPackage"`
	SpecialNotes     string  `form:"specialNotes"`
	TotalAmount      float64 `form:"totalAmount"`
	AdvancePayment   float64 `form:"advancePayment"`
}

// updateGuestRequest is a JSON partial update: absent fields stay untouched.
type updateGuestRequest struct {
	FullName         *string  `json:"fullName"`
	Nationality      *string  `json:"nationality"`
	PassportNumber   *string  `json:"passportNumber"`
	DateOfBirth      *string  `json:"dateOfBirth"`
	Gender           *string  `json:"gender"`
	ContactNumber    *string  `json:"contactNumber"`
	Email            *string  `json:"email"`
	HotelBranch      *string  `json:"hotelBranch"`
	RoomNumber       *string  `json:"roomNumber"`
	ArrivalDate      *string  `json:"arrivalDate"`
	DepartureDate    *string  `json:"departureDate"`
	TreatmentPackage *string  `json:"treatmentPackage"`
	SpecialNotes     *string  `json:"specialNotes"`
	TotalAmount      *float64 `json:"totalAmount"`
	AdvancePayment   *float64 `json:"advancePayment"`
}

// --- Response types ---

type extractResponse struct {
	Success       bool                   `json:"success"`
	ExtractedData *ports.ExtractedFields `json:"extractedData"`
}

type deletedResponse struct {
	Message string `json:"message"`
}

// --- Mapping helpers ---

// dateFormats are the layouts accepted on form and JSON date fields.
var dateFormats = []string{"2006-01-02", time.RFC3339}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func toCreateInput(f createGuestForm, passportCopyURL string) ports.CreateGuestInput {
	return ports.CreateGuestInput{
		FullName:         f.FullName,
		Nationality:      f.Nationality,
		PassportNumber:   f.PassportNumber,
		PassportCopyURL:  passportCopyURL,
		DateOfBirth:      parseDate(f.DateOfBirth),
		Gender:           f.Gender,
		ContactNumber:    f.ContactNumber,
		Email:            f.Email,
		HotelBranch:      f.HotelBranch,
		RoomNumber:       f.RoomNumber,
		ArrivalDate:      parseDate(f.ArrivalDate),
		DepartureDate:    parseDate(f.DepartureDate),
		TreatmentPackage: f.TreatmentPackage,
		SpecialNotes:     f.SpecialNotes,
		TotalAmount:      f.TotalAmount,
		AdvancePayment:   f.AdvancePayment,
	}
}

func toUpdateInput(r updateGuestRequest) ports.UpdateGuestInput {
	in := ports.UpdateGuestInput{
		FullName:         r.FullName,
		Nationality:      r.Nationality,
		PassportNumber:   r.PassportNumber,
		Gender:           r.Gender,
		ContactNumber:    r.ContactNumber,
		Email:            r.Email,
		HotelBranch:      r.HotelBranch,
		RoomNumber:       r.RoomNumber,
		TreatmentPackage: r.TreatmentPackage,
		SpecialNotes:     r.SpecialNotes,
		TotalAmount:      r.TotalAmount,
		AdvancePayment:   r.AdvancePayment,
	}
	if r.DateOfBirth != nil {
		in.DateOfBirth = parseDate(*r.DateOfBirth)
	}
	if r.ArrivalDate != nil {
		in.ArrivalDate = parseDate(*r.ArrivalDate)
	}
	if r.DepartureDate != nil {
		in.DepartureDate = parseDate(*r.DepartureDate)
	}
	return in
}
