package ports

import (
	"context"
	"errors"
)

// ErrExtractorNotConfigured is returned before any network I/O when the
// external model credential is absent.
var ErrExtractorNotConfigured = errors.New("document extractor is not configured")

// ErrExtractionFailed is returned when the model reply cannot be parsed into
// the expected field set. No partial data is surfaced.
var ErrExtractionFailed = errors.New("document extraction failed")

// Document kinds accepted by the extraction endpoint.
const (
	DocTypePassport    = "passport"
	DocTypeHandwritten = "handwritten"
)

// ExtractedFields is the best-effort field set read from an uploaded document.
// The values pre-fill the registration form for human review; nothing here is
// persisted directly.
type ExtractedFields struct {
	FullName       string `json:"fullName,omitempty"`
	DateOfBirth    string `json:"dateOfBirth,omitempty"`
	Nationality    string `json:"nationality,omitempty"`
	PassportNumber string `json:"passportNumber,omitempty"`
	VisaExpiryDate string `json:"visaExpiryDate,omitempty"`
	Email          string `json:"email,omitempty"`
	ContactNumber  string `json:"contactNumber,omitempty"`
	Remark         string `json:"remark,omitempty"`
}

// DocumentExtractor sends a document image to an external vision model and
// parses its reply into structured fields.
type DocumentExtractor interface {
	Extract(ctx context.Context, data []byte, mimeType, docType string) (*ExtractedFields, error)
}
