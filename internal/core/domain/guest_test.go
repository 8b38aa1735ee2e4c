package domain

import "testing"

func TestGuest_Normalize(t *testing.T) {
	tests := []struct {
		name        string
		total       float64
		advance     float64
		wantBalance float64
		wantStatus  PaymentStatus
	}{
		{"fully paid", 500, 500, 0, PaymentPaid},
		{"partial payment", 1000, 300, 700, PaymentPartial},
		{"no amounts", 0, 0, 0, PaymentPending},
		{"overpaid", 400, 500, -100, PaymentPaid},
		{"nothing paid yet", 800, 0, 800, PaymentPending},
		{"advance without total", 0, 50, -50, PaymentPartial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Guest{TotalAmount: tt.total, AdvancePayment: tt.advance}
			g.Normalize()

			if g.Balance != tt.wantBalance {
				t.Fatalf("balance = %v, want %v", g.Balance, tt.wantBalance)
			}
			if g.PaymentStatus != tt.wantStatus {
				t.Fatalf("status = %s, want %s", g.PaymentStatus, tt.wantStatus)
			}
		})
	}
}

func TestGuest_Normalize_OverridesClientValues(t *testing.T) {
	g := Guest{
		TotalAmount:    1000,
		AdvancePayment: 300,
		Balance:        0,
		PaymentStatus:  PaymentPaid,
	}
	g.Normalize()

	if g.Balance != 700 {
		t.Fatalf("balance = %v, want 700", g.Balance)
	}
	if g.PaymentStatus != PaymentPartial {
		t.Fatalf("status = %s, want Partial", g.PaymentStatus)
	}
}

func TestGuest_Validate(t *testing.T) {
	valid := Guest{FullName: "A. Silva", HotelBranch: BranchHiruVilla}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid guest rejected: %v", err)
	}

	noName := Guest{HotelBranch: BranchHiruVilla}
	if err := noName.Validate(); err != ErrMissingFullName {
		t.Fatalf("expected ErrMissingFullName, got %v", err)
	}

	badBranch := Guest{FullName: "A. Silva", HotelBranch: "Hiru Nowhere"}
	if err := badBranch.Validate(); err != ErrInvalidBranch {
		t.Fatalf("expected ErrInvalidBranch, got %v", err)
	}

	// The All sentinel belongs to accounts, not guest records.
	allBranch := Guest{FullName: "A. Silva", HotelBranch: BranchAll}
	if err := allBranch.Validate(); err != ErrInvalidBranch {
		t.Fatalf("expected ErrInvalidBranch for All, got %v", err)
	}

	badGender := Guest{FullName: "A. Silva", HotelBranch: BranchHiruOm, Gender: "Unknown"}
	if err := badGender.Validate(); err == nil {
		t.Fatalf("expected error for invalid gender")
	}
}
