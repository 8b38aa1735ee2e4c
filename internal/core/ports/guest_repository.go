package ports

import (
	"context"
	"time"

	"github.com/chamathdew/hiruayurvedaresorts/internal/core/domain"
)

// GuestStats is the dashboard aggregate over the caller's visible guests.
type GuestStats struct {
	TotalGuests     int64   `json:"totalGuests"`
	TodayArrivals   int64   `json:"todayArrivals"`
	TodayDepartures int64   `json:"todayDepartures"`
	TotalRevenue    float64 `json:"totalRevenue"`
}

// GuestRepository defines guest persistence. A non-empty branch confines the
// query to that branch; empty means all branches.
type GuestRepository interface {
	Create(ctx context.Context, guest *domain.Guest) (*domain.Guest, error)
	FindByID(ctx context.Context, id string) (*domain.Guest, error)
	List(ctx context.Context, branch string) ([]domain.Guest, error)
	Update(ctx context.Context, guest *domain.Guest) (*domain.Guest, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, branch string, startOfDay time.Time) (*GuestStats, error)
}
