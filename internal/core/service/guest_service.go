package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/chamathdew/hiruayurvedaresorts/internal/core/domain"
	"github.com/chamathdew/hiruayurvedaresorts/internal/core/ports"
)

// StatsCache is a best-effort cache for the dashboard aggregate (Redis).
// Errors are logged and ignored; the repository remains the source of truth.
type StatsCache interface {
	Get(ctx context.Context, scope string) (*ports.GuestStats, error)
	Set(ctx context.Context, scope string, stats *ports.GuestStats) error
	Invalidate(ctx context.Context, branch string) error
}

type GuestService struct {
	repo   ports.GuestRepository
	cache  StatsCache
	logger zerolog.Logger
}

func NewGuestService(repo ports.GuestRepository, cache StatsCache, logger zerolog.Logger) *GuestService {
	return &GuestService{repo: repo, cache: cache, logger: logger}
}

// Create registers a new guest. Only Admin and Front Office may create, and
// derived payment fields are recomputed regardless of what was submitted.
func (s *GuestService) Create(ctx context.Context, caller domain.Identity, input ports.CreateGuestInput) (*domain.Guest, error) {
	if !caller.Allowed(domain.ActionCreate) {
		return nil, domain.ErrForbidden
	}

	now := time.Now().UTC()
	guest := &domain.Guest{
		FullName:         input.FullName,
		Nationality:      input.Nationality,
		PassportNumber:   input.PassportNumber,
		PassportCopyURL:  input.PassportCopyURL,
		DateOfBirth:      input.DateOfBirth,
		Gender:           input.Gender,
		ContactNumber:    input.ContactNumber,
		Email:            input.Email,
		HotelBranch:      input.HotelBranch,
		RoomNumber:       input.RoomNumber,
		ArrivalDate:      input.ArrivalDate,
		DepartureDate:    input.DepartureDate,
		TreatmentPackage: input.TreatmentPackage,
		SpecialNotes:     input.SpecialNotes,
		TotalAmount:      input.TotalAmount,
		AdvancePayment:   input.AdvancePayment,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := guest.Validate(); err != nil {
		return nil, err
	}
	guest.Normalize()

	created, err := s.repo.Create(ctx, guest)
	if err != nil {
		s.logger.Error().Err(err).Str("branch", guest.HotelBranch).Msg("failed to create guest")
		return nil, err
	}

	s.invalidateStats(ctx, created.HotelBranch)
	s.logger.Info().
		Str("guest_id", created.ID).
		Str("branch", created.HotelBranch).
		Str("payment_status", string(created.PaymentStatus)).
		Msg("guest created")

	return created, nil
}

// Get returns a single guest. Branch-scoped callers asking for a record
// outside their branch get NotFound, exactly as if it did not exist.
func (s *GuestService) Get(ctx context.Context, caller domain.Identity, id string) (*domain.Guest, error) {
	guest, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.CanSee(guest.HotelBranch) {
		return nil, domain.ErrGuestNotFound
	}
	return guest, nil
}

// List returns the guests visible to the caller, filtered at query time.
func (s *GuestService) List(ctx context.Context, caller domain.Identity) ([]domain.Guest, error) {
	return s.repo.List(ctx, caller.VisibleBranch())
}

// Update applies a partial update, then re-runs validation and the payment
// derivation over the merged record.
func (s *GuestService) Update(ctx context.Context, caller domain.Identity, id string, input ports.UpdateGuestInput) (*domain.Guest, error) {
	if !caller.Allowed(domain.ActionUpdate) {
		return nil, domain.ErrForbidden
	}

	guest, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.CanSee(guest.HotelBranch) {
		return nil, domain.ErrGuestNotFound
	}

	applyUpdate(guest, input)
	if err := guest.Validate(); err != nil {
		return nil, err
	}
	guest.Normalize()
	guest.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, guest)
	if err != nil {
		s.logger.Error().Err(err).Str("guest_id", id).Msg("failed to update guest")
		return nil, err
	}

	s.invalidateStats(ctx, updated.HotelBranch)
	return updated, nil
}

// Delete removes a guest record. Admin only.
func (s *GuestService) Delete(ctx context.Context, caller domain.Identity, id string) error {
	if !caller.Allowed(domain.ActionDelete) {
		return domain.ErrForbidden
	}

	guest, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("guest_id", id).Msg("failed to delete guest")
		return err
	}

	s.invalidateStats(ctx, guest.HotelBranch)
	s.logger.Info().Str("guest_id", id).Str("branch", guest.HotelBranch).Msg("guest deleted")
	return nil
}

// Stats returns the dashboard aggregate for the caller's visible scope,
// served from the cache when fresh.
func (s *GuestService) Stats(ctx context.Context, caller domain.Identity) (*ports.GuestStats, error) {
	scope := caller.VisibleBranch()

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, scope); err != nil {
			s.logger.Warn().Err(err).Msg("stats cache read failed, querying store")
		} else if cached != nil {
			return cached, nil
		}
	}

	stats, err := s.repo.Stats(ctx, scope, startOfToday())
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, scope, stats); err != nil {
			s.logger.Warn().Err(err).Msg("stats cache write failed")
		}
	}
	return stats, nil
}

func (s *GuestService) invalidateStats(ctx context.Context, branch string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, branch); err != nil {
		s.logger.Warn().Err(err).Str("branch", branch).Msg("stats cache invalidation failed")
	}
}

func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func applyUpdate(g *domain.Guest, in ports.UpdateGuestInput) {
	if in.FullName != nil {
		g.FullName = *in.FullName
	}
	if in.Nationality != nil {
		g.Nationality = *in.Nationality
	}
	if in.PassportNumber != nil {
		g.PassportNumber = *in.PassportNumber
	}
	if in.PassportCopyURL != nil {
		g.PassportCopyURL = *in.PassportCopyURL
	}
	if in.DateOfBirth != nil {
		g.DateOfBirth = in.DateOfBirth
	}
	if in.Gender != nil {
		g.Gender = *in.Gender
	}
	if in.ContactNumber != nil {
		g.ContactNumber = *in.ContactNumber
	}
	if in.Email != nil {
		g.Email = *in.Email
	}
	if in.HotelBranch != nil {
		g.HotelBranch = *in.HotelBranch
	}
	if in.RoomNumber != nil {
		g.RoomNumber = *in.RoomNumber
	}
	if in.ArrivalDate != nil {
		g.ArrivalDate = in.ArrivalDate
	}
	if in.DepartureDate != nil {
		g.DepartureDate = in.DepartureDate
	}
	if in.TreatmentPackage != nil {
		g.TreatmentPackage = *in.TreatmentPackage
	}
	if in.SpecialNotes != nil {
		g.SpecialNotes = *in.SpecialNotes
	}
	if in.TotalAmount != nil {
		g.TotalAmount = *in.TotalAmount
	}
	if in.AdvancePayment != nil {
		g.AdvancePayment = *in.AdvancePayment
	}
}
