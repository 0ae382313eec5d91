package app

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"residency_hub/internal/domain"
)

// UserService owns the per-user booking and favourite lists.
type UserService struct {
	users      domain.UserRepository
	residences domain.ResidencyRepository
	now        func() time.Time
}

func NewUserService(u domain.UserRepository, r domain.ResidencyRepository) *UserService {
	return &UserService{users: u, residences: r, now: time.Now}
}

type RegisterInput struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	if !validEmail(in.Email) {
		return domain.User{}, &domain.ValidationError{Errors: []string{"email must be a valid email address"}}
	}
	u := domain.User{
		ID:           uuid.NewString(),
		Email:        normEmail(in.Email),
		Name:         strings.TrimSpace(in.Name),
		Image:        strings.TrimSpace(in.Image),
		BookedVisits: []domain.Booking{},
		Favourites:   []string{},
		CreatedAt:    s.now().UTC().Truncate(time.Microsecond),
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		return domain.User{}, upstream(err)
	}
	return u, nil
}

// BookVisit records a visit; a second booking of the same residency conflicts.
func (s *UserService) BookVisit(ctx context.Context, email, residencyID, date string) (domain.User, error) {
	if strings.TrimSpace(date) == "" {
		return domain.User{}, &domain.ValidationError{Errors: []string{"date is required"}}
	}
	u, err := s.userWithResidency(ctx, email, residencyID)
	if err != nil {
		return domain.User{}, err
	}
	if slices.ContainsFunc(u.BookedVisits, func(b domain.Booking) bool { return b.ResidencyID == residencyID }) {
		return domain.User{}, domain.ErrConflict
	}
	u.BookedVisits = append(u.BookedVisits, domain.Booking{ResidencyID: residencyID, Date: strings.TrimSpace(date)})
	return u, s.save(ctx, u)
}

func (s *UserService) Bookings(ctx context.Context, email string) ([]domain.Booking, error) {
	u, err := s.users.GetUser(ctx, normEmail(email))
	if err != nil {
		return nil, upstream(err)
	}
	return u.BookedVisits, nil
}

func (s *UserService) CancelBooking(ctx context.Context, email, residencyID string) (domain.User, error) {
	u, err := s.users.GetUser(ctx, normEmail(email))
	if err != nil {
		return domain.User{}, upstream(err)
	}
	i := slices.IndexFunc(u.BookedVisits, func(b domain.Booking) bool { return b.ResidencyID == residencyID })
	if i < 0 {
		return domain.User{}, domain.ErrNotFound
	}
	u.BookedVisits = slices.Delete(u.BookedVisits, i, i+1)
	return u, s.save(ctx, u)
}

// ToggleFavourite adds the residency to the favourites or removes it when
// already present.
func (s *UserService) ToggleFavourite(ctx context.Context, email, residencyID string) (domain.User, error) {
	u, err := s.userWithResidency(ctx, email, residencyID)
	if err != nil {
		return domain.User{}, err
	}
	if i := slices.Index(u.Favourites, residencyID); i >= 0 {
		u.Favourites = slices.Delete(u.Favourites, i, i+1)
	} else {
		u.Favourites = append(u.Favourites, residencyID)
	}
	return u, s.save(ctx, u)
}

func (s *UserService) Favourites(ctx context.Context, email string) ([]string, error) {
	u, err := s.users.GetUser(ctx, normEmail(email))
	if err != nil {
		return nil, upstream(err)
	}
	return u.Favourites, nil
}

func (s *UserService) userWithResidency(ctx context.Context, email, residencyID string) (domain.User, error) {
	if _, err := s.residences.GetResidency(ctx, residencyID); err != nil {
		return domain.User{}, upstream(err)
	}
	u, err := s.users.GetUser(ctx, normEmail(email))
	if err != nil {
		return domain.User{}, upstream(err)
	}
	return u, nil
}

func (s *UserService) save(ctx context.Context, u domain.User) error {
	if err := s.users.SaveUserLists(ctx, u); err != nil {
		return upstream(err)
	}
	return nil
}

func normEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
