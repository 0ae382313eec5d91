package app

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"residency_hub/internal/domain"
)

type CommandService struct {
	repo  domain.ResidencyRepository
	cache domain.Cache
	now   func() time.Time
	newID func() string
}

func NewCommandService(r domain.ResidencyRepository, c domain.Cache) *CommandService {
	return &CommandService{repo: r, cache: c, now: time.Now, newID: uuid.NewString}
}

// CreateResidency stores a new residency and drops every cached read.
func (s *CommandService) CreateResidency(ctx context.Context, in ResidencyInput) (domain.Property, error) {
	p, err := s.insert(ctx, in)
	if err != nil {
		return domain.Property{}, err
	}
	s.invalidate(ctx)
	return p, nil
}

func (s *CommandService) insert(ctx context.Context, in ResidencyInput) (domain.Property, error) {
	if err := in.Validate(); err != nil {
		return domain.Property{}, err
	}
	// Microsecond precision survives every supported store.
	now := s.now().UTC().Truncate(time.Microsecond)
	rec := domain.Record{
		ID:          s.newID(),
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Price:       *in.Price,
		Address:     strings.TrimSpace(in.Address),
		City:        strings.TrimSpace(in.City),
		Country:     strings.TrimSpace(in.Country),
		Image:       strings.TrimSpace(in.Image),
		Facilities:  in.Facilities,
		UserEmail:   strings.ToLower(strings.TrimSpace(in.UserEmail)),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.CreateResidency(ctx, rec); err != nil {
		return domain.Property{}, upstream(err)
	}
	return Shape(rec), nil
}

// UpdateResidency applies a partial update and drops every cached read.
func (s *CommandService) UpdateResidency(ctx context.Context, id string, patch ResidencyPatch) (domain.Property, error) {
	if err := patch.Validate(); err != nil {
		return domain.Property{}, err
	}
	rec, err := s.repo.GetResidency(ctx, id)
	if err != nil {
		return domain.Property{}, upstream(err)
	}

	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&rec.Title, patch.Title)
	set(&rec.Description, patch.Description)
	set(&rec.Address, patch.Address)
	set(&rec.City, patch.City)
	set(&rec.Country, patch.Country)
	set(&rec.Image, patch.Image)
	if patch.Price != nil {
		rec.Price = *patch.Price
	}
	if patch.Facilities != nil {
		rec.Facilities = *patch.Facilities
	}
	rec.UpdatedAt = s.now().UTC().Truncate(time.Microsecond)

	if err := s.repo.UpdateResidency(ctx, rec); err != nil {
		return domain.Property{}, upstream(err)
	}
	s.invalidate(ctx)
	return Shape(rec), nil
}

// DeleteResidency removes a residency and drops every cached read.
func (s *CommandService) DeleteResidency(ctx context.Context, id string) error {
	if err := s.repo.DeleteResidency(ctx, id); err != nil {
		return upstream(err)
	}
	s.invalidate(ctx)
	return nil
}

// invalidate drops every cached read; failures are logged, not returned.
func (s *CommandService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Error().Err(err).Str("context", "invalidate").Msg("cache invalidation failed")
	}
}
