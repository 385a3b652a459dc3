package service

import (
	"context"
	"time"

	"github.com/inkwell/publishing-api/internal/core/domain"
	"github.com/inkwell/publishing-api/internal/core/ports"
)

// InterestService implements interest CRUD. Mutations are admin-gated by the
// router; the service itself has no role checks.
type InterestService struct {
	interests ports.InterestRepository
}

func NewInterestService(interests ports.InterestRepository) *InterestService {
	return &InterestService{interests: interests}
}

func (s *InterestService) Create(ctx context.Context, in ports.InterestInput) (*domain.Interest, error) {
	return s.interests.Create(ctx, &domain.Interest{
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   time.Now().UTC(),
	})
}

func (s *InterestService) List(ctx context.Context) ([]*domain.Interest, error) {
	return s.interests.List(ctx)
}

func (s *InterestService) Get(ctx context.Context, id string) (*domain.Interest, error) {
	return s.interests.FindByID(ctx, id)
}

func (s *InterestService) Update(ctx context.Context, id string, in ports.InterestInput) (*domain.Interest, error) {
	return s.interests.Update(ctx, &domain.Interest{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
	})
}

func (s *InterestService) Delete(ctx context.Context, id string) error {
	return s.interests.Delete(ctx, id)
}
