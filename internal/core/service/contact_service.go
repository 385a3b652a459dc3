package service

import (
	"context"
	"time"

	"github.com/inkwell/publishing-api/internal/core/domain"
	"github.com/inkwell/publishing-api/internal/core/ports"
)

// ContactService handles contact-form submissions and their admin triage.
type ContactService struct {
	contacts ports.ContactRepository
}

func NewContactService(contacts ports.ContactRepository) *ContactService {
	return &ContactService{contacts: contacts}
}

func (s *ContactService) Create(ctx context.Context, in ports.ContactInput) (*domain.Contact, error) {
	return s.contacts.Create(ctx, &domain.Contact{
		Name:      in.Name,
		Email:     in.Email,
		Subject:   in.Subject,
		Message:   in.Message,
		Status:    domain.ContactPending,
		CreatedAt: time.Now().UTC(),
	})
}

func (s *ContactService) List(ctx context.Context) ([]*domain.Contact, error) {
	return s.contacts.List(ctx)
}

func (s *ContactService) UpdateStatus(ctx context.Context, id string, status domain.ContactStatus) (*domain.Contact, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidContactStatus
	}
	return s.contacts.UpdateStatus(ctx, id, status)
}

func (s *ContactService) Delete(ctx context.Context, id string) error {
	return s.contacts.Delete(ctx, id)
}
