package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/inkwell/publishing-api/internal/core/domain"
	"github.com/inkwell/publishing-api/internal/core/ports"
)

// UserService covers profile self-service and admin account management.
// Deleting an account cascades to all content the user authored.
type UserService struct {
	users     ports.UserRepository
	interests ports.InterestRepository
	blogs     ports.BlogRepository
	articles  ports.ArticleRepository
	logger    zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	interests ports.InterestRepository,
	blogs ports.BlogRepository,
	articles ports.ArticleRepository,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		users:     users,
		interests: interests,
		blogs:     blogs,
		articles:  articles,
		logger:    logger,
	}
}

// UpdateProfile rewrites the user's username and interest references.
func (s *UserService) UpdateProfile(ctx context.Context, userID, username string, interests []string) (*domain.User, error) {
	if len(interests) > 0 {
		found, err := s.interests.FindByIDs(ctx, interests)
		if err != nil {
			return nil, fmt.Errorf("validate interests: %w", err)
		}
		if len(found) != len(interests) {
			return nil, domain.ErrInvalidInterest
		}
	}
	return s.users.UpdateProfile(ctx, userID, username, interests)
}

// DeleteAccount removes the user and all blogs and articles they authored.
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.cascadeContent(ctx, userID); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", userID).Msg("account deleted")
	return nil
}

// ListUsers returns every account. Repositories strip credential and OTP
// state before returning.
func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

// DeleteUser is the admin deletion path. An admin may not delete themselves
// (ErrCannotDeleteSelf) nor another admin (ErrCannotDeleteAdmin); authored
// content is cascaded.
func (s *UserService) DeleteUser(ctx context.Context, actor *domain.User, targetID string) error {
	if targetID == actor.ID {
		return domain.ErrCannotDeleteSelf
	}

	target, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target.Role == domain.RoleAdmin {
		return domain.ErrCannotDeleteAdmin
	}

	if err := s.cascadeContent(ctx, targetID); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, targetID); err != nil {
		return err
	}

	s.logger.Info().
		Str("user_id", targetID).
		Str("deleted_by", actor.ID).
		Msg("user and authored content deleted")
	return nil
}

func (s *UserService) cascadeContent(ctx context.Context, authorID string) error {
	if err := s.blogs.DeleteByAuthor(ctx, authorID); err != nil {
		return fmt.Errorf("delete authored blogs: %w", err)
	}
	if err := s.articles.DeleteByAuthor(ctx, authorID); err != nil {
		return fmt.Errorf("delete authored articles: %w", err)
	}
	return nil
}
