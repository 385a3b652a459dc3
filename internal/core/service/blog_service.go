package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkwell/publishing-api/internal/core/domain"
	"github.com/inkwell/publishing-api/internal/core/ports"
)

// BlogService implements blog CRUD with ownership checks and inline image
// externalisation.
type BlogService struct {
	blogs     ports.BlogRepository
	interests ports.InterestRepository
	images    ports.ImageStore
	logger    zerolog.Logger
}

func NewBlogService(
	blogs ports.BlogRepository,
	interests ports.InterestRepository,
	images ports.ImageStore,
	logger zerolog.Logger,
) *BlogService {
	return &BlogService{blogs: blogs, interests: interests, images: images, logger: logger}
}

func (s *BlogService) Create(ctx context.Context, in ports.BlogInput, author *domain.User) (*domain.Blog, error) {
	if err := s.checkCategory(ctx, in.Category); err != nil {
		return nil, err
	}

	thumbnail, err := externalizeThumbnail(ctx, s.images, in.Thumbnail)
	if err != nil {
		return nil, fmt.Errorf("upload thumbnail: %w", err)
	}

	now := time.Now().UTC()
	blog := &domain.Blog{
		Title:     in.Title,
		Content:   externalizeImages(ctx, s.images, in.Content, s.logger),
		Category:  in.Category,
		Thumbnail: thumbnail,
		AuthorID:  author.ID,
		Author:    domain.AuthorRef{ID: author.ID, Username: author.Username, Email: author.Email},
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.blogs.Create(ctx, blog)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("blog_id", created.ID).Str("author_id", author.ID).Msg("blog created")
	return created, nil
}

// List returns blogs newest-first. When viewer is non-nil, blogs filed under
// one of the viewer's interests are ordered before the rest.
func (s *BlogService) List(ctx context.Context, filter ports.ContentFilter, viewer *domain.User) ([]*domain.Blog, error) {
	blogs, err := s.blogs.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if viewer != nil {
		interested := interestSet(viewer.Interests)
		sort.SliceStable(blogs, func(i, j int) bool {
			return interested[blogs[i].Category] && !interested[blogs[j].Category]
		})
	}
	return blogs, nil
}

func (s *BlogService) Get(ctx context.Context, id string) (*domain.Blog, error) {
	return s.blogs.FindByID(ctx, id)
}

func (s *BlogService) ListByUser(ctx context.Context, userID string) ([]*domain.Blog, error) {
	return s.blogs.List(ctx, ports.ContentFilter{AuthorID: userID})
}

// Update rewrites a blog. Only the author may update.
func (s *BlogService) Update(ctx context.Context, id string, in ports.BlogInput, actor *domain.User) (*domain.Blog, error) {
	blog, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if blog.AuthorID != actor.ID {
		return nil, domain.ErrNotOwner
	}
	if err := s.checkCategory(ctx, in.Category); err != nil {
		return nil, err
	}

	thumbnail, err := externalizeThumbnail(ctx, s.images, in.Thumbnail)
	if err != nil {
		return nil, fmt.Errorf("upload thumbnail: %w", err)
	}

	blog.Title = in.Title
	blog.Content = externalizeImages(ctx, s.images, in.Content, s.logger)
	blog.Category = in.Category
	blog.Thumbnail = thumbnail
	blog.UpdatedAt = time.Now().UTC()

	return s.blogs.Update(ctx, blog)
}

// Delete removes a blog. The author or an admin may delete.
func (s *BlogService) Delete(ctx context.Context, id string, actor *domain.User) error {
	blog, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if blog.AuthorID != actor.ID && actor.Role != domain.RoleAdmin {
		return domain.ErrNotOwner
	}
	return s.blogs.Delete(ctx, id)
}

// UploadImage stores a standalone data-URI image and returns its URL.
func (s *BlogService) UploadImage(ctx context.Context, dataURI string) (string, error) {
	return uploadDataURI(ctx, s.images, dataURI)
}

func (s *BlogService) checkCategory(ctx context.Context, category string) error {
	if _, err := s.interests.FindByID(ctx, category); err != nil {
		if errors.Is(err, domain.ErrInterestNotFound) {
			return domain.ErrInvalidInterest
		}
		return fmt.Errorf("validate category: %w", err)
	}
	return nil
}

func interestSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
