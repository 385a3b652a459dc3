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

// ArticleService implements article CRUD. It mirrors BlogService but carries
// the structured long-form fields.
type ArticleService struct {
	articles  ports.ArticleRepository
	interests ports.InterestRepository
	images    ports.ImageStore
	logger    zerolog.Logger
}

func NewArticleService(
	articles ports.ArticleRepository,
	interests ports.InterestRepository,
	images ports.ImageStore,
	logger zerolog.Logger,
) *ArticleService {
	return &ArticleService{articles: articles, interests: interests, images: images, logger: logger}
}

func (s *ArticleService) Create(ctx context.Context, in ports.ArticleInput, author *domain.User) (*domain.Article, error) {
	if err := s.checkCategory(ctx, in.Category); err != nil {
		return nil, err
	}

	thumbnail, err := externalizeThumbnail(ctx, s.images, in.Thumbnail)
	if err != nil {
		return nil, fmt.Errorf("upload thumbnail: %w", err)
	}

	now := time.Now().UTC()
	article := &domain.Article{
		Title:        in.Title,
		Introduction: in.Introduction,
		Body:         externalizeImages(ctx, s.images, in.Body, s.logger),
		Conclusion:   in.Conclusion,
		References:   in.References,
		Tags:         in.Tags,
		Category:     in.Category,
		Thumbnail:    thumbnail,
		AuthorID:     author.ID,
		Author:       domain.AuthorRef{ID: author.ID, Username: author.Username, Email: author.Email},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.articles.Create(ctx, article)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("article_id", created.ID).Str("author_id", author.ID).Msg("article created")
	return created, nil
}

func (s *ArticleService) List(ctx context.Context, filter ports.ContentFilter, viewer *domain.User) ([]*domain.Article, error) {
	articles, err := s.articles.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if viewer != nil {
		interested := interestSet(viewer.Interests)
		sort.SliceStable(articles, func(i, j int) bool {
			return interested[articles[i].Category] && !interested[articles[j].Category]
		})
	}
	return articles, nil
}

func (s *ArticleService) Get(ctx context.Context, id string) (*domain.Article, error) {
	return s.articles.FindByID(ctx, id)
}

func (s *ArticleService) ListByUser(ctx context.Context, userID string) ([]*domain.Article, error) {
	return s.articles.List(ctx, ports.ContentFilter{AuthorID: userID})
}

func (s *ArticleService) Update(ctx context.Context, id string, in ports.ArticleInput, actor *domain.User) (*domain.Article, error) {
	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article.AuthorID != actor.ID {
		return nil, domain.ErrNotOwner
	}
	if err := s.checkCategory(ctx, in.Category); err != nil {
		return nil, err
	}

	thumbnail, err := externalizeThumbnail(ctx, s.images, in.Thumbnail)
	if err != nil {
		return nil, fmt.Errorf("upload thumbnail: %w", err)
	}

	article.Title = in.Title
	article.Introduction = in.Introduction
	article.Body = externalizeImages(ctx, s.images, in.Body, s.logger)
	article.Conclusion = in.Conclusion
	article.References = in.References
	article.Tags = in.Tags
	article.Category = in.Category
	article.Thumbnail = thumbnail
	article.UpdatedAt = time.Now().UTC()

	return s.articles.Update(ctx, article)
}

func (s *ArticleService) Delete(ctx context.Context, id string, actor *domain.User) error {
	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if article.AuthorID != actor.ID && actor.Role != domain.RoleAdmin {
		return domain.ErrNotOwner
	}
	return s.articles.Delete(ctx, id)
}

func (s *ArticleService) checkCategory(ctx context.Context, category string) error {
	if _, err := s.interests.FindByID(ctx, category); err != nil {
		if errors.Is(err, domain.ErrInterestNotFound) {
			return domain.ErrInvalidInterest
		}
		return fmt.Errorf("validate category: %w", err)
	}
	return nil
}
