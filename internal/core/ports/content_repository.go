package ports

import (
	"context"

	"github.com/inkwell/publishing-api/internal/core/domain"
)

// ContentFilter carries the optional query parameters shared by the blog and
// article listing endpoints.
type ContentFilter struct {
	Search   string // partial, case-insensitive match on title
	Category string // interest id
	AuthorID string
}

// BlogRepository defines persistence for blogs.
type BlogRepository interface {
	Create(ctx context.Context, b *domain.Blog) (*domain.Blog, error)
	FindByID(ctx context.Context, id string) (*domain.Blog, error)
	List(ctx context.Context, filter ContentFilter) ([]*domain.Blog, error)
	Update(ctx context.Context, b *domain.Blog) (*domain.Blog, error)
	Delete(ctx context.Context, id string) error
	// DeleteByAuthor removes every blog authored by the given user. Used by
	// the account-deletion cascade.
	DeleteByAuthor(ctx context.Context, authorID string) error
}

// ArticleRepository defines persistence for articles.
type ArticleRepository interface {
	Create(ctx context.Context, a *domain.Article) (*domain.Article, error)
	FindByID(ctx context.Context, id string) (*domain.Article, error)
	List(ctx context.Context, filter ContentFilter) ([]*domain.Article, error)
	Update(ctx context.Context, a *domain.Article) (*domain.Article, error)
	Delete(ctx context.Context, id string) error
	DeleteByAuthor(ctx context.Context, authorID string) error
}

// InterestRepository defines persistence for interests.
type InterestRepository interface {
	Create(ctx context.Context, i *domain.Interest) (*domain.Interest, error)
	FindByID(ctx context.Context, id string) (*domain.Interest, error)
	// FindByIDs returns the subset of interests whose ids exist. Callers
	// compare lengths to detect dangling references.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Interest, error)
	List(ctx context.Context) ([]*domain.Interest, error)
	Update(ctx context.Context, i *domain.Interest) (*domain.Interest, error)
	Delete(ctx context.Context, id string) error
}

// ContactRepository defines persistence for contact-form submissions.
type ContactRepository interface {
	Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error)
	List(ctx context.Context) ([]*domain.Contact, error)
	UpdateStatus(ctx context.Context, id string, status domain.ContactStatus) (*domain.Contact, error)
	Delete(ctx context.Context, id string) error
}
