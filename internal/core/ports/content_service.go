package ports

import (
	"context"

	"github.com/inkwell/publishing-api/internal/core/domain"
)

// BlogInput carries the writable fields of a blog.
type BlogInput struct {
	Title     string
	Content   string
	Category  string
	Thumbnail string
}

// BlogService exposes blog CRUD with ownership enforcement.
type BlogService interface {
	Create(ctx context.Context, in BlogInput, author *domain.User) (*domain.Blog, error)
	// List returns blogs matching filter. When viewer is non-nil, blogs whose
	// category matches one of the viewer's interests are ordered first.
	List(ctx context.Context, filter ContentFilter, viewer *domain.User) ([]*domain.Blog, error)
	Get(ctx context.Context, id string) (*domain.Blog, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Blog, error)
	Update(ctx context.Context, id string, in BlogInput, actor *domain.User) (*domain.Blog, error)
	Delete(ctx context.Context, id string, actor *domain.User) error
	// UploadImage stores a base64 data-URI image and returns its URL.
	UploadImage(ctx context.Context, dataURI string) (string, error)
}

// ArticleInput carries the writable fields of an article.
type ArticleInput struct {
	Title        string
	Introduction string
	Body         string
	Conclusion   string
	References   []string
	Tags         []string
	Category     string
	Thumbnail    string
}

// ArticleService exposes article CRUD with ownership enforcement.
type ArticleService interface {
	Create(ctx context.Context, in ArticleInput, author *domain.User) (*domain.Article, error)
	List(ctx context.Context, filter ContentFilter, viewer *domain.User) ([]*domain.Article, error)
	Get(ctx context.Context, id string) (*domain.Article, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Article, error)
	Update(ctx context.Context, id string, in ArticleInput, actor *domain.User) (*domain.Article, error)
	Delete(ctx context.Context, id string, actor *domain.User) error
}

// InterestInput carries the writable fields of an interest.
type InterestInput struct {
	Name        string
	Description string
}

// InterestService exposes interest CRUD. Mutations are admin-gated at the
// routing layer.
type InterestService interface {
	Create(ctx context.Context, in InterestInput) (*domain.Interest, error)
	List(ctx context.Context) ([]*domain.Interest, error)
	Get(ctx context.Context, id string) (*domain.Interest, error)
	Update(ctx context.Context, id string, in InterestInput) (*domain.Interest, error)
	Delete(ctx context.Context, id string) error
}

// ContactInput carries a contact-form submission.
type ContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// ContactService exposes contact-form handling.
type ContactService interface {
	Create(ctx context.Context, in ContactInput) (*domain.Contact, error)
	List(ctx context.Context) ([]*domain.Contact, error)
	UpdateStatus(ctx context.Context, id string, status domain.ContactStatus) (*domain.Contact, error)
	Delete(ctx context.Context, id string) error
}

// UserService exposes profile self-service and admin account management.
type UserService interface {
	UpdateProfile(ctx context.Context, userID, username string, interests []string) (*domain.User, error)
	// DeleteAccount removes the user and cascades deletion of all content
	// they authored.
	DeleteAccount(ctx context.Context, userID string) error
	ListUsers(ctx context.Context) ([]*domain.User, error)
	// DeleteUser is the admin path: the actor may not delete themselves and
	// may not delete another admin. Authored content is cascaded.
	DeleteUser(ctx context.Context, actor *domain.User, targetID string) error
}
