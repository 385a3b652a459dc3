package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/inkwell/publishing-api/internal/core/domain"
	"github.com/inkwell/publishing-api/internal/core/ports"
)

// In-memory doubles for the persistence and delivery ports. They mirror the
// conditional-update semantics of the real repositories so consume/replay
// behaviour is observable in tests.

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by id
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	if u.EmailOTP != nil {
		slot := *u.EmailOTP
		clone.EmailOTP = &slot
	}
	if u.ResetOTP != nil {
		slot := *u.ResetOTP
		clone.ResetOTP = &slot
	}
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	copy := cloneUser(user)
	r.nextID++
	copy.ID = fmt.Sprintf("u%d", r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) SetEmailOTP(_ context.Context, email string, otp domain.OTPSlot) error {
	for _, u := range r.users {
		if u.Email == email {
			slot := otp
			u.EmailOTP = &slot
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (r *stubUserRepo) SetResetOTP(_ context.Context, email string, otp domain.OTPSlot) error {
	for _, u := range r.users {
		if u.Email == email {
			slot := otp
			u.ResetOTP = &slot
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (r *stubUserRepo) ConsumeEmailOTP(_ context.Context, id, code string) (bool, error) {
	u, ok := r.users[id]
	if !ok || u.EmailOTP == nil || u.EmailOTP.Code != code {
		return false, nil
	}
	u.IsVerified = true
	u.EmailOTP = nil
	return true, nil
}

func (r *stubUserRepo) ConsumeResetOTP(_ context.Context, id, code, passwordHash string) (bool, error) {
	u, ok := r.users[id]
	if !ok || u.ResetOTP == nil || u.ResetOTP.Code != code {
		return false, nil
	}
	u.PasswordHash = passwordHash
	u.ResetOTP = nil
	return true, nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id, username string, interests []string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Username = username
	u.Interests = interests
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubInterestRepo struct {
	interests map[string]*domain.Interest
}

func newStubInterestRepo(ids ...string) *stubInterestRepo {
	r := &stubInterestRepo{interests: make(map[string]*domain.Interest)}
	for _, id := range ids {
		r.interests[id] = &domain.Interest{ID: id, Name: id}
	}
	return r
}

func (r *stubInterestRepo) Create(_ context.Context, i *domain.Interest) (*domain.Interest, error) {
	r.interests[i.ID] = i
	return i, nil
}

func (r *stubInterestRepo) FindByID(_ context.Context, id string) (*domain.Interest, error) {
	i, ok := r.interests[id]
	if !ok {
		return nil, domain.ErrInterestNotFound
	}
	return i, nil
}

func (r *stubInterestRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.Interest, error) {
	out := make([]*domain.Interest, 0, len(ids))
	for _, id := range ids {
		if i, ok := r.interests[id]; ok {
			out = append(out, i)
		}
	}
	return out, nil
}

func (r *stubInterestRepo) List(_ context.Context) ([]*domain.Interest, error) {
	out := make([]*domain.Interest, 0, len(r.interests))
	for _, i := range r.interests {
		out = append(out, i)
	}
	return out, nil
}

func (r *stubInterestRepo) Update(_ context.Context, i *domain.Interest) (*domain.Interest, error) {
	r.interests[i.ID] = i
	return i, nil
}

func (r *stubInterestRepo) Delete(_ context.Context, id string) error {
	delete(r.interests, id)
	return nil
}

type stubBlogRepo struct {
	blogs          map[string]*domain.Blog
	nextID         int
	deletedAuthors []string
}

func newStubBlogRepo() *stubBlogRepo {
	return &stubBlogRepo{blogs: make(map[string]*domain.Blog)}
}

func (r *stubBlogRepo) Create(_ context.Context, b *domain.Blog) (*domain.Blog, error) {
	copy := *b
	r.nextID++
	copy.ID = fmt.Sprintf("b%d", r.nextID)
	r.blogs[copy.ID] = &copy
	return &copy, nil
}

func (r *stubBlogRepo) FindByID(_ context.Context, id string) (*domain.Blog, error) {
	b, ok := r.blogs[id]
	if !ok {
		return nil, domain.ErrBlogNotFound
	}
	copy := *b
	return &copy, nil
}

func (r *stubBlogRepo) List(_ context.Context, filter ports.ContentFilter) ([]*domain.Blog, error) {
	out := make([]*domain.Blog, 0, len(r.blogs))
	for _, b := range r.blogs {
		if filter.AuthorID != "" && b.AuthorID != filter.AuthorID {
			continue
		}
		if filter.Category != "" && b.Category != filter.Category {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(b.Title), strings.ToLower(filter.Search)) {
			continue
		}
		copy := *b
		out = append(out, &copy)
	}
	return out, nil
}

func (r *stubBlogRepo) Update(_ context.Context, b *domain.Blog) (*domain.Blog, error) {
	if _, ok := r.blogs[b.ID]; !ok {
		return nil, domain.ErrBlogNotFound
	}
	copy := *b
	r.blogs[b.ID] = &copy
	return b, nil
}

func (r *stubBlogRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.blogs[id]; !ok {
		return domain.ErrBlogNotFound
	}
	delete(r.blogs, id)
	return nil
}

func (r *stubBlogRepo) DeleteByAuthor(_ context.Context, authorID string) error {
	r.deletedAuthors = append(r.deletedAuthors, authorID)
	for id, b := range r.blogs {
		if b.AuthorID == authorID {
			delete(r.blogs, id)
		}
	}
	return nil
}

type stubArticleRepo struct {
	articles       map[string]*domain.Article
	nextID         int
	deletedAuthors []string
}

func newStubArticleRepo() *stubArticleRepo {
	return &stubArticleRepo{articles: make(map[string]*domain.Article)}
}

func (r *stubArticleRepo) Create(_ context.Context, a *domain.Article) (*domain.Article, error) {
	copy := *a
	r.nextID++
	copy.ID = fmt.Sprintf("a%d", r.nextID)
	r.articles[copy.ID] = &copy
	return &copy, nil
}

func (r *stubArticleRepo) FindByID(_ context.Context, id string) (*domain.Article, error) {
	a, ok := r.articles[id]
	if !ok {
		return nil, domain.ErrArticleNotFound
	}
	copy := *a
	return &copy, nil
}

func (r *stubArticleRepo) List(_ context.Context, filter ports.ContentFilter) ([]*domain.Article, error) {
	out := make([]*domain.Article, 0, len(r.articles))
	for _, a := range r.articles {
		if filter.AuthorID != "" && a.AuthorID != filter.AuthorID {
			continue
		}
		if filter.Category != "" && a.Category != filter.Category {
			continue
		}
		copy := *a
		out = append(out, &copy)
	}
	return out, nil
}

func (r *stubArticleRepo) Update(_ context.Context, a *domain.Article) (*domain.Article, error) {
	if _, ok := r.articles[a.ID]; !ok {
		return nil, domain.ErrArticleNotFound
	}
	copy := *a
	r.articles[a.ID] = &copy
	return a, nil
}

func (r *stubArticleRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.articles[id]; !ok {
		return domain.ErrArticleNotFound
	}
	delete(r.articles, id)
	return nil
}

func (r *stubArticleRepo) DeleteByAuthor(_ context.Context, authorID string) error {
	r.deletedAuthors = append(r.deletedAuthors, authorID)
	for id, a := range r.articles {
		if a.AuthorID == authorID {
			delete(r.articles, id)
		}
	}
	return nil
}

// stubMailer records deliveries and can be told to fail.
type stubMailer struct {
	sent []string // "to:code"
	fail bool
}

func (m *stubMailer) SendOTP(_ context.Context, to, _ string, code string) error {
	if m.fail {
		return fmt.Errorf("relay unreachable")
	}
	m.sent = append(m.sent, to+":"+code)
	return nil
}

// lastCode returns the code of the most recent delivery to the address.
func (m *stubMailer) lastCode(to string) string {
	for i := len(m.sent) - 1; i >= 0; i-- {
		if strings.HasPrefix(m.sent[i], to+":") {
			return strings.TrimPrefix(m.sent[i], to+":")
		}
	}
	return ""
}

// stubImageStore returns a deterministic URL per upload.
type stubImageStore struct {
	uploads int
	fail    bool
}

func (s *stubImageStore) Upload(_ context.Context, _ []byte, _ string) (string, error) {
	if s.fail {
		return "", fmt.Errorf("bucket unavailable")
	}
	s.uploads++
	return fmt.Sprintf("https://media.test/img%d.png", s.uploads), nil
}
