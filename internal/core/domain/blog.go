package domain

import (
	"errors"
	"time"
)

var (
	ErrBlogNotFound = errors.New("blog not found")
	ErrNotOwner     = errors.New("not authorized to modify this resource")
)

// AuthorRef is the denormalized author summary embedded in content responses.
type AuthorRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// Blog is a free-form post authored by a user and categorised under a single
// interest.
type Blog struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	Thumbnail string    `json:"thumbnail,omitempty"`
	AuthorID  string    `json:"-"`
	Author    AuthorRef `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
