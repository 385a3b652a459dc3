package domain

import (
	"errors"
	"time"
)

var ErrArticleNotFound = errors.New("article not found")

// Article is the long-form content type: a structured piece with separate
// introduction, body and conclusion sections plus citations and tags.
type Article struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Introduction string    `json:"introduction"`
	Body         string    `json:"body"`
	Conclusion   string    `json:"conclusion"`
	References   []string  `json:"references,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	Category     string    `json:"category"`
	Thumbnail    string    `json:"thumbnail,omitempty"`
	AuthorID     string    `json:"-"`
	Author       AuthorRef `json:"author"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
