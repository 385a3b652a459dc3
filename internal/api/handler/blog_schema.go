package handler

import (
	"time"

	"github.com/inkwell/publishing-api/internal/core/domain"
)

type blogRequest struct {
	Title     string `json:"title"     validate:"required"`
	Content   string `json:"content"   validate:"required"`
	Category  string `json:"category"  validate:"required"`
	Thumbnail string `json:"thumbnail"`
}

type authorResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

type blogResponse struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Content   string         `json:"content"`
	Category  string         `json:"category"`
	Thumbnail string         `json:"thumbnail,omitempty"`
	Author    authorResponse `json:"author"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type uploadImageRequest struct {
	Image string `json:"image" validate:"required"`
}

type uploadImageResponse struct {
	URL string `json:"url"`
}

func toBlogResponse(b *domain.Blog) blogResponse {
	return blogResponse{
		ID:        b.ID,
		Title:     b.Title,
		Content:   b.Content,
		Category:  b.Category,
		Thumbnail: b.Thumbnail,
		Author: authorResponse{
			ID:       b.Author.ID,
			Username: b.Author.Username,
			Email:    b.Author.Email,
		},
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func toBlogResponses(blogs []*domain.Blog) []blogResponse {
	out := make([]blogResponse, 0, len(blogs))
	for _, b := range blogs {
		out = append(out, toBlogResponse(b))
	}
	return out
}
