package handler

import (
	"time"

	"github.com/inkwell/publishing-api/internal/core/domain"
)

type articleRequest struct {
	Title        string   `json:"title"        validate:"required"`
	Introduction string   `json:"introduction" validate:"required"`
	Body         string   `json:"body"         validate:"required"`
	Conclusion   string   `json:"conclusion"   validate:"required"`
	References   []string `json:"references"`
	Tags         []string `json:"tags"`
	Category     string   `json:"category"     validate:"required"`
	Thumbnail    string   `json:"thumbnail"`
}

type articleResponse struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Introduction string         `json:"introduction"`
	Body         string         `json:"body"`
	Conclusion   string         `json:"conclusion"`
	References   []string       `json:"references,omitempty"`
	Tags         []string       `json:"tags,omitempty"`
	Category     string         `json:"category"`
	Thumbnail    string         `json:"thumbnail,omitempty"`
	Author       authorResponse `json:"author"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func toArticleResponse(a *domain.Article) articleResponse {
	return articleResponse{
		ID:           a.ID,
		Title:        a.Title,
		Introduction: a.Introduction,
		Body:         a.Body,
		Conclusion:   a.Conclusion,
		References:   a.References,
		Tags:         a.Tags,
		Category:     a.Category,
		Thumbnail:    a.Thumbnail,
		Author: authorResponse{
			ID:       a.Author.ID,
			Username: a.Author.Username,
			Email:    a.Author.Email,
		},
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func toArticleResponses(articles []*domain.Article) []articleResponse {
	out := make([]articleResponse, 0, len(articles))
	for _, a := range articles {
		out = append(out, toArticleResponse(a))
	}
	return out
}
