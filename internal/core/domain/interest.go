package domain

import (
	"errors"
	"time"
)

var ErrInterestNotFound = errors.New("interest not found")

// Interest is a content category. Users reference interests for feed
// personalisation and every blog or article is filed under exactly one.
type Interest struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
