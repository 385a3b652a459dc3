package domain

import (
	"errors"
	"time"
)

var (
	ErrContactNotFound      = errors.New("contact not found")
	ErrInvalidContactStatus = errors.New("invalid contact status")
)

// ContactStatus tracks the triage state of an inbound contact message.
type ContactStatus string

const (
	ContactPending   ContactStatus = "pending"
	ContactRead      ContactStatus = "read"
	ContactResponded ContactStatus = "responded"
)

// Valid reports whether s is a known contact status.
func (s ContactStatus) Valid() bool {
	switch s {
	case ContactPending, ContactRead, ContactResponded:
		return true
	}
	return false
}

// Contact is a message submitted through the public contact form.
type Contact struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Subject   string        `json:"subject"`
	Message   string        `json:"message"`
	Status    ContactStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}
