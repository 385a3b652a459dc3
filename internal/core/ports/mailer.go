package ports

import "context"

// Mailer delivers a one-time code to a recipient. Implementations may fail;
// callers decide whether a delivery failure is fatal for the operation.
type Mailer interface {
	SendOTP(ctx context.Context, to, subject, code string) error
}
