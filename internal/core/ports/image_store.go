package ports

import "context"

// ImageStore persists binary images to external object storage and returns a
// publicly reachable URL.
type ImageStore interface {
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
}
