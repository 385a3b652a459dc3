package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/inkwell/publishing-api/internal/core/ports"
)

// dataURIPattern matches inline base64 images embedded in rich-text content.
var dataURIPattern = regexp.MustCompile(`data:image/[^;]+;base64,[A-Za-z0-9+/=]+`)

// uploadDataURI decodes a base64 image data URI and stores it, returning the
// resulting URL.
func uploadDataURI(ctx context.Context, store ports.ImageStore, uri string) (string, error) {
	header, payload, ok := strings.Cut(uri, ",")
	if !ok {
		return "", fmt.Errorf("malformed image data uri")
	}
	contentType := strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	return store.Upload(ctx, data, contentType)
}

// externalizeImages replaces every inline base64 image in content with the
// URL of its stored copy. A failed upload leaves that image inline rather
// than failing the whole save.
func externalizeImages(ctx context.Context, store ports.ImageStore, content string, log zerolog.Logger) string {
	for _, uri := range dataURIPattern.FindAllString(content, -1) {
		url, err := uploadDataURI(ctx, store, uri)
		if err != nil {
			log.Warn().Err(err).Msg("inline image upload failed")
			continue
		}
		content = strings.Replace(content, uri, url, 1)
	}
	return content
}

// externalizeThumbnail stores a thumbnail when it arrives as a data URI and
// passes plain URLs through untouched.
func externalizeThumbnail(ctx context.Context, store ports.ImageStore, thumbnail string) (string, error) {
	if !strings.HasPrefix(thumbnail, "data:image") {
		return thumbnail, nil
	}
	return uploadDataURI(ctx, store, thumbnail)
}
