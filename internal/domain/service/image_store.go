package service

import (
	"context"
	"io"
)

// ImageStore persists uploaded product images and serves back their public URL.
type ImageStore interface {
	// Save writes the image under a generated name and returns its URL path.
	Save(ctx context.Context, origFilename string, contentType string, r io.Reader) (string, error)

	// Delete removes a previously stored image by its URL path.
	Delete(ctx context.Context, url string) error
}
