// Package storage implements the ImageStore domain service on a blob bucket.
package storage

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	"gocloud.dev/gcerrors"

	"orderdesk/config"
	domainerrors "orderdesk/internal/domain/errors"
	"orderdesk/internal/domain/service"
)

// publicPrefix is the URL path under which stored images are served.
const publicPrefix = "/images/"

// extByContentType is the allow-list of accepted upload types.
var extByContentType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// blobImageStore keeps product images in a local fileblob bucket. The bucket
// abstraction keeps a cloud backend one URL change away.
type blobImageStore struct {
	bucket   *blob.Bucket
	maxBytes int64
}

// NewBlobImageStore is the constructor for blobImageStore.
func NewBlobImageStore(cfg *config.Config) (service.ImageStore, error) {
	if cfg.Storage == nil || cfg.Storage.ImagePath == "" {
		return nil, errors.New("storage image path must be provided")
	}

	bucket, err := fileblob.OpenBucket(cfg.Storage.ImagePath, &fileblob.Options{
		CreateDir: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open image bucket")
	}

	return &blobImageStore{
		bucket:   bucket,
		maxBytes: cfg.Storage.MaxUploadBytes,
	}, nil
}

// Save writes the image under a random name and returns its public URL path.
func (s *blobImageStore) Save(ctx context.Context, origFilename string, contentType string, r io.Reader) (string, error) {
	ext, ok := extByContentType[contentType]
	if !ok {
		return "", domainerrors.ErrImageInvalid.WrapMessage("unsupported content type " + contentType)
	}
	// The original extension wins when it agrees with the declared type, so
	// .jpeg survives as .jpeg.
	if orig := strings.ToLower(path.Ext(origFilename)); orig != "" && sameImageType(orig, ext) {
		ext = orig
	}

	key := uuid.New().String() + ext
	writer, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to open image writer")
	}

	limited := r
	if s.maxBytes > 0 {
		limited = io.LimitReader(r, s.maxBytes+1)
	}

	written, err := io.Copy(writer, limited)
	if err != nil {
		writer.Close()

		return "", errors.Wrap(err, "failed to write image")
	}
	if s.maxBytes > 0 && written > s.maxBytes {
		writer.Close()
		s.bucket.Delete(ctx, key)

		return "", domainerrors.ErrImageInvalid.WrapMessage("image exceeds upload size limit")
	}
	if err := writer.Close(); err != nil {
		return "", errors.Wrap(err, "failed to finish image write")
	}

	return publicPrefix + key, nil
}

// Delete removes a previously stored image by its URL path. Unknown paths
// are ignored so callers can fire and forget.
func (s *blobImageStore) Delete(ctx context.Context, url string) error {
	key := strings.TrimPrefix(url, publicPrefix)
	if key == "" || key == url {
		return nil
	}

	if err := s.bucket.Delete(ctx, key); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil
		}

		return errors.Wrap(err, "failed to delete image")
	}

	return nil
}

// sameImageType reports whether two extensions name the same image format.
func sameImageType(a, b string) bool {
	normalize := func(ext string) string {
		if ext == ".jpeg" {
			return ".jpg"
		}

		return ext
	}

	return normalize(a) == normalize(b)
}
