// Package storage wraps the object store behind the image/file upload
// contract the admin dashboard relies on: bounded-width resize, recompress,
// upload, signed URL back. Deletes are best-effort and never fail the
// primary operation.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

const (
	// MaxImageWidth bounds uploaded images; larger ones are scaled down
	// preserving aspect ratio.
	MaxImageWidth = 1600

	jpegQuality = 80

	// signedURLExpiry is the longest expiry S3-compatible stores accept.
	signedURLExpiry = 7 * 24 * time.Hour
)

// ObjectStore is the slice of the minio client the uploader needs.
type ObjectStore interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	PresignedGetObject(ctx context.Context, bucketName, objectName string, expires time.Duration, reqParams url.Values) (*url.URL, error)
}

// Uploader resizes and stores images (and raw files such as resumes) in one
// bucket and hands back signed URLs.
type Uploader struct {
	store  ObjectStore
	bucket string
	logger *zap.Logger
}

// NewUploader creates an Uploader over the given bucket.
func NewUploader(store ObjectStore, bucket string, logger *zap.Logger) *Uploader {
	return &Uploader{
		store:  store,
		bucket: bucket,
		logger: logger,
	}
}

// UploadImage decodes, resizes to MaxImageWidth and recompresses the image,
// stores it and returns a signed URL. Decode/encode failures fail the upload.
func (u *Uploader) UploadImage(ctx context.Context, r io.Reader, contentType string) (string, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	if img.Bounds().Dx() > MaxImageWidth {
		img = imaging.Resize(img, MaxImageWidth, 0, imaging.Lanczos)
	}

	// PNG keeps its transparency; everything else is recompressed as JPEG.
	format := imaging.JPEG
	outType := "image/jpeg"
	if contentType == "image/png" {
		format = imaging.PNG
		outType = "image/png"
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(jpegQuality)); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	return u.put(ctx, &buf, int64(buf.Len()), outType)
}

// UploadFile stores a raw blob (resumes and other non-image files) untouched.
func (u *Uploader) UploadFile(ctx context.Context, r io.Reader, contentType string) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	return u.put(ctx, &buf, int64(buf.Len()), contentType)
}

// ReplaceImage deletes the old object best-effort, then uploads the new
// image. A missing or undeletable old file never blocks the replace.
func (u *Uploader) ReplaceImage(ctx context.Context, r io.Reader, contentType, oldURL string) (string, error) {
	u.Delete(ctx, oldURL)
	return u.UploadImage(ctx, r, contentType)
}

// Delete removes the object behind a previously issued URL. Best-effort:
// failures are logged and swallowed so cleanup never breaks the caller.
func (u *Uploader) Delete(ctx context.Context, rawURL string) {
	name, err := u.objectName(rawURL)
	if err != nil {
		u.logger.Warn("Skipping delete of unparseable object URL",
			zap.String("url", rawURL),
			zap.Error(err),
		)
		return
	}

	if err := u.store.RemoveObject(ctx, u.bucket, name, minio.RemoveObjectOptions{}); err != nil {
		u.logger.Warn("Best-effort object delete failed",
			zap.String("object", name),
			zap.Error(err),
		)
	}
}

func (u *Uploader) put(ctx context.Context, r io.Reader, size int64, contentType string) (string, error) {
	name := uuid.NewString() + extensionFor(contentType)

	_, err := u.store.PutObject(ctx, u.bucket, name, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	signed, err := u.store.PresignedGetObject(ctx, u.bucket, name, signedURLExpiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to sign object url: %w", err)
	}
	return signed.String(), nil
}

// objectName extracts the stored object name from a signed URL.
func (u *Uploader) objectName(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	name := strings.TrimPrefix(parsed.Path, "/"+u.bucket+"/")
	name = strings.TrimPrefix(name, "/")
	if name == "" {
		return "", fmt.Errorf("no object name in %q", rawURL)
	}
	return path.Base(name), nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "application/pdf":
		return ".pdf"
	default:
		return ""
	}
}
