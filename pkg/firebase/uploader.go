package firebase

import (
	"context"
	"fmt"
	"io"
	"path"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// Uploader stores a file in object storage and returns its public URL.
// Handlers depend on this interface so tests can stub the upload.
type Uploader interface {
	Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}

// StorageUploader implements Uploader on a Cloud Storage bucket
type StorageUploader struct {
	bucket     *gcs.BucketHandle
	bucketName string
}

// NewStorageUploader creates a new StorageUploader
func NewStorageUploader(app *App) *StorageUploader {
	return &StorageUploader{bucket: app.Bucket, bucketName: app.BucketName}
}

// Upload writes the file under a random object key, keeping the original
// extension, and returns the public object URL
func (u *StorageUploader) Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	object := fmt.Sprintf("uploads/%s%s", uuid.NewString(), path.Ext(filename))

	w := u.bucket.Object(object).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to write object %s: %w", object, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize object %s: %w", object, err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", u.bucketName, object), nil
}
