// internal/adapters/out/gcs/product_image_repository_gcs.go
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
)

// ProductImageRepositoryGCS stores product images in a GCS bucket and hands
// back their public URL. Objects live under "products/<productId>/<file>".
type ProductImageRepositoryGCS struct {
	Client *storage.Client
	Bucket string
}

func NewProductImageRepositoryGCS(client *storage.Client, bucket string) *ProductImageRepositoryGCS {
	return &ProductImageRepositoryGCS{
		Client: client,
		Bucket: strings.TrimSpace(bucket),
	}
}

func (r *ProductImageRepositoryGCS) effectiveBucket() (string, error) {
	b := strings.TrimSpace(r.Bucket)
	if b == "" {
		return "", errors.New("ProductImageRepositoryGCS: bucket is empty")
	}
	return b, nil
}

// Upload writes the object and returns its public URL. The bucket is
// expected to grant public read on objects (storefront images).
func (r *ProductImageRepositoryGCS) Upload(ctx context.Context, objectName, contentType string, src io.Reader) (string, error) {
	if r == nil || r.Client == nil {
		return "", errors.New("ProductImageRepositoryGCS: nil storage client")
	}
	bucketName, err := r.effectiveBucket()
	if err != nil {
		return "", err
	}

	objectName = strings.TrimLeft(strings.TrimSpace(objectName), "/")
	if objectName == "" {
		return "", errors.New("ProductImageRepositoryGCS: objectName is empty")
	}

	w := r.Client.Bucket(bucketName).Object(objectName).NewWriter(ctx)
	if ct := strings.TrimSpace(contentType); ct != "" {
		w.ContentType = ct
	}
	w.CacheControl = "public, max-age=86400"

	if _, err := io.Copy(w, src); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("upload %s: %w", objectName, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("upload %s: %w", objectName, err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucketName, objectName), nil
}

// Remove deletes the object; a missing object is treated as already removed.
func (r *ProductImageRepositoryGCS) Remove(ctx context.Context, objectName string) error {
	if r == nil || r.Client == nil {
		return errors.New("ProductImageRepositoryGCS: nil storage client")
	}
	bucketName, err := r.effectiveBucket()
	if err != nil {
		return err
	}

	objectName = strings.TrimLeft(strings.TrimSpace(objectName), "/")
	if objectName == "" {
		return errors.New("ProductImageRepositoryGCS: objectName is empty")
	}

	if err := r.Client.Bucket(bucketName).Object(objectName).Delete(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil
		}
		return err
	}
	return nil
}
