package evidence

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GCSStore writes evidence objects to a Google Cloud Storage bucket.
type GCSStore struct {
	client    *storage.Client
	bucket    string
	cdnDomain string
}

// ClientOptions turns a credentials value (inline JSON or a file path) into
// Google client options.
func ClientOptions(credentials string) []option.ClientOption {
	credentials = strings.TrimSpace(credentials)
	if credentials == "" {
		return nil
	}
	if strings.HasPrefix(credentials, "{") {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(credentials))}
	}
	return []option.ClientOption{option.WithCredentialsFile(credentials)}
}

func NewGCSStore(ctx context.Context, bucket, cdnDomain string, opts ...option.ClientOption) (*GCSStore, error) {
	opts = append(opts, option.WithScopes(storage.ScopeReadWrite))
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &GCSStore{client: client, bucket: bucket, cdnDomain: cdnDomain}, nil
}

// Put writes data only if no object with that name exists yet.
func (s *GCSStore) Put(ctx context.Context, name, contentType string, data []byte) error {
	obj := s.client.Bucket(s.bucket).Object(name).If(storage.Conditions{DoesNotExist: true})
	w := obj.NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write data to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusPreconditionFailed {
			return ErrObjectExists
		}
		return fmt.Errorf("failed to close GCS writer: %w", err)
	}
	return nil
}

func (s *GCSStore) PublicURL(name string) string {
	name = strings.TrimLeft(name, "/")
	if s.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", s.cdnDomain, name)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, name)
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}
