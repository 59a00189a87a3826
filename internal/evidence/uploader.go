// Package evidence stores photographic evidence: images are recompressed and
// written to object storage under deterministic, non-colliding names.
package evidence

import (
	"context"
	"errors"
	"laporantdx/backend/internal/config"
	"laporantdx/backend/internal/logger"
)

// ErrObjectExists is returned by an ObjectStore when the name is taken.
var ErrObjectExists = errors.New("object already exists")

// ObjectStore is the object-storage contract the uploader needs.
type ObjectStore interface {
	// Put must fail with ErrObjectExists instead of overwriting.
	Put(ctx context.Context, name, contentType string, data []byte) error
	PublicURL(name string) string
}

type Uploader struct {
	store ObjectStore
	log   *logger.Logger
}

func NewUploader(store ObjectStore, log *logger.Logger) *Uploader {
	return &Uploader{store: store, log: log.With("service", "EvidenceUploader")}
}

// Upload recompresses file and stores it in folder, returning its URL. A nil
// or empty file is a no-op. Every failure is logged and yields "".
func (u *Uploader) Upload(ctx context.Context, file []byte, category, timeLabel, folder string) string {
	if len(file) == 0 {
		return ""
	}

	data, err := Recompress(file)
	if err != nil {
		u.log.Warn("evidence recompress failed", "category", category, "time", timeLabel, "error", err)
		return ""
	}

	for attempt := 1; attempt <= config.EvidenceMaxNameProbes; attempt++ {
		name := ObjectName(folder, category, timeLabel, attempt)
		err := u.put(ctx, name, data)
		if err == nil {
			u.log.Info("evidence uploaded", "object", name, "bytes", len(data), "original_bytes", len(file))
			return u.store.PublicURL(name)
		}
		if !errors.Is(err, ErrObjectExists) {
			u.log.Warn("evidence upload failed", "object", name, "error", err)
			return ""
		}
	}
	u.log.Warn("evidence upload gave up: every candidate name is taken",
		"category", category, "time", timeLabel, "folder", folder)
	return ""
}

func (u *Uploader) put(ctx context.Context, name string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, config.UploadTimeout)
	defer cancel()
	return u.store.Put(ctx, name, "image/jpeg", data)
}
