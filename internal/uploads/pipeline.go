package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/knst/site-services/internal/content"
	"github.com/knst/site-services/pkg/logger"
	"github.com/knst/site-services/pkg/metrics"
)

// ErrTooLarge is returned before any network call when a file exceeds the
// configured ceiling.
var ErrTooLarge = errors.New("file exceeds upload size limit")

// BlobStore is the write-once object store images land in.
type BlobStore interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	PublicURL(key string) string
}

// Saver writes the resulting URL at a content path; satisfied by the content
// provider.
type Saver interface {
	Save(ctx context.Context, p content.Path, value any) error
}

// Pipeline turns a user-selected file into a persisted URL at a target
// content path: validate size, upload under a timestamped key, resolve the
// public URL, write it through the same path-addressed save as any text edit.
type Pipeline struct {
	store    BlobStore
	saver    Saver
	maxBytes int64

	// now is replaceable in tests for deterministic keys
	now func() time.Time
}

func NewPipeline(store BlobStore, saver Saver, maxBytes int64) *Pipeline {
	return &Pipeline{store: store, saver: saver, maxBytes: maxBytes, now: time.Now}
}

// UploadImage runs the full pipeline and returns the public URL written at p.
// A failure after the blob upload leaves the object orphaned in storage;
// nothing reconciles that.
func (pl *Pipeline) UploadImage(ctx context.Context, p content.Path, filename string, size int64, contentType string, r io.Reader) (string, error) {
	if size > pl.maxBytes {
		metrics.ImageUploads.WithLabelValues("too_large").Inc()
		return "", fmt.Errorf("%w: %d bytes (limit %d)", ErrTooLarge, size, pl.maxBytes)
	}

	key := fmt.Sprintf("images/%d_%s", pl.now().UnixMilli(), sanitizeFilename(filename))
	if err := pl.store.Upload(ctx, key, r, size, contentType); err != nil {
		metrics.ImageUploads.WithLabelValues("error").Inc()
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	url := pl.store.PublicURL(key)
	if err := pl.saver.Save(ctx, p, url); err != nil {
		metrics.ImageUploads.WithLabelValues("error").Inc()
		logger.Warnf("uploaded object %s is orphaned: path write failed: %v", key, err)
		return "", fmt.Errorf("write %s after upload: %w", p.String(), err)
	}

	metrics.ImageUploads.WithLabelValues("ok").Inc()
	logger.Infof("image uploaded: %s -> %s", key, p.String())
	return url, nil
}

// sanitizeFilename strips path separators and whitespace so the original
// filename can be embedded in the object key.
func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.LastIndexAny(name, "/\\"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.ReplaceAll(name, " ", "_")
	if name == "" {
		name = "upload"
	}
	return name
}
