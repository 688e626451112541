package repository

import (
	"context"
	"errors"

	"github.com/knst/site-services/internal/content"
)

// ErrNotFound is returned by Load and WritePath when no content document
// exists yet at the fixed key. Callers bootstrap via WriteFull.
var ErrNotFound = errors.New("content document not found")

// Repository abstracts the document store holding the single site content
// document. Exactly one document exists per site; there is no listing.
type Repository interface {
	// Load returns a point-in-time read of the document, or ErrNotFound.
	Load(ctx context.Context) (content.Document, error)

	// WritePath applies a partial update at one dot-path without touching
	// sibling fields. Returns ErrNotFound when the document does not exist.
	WritePath(ctx context.Context, p content.Path, value any) error

	// WriteFull replaces or creates the entire document. Only used for the
	// lazy bootstrap when the document is absent.
	WriteFull(ctx context.Context, doc content.Document) error

	// Watch delivers the current document state once immediately and again
	// after every subsequent change, until ctx is done or the returned stop
	// function is called. Each delivery is a consistent snapshot.
	Watch(ctx context.Context, fn func(content.Document)) (stop func(), err error)
}
