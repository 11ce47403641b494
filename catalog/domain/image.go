package domain

import (
	"context"
)

// ImageExt is the single accepted image format.
const ImageExt = ".jpg"

// ImageStore is a content-addressed blob store. The ref returned by Put is
// derived from the image bytes, so storing the same bytes twice yields the
// same ref and a single stored blob.
type ImageStore interface {
	// Put stores the image bytes and returns their content ref. The
	// declared filename must carry the accepted image extension.
	Put(ctx context.Context, filename string, data []byte) (string, error)

	// Get returns the exact bytes previously stored under ref, or
	// ErrNotFound for an unknown ref.
	Get(ctx context.Context, ref string) ([]byte, error)
}
