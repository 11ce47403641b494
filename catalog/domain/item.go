package domain

import (
	"context"
)

// Item represents a single catalog listing.
// Category carries the joined category name on read paths and may be empty
// on writes; ImageRef is the content-addressed filename assigned by the
// image store and is never empty once the item exists.
type Item struct {
	ID         int64
	Name       string
	CategoryID int64
	Category   string
	ImageRef   string
}

type CatalogRepository interface {
	// CreateCategory returns the id for the named category, inserting the
	// row if the name has not been seen before. Idempotent.
	CreateCategory(ctx context.Context, name string) (int64, error)

	// InsertItem persists a new item referencing an existing category and a
	// stored image. Fails with ErrConstraintViolation if the category does
	// not exist.
	InsertItem(ctx context.Context, name string, categoryID int64, imageRef string) (int64, error)

	// GetItem retrieves a single item with its category name resolved.
	GetItem(ctx context.Context, id int64) (*Item, error)

	// ListItems returns all items with category names resolved, ordered by
	// ascending id.
	ListItems(ctx context.Context) ([]*Item, error)

	// SearchItems returns items whose name contains the keyword. An empty
	// keyword matches everything; no match returns an empty slice.
	SearchItems(ctx context.Context, keyword string) ([]*Item, error)
}
