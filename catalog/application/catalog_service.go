package application

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dfryer1193/catalog/catalog/domain"
	"github.com/rs/zerolog/log"
)

// placeholderImage is served for image refs that cannot be resolved, so a
// listing with a dangling ref still renders.
//
//go:embed no_image.jpg
var placeholderImage []byte

// CatalogService orchestrates item ingestion and the catalog read paths.
// Ingestion stores the photo first and only then inserts the catalog row, so
// a storage failure never leaves a partially visible item; a row failure at
// worst leaves an unreferenced blob behind, which is harmless and reusable
// because the store is content-addressed.
type CatalogService struct {
	repo   domain.CatalogRepository
	images domain.ImageStore
}

func NewCatalogService(repo domain.CatalogRepository, images domain.ImageStore) *CatalogService {
	return &CatalogService{
		repo:   repo,
		images: images,
	}
}

// AddItem validates the request, resolves the category by name (creating it
// on first use), stores the image, and inserts the item row. It returns the
// new item's id.
func (s *CatalogService) AddItem(ctx context.Context, name, category, imageFilename string, imageData []byte) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("item name is required: %w", domain.ErrInvalidInput)
	}

	if category == "" {
		return 0, fmt.Errorf("category is required: %w", domain.ErrInvalidInput)
	}

	// Checked up front so a rejected upload leaves no category row behind;
	// the store re-checks on Put.
	if !strings.EqualFold(filepath.Ext(imageFilename), domain.ImageExt) {
		return 0, fmt.Errorf("image must be a %s file: %w", domain.ImageExt, domain.ErrInvalidInput)
	}

	categoryID, err := s.repo.CreateCategory(ctx, category)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve category %q: %w", category, err)
	}

	// The image is hashed and published before the catalog row exists, so
	// no row transaction spans the blob write.
	imageRef, err := s.images.Put(ctx, imageFilename, imageData)
	if err != nil {
		return 0, fmt.Errorf("failed to store image: %w", err)
	}

	id, err := s.repo.InsertItem(ctx, name, categoryID, imageRef)
	if err != nil {
		return 0, fmt.Errorf("failed to insert item: %w", err)
	}

	log.Info().
		Int64("id", id).
		Str("name", name).
		Str("category", category).
		Str("image", imageRef).
		Msg("Item added")

	return id, nil
}

// GetItem retrieves a single item with its category name resolved.
func (s *CatalogService) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	return s.repo.GetItem(ctx, id)
}

// ListItems returns every item in insertion order. An empty catalog yields
// an empty slice.
func (s *CatalogService) ListItems(ctx context.Context) ([]*domain.Item, error) {
	return s.repo.ListItems(ctx)
}

// SearchItems returns items whose name contains the keyword.
func (s *CatalogService) SearchItems(ctx context.Context, keyword string) ([]*domain.Item, error) {
	return s.repo.SearchItems(ctx, keyword)
}

// GetImage returns the bytes for a stored image ref. An unknown ref degrades
// to the placeholder image rather than an error; any other storage failure
// is surfaced.
func (s *CatalogService) GetImage(ctx context.Context, ref string) ([]byte, error) {
	data, err := s.images.Get(ctx, ref)
	if errors.Is(err, domain.ErrNotFound) {
		log.Warn().Str("ref", ref).Msg("Image not found, serving placeholder")
		return placeholderImage, nil
	}
	if err != nil {
		return nil, err
	}

	return data, nil
}
