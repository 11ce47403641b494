package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dfryer1193/catalog/catalog/domain"
)

var _ domain.CatalogRepository = (*JSONCatalogRepository)(nil)

// JSONCatalogRepository implements domain.CatalogRepository over a single
// JSON document on disk. It honors the same contract as the SQLite
// repository: insertion-ordered ids, unique category names, and referential
// checks on insert. A mutex serializes writers; every write stages the full
// document to a temp file and publishes it with an atomic rename.
type JSONCatalogRepository struct {
	path string

	mu  sync.RWMutex
	doc catalogDocument
}

type catalogDocument struct {
	Categories []jsonCategory `json:"categories"`
	Items      []jsonItem     `json:"items"`
}

type jsonCategory struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type jsonItem struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	CategoryID int64  `json:"category_id"`
	ImageName  string `json:"image_name"`
}

// NewJSONCatalogRepository loads the document at path, starting from an
// empty catalog when the file does not exist yet.
func NewJSONCatalogRepository(path string) (*JSONCatalogRepository, error) {
	r := &JSONCatalogRepository{
		path: path,
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog document: %w", err)
	}

	if err := json.Unmarshal(data, &r.doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog document: %w", err)
	}

	return r, nil
}

// CreateCategory returns the id of the named category, appending a new entry
// if the name is new. Idempotent.
func (r *JSONCatalogRepository) CreateCategory(ctx context.Context, name string) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("category name cannot be empty: %w", domain.ErrInvalidInput)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.doc.Categories {
		if c.Name == name {
			return c.ID, nil
		}
	}

	id := int64(1)
	for _, c := range r.doc.Categories {
		if c.ID >= id {
			id = c.ID + 1
		}
	}

	next := r.doc
	next.Categories = append(append([]jsonCategory{}, r.doc.Categories...), jsonCategory{ID: id, Name: name})

	if err := r.persist(next); err != nil {
		return 0, err
	}

	r.doc = next
	return id, nil
}

// InsertItem appends a new item entry referencing an existing category.
func (r *JSONCatalogRepository) InsertItem(ctx context.Context, name string, categoryID int64, imageRef string) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("item name cannot be empty: %w", domain.ErrInvalidInput)
	}

	if imageRef == "" {
		return 0, fmt.Errorf("item image ref cannot be empty: %w", domain.ErrInvalidInput)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.categoryName(categoryID) == "" {
		return 0, fmt.Errorf("category %d does not exist: %w", categoryID, domain.ErrConstraintViolation)
	}

	id := int64(1)
	for _, it := range r.doc.Items {
		if it.ID >= id {
			id = it.ID + 1
		}
	}

	next := r.doc
	next.Items = append(append([]jsonItem{}, r.doc.Items...), jsonItem{
		ID:         id,
		Name:       name,
		CategoryID: categoryID,
		ImageName:  imageRef,
	})

	if err := r.persist(next); err != nil {
		return 0, err
	}

	r.doc = next
	return id, nil
}

// GetItem retrieves a single item by id with its category name resolved
func (r *JSONCatalogRepository) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, it := range r.doc.Items {
		if it.ID == id {
			return r.toDomain(it), nil
		}
	}

	return nil, fmt.Errorf("item %d: %w", id, domain.ErrNotFound)
}

// ListItems returns every item in insertion order
func (r *JSONCatalogRepository) ListItems(ctx context.Context) ([]*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := []*domain.Item{}
	for _, it := range r.doc.Items {
		items = append(items, r.toDomain(it))
	}

	return items, nil
}

// SearchItems returns items whose name contains the keyword
func (r *JSONCatalogRepository) SearchItems(ctx context.Context, keyword string) ([]*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := []*domain.Item{}
	for _, it := range r.doc.Items {
		if strings.Contains(it.Name, keyword) {
			items = append(items, r.toDomain(it))
		}
	}

	return items, nil
}

// persist stages the document to a temp file and atomically replaces the
// published copy. Callers must hold the write lock.
func (r *JSONCatalogRepository) persist(doc catalogDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode catalog document: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create catalog directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "catalog-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to stage catalog document: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write catalog document: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close staged catalog document: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to publish catalog document: %w", err)
	}

	return nil
}

// categoryName resolves a category id to its name, or "" when unknown.
// Callers must hold at least the read lock.
func (r *JSONCatalogRepository) categoryName(id int64) string {
	for _, c := range r.doc.Categories {
		if c.ID == id {
			return c.Name
		}
	}
	return ""
}

func (r *JSONCatalogRepository) toDomain(it jsonItem) *domain.Item {
	return &domain.Item{
		ID:         it.ID,
		Name:       it.Name,
		CategoryID: it.CategoryID,
		Category:   r.categoryName(it.CategoryID),
		ImageRef:   it.ImageName,
	}
}
