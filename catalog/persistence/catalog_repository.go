package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dfryer1193/catalog/catalog/domain"
	"github.com/dfryer1193/catalog/shared/db"
)

var _ domain.CatalogRepository = (*SQLiteCatalogRepository)(nil)

// SQLiteCatalogRepository implements domain.CatalogRepository using SQL
// database (SQLite)
type SQLiteCatalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates a new SQLiteCatalogRepository from a standard
// sql.DB
func NewCatalogRepository(sqlDB *sql.DB) *SQLiteCatalogRepository {
	return &SQLiteCatalogRepository{
		db: sqlDB,
	}
}

const selectCategoryByNameQuery = `
	SELECT id FROM categories WHERE name = ?
`

const insertCategoryQuery = `
	INSERT INTO categories (name) VALUES (?)
`

// CreateCategory returns the id of the named category, inserting the row if
// the name is new. Lookup and insert run in one transaction so concurrent
// callers with the same name resolve to a single row.
func (r *SQLiteCatalogRepository) CreateCategory(ctx context.Context, name string) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("category name cannot be empty: %w", domain.ErrInvalidInput)
	}

	var id int64
	err := db.RunInTransaction(ctx, r.db, func(txCtx context.Context) error {
		executor := db.GetExecutor(txCtx, r.db)

		err := executor.QueryRowContext(txCtx, selectCategoryByNameQuery, name).Scan(&id)
		if err == nil {
			return nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to look up category: %w", err)
		}

		res, err := executor.ExecContext(txCtx, insertCategoryQuery, name)
		if err != nil {
			return fmt.Errorf("failed to insert category: %w", err)
		}

		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get category id: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

const categoryExistsQuery = `
	SELECT 1 FROM categories WHERE id = ?
`

const insertItemQuery = `
	INSERT INTO items (name, category_id, image_name) VALUES (?, ?, ?)
`

// InsertItem persists a new item row. The category existence check and the
// insert share a transaction, so a concurrent reader sees either no row or a
// fully referenced one.
func (r *SQLiteCatalogRepository) InsertItem(ctx context.Context, name string, categoryID int64, imageRef string) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("item name cannot be empty: %w", domain.ErrInvalidInput)
	}

	if imageRef == "" {
		return 0, fmt.Errorf("item image ref cannot be empty: %w", domain.ErrInvalidInput)
	}

	var id int64
	err := db.RunInTransaction(ctx, r.db, func(txCtx context.Context) error {
		executor := db.GetExecutor(txCtx, r.db)

		var one int
		err := executor.QueryRowContext(txCtx, categoryExistsQuery, categoryID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("category %d does not exist: %w", categoryID, domain.ErrConstraintViolation)
		}
		if err != nil {
			return fmt.Errorf("failed to check category: %w", err)
		}

		res, err := executor.ExecContext(txCtx, insertItemQuery, name, categoryID, imageRef)
		if err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}

		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get item id: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

const getItemQuery = `
	SELECT items.id, items.name, items.category_id, categories.name, items.image_name
	FROM items
	JOIN categories ON items.category_id = categories.id
	WHERE items.id = ?
`

// GetItem retrieves a single item by id with its category name resolved
func (r *SQLiteCatalogRepository) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	var item domain.Item
	err := r.db.QueryRowContext(ctx, getItemQuery, id).Scan(
		&item.ID,
		&item.Name,
		&item.CategoryID,
		&item.Category,
		&item.ImageRef,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("item %d: %w", id, domain.ErrNotFound)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return &item, nil
}

const listItemsQuery = `
	SELECT items.id, items.name, items.category_id, categories.name, items.image_name
	FROM items
	JOIN categories ON items.category_id = categories.id
	ORDER BY items.id ASC
`

// ListItems returns every item in insertion order
func (r *SQLiteCatalogRepository) ListItems(ctx context.Context) ([]*domain.Item, error) {
	return r.queryItems(ctx, listItemsQuery)
}

const searchItemsQuery = `
	SELECT items.id, items.name, items.category_id, categories.name, items.image_name
	FROM items
	JOIN categories ON items.category_id = categories.id
	WHERE items.name LIKE ?
	ORDER BY items.id ASC
`

// SearchItems returns items whose name contains the keyword. No match is an
// empty result, never an error.
func (r *SQLiteCatalogRepository) SearchItems(ctx context.Context, keyword string) ([]*domain.Item, error) {
	return r.queryItems(ctx, searchItemsQuery, "%"+keyword+"%")
}

func (r *SQLiteCatalogRepository) queryItems(ctx context.Context, query string, args ...any) ([]*domain.Item, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	items := []*domain.Item{}
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.CategoryID,
			&item.Category,
			&item.ImageRef,
		); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return items, nil
}
