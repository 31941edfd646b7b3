package repository

import (
	"context"
	"database/sql"

	"github.com/content-publishing-api/internal/database"
	"github.com/content-publishing-api/internal/models"
)

// categoryRepo is the concrete implementation of CategoryRepository
type categoryRepo struct {
	db *database.DB
}

// NewCategoryRepo creates a new category repository
func NewCategoryRepo(db *database.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

const categoryColumns = `id, name, description, color, created_at, updated_at`

func scanCategory(row rowScanner) (*models.Category, error) {
	var category models.Category
	err := row.Scan(
		&category.ID, &category.Name, &category.Description, &category.Color,
		&category.CreatedAt, &category.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Insert creates a new category
func (r *categoryRepo) Insert(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (id, name, description, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		category.ID, category.Name, category.Description, category.Color,
		category.CreatedAt, category.UpdatedAt,
	)
	return err
}

// GetByName retrieves a category by its unique name
func (r *categoryRepo) GetByName(ctx context.Context, name string) (*models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE name = $1`

	category, err := scanCategory(r.db.QueryRowContext(ctx, query, name))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return category, nil
}

// List returns all categories ordered by name
func (r *categoryRepo) List(ctx context.Context) ([]*models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// Count returns the total number of categories
func (r *categoryRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories").Scan(&count)
	return count, err
}
