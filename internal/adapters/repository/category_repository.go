package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/taskdesk/core/internal/domain/entities"
	"github.com/taskdesk/core/internal/ports"
)

// CategoryRepositoryImpl implements the CategoryRepository interface
type CategoryRepositoryImpl struct {
	db *sqlx.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *sqlx.DB) ports.CategoryRepository {
	return &CategoryRepositoryImpl{db: db}
}

func (r *CategoryRepositoryImpl) Create(ctx context.Context, category *entities.Category) error {
	query := `
		INSERT INTO categories (name, description, color)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		category.Name, category.Description, category.Color,
	).Scan(&category.ID)

	if err != nil {
		return fmt.Errorf("create category: %w", err)
	}

	return nil
}

func (r *CategoryRepositoryImpl) GetByID(ctx context.Context, id int64) (*entities.Category, error) {
	query := `
		SELECT id, name, description, color
		FROM categories
		WHERE id = $1`

	var category entities.Category
	err := r.db.GetContext(ctx, &category, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("get category by id: %w", err)
	}

	return &category, nil
}

// GetByName returns the oldest category with the given name. Names are not
// unique, so this is a convenience for get-or-create flows only.
func (r *CategoryRepositoryImpl) GetByName(ctx context.Context, name string) (*entities.Category, error) {
	query := `
		SELECT id, name, description, color
		FROM categories
		WHERE name = $1
		ORDER BY id
		LIMIT 1`

	var category entities.Category
	err := r.db.GetContext(ctx, &category, query, name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("get category by name: %w", err)
	}

	return &category, nil
}

func (r *CategoryRepositoryImpl) Update(ctx context.Context, category *entities.Category) error {
	query := `
		UPDATE categories
		SET name = $2, description = $3, color = $4
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		category.ID, category.Name, category.Description, category.Color,
	)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entities.ErrCategoryNotFound
	}

	return nil
}

// Delete removes a category. The tasks.category_id foreign key is declared
// ON DELETE SET NULL, so referencing tasks survive with a null category.
func (r *CategoryRepositoryImpl) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entities.ErrCategoryNotFound
	}

	return nil
}

func (r *CategoryRepositoryImpl) List(ctx context.Context) ([]*entities.Category, error) {
	query := `
		SELECT id, name, description, color
		FROM categories
		ORDER BY name`

	categories := []*entities.Category{}
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return categories, nil
}
