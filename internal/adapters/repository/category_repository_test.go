package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdesk/core/internal/domain/entities"
)

var categoryRows = []string{"id", "name", "description", "color"}

func TestCategoryRepositoryCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCategoryRepository(db)

	mock.ExpectQuery(`INSERT INTO categories`).
		WithArgs("Work", nil, entities.ColorInfo).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))

	category := &entities.Category{Name: "Work", Color: entities.ColorInfo}
	require.NoError(t, repo.Create(context.Background(), category))
	assert.Equal(t, int64(3), category.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepositoryGetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCategoryRepository(db)

	mock.ExpectQuery(`SELECT id, name, description, color FROM categories WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(categoryRows).AddRow(int64(3), "Work", nil, "info"))

	category, err := repo.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Work", category.Name)
	assert.Equal(t, entities.ColorInfo, category.Color)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepositoryGetByName(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCategoryRepository(db)

	mock.ExpectQuery(`SELECT id, name, description, color FROM categories WHERE name = \$1 ORDER BY id LIMIT 1`).
		WithArgs("Work").
		WillReturnRows(sqlmock.NewRows(categoryRows).AddRow(int64(3), "Work", nil, "info"))

	category, err := repo.GetByName(context.Background(), "Work")
	require.NoError(t, err)
	assert.Equal(t, int64(3), category.ID)

	mock.ExpectQuery(`SELECT id, name, description, color FROM categories WHERE name = \$1`).
		WithArgs("Ghost").
		WillReturnError(sql.ErrNoRows)

	_, err = repo.GetByName(context.Background(), "Ghost")
	assert.ErrorIs(t, err, entities.ErrCategoryNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepositoryUpdateNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCategoryRepository(db)

	mock.ExpectExec(`UPDATE categories`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &entities.Category{ID: 404, Name: "Ghost", Color: entities.ColorPrimary})
	assert.ErrorIs(t, err, entities.ErrCategoryNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepositoryDeleteNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCategoryRepository(db)

	mock.ExpectExec(`DELETE FROM categories WHERE id = \$1`).
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 404), entities.ErrCategoryNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepositoryListOrdersByName(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCategoryRepository(db)

	mock.ExpectQuery(`SELECT id, name, description, color FROM categories ORDER BY name`).
		WillReturnRows(sqlmock.NewRows(categoryRows).
			AddRow(int64(2), "Admin", nil, "secondary").
			AddRow(int64(1), "Work", nil, "info"))

	categories, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Admin", categories[0].Name)
	assert.Equal(t, "Work", categories[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
