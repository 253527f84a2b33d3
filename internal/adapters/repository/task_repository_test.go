package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdesk/core/internal/domain/entities"
	"github.com/taskdesk/core/internal/ports"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "sqlmock"), mock
}

var taskRows = []string{
	"id", "title", "description", "completed", "priority",
	"created_at", "updated_at", "completed_at", "due_date",
	"category_id", "category_name",
}

func TestTaskRepositoryCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectQuery(`INSERT INTO tasks`).
		WithArgs("Buy groceries", "", false, entities.PriorityMedium,
			sqlmock.AnyArg(), sqlmock.AnyArg(), nil, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	task := &entities.Task{
		Title:     "Buy groceries",
		Priority:  entities.PriorityMedium,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	require.NoError(t, repo.Create(context.Background(), task))
	assert.Equal(t, int64(7), task.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepositoryGetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	now := time.Now()
	categoryID := int64(3)
	mock.ExpectQuery(`SELECT (.+) FROM tasks t LEFT JOIN categories c`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(taskRows).AddRow(
			int64(7), "Buy groceries", "", false, "medium",
			now, now, nil, nil, categoryID, "Errands",
		))

	task, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, int64(7), task.ID)
	assert.Equal(t, "Buy groceries", task.Title)
	assert.Equal(t, entities.PriorityMedium, task.Priority)
	require.NotNil(t, task.CategoryName)
	assert.Equal(t, "Errands", *task.CategoryName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepositoryGetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectQuery(`SELECT (.+) FROM tasks t LEFT JOIN categories c`).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, entities.ErrTaskNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepositoryUpdateNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectExec(`UPDATE tasks`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &entities.Task{ID: 404, Title: "Ghost", Priority: entities.PriorityLow})
	assert.ErrorIs(t, err, entities.ErrTaskNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepositoryDelete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectExec(`DELETE FROM tasks WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 7))

	mock.ExpectExec(`DELETE FROM tasks WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 7), entities.ErrTaskNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepositoryListBuildsFilteredQuery(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	now := time.Now()
	mock.ExpectQuery(`SELECT (.+) FROM tasks t LEFT JOIN categories c ON c\.id = t\.category_id WHERE t\.completed = \$1 AND t\.priority = \$2 ORDER BY CASE t\.priority WHEN 'high' THEN 3 WHEN 'medium' THEN 2 ELSE 1 END DESC, t\.created_at DESC LIMIT 10`).
		WithArgs(false, entities.PriorityHigh).
		WillReturnRows(sqlmock.NewRows(taskRows).AddRow(
			int64(1), "Urgent thing", "details", false, "high",
			now, now, nil, nil, nil, nil,
		))

	tasks, err := repo.List(context.Background(), ports.TaskFilter{
		Status:   ports.StatusPending,
		Priority: entities.PriorityHigh,
		Limit:    10,
	})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Urgent thing", tasks[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepositoryCount(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM tasks t WHERE t\.completed = \$1`).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(4)))

	count, err := repo.Count(context.Background(), ports.TaskFilter{Status: ports.StatusCompleted})
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepositoryExistsByTitlePrefix(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("Guide: Step 1:%").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByTitlePrefix(context.Background(), "Guide: Step 1:")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepositoryBulkSetCompletion(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	now := time.Now()
	ids := []int64{1, 2, 3}

	mock.ExpectExec(`UPDATE tasks SET completed = \$1, completed_at = \$2, updated_at = CURRENT_TIMESTAMP WHERE id = ANY\(\$3\)`).
		WithArgs(true, now, pq.Array(ids)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	count, err := repo.BulkSetCompletion(context.Background(), ids, true, &now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepositoryBulkSetPriority(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	ids := []int64{1, 2}

	mock.ExpectExec(`UPDATE tasks SET priority = \$1, updated_at = CURRENT_TIMESTAMP WHERE id = ANY\(\$2\)`).
		WithArgs(entities.PriorityHigh, pq.Array(ids)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	count, err := repo.BulkSetPriority(context.Background(), ids, entities.PriorityHigh)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
