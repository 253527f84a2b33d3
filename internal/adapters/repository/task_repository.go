package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/taskdesk/core/internal/domain/entities"
	"github.com/taskdesk/core/internal/ports"
)

// priorityRankExpr maps the priority enum to its rank so ORDER BY yields
// high, medium, low instead of lexicographic order.
const priorityRankExpr = "CASE t.priority WHEN 'high' THEN 3 WHEN 'medium' THEN 2 ELSE 1 END"

var taskColumns = []string{
	"t.id", "t.title", "t.description", "t.completed", "t.priority",
	"t.created_at", "t.updated_at", "t.completed_at", "t.due_date",
	"t.category_id", "c.name AS category_name",
}

// TaskRepositoryImpl implements the TaskRepository interface
type TaskRepositoryImpl struct {
	db *sqlx.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sqlx.DB) ports.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *entities.Task) error {
	query := `
		INSERT INTO tasks (title, description, completed, priority,
			created_at, updated_at, completed_at, due_date, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		task.Title, task.Description, task.Completed, task.Priority,
		task.CreatedAt, task.UpdatedAt, task.CompletedAt, task.DueDate, task.CategoryID,
	).Scan(&task.ID)

	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	return nil
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, id int64) (*entities.Task, error) {
	query := `
		SELECT t.id, t.title, t.description, t.completed, t.priority,
			t.created_at, t.updated_at, t.completed_at, t.due_date,
			t.category_id, c.name AS category_name
		FROM tasks t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.id = $1`

	var task entities.Task
	err := r.db.GetContext(ctx, &task, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task by id: %w", err)
	}

	return &task, nil
}

func (r *TaskRepositoryImpl) Update(ctx context.Context, task *entities.Task) error {
	query := `
		UPDATE tasks
		SET title = $2, description = $3, completed = $4, priority = $5,
			updated_at = $6, completed_at = $7, due_date = $8, category_id = $9
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		task.ID, task.Title, task.Description, task.Completed, task.Priority,
		task.UpdatedAt, task.CompletedAt, task.DueDate, task.CategoryID,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entities.ErrTaskNotFound
	}

	return nil
}

func (r *TaskRepositoryImpl) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entities.ErrTaskNotFound
	}

	return nil
}

func (r *TaskRepositoryImpl) List(ctx context.Context, filter ports.TaskFilter) ([]*entities.Task, error) {
	qb := squirrel.Select(taskColumns...).
		From("tasks t").
		LeftJoin("categories c ON c.id = t.category_id").
		PlaceholderFormat(squirrel.Dollar)

	qb = applyTaskFilter(qb, filter)
	qb = qb.OrderBy(priorityRankExpr+" DESC", "t.created_at DESC")

	if filter.Limit > 0 {
		qb = qb.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		qb = qb.Offset(uint64(filter.Offset))
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	tasks := []*entities.Task{}
	if err := r.db.SelectContext(ctx, &tasks, query, args...); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	return tasks, nil
}

func (r *TaskRepositoryImpl) Count(ctx context.Context, filter ports.TaskFilter) (int64, error) {
	qb := squirrel.Select("COUNT(*)").
		From("tasks t").
		PlaceholderFormat(squirrel.Dollar)

	qb = applyTaskFilter(qb, filter)

	query, args, err := qb.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var count int64
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}

	return count, nil
}

func (r *TaskRepositoryImpl) ExistsByTitlePrefix(ctx context.Context, prefix string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM tasks WHERE title LIKE $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, prefix+"%"); err != nil {
		return false, fmt.Errorf("check title prefix: %w", err)
	}

	return exists, nil
}

func (r *TaskRepositoryImpl) BulkSetCompletion(ctx context.Context, ids []int64, completed bool, completedAt *time.Time) (int64, error) {
	query := `
		UPDATE tasks
		SET completed = $1, completed_at = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = ANY($3)`

	result, err := r.db.ExecContext(ctx, query, completed, completedAt, pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("bulk set completion: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get rows affected: %w", err)
	}

	return rowsAffected, nil
}

func (r *TaskRepositoryImpl) BulkSetPriority(ctx context.Context, ids []int64, priority entities.Priority) (int64, error) {
	query := `
		UPDATE tasks
		SET priority = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = ANY($2)`

	result, err := r.db.ExecContext(ctx, query, priority, pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("bulk set priority: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get rows affected: %w", err)
	}

	return rowsAffected, nil
}

// applyTaskFilter adds the WHERE clauses for a TaskFilter. Conditions
// combine with AND; zero values add nothing.
func applyTaskFilter(qb squirrel.SelectBuilder, filter ports.TaskFilter) squirrel.SelectBuilder {
	switch filter.Status {
	case ports.StatusPending:
		qb = qb.Where(squirrel.Eq{"t.completed": false})
	case ports.StatusCompleted:
		qb = qb.Where(squirrel.Eq{"t.completed": true})
	}

	if filter.Priority != "" {
		qb = qb.Where(squirrel.Eq{"t.priority": filter.Priority})
	}
	if filter.CategoryID != nil {
		qb = qb.Where(squirrel.Eq{"t.category_id": *filter.CategoryID})
	}

	return qb
}
