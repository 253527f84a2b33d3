package ports

import (
	"context"
	"time"

	"github.com/taskdesk/core/internal/domain/entities"
)

// TaskService interface for task lifecycle operations
type TaskService interface {
	CreateTask(ctx context.Context, req CreateTaskRequest) (*entities.Task, error)
	GetTask(ctx context.Context, id int64) (*entities.Task, error)
	UpdateTask(ctx context.Context, id int64, req UpdateTaskRequest) (*entities.Task, error)
	DeleteTask(ctx context.Context, id int64) error
	ToggleCompletion(ctx context.Context, id int64) (*entities.Task, error)
	ListTasks(ctx context.Context, filter TaskFilter) ([]*entities.Task, error)
	ExportTasks(ctx context.Context) ([]entities.TaskExport, error)
	BulkSetCompletion(ctx context.Context, ids []int64, completed bool) (int64, error)
	BulkSetPriority(ctx context.Context, ids []int64, priority entities.Priority) (int64, error)
	Stats(ctx context.Context) (*DashboardStats, error)
}

// CategoryService interface for category management operations
type CategoryService interface {
	CreateCategory(ctx context.Context, req CreateCategoryRequest) (*entities.Category, error)
	GetCategory(ctx context.Context, id int64) (*entities.Category, error)
	UpdateCategory(ctx context.Context, id int64, req UpdateCategoryRequest) (*entities.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
	ListCategories(ctx context.Context) ([]*entities.Category, error)
}

// Request types for service operations

type CreateTaskRequest struct {
	Title       string            `json:"title" validate:"required,max=200"`
	Description string            `json:"description"`
	Priority    entities.Priority `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time        `json:"due_date"`
	CategoryID  *int64            `json:"category_id"`
}

// UpdateTaskRequest carries the full editable field set; completion state is
// deliberately absent and only changes through ToggleCompletion.
type UpdateTaskRequest struct {
	Title       string            `json:"title" validate:"required,max=200"`
	Description string            `json:"description"`
	Priority    entities.Priority `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time        `json:"due_date"`
	CategoryID  *int64            `json:"category_id"`
}

type CreateCategoryRequest struct {
	Name        string                 `json:"name" validate:"required,max=100"`
	Description *string                `json:"description"`
	Color       entities.CategoryColor `json:"color" validate:"omitempty,oneof=primary success danger warning info secondary"`
}

type UpdateCategoryRequest struct {
	Name        string                 `json:"name" validate:"required,max=100"`
	Description *string                `json:"description"`
	Color       entities.CategoryColor `json:"color" validate:"omitempty,oneof=primary success danger warning info secondary"`
}

// DashboardStats summarizes the current store contents. All counts are pure
// derivations recomputed per request, never cached.
type DashboardStats struct {
	Total     int64            `json:"total"`
	Pending   int64            `json:"pending"`
	Completed int64            `json:"completed"`
	Overdue   int              `json:"overdue"`
	Latest    []*entities.Task `json:"latest"`
}
