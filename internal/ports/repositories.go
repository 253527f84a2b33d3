package ports

import (
	"context"
	"time"

	"github.com/taskdesk/core/internal/domain/entities"
)

// StatusFilter selects tasks by completion state.
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusPending   StatusFilter = "pending"
	StatusCompleted StatusFilter = "completed"
)

func (s StatusFilter) IsValid() bool {
	switch s {
	case StatusAll, StatusPending, StatusCompleted:
		return true
	default:
		return false
	}
}

// TaskFilter narrows a task query. Zero values mean "no filter"; conditions
// combine with AND. Results always come back in the default order: priority
// rank descending, then creation time descending.
type TaskFilter struct {
	Status     StatusFilter
	Priority   entities.Priority
	CategoryID *int64
	Limit      int
	Offset     int
}

// TaskRepository defines the interface for task data operations
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) error
	GetByID(ctx context.Context, id int64) (*entities.Task, error)
	Update(ctx context.Context, task *entities.Task) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter TaskFilter) ([]*entities.Task, error)
	Count(ctx context.Context, filter TaskFilter) (int64, error)
	ExistsByTitlePrefix(ctx context.Context, prefix string) (bool, error)
	BulkSetCompletion(ctx context.Context, ids []int64, completed bool, completedAt *time.Time) (int64, error)
	BulkSetPriority(ctx context.Context, ids []int64, priority entities.Priority) (int64, error)
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *entities.Category) error
	GetByID(ctx context.Context, id int64) (*entities.Category, error)
	GetByName(ctx context.Context, name string) (*entities.Category, error)
	Update(ctx context.Context, category *entities.Category) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*entities.Category, error)
}
