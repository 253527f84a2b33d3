package services

import (
	"context"
	"sort"
	"time"

	"github.com/taskdesk/core/internal/domain/entities"
	"github.com/taskdesk/core/internal/ports"
)

// memTaskRepo is an in-memory TaskRepository used to exercise services
// without a database. It mirrors the store's filter and ordering semantics.
type memTaskRepo struct {
	tasks  map[int64]*entities.Task
	nextID int64
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{tasks: make(map[int64]*entities.Task), nextID: 1}
}

func (r *memTaskRepo) Create(ctx context.Context, task *entities.Task) error {
	task.ID = r.nextID
	r.nextID++
	clone := *task
	r.tasks[task.ID] = &clone
	return nil
}

func (r *memTaskRepo) GetByID(ctx context.Context, id int64) (*entities.Task, error) {
	task, ok := r.tasks[id]
	if !ok {
		return nil, entities.ErrTaskNotFound
	}
	clone := *task
	return &clone, nil
}

func (r *memTaskRepo) Update(ctx context.Context, task *entities.Task) error {
	if _, ok := r.tasks[task.ID]; !ok {
		return entities.ErrTaskNotFound
	}
	clone := *task
	r.tasks[task.ID] = &clone
	return nil
}

func (r *memTaskRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.tasks[id]; !ok {
		return entities.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *memTaskRepo) List(ctx context.Context, filter ports.TaskFilter) ([]*entities.Task, error) {
	matched := []*entities.Task{}
	for _, task := range r.tasks {
		if !matchesFilter(task, filter) {
			continue
		}
		clone := *task
		matched = append(matched, &clone)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Priority.Rank() != matched[j].Priority.Rank() {
			return matched[i].Priority.Rank() > matched[j].Priority.Rank()
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return []*entities.Task{}, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}

	return matched, nil
}

func (r *memTaskRepo) Count(ctx context.Context, filter ports.TaskFilter) (int64, error) {
	var count int64
	for _, task := range r.tasks {
		if matchesFilter(task, filter) {
			count++
		}
	}
	return count, nil
}

func (r *memTaskRepo) ExistsByTitlePrefix(ctx context.Context, prefix string) (bool, error) {
	for _, task := range r.tasks {
		if len(task.Title) >= len(prefix) && task.Title[:len(prefix)] == prefix {
			return true, nil
		}
	}
	return false, nil
}

func (r *memTaskRepo) BulkSetCompletion(ctx context.Context, ids []int64, completed bool, completedAt *time.Time) (int64, error) {
	var count int64
	for _, id := range ids {
		task, ok := r.tasks[id]
		if !ok {
			continue
		}
		task.Completed = completed
		task.CompletedAt = completedAt
		task.UpdatedAt = time.Now()
		count++
	}
	return count, nil
}

func (r *memTaskRepo) BulkSetPriority(ctx context.Context, ids []int64, priority entities.Priority) (int64, error) {
	var count int64
	for _, id := range ids {
		task, ok := r.tasks[id]
		if !ok {
			continue
		}
		task.Priority = priority
		task.UpdatedAt = time.Now()
		count++
	}
	return count, nil
}

func matchesFilter(task *entities.Task, filter ports.TaskFilter) bool {
	switch filter.Status {
	case ports.StatusPending:
		if task.Completed {
			return false
		}
	case ports.StatusCompleted:
		if !task.Completed {
			return false
		}
	}

	if filter.Priority != "" && task.Priority != filter.Priority {
		return false
	}
	if filter.CategoryID != nil {
		if task.CategoryID == nil || *task.CategoryID != *filter.CategoryID {
			return false
		}
	}

	return true
}

// memCategoryRepo is the in-memory CategoryRepository counterpart.
type memCategoryRepo struct {
	categories map[int64]*entities.Category
	nextID     int64
	creates    int
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{categories: make(map[int64]*entities.Category), nextID: 1}
}

func (r *memCategoryRepo) Create(ctx context.Context, category *entities.Category) error {
	category.ID = r.nextID
	r.nextID++
	r.creates++
	clone := *category
	r.categories[category.ID] = &clone
	return nil
}

func (r *memCategoryRepo) GetByID(ctx context.Context, id int64) (*entities.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, entities.ErrCategoryNotFound
	}
	clone := *category
	return &clone, nil
}

func (r *memCategoryRepo) GetByName(ctx context.Context, name string) (*entities.Category, error) {
	var found *entities.Category
	for _, category := range r.categories {
		if category.Name != name {
			continue
		}
		if found == nil || category.ID < found.ID {
			found = category
		}
	}
	if found == nil {
		return nil, entities.ErrCategoryNotFound
	}
	clone := *found
	return &clone, nil
}

func (r *memCategoryRepo) Update(ctx context.Context, category *entities.Category) error {
	if _, ok := r.categories[category.ID]; !ok {
		return entities.ErrCategoryNotFound
	}
	clone := *category
	r.categories[category.ID] = &clone
	return nil
}

func (r *memCategoryRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.categories[id]; !ok {
		return entities.ErrCategoryNotFound
	}
	delete(r.categories, id)
	return nil
}

func (r *memCategoryRepo) List(ctx context.Context) ([]*entities.Category, error) {
	out := []*entities.Category{}
	for _, category := range r.categories {
		clone := *category
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
