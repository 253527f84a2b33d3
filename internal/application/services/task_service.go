package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/taskdesk/core/internal/domain/entities"
	"github.com/taskdesk/core/internal/infrastructure/logger"
	"github.com/taskdesk/core/internal/ports"
)

const latestTasksLimit = 5

// TaskService handles task lifecycle operations
type TaskService struct {
	taskRepo     ports.TaskRepository
	categoryRepo ports.CategoryRepository
	logger       *logger.Logger
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo ports.TaskRepository, categoryRepo ports.CategoryRepository, logger *logger.Logger) *TaskService {
	return &TaskService{
		taskRepo:     taskRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

var _ ports.TaskService = (*TaskService)(nil)

// CreateTask validates and persists a new task. New tasks always start
// pending with no completion timestamp.
func (s *TaskService) CreateTask(ctx context.Context, req ports.CreateTaskRequest) (*entities.Task, error) {
	if err := s.checkCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	now := time.Now()
	task := &entities.Task{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Completed:   false,
		Priority:    entities.PriorityMedium,
		DueDate:     req.DueDate,
		CategoryID:  req.CategoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Priority != "" {
		task.Priority = req.Priority
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	s.logger.Info("Task created", "task_id", task.ID, "title", task.Title)

	return task, nil
}

// GetTask retrieves a task by ID
func (s *TaskService) GetTask(ctx context.Context, id int64) (*entities.Task, error) {
	return s.taskRepo.GetByID(ctx, id)
}

// UpdateTask re-validates the full field set and persists it. Completion
// state is untouched; that only changes through ToggleCompletion.
func (s *TaskService) UpdateTask(ctx context.Context, id int64, req ports.UpdateTaskRequest) (*entities.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	task.Title = strings.TrimSpace(req.Title)
	task.Description = req.Description
	task.DueDate = req.DueDate
	task.CategoryID = req.CategoryID
	if req.Priority != "" {
		task.Priority = req.Priority
	}
	task.UpdatedAt = time.Now()

	if err := task.Validate(); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	s.logger.Info("Task updated", "task_id", task.ID, "title", task.Title)

	return task, nil
}

// DeleteTask deletes a task. Tasks own nothing, so there is no cascade.
func (s *TaskService) DeleteTask(ctx context.Context, id int64) error {
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Task deleted", "task_id", id)

	return nil
}

// ToggleCompletion flips a task between pending and completed. This is the
// only sanctioned way to change completion state: it keeps completed_at
// non-null exactly when completed is true.
func (s *TaskService) ToggleCompletion(ctx context.Context, id int64) (*entities.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if task.Completed {
		task.MarkPending()
	} else {
		task.MarkCompleted(now)
	}
	task.UpdatedAt = now

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("toggle task completion: %w", err)
	}

	s.logger.Info("Task completion toggled", "task_id", task.ID, "completed", task.Completed)

	return task, nil
}

// ListTasks retrieves tasks matching the filter, freshly computed per call.
func (s *TaskService) ListTasks(ctx context.Context, filter ports.TaskFilter) ([]*entities.Task, error) {
	if filter.Status == "" {
		filter.Status = ports.StatusAll
	}

	tasks, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	return tasks, nil
}

// ExportTasks serializes every task to its flat export record.
func (s *TaskService) ExportTasks(ctx context.Context) ([]entities.TaskExport, error) {
	tasks, err := s.taskRepo.List(ctx, ports.TaskFilter{Status: ports.StatusAll})
	if err != nil {
		return nil, fmt.Errorf("export tasks: %w", err)
	}

	records := make([]entities.TaskExport, len(tasks))
	for i, t := range tasks {
		records[i] = t.Export()
	}

	return records, nil
}

// BulkSetCompletion marks a selection of tasks completed or pending,
// stamping or clearing completed_at so the completion invariant holds.
func (s *TaskService) BulkSetCompletion(ctx context.Context, ids []int64, completed bool) (int64, error) {
	var completedAt *time.Time
	if completed {
		now := time.Now()
		completedAt = &now
	}

	count, err := s.taskRepo.BulkSetCompletion(ctx, ids, completed, completedAt)
	if err != nil {
		return 0, fmt.Errorf("bulk set completion: %w", err)
	}

	s.logger.Info("Bulk completion applied", "count", count, "completed", completed)

	return count, nil
}

// BulkSetPriority sets the priority of a selection of tasks.
func (s *TaskService) BulkSetPriority(ctx context.Context, ids []int64, priority entities.Priority) (int64, error) {
	if !priority.IsValid() {
		return 0, entities.ValidationErrors{{Field: "priority", Message: "priority must be one of: low, medium, high"}}
	}

	count, err := s.taskRepo.BulkSetPriority(ctx, ids, priority)
	if err != nil {
		return 0, fmt.Errorf("bulk set priority: %w", err)
	}

	s.logger.Info("Bulk priority applied", "count", count, "priority", priority)

	return count, nil
}

// Stats derives the dashboard summary: total/pending/completed counts, the
// overdue count over pending tasks, and the five most recent tasks in
// default order.
func (s *TaskService) Stats(ctx context.Context) (*ports.DashboardStats, error) {
	total, err := s.taskRepo.Count(ctx, ports.TaskFilter{Status: ports.StatusAll})
	if err != nil {
		return nil, fmt.Errorf("count tasks: %w", err)
	}

	completed, err := s.taskRepo.Count(ctx, ports.TaskFilter{Status: ports.StatusCompleted})
	if err != nil {
		return nil, fmt.Errorf("count completed tasks: %w", err)
	}

	pending, err := s.taskRepo.List(ctx, ports.TaskFilter{Status: ports.StatusPending})
	if err != nil {
		return nil, fmt.Errorf("list pending tasks: %w", err)
	}

	latest, err := s.taskRepo.List(ctx, ports.TaskFilter{Status: ports.StatusAll, Limit: latestTasksLimit})
	if err != nil {
		return nil, fmt.Errorf("list latest tasks: %w", err)
	}

	return &ports.DashboardStats{
		Total:     total,
		Pending:   int64(len(pending)),
		Completed: completed,
		Overdue:   entities.CountOverdue(pending),
		Latest:    latest,
	}, nil
}

// checkCategory verifies a referenced category exists. A dangling reference
// is a validation failure on the category_id field, not a missing-resource
// outcome for the task operation itself.
func (s *TaskService) checkCategory(ctx context.Context, categoryID *int64) error {
	if categoryID == nil {
		return nil
	}

	if _, err := s.categoryRepo.GetByID(ctx, *categoryID); err != nil {
		if err == entities.ErrCategoryNotFound {
			return entities.ValidationErrors{{Field: "category_id", Message: "category does not exist"}}
		}
		return fmt.Errorf("check category: %w", err)
	}

	return nil
}
