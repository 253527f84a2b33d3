package entities

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Common errors
var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// FieldError describes a single field that failed validation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects field-level validation failures. It is returned
// to the caller as a structured error and is never treated as a system fault.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(v))
	for i, fe := range v {
		parts[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, FieldError{Field: field, Message: message})
}

// Enums and types
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Rank orders priorities so that high > medium > low. Both the SQL ordering
// clause and in-memory sorts rely on this instead of lexicographic order.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Glyph returns the display color associated with a priority.
func (p Priority) Glyph() string {
	switch p {
	case PriorityHigh:
		return "red"
	case PriorityMedium:
		return "yellow"
	case PriorityLow:
		return "green"
	default:
		return ""
	}
}

type CategoryColor string

const (
	ColorPrimary   CategoryColor = "primary"
	ColorSuccess   CategoryColor = "success"
	ColorDanger    CategoryColor = "danger"
	ColorWarning   CategoryColor = "warning"
	ColorInfo      CategoryColor = "info"
	ColorSecondary CategoryColor = "secondary"
)

func (c CategoryColor) IsValid() bool {
	switch c {
	case ColorPrimary, ColorSuccess, ColorDanger, ColorWarning, ColorInfo, ColorSecondary:
		return true
	default:
		return false
	}
}

// Category represents a named, colored grouping label for tasks. Names are
// intentionally not unique; tasks outlive their category (the reference is
// set to null when the category is deleted).
type Category struct {
	ID          int64         `json:"id" db:"id"`
	Name        string        `json:"name" db:"name"`
	Description *string       `json:"description" db:"description"`
	Color       CategoryColor `json:"color" db:"color"`
}

func (c *Category) Validate() error {
	var errs ValidationErrors

	if strings.TrimSpace(c.Name) == "" {
		errs.Add("name", "name is required")
	}
	if utf8.RuneCountInString(c.Name) > 100 {
		errs.Add("name", "name must be at most 100 characters")
	}
	if c.Color != "" && !c.Color.IsValid() {
		errs.Add("color", "color must be one of: primary, success, danger, warning, info, secondary")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Task represents a to-do item. CompletedAt is non-nil exactly when
// Completed is true; callers maintain this by flipping completion through
// MarkCompleted/MarkPending rather than setting the fields directly.
type Task struct {
	ID           int64      `json:"id" db:"id"`
	Title        string     `json:"title" db:"title"`
	Description  string     `json:"description" db:"description"`
	Completed    bool       `json:"completed" db:"completed"`
	Priority     Priority   `json:"priority" db:"priority"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
	CompletedAt  *time.Time `json:"completed_at" db:"completed_at"`
	DueDate      *time.Time `json:"due_date" db:"due_date"`
	CategoryID   *int64     `json:"category_id" db:"category_id"`
	CategoryName *string    `json:"category_name,omitempty" db:"category_name"`
}

// Validate checks the full field set. Update paths re-run it so edited tasks
// obey the same rules as new ones.
func (t *Task) Validate() error {
	var errs ValidationErrors

	title := strings.TrimSpace(t.Title)
	if utf8.RuneCountInString(title) < 3 {
		errs.Add("title", "title must be at least 3 characters")
	} else if isAllDigits(title) {
		errs.Add("title", "title cannot consist solely of digits")
	}
	if utf8.RuneCountInString(title) > 200 {
		errs.Add("title", "title must be at most 200 characters")
	}
	if !t.Priority.IsValid() {
		errs.Add("priority", "priority must be one of: low, medium, high")
	}
	if t.Priority == PriorityHigh && strings.TrimSpace(t.Description) == "" {
		errs.Add("description", "high priority tasks require a description")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// MarkCompleted flips the task to completed and stamps the completion time.
func (t *Task) MarkCompleted(now time.Time) {
	t.Completed = true
	t.CompletedAt = &now
}

// MarkPending flips the task back to pending and clears the completion time.
func (t *Task) MarkPending() {
	t.Completed = false
	t.CompletedAt = nil
}

// IsOverdue reports whether the task has a due date in the past and is still
// pending. Completed tasks are never overdue. Only the date portion counts:
// a task due today is not overdue.
func (t *Task) IsOverdue() bool {
	if t.DueDate == nil || t.Completed {
		return false
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return t.DueDate.Before(today)
}

// CountOverdue counts the overdue tasks in a collection. Pure derivation,
// recomputed on demand.
func CountOverdue(tasks []*Task) int {
	count := 0
	for _, t := range tasks {
		if t.IsOverdue() {
			count++
		}
	}
	return count
}

// TaskExport is the flat machine-readable record consumed by the export
// endpoint.
type TaskExport struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Completed   bool     `json:"completed"`
	Priority    Priority `json:"priority"`
	Category    *string  `json:"category"`
	CreatedAt   string   `json:"created_at"`
}

// Export serializes the task to its flat export record. The timestamp is
// ISO-8601.
func (t *Task) Export() TaskExport {
	return TaskExport{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		Priority:    t.Priority,
		Category:    t.CategoryName,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
	}
}
