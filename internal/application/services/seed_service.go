package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/taskdesk/core/internal/domain/entities"
	"github.com/taskdesk/core/internal/infrastructure/logger"
	"github.com/taskdesk/core/internal/ports"
)

// seedSentinelPrefix marks the first seeded task. Its presence means a
// previous run already populated the database.
const seedSentinelPrefix = "Guide: Step 1:"

type seedEntry struct {
	Title         string
	Description   string
	Priority      entities.Priority
	CategoryName  string
	CategoryColor entities.CategoryColor
}

// starterGuide is the fixed, ordered list of records the seeder inserts into
// an empty database.
var starterGuide = []seedEntry{
	{
		Title:         "Guide: Step 1: Explore the project layout",
		Description:   "Walk through cmd/ and internal/ to see how the pieces fit together: entities hold the domain rules, services orchestrate them, repositories talk to Postgres, and handlers expose everything over HTTP.",
		Priority:      entities.PriorityHigh,
		CategoryName:  "Getting Started",
		CategoryColor: entities.ColorPrimary,
	},
	{
		Title:         "Guide: Step 2: Configure your environment",
		Description:   "Copy .env.example to .env and point DB_HOST/DB_NAME/DB_USER at your Postgres instance. Every setting has a sane default; only the database really needs attention.",
		Priority:      entities.PriorityHigh,
		CategoryName:  "Getting Started",
		CategoryColor: entities.ColorPrimary,
	},
	{
		Title:         "Guide: Step 3: Run the database migrations",
		Description:   "Run `taskdesk migrate up` to create the categories and tasks tables. `taskdesk migrate version` shows where you are.",
		Priority:      entities.PriorityHigh,
		CategoryName:  "Data Model",
		CategoryColor: entities.ColorWarning,
	},
	{
		Title:         "Guide: Step 4: Create your first task",
		Description:   "POST /api/v1/tasks with a title and optional priority, due_date and category_id. High priority tasks must carry a description.",
		Priority:      entities.PriorityMedium,
		CategoryName:  "API",
		CategoryColor: entities.ColorInfo,
	},
	{
		Title:         "Guide: Step 5: Filter the task list",
		Description:   "GET /api/v1/tasks?status=pending&priority=high combines filters with AND. Results come back ordered by priority, then recency.",
		Priority:      entities.PriorityMedium,
		CategoryName:  "API",
		CategoryColor: entities.ColorInfo,
	},
	{
		Title:         "Guide: Step 6: Toggle a task's completion",
		Description:   "POST /api/v1/tasks/{id}/toggle flips a task between pending and completed and keeps the completion timestamp in sync.",
		Priority:      entities.PriorityMedium,
		CategoryName:  "API",
		CategoryColor: entities.ColorInfo,
	},
	{
		Title:         "Guide: Step 7: Organize tasks with categories",
		Description:   "Create categories with a color tag and assign tasks to them. Deleting a category never deletes its tasks.",
		Priority:      entities.PriorityMedium,
		CategoryName:  "Data Model",
		CategoryColor: entities.ColorWarning,
	},
	{
		Title:         "Guide: Step 8: Check the dashboard stats",
		Description:   "GET /api/v1/dashboard returns total, pending, completed and overdue counts plus the latest tasks, computed fresh on every call.",
		Priority:      entities.PriorityLow,
		CategoryName:  "Operations",
		CategoryColor: entities.ColorDanger,
	},
	{
		Title:         "Guide: Step 9: Export your tasks",
		Description:   "GET /api/v1/tasks/export returns a flat machine-readable snapshot of every task with its category name and ISO-8601 creation time.",
		Priority:      entities.PriorityLow,
		CategoryName:  "Operations",
		CategoryColor: entities.ColorDanger,
	},
	{
		Title:         "Guide: Step 10: Build something of your own",
		Description:   "Delete these guide tasks and start tracking real work. Some ideas: add tags, wire up reminders for overdue tasks, or build a small UI against the JSON API.",
		Priority:      entities.PriorityHigh,
		CategoryName:  "Practice",
		CategoryColor: entities.ColorSuccess,
	},
}

// SeedService populates an empty database with the starter guide.
//
// The sentinel check plus inserts are not atomic across processes; a
// multi-process deployment must serialize startup seeding externally.
type SeedService struct {
	taskRepo     ports.TaskRepository
	categoryRepo ports.CategoryRepository
	testMode     bool
	logger       *logger.Logger
}

// NewSeedService creates a new seed service. When testMode is set, seeding
// is disabled entirely so automated runs never see seed data.
func NewSeedService(taskRepo ports.TaskRepository, categoryRepo ports.CategoryRepository, testMode bool, logger *logger.Logger) *SeedService {
	return &SeedService{
		taskRepo:     taskRepo,
		categoryRepo: categoryRepo,
		testMode:     testMode,
		logger:       logger,
	}
}

// SeedIfEmpty inserts the starter guide unless a previous run already did.
// It reports whether anything was inserted and is safe to call repeatedly
// within a process lifetime.
func (s *SeedService) SeedIfEmpty(ctx context.Context) (bool, error) {
	if s.testMode {
		s.logger.Debug("Seeding skipped: test mode active")
		return false, nil
	}

	exists, err := s.taskRepo.ExistsByTitlePrefix(ctx, seedSentinelPrefix)
	if err != nil {
		return false, fmt.Errorf("check seed sentinel: %w", err)
	}
	if exists {
		return false, nil
	}

	// Categories repeat across entries; resolve each name once per run so
	// the guide never creates duplicates.
	categories := make(map[string]*entities.Category)

	for _, entry := range starterGuide {
		category, ok := categories[entry.CategoryName]
		if !ok {
			category, err = s.getOrCreateCategory(ctx, entry.CategoryName, entry.CategoryColor)
			if err != nil {
				return false, err
			}
			categories[entry.CategoryName] = category
		}

		now := time.Now()
		task := &entities.Task{
			Title:         entry.Title,
			Description:   entry.Description,
			Completed:   false,
			Priority:      entry.Priority,
			CategoryID:  &category.ID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if err := s.taskRepo.Create(ctx, task); err != nil {
			return false, fmt.Errorf("seed task %q: %w", entry.Title, err)
		}
	}

	s.logger.Info("Seeded starter guide",
		"tasks", len(starterGuide),
		"categories", len(categories),
	)

	return true, nil
}

func (s *SeedService) getOrCreateCategory(ctx context.Context, name string, color entities.CategoryColor) (*entities.Category, error) {
	category, err := s.categoryRepo.GetByName(ctx, name)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, entities.ErrCategoryNotFound) {
		return nil, fmt.Errorf("get category %q: %w", name, err)
	}

	category = &entities.Category{Name: name, Color: color}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category %q: %w", name, err)
	}

	s.logger.Info("Seed category created", "name", name, "color", color)

	return category, nil
}
