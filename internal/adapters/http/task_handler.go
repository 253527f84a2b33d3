package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskdesk/core/internal/domain/entities"
	"github.com/taskdesk/core/internal/infrastructure/logger"
	"github.com/taskdesk/core/internal/ports"
)

// TaskHandler handles task-related requests
type TaskHandler struct {
	taskService ports.TaskService
	logger      *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService ports.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// ListTasks handles listing tasks with status/priority/category filters
func (h *TaskHandler) ListTasks(c echo.Context) error {
	filter, err := parseTaskFilter(c)
	if err != nil {
		return err
	}

	tasks, err := h.taskService.ListTasks(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, tasks)
}

// CreateTask handles task creation
func (h *TaskHandler) CreateTask(c echo.Context) error {
	var req ports.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, task)
}

// GetTask handles getting a task by ID
func (h *TaskHandler) GetTask(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.GetTask(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, task)
}

// UpdateTask handles updating a task's editable fields
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req ports.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), id, req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, task)
}

// DeleteTask handles task deletion
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), id); err != nil {
		return respondError(c, h.logger, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ToggleTask flips a task between pending and completed
func (h *TaskHandler) ToggleTask(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.ToggleCompletion(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, task)
}

// ExportTasks returns the flat machine-readable task records
func (h *TaskHandler) ExportTasks(c echo.Context) error {
	records, err := h.taskService.ExportTasks(c.Request().Context())
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, records)
}

// Bulk request types

type BulkIDsRequest struct {
	IDs []int64 `json:"ids" validate:"required,min=1"`
}

type BulkPriorityRequest struct {
	IDs      []int64           `json:"ids" validate:"required,min=1"`
	Priority entities.Priority `json:"priority" validate:"required,oneof=low medium high"`
}

// BulkComplete marks the selected tasks as completed
func (h *TaskHandler) BulkComplete(c echo.Context) error {
	return h.bulkCompletion(c, true)
}

// BulkPending marks the selected tasks as pending
func (h *TaskHandler) BulkPending(c echo.Context) error {
	return h.bulkCompletion(c, false)
}

func (h *TaskHandler) bulkCompletion(c echo.Context, completed bool) error {
	var req BulkIDsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	count, err := h.taskService.BulkSetCompletion(c.Request().Context(), req.IDs, completed)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, BulkResponse{Updated: count})
}

// BulkSetPriority sets the priority on the selected tasks
func (h *TaskHandler) BulkSetPriority(c echo.Context) error {
	var req BulkPriorityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	count, err := h.taskService.BulkSetPriority(c.Request().Context(), req.IDs, req.Priority)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, BulkResponse{Updated: count})
}

func parseTaskFilter(c echo.Context) (ports.TaskFilter, error) {
	filter := ports.TaskFilter{Status: ports.StatusAll}

	if status := c.QueryParam("status"); status != "" {
		sf := ports.StatusFilter(status)
		if !sf.IsValid() {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "status must be one of: all, pending, completed")
		}
		filter.Status = sf
	}

	if priority := c.QueryParam("priority"); priority != "" {
		p := entities.Priority(priority)
		if !p.IsValid() {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "priority must be one of: low, medium, high")
		}
		filter.Priority = p
	}

	if category := c.QueryParam("category"); category != "" {
		id, err := strconv.ParseInt(category, 10, 64)
		if err != nil || id <= 0 {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "invalid category parameter")
		}
		filter.CategoryID = &id
	}

	if limitStr := c.QueryParam("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "invalid limit parameter")
		}
		filter.Limit = limit
	}

	return filter, nil
}
