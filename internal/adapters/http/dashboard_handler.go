package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskdesk/core/internal/infrastructure/logger"
	"github.com/taskdesk/core/internal/ports"
)

// DashboardHandler serves the summary statistics view
type DashboardHandler struct {
	taskService ports.TaskService
	logger      *logger.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(taskService ports.TaskService, logger *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// GetStats returns total/pending/completed/overdue counts and the latest
// tasks, computed fresh on every request
func (h *DashboardHandler) GetStats(c echo.Context) error {
	stats, err := h.taskService.Stats(c.Request().Context())
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, stats)
}
