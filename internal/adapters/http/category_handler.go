package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskdesk/core/internal/infrastructure/logger"
	"github.com/taskdesk/core/internal/ports"
)

// CategoryHandler handles category-related requests
type CategoryHandler struct {
	categoryService ports.CategoryService
	logger          *logger.Logger
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService ports.CategoryService, logger *logger.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		logger:          logger,
	}
}

// ListCategories handles listing all categories
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	categories, err := h.categoryService.ListCategories(c.Request().Context())
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, categories)
}

// CreateCategory handles category creation
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req ports.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.categoryService.CreateCategory(c.Request().Context(), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, category)
}

// GetCategory handles getting a category by ID
func (h *CategoryHandler) GetCategory(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	category, err := h.categoryService.GetCategory(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, category)
}

// UpdateCategory handles updating a category
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req ports.UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.categoryService.UpdateCategory(c.Request().Context(), id, req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, category)
}

// DeleteCategory handles category deletion; tasks referencing the category
// keep existing with a null reference
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.categoryService.DeleteCategory(c.Request().Context(), id); err != nil {
		return respondError(c, h.logger, err)
	}

	return c.NoContent(http.StatusNoContent)
}
