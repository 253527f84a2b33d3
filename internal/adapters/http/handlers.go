package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskdesk/core/internal/domain/entities"
	"github.com/taskdesk/core/internal/infrastructure/logger"
)

// Shared response types

type ValidationErrorResponse struct {
	Error  string                    `json:"error"`
	Fields entities.ValidationErrors `json:"fields"`
}

type BulkResponse struct {
	Updated int64 `json:"updated"`
}

// respondError maps core errors onto HTTP outcomes: validation failures
// carry field-level detail, missing resources map to 404, and anything else
// is a generic storage failure that never leaks internals.
func respondError(c echo.Context, log *logger.Logger, err error) error {
	var verrs entities.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return c.JSON(http.StatusUnprocessableEntity, ValidationErrorResponse{
			Error:  "validation failed",
			Fields: verrs,
		})
	case errors.Is(err, entities.ErrTaskNotFound), errors.Is(err, entities.ErrCategoryNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		log.Error("Request failed", "error", err, "path", c.Request().URL.Path)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

func parseIDParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
