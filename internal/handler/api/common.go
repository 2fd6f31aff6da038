package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"maintrack/internal/apperr"
	"maintrack/internal/models"
)

// writeError maps application error kinds onto the HTTP contract:
// 4xx {error} for precondition violations, 5xx {error, details} otherwise.
func writeError(c echo.Context, err error) error {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		return c.JSON(http.StatusNotFound, models.ErrorResponse{Error: err.Error()})
	case apperr.KindValidation:
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
	case apperr.KindConflict:
		return c.JSON(http.StatusConflict, models.ErrorResponse{Error: err.Error()})
	case apperr.KindUnauthorized:
		return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: err.Error()})
	case apperr.KindForbidden:
		return c.JSON(http.StatusForbidden, models.ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal error",
			Details: err.Error(),
		})
	}
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: msg})
}

// paginatedResponse is the shared list payload shape.
func paginatedResponse(key string, data interface{}, total int64, page, limit int) map[string]interface{} {
	if limit <= 0 {
		limit = 50
	}
	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}
	if totalPages == 0 {
		totalPages = 1
	}
	return map[string]interface{}{
		key: data,
		"pagination": map[string]interface{}{
			"total":        total,
			"total_pages":  totalPages,
			"current_page": page,
			"per_page":     limit,
		},
	}
}
