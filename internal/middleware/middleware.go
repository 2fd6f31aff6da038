package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"maintrack/internal/apperr"
	"maintrack/internal/identity"
	"maintrack/internal/models"
)

// CORS allows cross-origin requests from the web frontends.
func CORS() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set("Access-Control-Allow-Origin", "*")
			c.Response().Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Response().Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if c.Request().Method == "OPTIONS" {
				return c.NoContent(http.StatusOK)
			}
			return next(c)
		}
	}
}

// AdminAuth resolves the bearer token through the identity collaborator and
// rejects requests that do not map to an administrator. The resolved admin id
// is stored in the echo context under "admin_id".
func AdminAuth(verifier identity.Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request().Header.Get("Authorization"))
			if token == "" {
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "authorization token is required"})
			}

			adminID, err := verifier.VerifyAdmin(c.Request().Context(), token)
			if err != nil {
				switch apperr.KindOf(err) {
				case apperr.KindForbidden:
					return c.JSON(http.StatusForbidden, models.ErrorResponse{Error: err.Error()})
				case apperr.KindUnauthorized:
					return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: err.Error()})
				default:
					return c.JSON(http.StatusBadGateway, models.ErrorResponse{
						Error:   "identity service unavailable",
						Details: err.Error(),
					})
				}
			}

			c.Set("admin_id", adminID)
			return next(c)
		}
	}
}

func bearerToken(header string) string {
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return strings.TrimSpace(header)
}
