package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/forgebay/escrow/internal/utils"
)

// ValidateCronSecret authenticates scheduler-triggered job invocations with a
// shared bearer secret. An empty configured secret rejects every request so a
// misdeployed instance cannot expose unauthenticated job endpoints.
func ValidateCronSecret(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok || token == "" {
				return utils.ErrorResponseHandler(c, http.StatusUnauthorized, "Bearer token is required")
			}

			if secret == "" || subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
				return utils.ErrorResponseHandler(c, http.StatusUnauthorized, "Invalid cron secret")
			}

			return next(c)
		}
	}
}
