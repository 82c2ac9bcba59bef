package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talenthq/succession-portal/internal/api/middleware"
	"github.com/talenthq/succession-portal/internal/core/domain"
	"github.com/talenthq/succession-portal/internal/core/ports"
)

// ProfileHandler serves the protected identity endpoint. Dashboards resolve
// "who am I" through it after the auth middleware has verified the token.
type ProfileHandler struct {
	repo ports.CredentialRepository
}

func NewProfileHandler(repo ports.CredentialRepository) *ProfileHandler {
	return &ProfileHandler{repo: repo}
}

// Me returns the record of the verified subject. The id comes from the
// middleware-injected context, never from request input.
func (h *ProfileHandler) Me(c echo.Context) error {
	id, _ := c.Get(middleware.CtxUserID).(string)
	if id == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	user, err := h.repo.FindByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Token outlived its record.
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		return err
	}

	return c.JSON(http.StatusOK, user)
}
