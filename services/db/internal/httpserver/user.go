package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/merchstore/merch-store/pkg/logging"
	"github.com/merchstore/merch-store/services/db/internal/service"
	"github.com/merchstore/merch-store/services/db/internal/transport"
)

func (h *StoreHTTP) CreateUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "store.create_user")

	var req transport.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_user_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.CreateUser(ctx, req.Username, req.PasswordHash)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_user_error", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		}
		l.Error("create_user_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create user")
	}

	l.Info("create_user_success", "user_id", user.ID)
	return c.JSON(http.StatusCreated, user)
}

func (h *StoreHTTP) GetUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "store.get_user")

	id, err := parseID(c)
	if err != nil {
		l.Warn("get_user_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	user, err := h.Svc.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_user_error", "status", 404, "reason", "user not found")
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		l.Error("get_user_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get user")
	}

	return c.JSON(http.StatusOK, user)
}

// GetUserByUsername is the credential lookup used by the gateway's login.
// It is the only operation whose response carries the password hash.
func (h *StoreHTTP) GetUserByUsername(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "store.get_user_by_username")

	username := c.Param("username")
	if username == "" {
		l.Warn("get_user_by_username_error", "status", 400, "reason", "username required")
		return echo.NewHTTPError(http.StatusBadRequest, "username required")
	}

	user, err := h.Svc.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_user_by_username_error", "status", 404, "reason", "user not found")
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		l.Error("get_user_by_username_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get user")
	}

	return c.JSON(http.StatusOK, transport.UserCredentials{
		ID:           user.ID,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		Active:       user.Active,
	})
}

func (h *StoreHTTP) UpdateUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "store.update_user")

	id, err := parseID(c)
	if err != nil {
		l.Warn("update_user_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req transport.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_user_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.UpdateUser(ctx, id, req.Username, req.Active)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("update_user_error", "status", 404, "reason", "user not found")
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		if errors.Is(err, service.ErrValidation) {
			l.Warn("update_user_error", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		}
		l.Error("update_user_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update user")
	}

	l.Info("update_user_success", "user_id", user.ID)
	return c.JSON(http.StatusOK, user)
}
