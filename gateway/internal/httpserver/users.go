package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/merchstore/merch-store/gateway/internal/clients"
	"github.com/merchstore/merch-store/gateway/internal/middleware"
	"github.com/merchstore/merch-store/gateway/internal/transport"
	"github.com/merchstore/merch-store/pkg/hash"
	"github.com/merchstore/merch-store/pkg/logging"
	"github.com/merchstore/merch-store/pkg/tokens"
)

func summary(u *clients.User) transport.UserSummary {
	return transport.UserSummary{ID: u.ID, Username: u.Username, Active: u.Active}
}

func (h *GatewayHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "gateway.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("register_error", "status", 400, "reason", "invalid body", "error", err)
		return err
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create user")
	}

	user, err := h.DB.CreateUser(ctx, req.Username, pwHash)
	if err != nil {
		return dataErr(l, "register_error", err, "cannot create user")
	}

	l.Info("register_success", "user_id", user.ID)
	h.logEvent(ctx, fmt.Sprintf("Registered user %s", req.Username))
	return c.JSON(http.StatusCreated, summary(user))
}

func (h *GatewayHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "gateway.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return err
	}

	creds, err := h.DB.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, clients.ErrNotFound) {
			l.Warn("login_error", "status", 404, "reason", "user not found")
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return dataErr(l, "login_error", err, "user not found")
	}

	if !hash.CheckPassword(creds.PasswordHash, req.Password) {
		l.Warn("login_error", "status", 403, "reason", "wrong password", "username", req.Username)
		return echo.NewHTTPError(http.StatusForbidden, "wrong password")
	}

	token, err := tokens.Issue(creds.ID, h.JWTSecret, h.TokenTTL)
	if err != nil {
		l.Error("login_error", "status", 500, "reason", "cannot issue token", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot issue token")
	}

	l.Info("login_success", "user_id", creds.ID)
	h.logEvent(ctx, fmt.Sprintf("User %s logged in", req.Username))
	return c.JSON(http.StatusOK, transport.TokenResponse{Token: token})
}

func (h *GatewayHTTP) GetUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "gateway.get_user")

	id, err := parseID(c)
	if err != nil {
		l.Warn("get_user_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	user, err := h.DB.GetUser(ctx, id)
	if err != nil {
		return dataErr(l, "get_user_error", err, "user not found")
	}

	h.logEvent(ctx, fmt.Sprintf("Fetched user %d", id))
	return c.JSON(http.StatusOK, summary(user))
}

// UpdateMe resolves the partial fields against the current record before
// the full-replace call to the data service.
func (h *GatewayHTTP) UpdateMe(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "gateway.update_me")

	currentID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}

	var req transport.UpdateMeRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_me_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	old, err := h.DB.GetUser(ctx, currentID)
	if err != nil {
		return dataErr(l, "update_me_error", err, "user not found")
	}

	newUsername := old.Username
	if req.Username != nil && *req.Username != "" {
		newUsername = *req.Username
	}
	newActive := old.Active
	if req.Active != nil {
		newActive = *req.Active
	}

	updated, err := h.DB.UpdateUser(ctx, currentID, newUsername, newActive)
	if err != nil {
		return dataErr(l, "update_me_error", err, "user not found")
	}

	l.Info("update_me_success", "user_id", currentID)
	h.logEvent(ctx, fmt.Sprintf("Updated user %d", currentID))
	return c.JSON(http.StatusOK, summary(updated))
}

func (h *GatewayHTTP) DeactivateUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "gateway.deactivate_user")

	id, err := parseID(c)
	if err != nil {
		l.Warn("deactivate_user_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	user, err := h.DB.GetUser(ctx, id)
	if err != nil {
		return dataErr(l, "deactivate_user_error", err, "user not found")
	}

	updated, err := h.DB.UpdateUser(ctx, id, user.Username, false)
	if err != nil {
		return dataErr(l, "deactivate_user_error", err, "user not found")
	}

	l.Info("deactivate_user_success", "user_id", id)
	h.logEvent(ctx, fmt.Sprintf("Deactivated user %d", id))
	return c.JSON(http.StatusOK, summary(updated))
}
