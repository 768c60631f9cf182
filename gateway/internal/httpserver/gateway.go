package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/merchstore/merch-store/gateway/internal/clients"
	"github.com/merchstore/merch-store/pkg/logging"
)

type GatewayHTTP struct {
	DB        *clients.DBClient
	Log       *clients.LogClient
	JWTSecret []byte
	TokenTTL  time.Duration
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// logEvent emits the single best-effort telemetry event for a completed
// request. Emission failure is logged locally and never touches the
// response, so the parent request's cancellation must not cut it short.
func (h *GatewayHTTP) logEvent(ctx context.Context, msg string) {
	if h.Log == nil {
		return
	}

	pushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()

	if _, err := h.Log.Push(pushCtx, []clients.LogEvent{h.Log.NewEvent("INFO", msg)}); err != nil {
		logging.FromContext(ctx).Warn("log emission failed", "error", err)
	}
}

// dataErr maps data-service failures onto the outward taxonomy: not-found
// and validation keep their category, everything else is coalesced so no
// internal detail leaks.
func dataErr(l *slog.Logger, op string, err error, notFoundMsg string) *echo.HTTPError {
	switch {
	case errors.Is(err, clients.ErrNotFound):
		l.Warn(op, "status", 404, "reason", notFoundMsg)
		return echo.NewHTTPError(http.StatusNotFound, notFoundMsg)
	case errors.Is(err, clients.ErrValidation):
		l.Warn(op, "status", 400, "reason", "bad request", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "bad request")
	case errors.Is(err, clients.ErrUnavailable):
		l.Error(op, "status", 502, "reason", "upstream unavailable", "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, "upstream unavailable")
	default:
		l.Error(op, "status", 500, "reason", "upstream failure", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "upstream failure")
	}
}

func (h *GatewayHTTP) Greeting(c echo.Context) error {
	h.logEvent(c.Request().Context(), "Greeting called")
	return c.JSON(http.StatusOK, map[string]string{"message": "Welcome to the Merch Store"})
}
