package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/merchstore/merch-store/pkg/logging"
	"github.com/merchstore/merch-store/services/db/internal/service"
	"github.com/merchstore/merch-store/services/db/internal/transport"
)

func (h *StoreHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "store.create_order")

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.CreateOrder(ctx, req.UserID, req.ProductID, req.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_order_error", "status", 400, "reason", "quantity out of range", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "quantity must be between 1 and 3")
		}
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("create_order_error", "status", 404, "reason", "user or product not found")
			return echo.NewHTTPError(http.StatusNotFound, "user or product not found")
		}
		l.Error("create_order_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create order")
	}

	l.Info("create_order_success", "order_id", order.ID, "user_id", order.UserID)
	return c.JSON(http.StatusCreated, order)
}

func (h *StoreHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "store.get_order")

	id, err := parseID(c)
	if err != nil {
		l.Warn("get_order_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	order, err := h.Svc.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_order_error", "status", 404, "reason", "order not found")
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		l.Error("get_order_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get order")
	}

	return c.JSON(http.StatusOK, order)
}

func (h *StoreHTTP) CancelOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "store.cancel_order")

	id, err := parseID(c)
	if err != nil {
		l.Warn("cancel_order_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	order, err := h.Svc.CancelOrder(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("cancel_order_error", "status", 404, "reason", "order not found")
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		l.Error("cancel_order_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot cancel order")
	}

	l.Info("cancel_order_success", "order_id", order.ID)
	return c.JSON(http.StatusOK, order)
}
