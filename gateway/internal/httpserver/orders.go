package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/merchstore/merch-store/gateway/internal/middleware"
	"github.com/merchstore/merch-store/gateway/internal/transport"
	"github.com/merchstore/merch-store/pkg/logging"
)

func (h *GatewayHTTP) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "gateway.place_order")

	currentID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}

	var req transport.PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("place_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("place_order_error", "status", 400, "reason", "quantity out of range", "error", err)
		return err
	}

	order, err := h.DB.CreateOrder(ctx, currentID, req.ProductID, req.Quantity)
	if err != nil {
		return dataErr(l, "place_order_error", err, "product not found")
	}

	l.Info("place_order_success", "order_id", order.ID, "user_id", currentID)
	h.logEvent(ctx, fmt.Sprintf("Order placed by user %d", currentID))
	return c.JSON(http.StatusCreated, order)
}

func (h *GatewayHTTP) CancelOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "gateway.cancel_order")

	id, err := parseID(c)
	if err != nil {
		l.Warn("cancel_order_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	order, err := h.DB.CancelOrder(ctx, id)
	if err != nil {
		return dataErr(l, "cancel_order_error", err, "order not found")
	}

	l.Info("cancel_order_success", "order_id", id)
	h.logEvent(ctx, fmt.Sprintf("Order %d canceled", id))
	return c.JSON(http.StatusOK, order)
}

func (h *GatewayHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "gateway.get_order")

	id, err := parseID(c)
	if err != nil {
		l.Warn("get_order_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	order, err := h.DB.GetOrder(ctx, id)
	if err != nil {
		return dataErr(l, "get_order_error", err, "order not found")
	}

	h.logEvent(ctx, fmt.Sprintf("Fetched order %d", id))
	return c.JSON(http.StatusOK, order)
}
