package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/merchstore/merch-store/pkg/logging"
)

func (h *GatewayHTTP) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "gateway.list_products")

	products, err := h.DB.ListProducts(ctx)
	if err != nil {
		return dataErr(l, "list_products_error", err, "products not found")
	}

	h.logEvent(ctx, "List products")
	return c.JSON(http.StatusOK, products)
}

func (h *GatewayHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "gateway.get_product")

	id, err := parseID(c)
	if err != nil {
		l.Warn("get_product_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	product, err := h.DB.GetProduct(ctx, id)
	if err != nil {
		return dataErr(l, "get_product_error", err, "product not found")
	}

	return c.JSON(http.StatusOK, product)
}
