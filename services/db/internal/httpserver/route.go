package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	StoreHandler *StoreHTTP
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.GET("/products", d.StoreHandler.ListProducts)
	e.GET("/products/:id", d.StoreHandler.GetProduct)

	e.POST("/users", d.StoreHandler.CreateUser)
	e.GET("/users/by-username/:username", d.StoreHandler.GetUserByUsername)
	e.GET("/users/:id", d.StoreHandler.GetUser)
	e.PUT("/users/:id", d.StoreHandler.UpdateUser)

	e.POST("/orders", d.StoreHandler.CreateOrder)
	e.GET("/orders/:id", d.StoreHandler.GetOrder)
	e.POST("/orders/:id/cancel", d.StoreHandler.CancelOrder)
}
