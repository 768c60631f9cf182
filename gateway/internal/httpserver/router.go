package httpserver

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/merchstore/merch-store/gateway/internal/middleware"
)

type Deps struct {
	Gateway   *GatewayHTTP
	JWTSecret []byte
}

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func Register(e *echo.Echo, d *Deps) {
	e.Validator = &requestValidator{validate: validator.New()}

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	g := d.Gateway

	e.GET("/", g.Greeting)
	e.GET("/products", g.ListProducts)
	e.GET("/products/:id", g.GetProduct)
	e.POST("/users/register", g.Register)
	e.POST("/users/login", g.Login)

	auth := middleware.RequireAuth(d.JWTSecret)
	e.GET("/users/:id", g.GetUser, auth)
	e.PUT("/users/me", g.UpdateMe, auth)
	e.POST("/users/:id/deactivate", g.DeactivateUser, auth)
	e.POST("/orders", g.PlaceOrder, auth)
	e.POST("/orders/:id/cancel", g.CancelOrder, auth)
	e.GET("/orders/:id", g.GetOrder, auth)
}
