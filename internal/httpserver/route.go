package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shopcart/pkg/logging"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	CatalogHandler *CatalogHTTP
	CartHandler    *CartHTTP
	// Ready reports whether the store answers. Nil means always ready.
	Ready func(ctx context.Context) error
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })
	e.GET("/health/ready", d.ready)

	api := e.Group("/api")

	api.POST("/login", d.AuthHandler.Login)
	api.POST("/register", d.AuthHandler.Register)

	api.GET("/products", d.CatalogHandler.GetProducts)
	api.GET("/product/details/:id", d.CatalogHandler.GetProduct)

	cart := api.Group("/cart")
	cart.POST("/add", d.CartHandler.AddToCart)
	cart.GET("/details/:user_id", d.CartHandler.GetCart)
	cart.POST("/remove", d.CartHandler.RemoveFromCart)
}

func (d *Deps) ready(c echo.Context) error {
	if d.Ready == nil {
		return c.NoContent(http.StatusOK)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	if err := d.Ready(ctx); err != nil {
		logging.FromContext(ctx).Warn("readiness_failed", "error", err)
		return c.NoContent(http.StatusServiceUnavailable)
	}
	return c.NoContent(http.StatusOK)
}
