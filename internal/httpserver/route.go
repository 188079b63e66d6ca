package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	auth "github.com/Skotchmaster/bistro/pkg/middleware/auth"
)

type Deps struct {
	// TokenHandler is optional; POST /jwt is only routed when it is set.
	TokenHandler   *TokenHTTP
	UserHandler    *UserHTTP
	MenuHandler    *MenuHTTP
	CartHandler    *CartHTTP
	PaymentHandler *PaymentHTTP
	StatsHandler   *StatsHTTP
	Access         *auth.AccessControl
	// Ready reports whether backing stores answer. Nil means always ready.
	Ready func(ctx context.Context) error
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c.Request().Context()); err != nil {
				return c.NoContent(http.StatusServiceUnavailable)
			}
		}
		return c.NoContent(http.StatusOK)
	})

	api := e.Group("/api/v1")
	if d.TokenHandler != nil {
		api.POST("/jwt", d.TokenHandler.Issue)
	}

	users := api.Group("/users")
	users.POST("", d.UserHandler.Signup)
	users.GET("", d.UserHandler.List, d.Access.RequireAdmin)
	users.GET("/admin/:email", d.UserHandler.IsAdmin, d.Access.RequireAuth)
	users.PATCH("/admin/:id", d.UserHandler.Promote, d.Access.RequireAdmin)
	users.DELETE("/:id", d.UserHandler.Delete, d.Access.RequireAdmin)

	menu := api.Group("/menu")
	menu.GET("", d.MenuHandler.List)
	menu.GET("/search", d.MenuHandler.Search)

	admin := menu.Group("", d.Access.RequireAdmin)
	admin.POST("", d.MenuHandler.Create)
	admin.GET("/:id", d.MenuHandler.Get)
	admin.PATCH("/:id", d.MenuHandler.Patch)
	admin.DELETE("/:id", d.MenuHandler.Delete)

	api.GET("/reviews", d.MenuHandler.Reviews)

	carts := api.Group("/carts", d.Access.RequireAuth)
	carts.POST("", d.CartHandler.AddToCart)
	carts.GET("", d.CartHandler.GetCart)
	carts.DELETE("/:id", d.CartHandler.RemoveFromCart)

	api.POST("/create-payment-intent", d.PaymentHandler.CreateIntent, d.Access.RequireAuth)
	api.POST("/payments", d.PaymentHandler.Settle, d.Access.RequireAuth)
	api.GET("/payments/:email", d.PaymentHandler.History, d.Access.RequireAuth)
	api.GET("/payments/:email/:id", d.PaymentHandler.Payment, d.Access.RequireAuth)

	api.GET("/admin-stats", d.StatsHandler.AdminStats, d.Access.RequireAdmin)
	api.GET("/order-stats", d.StatsHandler.OrderStats)
}
