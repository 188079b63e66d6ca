package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bistro/internal/service"
	"github.com/Skotchmaster/bistro/internal/transport"
	auth "github.com/Skotchmaster/bistro/pkg/middleware/auth"
	"github.com/Skotchmaster/bistro/pkg/logging"
)

type CartHTTP struct {
	Svc    *service.CartService
	Access *auth.AccessControl
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	id := auth.IdentityFrom(c)
	if req.Email == "" && id != nil {
		req.Email = id.Email
	}
	if err := h.Access.SelfOrAdmin(ctx, id, req.Email); err != nil {
		l.Warn("add_to_cart_error", "status", 403, "reason", "not the owner")
		return auth.HTTPError(err)
	}

	entry, err := h.Svc.Add(ctx, req.Email, req.MenuItemID)
	if err != nil {
		return fail(l, "add_to_cart_error", err)
	}

	l.Info("add_to_cart_success", "cart_id", entry.ID)
	return c.JSON(http.StatusCreated, entry)
}

// GetCart lists the cart of ?email=, defaulting to the caller's own.
func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	id := auth.IdentityFrom(c)
	email := c.QueryParam("email")
	if email == "" && id != nil {
		email = id.Email
	}
	if err := h.Access.SelfOrAdmin(ctx, id, email); err != nil {
		l.Warn("get_cart_error", "status", 403, "reason", "not the owner")
		return auth.HTTPError(err)
	}

	entries, err := h.Svc.ListByOwner(ctx, email)
	if err != nil {
		return fail(l, "get_cart_error", err)
	}
	return c.JSON(http.StatusOK, transport.CartResponse{Items: entries, Total: service.Total(entries)})
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	cartID, err := parseID(c)
	if err != nil {
		l.Warn("remove_from_cart_error", "status", 400, "reason", "id not a uuid")
		return err
	}

	entry, err := h.Svc.Get(ctx, cartID)
	if err != nil {
		return fail(l, "remove_from_cart_error", err)
	}
	if err := h.Access.SelfOrAdmin(ctx, auth.IdentityFrom(c), entry.Email); err != nil {
		l.Warn("remove_from_cart_error", "status", 403, "reason", "not the owner")
		return auth.HTTPError(err)
	}

	if err := h.Svc.RemoveOne(ctx, cartID); err != nil {
		return fail(l, "remove_from_cart_error", err)
	}

	l.Info("remove_from_cart_success", "cart_id", cartID)
	return c.JSON(http.StatusOK, transport.RemovedResponse{Deleted: 1})
}
