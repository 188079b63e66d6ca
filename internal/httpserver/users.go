package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bistro/internal/service"
	"github.com/Skotchmaster/bistro/internal/transport"
	auth "github.com/Skotchmaster/bistro/pkg/middleware/auth"
	"github.com/Skotchmaster/bistro/pkg/logging"
)

type UserHTTP struct {
	Svc    *service.UserService
	Access *auth.AccessControl
}

func (h *UserHTTP) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.signup")

	var req transport.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("signup_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, created, err := h.Svc.Signup(ctx, req.Name, req.Email)
	if err != nil {
		return fail(l, "signup_error", err)
	}
	if !created {
		l.Info("signup_user_exists")
		return c.JSON(http.StatusOK, transport.CreateUserResponse{Message: "user already exists"})
	}

	l.Info("signup_success")
	return c.JSON(http.StatusCreated, transport.CreateUserResponse{InsertedID: &user.ID})
}

func (h *UserHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.list")

	users, err := h.Svc.List(ctx)
	if err != nil {
		return fail(l, "list_users_error", err)
	}
	return c.JSON(http.StatusOK, users)
}

// IsAdmin answers only for the caller's own email.
func (h *UserHTTP) IsAdmin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.is_admin")

	email := c.Param("email")
	id := auth.IdentityFrom(c)
	if id == nil || id.Email != email {
		l.Warn("is_admin_error", "status", 403, "reason", "not the owner")
		return echo.NewHTTPError(http.StatusForbidden, "forbidden access")
	}

	admin, err := h.Svc.IsAdmin(ctx, email)
	if err != nil {
		return fail(l, "is_admin_error", err)
	}
	return c.JSON(http.StatusOK, transport.AdminCheckResponse{Admin: admin})
}

func (h *UserHTTP) Promote(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.promote")

	id, err := parseID(c)
	if err != nil {
		l.Warn("promote_error", "status", 400, "reason", "id not a uuid")
		return err
	}

	user, err := h.Svc.Promote(ctx, id)
	if err != nil {
		return fail(l, "promote_error", err)
	}

	l.Info("promote_success")
	return c.JSON(http.StatusOK, user)
}

func (h *UserHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.delete")

	id, err := parseID(c)
	if err != nil {
		l.Warn("delete_user_error", "status", 400, "reason", "id not a uuid")
		return err
	}
	if err := h.Svc.Delete(ctx, id); err != nil {
		return fail(l, "delete_user_error", err)
	}

	l.Info("delete_user_success")
	return c.NoContent(http.StatusNoContent)
}
