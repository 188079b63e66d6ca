package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bistro/pkg/logging"
	"github.com/Skotchmaster/bistro/pkg/tokens"
)

const (
	CtxIdentity = "identity"

	RoleAdmin = "admin"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)

type Identity struct {
	Email  string
	Claims *tokens.Claims
}

// RoleLookup returns the stored role for an email. It must not cache.
type RoleLookup interface {
	RoleByEmail(ctx context.Context, email string) (string, error)
}

type AccessControl struct {
	JWTSecret []byte
	Roles     RoleLookup
}

func NewAccessControl(secret []byte, roles RoleLookup) *AccessControl {
	return &AccessControl{JWTSecret: secret, Roles: roles}
}

func (a *AccessControl) Authenticate(token string) (*Identity, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: missing credential", ErrUnauthenticated)
	}
	claims, err := tokens.ClaimsFromToken(token, a.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	return &Identity{Email: claims.Email, Claims: claims}, nil
}

// Authorize checks the role stored for the identity right now. An unknown
// user or a lookup failure is treated as forbidden.
func (a *AccessControl) Authorize(ctx context.Context, id *Identity, requiredRole string) error {
	if id == nil {
		return ErrUnauthenticated
	}
	role, err := a.Roles.RoleByEmail(ctx, id.Email)
	if err != nil {
		logging.FromContext(ctx).Warn("role_lookup_failed", "email", id.Email, "error", err)
		return fmt.Errorf("%w: role lookup failed", ErrForbidden)
	}
	if role != requiredRole {
		return fmt.Errorf("%w: %s role required", ErrForbidden, requiredRole)
	}
	return nil
}

// SelfOrAdmin lets a caller reach resources keyed by their own email, and
// admins reach anyone's.
func (a *AccessControl) SelfOrAdmin(ctx context.Context, id *Identity, email string) error {
	if id == nil {
		return ErrUnauthenticated
	}
	if id.Email == email {
		return nil
	}
	if err := a.Authorize(ctx, id, RoleAdmin); err != nil {
		return fmt.Errorf("%w: not the owner", ErrForbidden)
	}
	return nil
}

func (a *AccessControl) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return a.bearer()(next)
}

func (a *AccessControl) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return a.bearer()(func(c echo.Context) error {
		id := IdentityFrom(c)
		if err := a.Authorize(c.Request().Context(), id, RoleAdmin); err != nil {
			return HTTPError(err)
		}
		return next(c)
	})
}

func (a *AccessControl) bearer() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:Authorization:Bearer ",
		ContextKey:  CtxIdentity,
		ParseTokenFunc: func(c echo.Context, auth string) (any, error) {
			return a.Authenticate(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			logging.FromContext(c.Request().Context()).Warn("auth_failed", "status", 401, "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized access")
		},
	})
}

func IdentityFrom(c echo.Context) *Identity {
	id, _ := c.Get(CtxIdentity).(*Identity)
	return id
}

// HTTPError maps access errors to echo errors.
func HTTPError(err error) error {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized access")
	case errors.Is(err, ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "forbidden access")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
