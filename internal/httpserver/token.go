package httpserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bistro/internal/transport"
	"github.com/Skotchmaster/bistro/pkg/logging"
	"github.com/Skotchmaster/bistro/pkg/tokens"
)

type TokenHTTP struct {
	JWTSecret []byte
	TTL       time.Duration
}

func (h *TokenHTTP) Issue(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "token.issue")

	var req transport.IssueTokenRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("issue_token_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if strings.TrimSpace(req.Email) == "" {
		l.Warn("issue_token_error", "status", 400, "reason", "email required")
		return echo.NewHTTPError(http.StatusBadRequest, "email required")
	}

	token, exp, err := tokens.Issue(req.Email, h.JWTSecret, h.TTL)
	if err != nil {
		l.Error("issue_token_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot issue token")
	}

	return c.JSON(http.StatusOK, transport.IssueTokenResponse{Token: token, ExpiresAt: exp.Unix()})
}
