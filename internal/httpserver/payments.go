package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bistro/internal/service"
	"github.com/Skotchmaster/bistro/internal/transport"
	auth "github.com/Skotchmaster/bistro/pkg/middleware/auth"
	"github.com/Skotchmaster/bistro/pkg/logging"
)

type PaymentHTTP struct {
	Settlement *service.SettlementService
	Intents    *service.PaymentIntentService
	Access     *auth.AccessControl
}

func (h *PaymentHTTP) CreateIntent(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "payments.intent")

	var req transport.PaymentIntentRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_intent_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	secret, err := h.Intents.CreateIntent(ctx, req.Price)
	if err != nil {
		return fail(l, "create_intent_error", err)
	}
	return c.JSON(http.StatusOK, transport.PaymentIntentResponse{ClientSecret: secret})
}

func (h *PaymentHTTP) Settle(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "payments.settle")

	var req transport.CreatePaymentRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("settle_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := h.Access.SelfOrAdmin(ctx, auth.IdentityFrom(c), req.Email); err != nil {
		l.Warn("settle_error", "status", 403, "reason", "not the owner")
		return auth.HTTPError(err)
	}

	res, err := h.Settlement.Settle(ctx, req)
	if err != nil {
		return fail(l, "settle_error", err)
	}

	return c.JSON(http.StatusCreated, transport.SettlementResponse{
		Payment:   res.Payment,
		Requested: res.Requested,
		Deleted:   res.Deleted,
		Complete:  res.Complete(),
	})
}

func (h *PaymentHTTP) History(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "payments.history")

	email := c.Param("email")
	if err := h.Access.SelfOrAdmin(ctx, auth.IdentityFrom(c), email); err != nil {
		l.Warn("payment_history_error", "status", 403, "reason", "not the owner")
		return auth.HTTPError(err)
	}

	payments, err := h.Settlement.ListByOwner(ctx, email)
	if err != nil {
		return fail(l, "payment_history_error", err)
	}
	return c.JSON(http.StatusOK, payments)
}

func (h *PaymentHTTP) Payment(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "payments.get")

	email := c.Param("email")
	if err := h.Access.SelfOrAdmin(ctx, auth.IdentityFrom(c), email); err != nil {
		l.Warn("get_payment_error", "status", 403, "reason", "not the owner")
		return auth.HTTPError(err)
	}

	id, err := parseID(c)
	if err != nil {
		l.Warn("get_payment_error", "status", 400, "reason", "id not a uuid")
		return err
	}

	payment, err := h.Settlement.GetForOwner(ctx, email, id)
	if err != nil {
		return fail(l, "get_payment_error", err)
	}
	return c.JSON(http.StatusOK, payment)
}
