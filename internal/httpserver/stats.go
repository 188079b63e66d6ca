package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bistro/internal/service"
	"github.com/Skotchmaster/bistro/pkg/logging"
)

type StatsHTTP struct {
	Svc *service.ReportingService
}

func (h *StatsHTTP) AdminStats(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "stats.admin")

	stats, err := h.Svc.AdminStats(ctx)
	if err != nil {
		return fail(l, "admin_stats_error", err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *StatsHTTP) OrderStats(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "stats.orders")

	stats, err := h.Svc.OrderStats(ctx)
	if err != nil {
		return fail(l, "order_stats_error", err)
	}
	return c.JSON(http.StatusOK, stats)
}
