package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vibeshop/vibeshop/internal/logging"
	"github.com/vibeshop/vibeshop/internal/metrics"
	"github.com/vibeshop/vibeshop/internal/mykafka"
	"github.com/vibeshop/vibeshop/internal/service"
)

type CheckoutHTTP struct {
	Svc      *service.CheckoutService
	Producer *mykafka.Producer
	Metrics  *metrics.Metrics
}

func (h *CheckoutHTTP) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.run")
	uid := userID(c)

	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("checkout_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "name and email required")
	}

	receipt, err := h.Svc.RunCheckout(ctx, uid, req.Name, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			h.Metrics.CheckoutOutcome("validation_failed")
			l.Warn("checkout_error", "status", 400, "reason", "invalid customer fields", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "name and email required")
		case errors.Is(err, service.ErrEmptyCart):
			h.Metrics.CheckoutOutcome("empty_cart")
			l.Warn("checkout_error", "status", 400, "reason", "empty cart", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "cart is empty")
		case errors.Is(err, service.ErrConflict):
			h.Metrics.CheckoutOutcome("conflict")
			l.Warn("checkout_error", "status", 409, "reason", "checkout in progress", "error", err)
			return echo.NewHTTPError(http.StatusConflict, "checkout already in progress")
		default:
			h.Metrics.CheckoutOutcome("store_failure")
			l.Error("checkout_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "checkout failed")
		}
	}

	h.Metrics.CheckoutOutcome("completed")
	l.Info("checkout_success", "receipt_id", receipt.ID, "total", receipt.Total)

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(pubCtx, "checkout_events", fmt.Sprint(uid), map[string]any{
		"type":       "receipt_created",
		"user_id":    uid,
		"receipt_id": receipt.ID,
		"total":      receipt.Total,
	}); err != nil {
		l.Error("kafka publish error", "error", err)
	}

	return c.JSON(http.StatusOK, map[string]any{"receipt": receipt})
}
