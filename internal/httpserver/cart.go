package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vibeshop/vibeshop/internal/logging"
	"github.com/vibeshop/vibeshop/internal/metrics"
	"github.com/vibeshop/vibeshop/internal/mykafka"
	"github.com/vibeshop/vibeshop/internal/service"
)

type CartHTTP struct {
	Svc      *service.CartService
	Producer *mykafka.Producer
	Metrics  *metrics.Metrics
}

func (h *CartHTTP) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "cart_events", fmt.Sprint(event["user_id"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get_cart")
	uid := userID(c)

	lines, total, err := h.Svc.ListLines(ctx, uid)
	if err != nil {
		l.Error("get_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot read cart")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"items": lines,
		"total": total,
	})
}

func (h *CartHTTP) UpsertLine(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.upsert_line")
	uid := userID(c)

	var req struct {
		ProductID uint `json:"product_id"`
		Quantity  *int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("upsert_line_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "product_id and numeric quantity required")
	}
	if req.Quantity == nil {
		l.Warn("upsert_line_error", "status", 400, "reason", "quantity missing")
		return echo.NewHTTPError(http.StatusBadRequest, "product_id and numeric quantity required")
	}

	line, removed, err := h.Svc.UpsertLine(ctx, uid, req.ProductID, *req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("upsert_line_error", "status", 400, "reason", "invalid input", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid input")
		case errors.Is(err, service.ErrNotFound):
			l.Warn("upsert_line_error", "status", 404, "reason", "unknown product", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		default:
			l.Error("upsert_line_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot update cart")
		}
	}

	if removed {
		h.Metrics.CartMutation("remove")
		h.publish(c, map[string]any{
			"type":       "cart_line_removed",
			"user_id":    uid,
			"product_id": req.ProductID,
		})
		return c.JSON(http.StatusOK, map[string]any{"removed": true, "product_id": req.ProductID})
	}

	h.Metrics.CartMutation("upsert")
	h.publish(c, map[string]any{
		"type":       "cart_line_upserted",
		"user_id":    uid,
		"product_id": line.ProductID,
		"quantity":   line.Quantity,
	})
	return c.JSON(http.StatusOK, line)
}

func (h *CartHTTP) RemoveLine(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_line")
	uid := userID(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		l.Warn("remove_line_error", "status", 400, "reason", "invalid id")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.Svc.RemoveLine(ctx, uid, uint(id)); err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("remove_line_error", "status", 400, "reason", "invalid input", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid input")
		}
		l.Error("remove_line_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot remove cart line")
	}

	h.Metrics.CartMutation("remove")
	h.publish(c, map[string]any{
		"type":         "cart_line_removed",
		"user_id":      uid,
		"cart_line_id": id,
	})
	return c.NoContent(http.StatusNoContent)
}
