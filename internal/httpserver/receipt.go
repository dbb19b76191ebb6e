package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/vibeshop/vibeshop/internal/logging"
	"github.com/vibeshop/vibeshop/internal/service"
	"github.com/vibeshop/vibeshop/internal/util"
)

type ReceiptHTTP struct {
	Svc *service.ReceiptService
}

func (h *ReceiptHTTP) GetReceipt(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "receipt.get_receipt")
	uid := userID(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		l.Warn("get_receipt_error", "status", 400, "reason", "invalid id")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	receipt, err := h.Svc.GetReceipt(ctx, uid, uint(id))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_receipt_error", "status", 404, "reason", "unknown receipt", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "receipt not found")
		}
		l.Error("get_receipt_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get receipt")
	}

	return c.JSON(http.StatusOK, receipt)
}

func (h *ReceiptHTTP) ListReceipts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "receipt.list_receipts")
	uid := userID(c)

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	receipts, err := h.Svc.ListReceipts(ctx, uid, limit, offset)
	if err != nil {
		l.Error("list_receipts_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list receipts")
	}

	return c.JSON(http.StatusOK, map[string]any{"receipts": receipts})
}
