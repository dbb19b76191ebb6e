package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/vibeshop/vibeshop/internal/metrics"
)

type Deps struct {
	CatalogHandler  *CatalogHTTP
	CartHandler     *CartHTTP
	CheckoutHandler *CheckoutHTTP
	ReceiptHandler  *ReceiptHTTP
	SearchHandler   *SearchHTTP
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	v1 := e.Group("/api/v1")

	products := v1.Group("/products")
	products.GET("", d.CatalogHandler.GetProducts)
	products.GET("/:id", d.CatalogHandler.GetProduct)

	if d.SearchHandler != nil {
		v1.GET("/search", d.SearchHandler.Search)
	}

	cart := v1.Group("/cart")
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.UpsertLine)
	cart.DELETE("/:id", d.CartHandler.RemoveLine)

	v1.POST("/checkout", d.CheckoutHandler.Checkout)

	receipts := v1.Group("/receipts")
	receipts.GET("", d.ReceiptHandler.ListReceipts)
	receipts.GET("/:id", d.ReceiptHandler.GetReceipt)
}
