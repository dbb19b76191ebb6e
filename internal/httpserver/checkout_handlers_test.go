package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibeshop/vibeshop/internal/models"
)

func TestCheckout(t *testing.T) {
	env := newTestEnv(t)

	env.DB.Create(&models.Product{Name: "A", Price: 10})
	env.DB.Create(&models.Product{Name: "B", Price: 5})
	env.DB.Create(&models.CartLine{UserID: 1, ProductID: 1, Quantity: 2})
	env.DB.Create(&models.CartLine{UserID: 1, ProductID: 2, Quantity: 1})

	load := map[string]string{"name": "Alice", "email": "alice@example.com"}
	rec, c := env.doJSONRequest(t, http.MethodPost, "/api/v1/checkout", load)
	require.NoError(t, env.Checkout.Checkout(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Receipt models.Receipt `json:"receipt"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InDelta(t, 25, resp.Receipt.Total, 1e-9)
	assert.Equal(t, "Alice", resp.Receipt.CustomerName)
	require.Len(t, resp.Receipt.Items, 2)

	var lines int64
	env.DB.Model(&models.CartLine{}).Count(&lines)
	assert.Zero(t, lines)
}

func TestCheckout_EmptyCart(t *testing.T) {
	env := newTestEnv(t)

	load := map[string]string{"name": "Alice", "email": "alice@example.com"}
	_, c := env.doJSONRequest(t, http.MethodPost, "/api/v1/checkout", load)
	err := env.Checkout.Checkout(c)
	require.Error(t, err)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.Equal(t, "cart is empty", he.Message)
}

func TestCheckout_MissingCustomerFields(t *testing.T) {
	env := newTestEnv(t)

	env.DB.Create(&models.Product{Name: "A", Price: 10})
	env.DB.Create(&models.CartLine{UserID: 1, ProductID: 1, Quantity: 1})

	load := map[string]string{"name": "", "email": "alice@example.com"}
	_, c := env.doJSONRequest(t, http.MethodPost, "/api/v1/checkout", load)
	err := env.Checkout.Checkout(c)
	require.Error(t, err)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)

	// aborted before any write
	var lines, receipts int64
	env.DB.Model(&models.CartLine{}).Count(&lines)
	env.DB.Model(&models.Receipt{}).Count(&receipts)
	assert.EqualValues(t, 1, lines)
	assert.Zero(t, receipts)
}

func TestGetReceipt_OtherUserGets404(t *testing.T) {
	env := newTestEnv(t)

	env.DB.Create(&models.Product{Name: "A", Price: 10})
	env.DB.Create(&models.CartLine{UserID: 2, ProductID: 1, Quantity: 1})

	// user 2 checks out
	load := map[string]string{"name": "Bob", "email": "bob@example.com"}
	rec, c := env.doJSONRequest(t, http.MethodPost, "/api/v1/checkout", load)
	c.Request().Header.Set("X-User-ID", "2")
	require.NoError(t, env.Checkout.Checkout(c))
	require.Equal(t, http.StatusOK, rec.Code)

	// user 1 must not see user 2's receipt
	_, c = env.doJSONRequest(t, http.MethodGet, "/api/v1/receipts/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	err := env.Receipt.GetReceipt(c)
	require.Error(t, err)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}
