package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vibeshop/vibeshop/internal/models"
	"github.com/vibeshop/vibeshop/internal/repo"
	"github.com/vibeshop/vibeshop/internal/service"
)

type testEnv struct {
	E        *echo.Echo
	DB       *gorm.DB
	Catalog  *CatalogHTTP
	Cart     *CartHTTP
	Checkout *CheckoutHTTP
	Receipt  *ReceiptHTTP
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Product{},
		&models.CartLine{},
		&models.Receipt{},
		&models.ReceiptItem{},
	))

	r := repo.New(db)
	return &testEnv{
		E:        echo.New(),
		DB:       db,
		Catalog:  &CatalogHTTP{Svc: &service.CatalogService{Repo: r}},
		Cart:     &CartHTTP{Svc: &service.CartService{Repo: r}},
		Checkout: &CheckoutHTTP{Svc: service.NewCheckoutService(r)},
		Receipt:  &ReceiptHTTP{Svc: &service.ReceiptService{Repo: r}},
	}
}

func (env *testEnv) doJSONRequest(t *testing.T, method, target string, body any) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}
