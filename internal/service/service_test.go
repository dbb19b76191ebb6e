package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vibeshop/vibeshop/internal/models"
	"github.com/vibeshop/vibeshop/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()
	return repo.New(newTestDB(t))
}

func seedProduct(t *testing.T, r *repo.GormRepo, name string, price float64) *models.Product {
	t.Helper()
	p := models.Product{Name: name, Price: price}
	require.NoError(t, r.DB.Create(&p).Error)
	return &p
}
