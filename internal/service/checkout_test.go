package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibeshop/vibeshop/internal/models"
)

func TestCheckout_EmptyCart(t *testing.T) {
	r := newTestRepo(t)
	svc := NewCheckoutService(r)

	receipt, err := svc.RunCheckout(context.Background(), 1, "Alice", "alice@example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Nil(t, receipt)

	var count int64
	require.NoError(t, r.DB.Model(&models.Receipt{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCheckout_ValidationBeforeAnyWrite(t *testing.T) {
	r := newTestRepo(t)
	cart := &CartService{Repo: r}
	svc := NewCheckoutService(r)
	ctx := context.Background()

	p := seedProduct(t, r, "Vibe Mug", 9.99)
	_, _, err := cart.UpsertLine(ctx, 1, p.ID, 2)
	require.NoError(t, err)

	for _, tt := range []struct {
		name, customer, email string
	}{
		{name: "empty name", customer: "", email: "a@example.com"},
		{name: "blank name", customer: "   ", email: "a@example.com"},
		{name: "empty email", customer: "Alice", email: ""},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RunCheckout(ctx, 1, tt.customer, tt.email)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	// cart untouched, nothing written
	lines, _, err := cart.ListLines(ctx, 1)
	require.NoError(t, err)
	require.Len(t, lines, 1)

	var count int64
	require.NoError(t, r.DB.Model(&models.Receipt{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCheckout_TotalItemsAndClearing(t *testing.T) {
	r := newTestRepo(t)
	cart := &CartService{Repo: r}
	svc := NewCheckoutService(r)
	ctx := context.Background()

	a := seedProduct(t, r, "A", 10)
	b := seedProduct(t, r, "B", 5)

	_, _, err := cart.UpsertLine(ctx, 1, a.ID, 2)
	require.NoError(t, err)
	_, _, err = cart.UpsertLine(ctx, 1, b.ID, 1)
	require.NoError(t, err)

	receipt, err := svc.RunCheckout(ctx, 1, "Alice", "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, receipt)

	assert.InDelta(t, 25, receipt.Total, 1e-9)
	assert.Equal(t, "Alice", receipt.CustomerName)
	assert.Equal(t, "alice@example.com", receipt.CustomerEmail)
	assert.False(t, receipt.CreatedAt.IsZero())
	require.Len(t, receipt.Items, 2)

	var sum float64
	for _, item := range receipt.Items {
		sum += item.Price * float64(item.Quantity)
	}
	assert.InDelta(t, receipt.Total, sum, 1e-9)

	lines, _, err := cart.ListLines(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, lines)

	var receipts, items int64
	require.NoError(t, r.DB.Model(&models.Receipt{}).Count(&receipts).Error)
	require.NoError(t, r.DB.Model(&models.ReceiptItem{}).Count(&items).Error)
	assert.EqualValues(t, 1, receipts)
	assert.EqualValues(t, 2, items)
}

func TestCheckout_FrozenPrice(t *testing.T) {
	r := newTestRepo(t)
	cart := &CartService{Repo: r}
	svc := NewCheckoutService(r)
	receipts := &ReceiptService{Repo: r}
	ctx := context.Background()

	p := seedProduct(t, r, "Desk Lamp", 24.5)
	_, _, err := cart.UpsertLine(ctx, 1, p.ID, 2)
	require.NoError(t, err)

	receipt, err := svc.RunCheckout(ctx, 1, "Bob", "bob@example.com")
	require.NoError(t, err)

	// a later catalog price change must not leak into the archive
	require.NoError(t, r.DB.Model(&models.Product{}).Where("id = ?", p.ID).Update("price", 99.0).Error)

	stored, err := receipts.GetReceipt(ctx, 1, receipt.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, 24.5, stored.Items[0].Price)
	assert.InDelta(t, 49, stored.Total, 1e-9)
}

func TestCheckout_ConcurrentSameUser(t *testing.T) {
	r := newTestRepo(t)
	cart := &CartService{Repo: r}
	svc := NewCheckoutService(r)
	ctx := context.Background()

	p := seedProduct(t, r, "Wireless Earbuds", 79.99)
	_, _, err := cart.UpsertLine(ctx, 1, p.ID, 1)
	require.NoError(t, err)

	start := make(chan struct{})
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = svc.RunCheckout(ctx, 1, "Carol", "carol@example.com")
		}(i)
	}
	close(start)
	wg.Wait()

	var succeeded int
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		// the loser either hit the in-flight lock or found the cart empty
		assert.True(t, errorsIsAny(err, ErrConflict, ErrEmptyCart), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, succeeded)

	var receipts int64
	require.NoError(t, r.DB.Model(&models.Receipt{}).Count(&receipts).Error)
	assert.EqualValues(t, 1, receipts)

	lines, _, err := cart.ListLines(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestCheckout_ReceiptVisibleOnlyToOwner(t *testing.T) {
	r := newTestRepo(t)
	cart := &CartService{Repo: r}
	svc := NewCheckoutService(r)
	receipts := &ReceiptService{Repo: r}
	ctx := context.Background()

	p := seedProduct(t, r, "Vibe Mug", 9.99)
	_, _, err := cart.UpsertLine(ctx, 1, p.ID, 1)
	require.NoError(t, err)

	receipt, err := svc.RunCheckout(ctx, 1, "Alice", "alice@example.com")
	require.NoError(t, err)

	_, err = receipts.GetReceipt(ctx, 2, receipt.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	listed, err := receipts.ListReceipts(ctx, 1, 10, 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, receipt.ID, listed[0].ID)
}

func errorsIsAny(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
