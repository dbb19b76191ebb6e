package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/vibeshop/vibeshop/internal/models"
	"github.com/vibeshop/vibeshop/internal/repo"
)

// CheckoutService converts a cart into a receipt. Checkouts for the same
// user are serialized: a second call arriving while one is in flight gets
// ErrConflict and may retry, so a cart can never be charged twice.
type CheckoutService struct {
	Repo *repo.GormRepo

	mu        sync.Mutex
	userLocks map[uint]*sync.Mutex
}

func NewCheckoutService(r *repo.GormRepo) *CheckoutService {
	return &CheckoutService{
		Repo:      r,
		userLocks: make(map[uint]*sync.Mutex),
	}
}

func (s *CheckoutService) lockFor(userID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.userLocks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.userLocks[userID] = l
	}
	return l
}

// RunCheckout validates the customer fields, then runs the atomic
// snapshot-price-persist-clear unit. Validation failures happen before any
// write; store failures roll back completely, so retrying an aborted
// checkout cannot duplicate state.
func (s *CheckoutService) RunCheckout(ctx context.Context, userID uint, customerName, customerEmail string) (*models.Receipt, error) {
	customerName = strings.TrimSpace(customerName)
	customerEmail = strings.TrimSpace(customerEmail)
	if customerName == "" {
		return nil, fmt.Errorf("name required: %w", ErrValidation)
	}
	if customerEmail == "" {
		return nil, fmt.Errorf("email required: %w", ErrValidation)
	}

	l := s.lockFor(userID)
	if !l.TryLock() {
		return nil, fmt.Errorf("checkout already in progress for user %d: %w", userID, ErrConflict)
	}
	defer l.Unlock()

	receipt, err := s.Repo.Checkout(ctx, userID, customerName, customerEmail)
	if errors.Is(err, repo.ErrNoLines) {
		return nil, fmt.Errorf("user %d: %w", userID, ErrEmptyCart)
	}
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}
	return receipt, nil
}
