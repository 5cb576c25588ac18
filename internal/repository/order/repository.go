package order

import (
	"context"

	"storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// PlaceDecision is what the checkout logic decides after seeing the locked
// cart and the user's prior order count. When Commit is false nothing is
// written and PlaceFromCart returns no order.
type PlaceDecision struct {
	Total    decimal.Decimal
	Currency string
	CouponID *string
	Commit   bool
}

// PlaceFunc computes the order to place. It runs inside the checkout
// transaction, after the cart rows have been locked.
type PlaceFunc func(items []domain.CartItem, priorOrders int) (PlaceDecision, error)

type Repository interface {
	// PlaceFromCart converts the user's cart into an order in a single
	// transaction: it locks and reads the cart with current product prices,
	// counts the user's prior orders, asks decide for the total, then inserts
	// the order with per-item price snapshots and clears the cart. Either the
	// order exists and the cart is empty, or neither happened.
	//
	// Returns domain.ErrEmptyCart when the user has no cart items.
	PlaceFromCart(ctx context.Context, userID string, decide PlaceFunc) (*domain.Order, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	CountItems(ctx context.Context) (int, error)
	SumTotals(ctx context.Context) (decimal.Decimal, error)
}
