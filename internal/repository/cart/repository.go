package cart

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	// AddItem upserts the (user, product) line, creating it with quantity 1
	// or incrementing the existing quantity by 1. The upsert is a single
	// statement so concurrent adds never lose an increment.
	AddItem(ctx context.Context, userID, productID string) (*domain.CartItem, error)
	RemoveItem(ctx context.Context, userID, productID string) error
	ListByUser(ctx context.Context, userID string) ([]domain.CartItem, error)
}
