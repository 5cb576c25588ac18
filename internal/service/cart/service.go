package cart

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain"
	cartrepo "storefront/internal/repository/cart"
)

type Service struct {
	repo cartRepo
}

type cartRepo interface {
	AddItem(ctx context.Context, userID, productID string) (*domain.CartItem, error)
	RemoveItem(ctx context.Context, userID, productID string) error
	ListByUser(ctx context.Context, userID string) ([]domain.CartItem, error)
}

func New(repo cartrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Add upserts one unit of the product into the user's cart.
func (s *Service) Add(ctx context.Context, userID, productID string) (*domain.CartItem, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, errors.New("productId required")
	}
	return s.repo.AddItem(ctx, userID, productID)
}

// Remove deletes the product's line from the user's cart.
func (s *Service) Remove(ctx context.Context, userID, productID string) error {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return errors.New("productId required")
	}
	return s.repo.RemoveItem(ctx, userID, productID)
}

// List returns the user's cart lines with product details attached.
func (s *Service) List(ctx context.Context, userID string) ([]domain.CartItem, error) {
	return s.repo.ListByUser(ctx, userID)
}
