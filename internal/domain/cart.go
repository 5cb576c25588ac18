package domain

import "time"

// CartItem is one pending line of a user's cart, unique per
// (user, product) pair. Deleted on remove and on successful checkout.
type CartItem struct {
	UserID    string    `json:"-"`
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
	Product   *Product  `json:"product,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
