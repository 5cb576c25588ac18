package domain

import "time"

// OrderStatusPending is the initial (and, in this core, only) order status.
const OrderStatusPending = "PENDING"

// Order is an immutable record of a completed checkout. Total is the
// post-discount amount as charged.
type Order struct {
	ID         string      `json:"id"`
	UserID     string      `json:"-"`
	Total      Money       `json:"total"`
	Status     string      `json:"status"`
	CouponID   *string     `json:"couponId,omitempty"`
	CouponCode *string     `json:"couponCode,omitempty"`
	Items      []OrderItem `json:"items,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// OrderItem freezes product, quantity and unit price at the moment of
// checkout, decoupling order history from later catalog changes.
type OrderItem struct {
	ID          string    `json:"id"`
	OrderID     string    `json:"-"`
	ProductID   string    `json:"productId"`
	ProductName string    `json:"productName,omitempty"`
	Quantity    int       `json:"quantity"`
	Price       Money     `json:"price"`
	CreatedAt   time.Time `json:"createdAt"`
}
