package domain

import "time"

// Coupon is an admin-created discount code. Read-only to the checkout flow.
type Coupon struct {
	ID            string    `json:"id"`
	Code          string    `json:"code"`
	PercentageOff int       `json:"percentageOff"`
	CreatedAt     time.Time `json:"createdAt"`
}
