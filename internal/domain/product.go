package domain

import "time"

// Product is a catalog entry. Read-only from the storefront's perspective;
// rows are written out-of-band by the importer and seed tools.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       Money     `json:"price"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
