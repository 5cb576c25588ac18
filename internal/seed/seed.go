package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type productSeed struct {
	ID          string
	Name        string
	Description string
	Price       string
	Currency    string
	ImageURL    string
}

// Apply inserts basic seed data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	products := []productSeed{
		{
			ID:          "5f6c1a39-4bc1-4dc5-9026-2e0fb2399001",
			Name:        "Demo T-Shirt",
			Description: "Soft cotton tee for demo purposes",
			Price:       "19.99",
			Currency:    "USD",
			ImageURL:    "https://example.com/images/demo-shirt.png",
		},
		{
			ID:          "5f6c1a39-4bc1-4dc5-9026-2e0fb2399002",
			Name:        "Demo Mug",
			Description: "Ceramic mug with demo logo",
			Price:       "12.99",
			Currency:    "USD",
			ImageURL:    "https://example.com/images/demo-mug.png",
		},
		{
			ID:          "5f6c1a39-4bc1-4dc5-9026-2e0fb2399003",
			Name:        "Demo Poster",
			Description: "A2 matte poster",
			Price:       "8.50",
			Currency:    "USD",
			ImageURL:    "https://example.com/images/demo-poster.png",
		},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}

	if err := ensureAdmin(ctx, pool, "admin@example.com", "Admin1234"); err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}

	if err := ensureCoupon(ctx, pool, "offer50", 50); err != nil {
		return fmt.Errorf("ensure coupon: %w", err)
	}

	return nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (id, name, description, price, currency, image_url)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name,
    description = EXCLUDED.description,
    price = EXCLUDED.price,
    currency = EXCLUDED.currency,
    image_url = EXCLUDED.image_url
`
	_, err := pool.Exec(ctx, q, p.ID, p.Name, p.Description, p.Price, p.Currency, p.ImageURL)
	return err
}

func ensureAdmin(ctx context.Context, pool *pgxpool.Pool, email, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO users (email, name, password_hash, is_admin)
VALUES ($1, 'Admin', $2, true)
ON CONFLICT (email) DO NOTHING
`
	_, err = pool.Exec(ctx, q, email, string(hashed))
	return err
}

func ensureCoupon(ctx context.Context, pool *pgxpool.Pool, code string, percentageOff int) error {
	const q = `
INSERT INTO coupons (code, percentage_off)
VALUES ($1, $2)
ON CONFLICT (code) DO NOTHING
`
	_, err := pool.Exec(ctx, q, code, percentageOff)
	return err
}
