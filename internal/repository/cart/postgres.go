package cart

import (
	"context"
	"errors"

	"storefront/internal/db"
	"storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type postgresRepo struct {
	q db.Querier
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{q: pool}
}

func (r *postgresRepo) AddItem(ctx context.Context, userID, productID string) (*domain.CartItem, error) {
	const q = `
INSERT INTO cart_items (user_id, product_id, quantity)
VALUES ($1, $2, 1)
ON CONFLICT (user_id, product_id) DO UPDATE
SET quantity = cart_items.quantity + 1
RETURNING user_id::text, product_id::text, quantity, created_at
`
	var item domain.CartItem
	if err := r.q.QueryRow(ctx, q, userID, productID).Scan(
		&item.UserID,
		&item.ProductID,
		&item.Quantity,
		&item.CreatedAt,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *postgresRepo) RemoveItem(ctx context.Context, userID, productID string) error {
	const q = `
DELETE FROM cart_items
WHERE user_id = $1 AND product_id = $2
`
	cmd, err := r.q.Exec(ctx, q, userID, productID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.CartItem, error) {
	const q = `
SELECT ci.user_id::text, ci.product_id::text, ci.quantity, ci.created_at,
       p.id::text, p.name, p.description, p.price, p.currency, p.image_url, p.created_at
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
WHERE ci.user_id = $1
ORDER BY ci.created_at ASC
`
	rows, err := r.q.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanItemsWithProduct(rows)
}

func scanItemsWithProduct(rows pgx.Rows) ([]domain.CartItem, error) {
	var items []domain.CartItem
	for rows.Next() {
		var (
			item     domain.CartItem
			product  domain.Product
			amount   decimal.Decimal
			currency string
		)
		if err := rows.Scan(
			&item.UserID,
			&item.ProductID,
			&item.Quantity,
			&item.CreatedAt,
			&product.ID,
			&product.Name,
			&product.Description,
			&amount,
			&currency,
			&product.ImageURL,
			&product.CreatedAt,
		); err != nil {
			return nil, err
		}
		price, err := domain.NewMoney(amount, currency)
		if err != nil {
			return nil, err
		}
		product.Price = price
		item.Product = &product
		items = append(items, item)
	}
	return items, rows.Err()
}
