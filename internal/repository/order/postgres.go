package order

import (
	"context"

	"storefront/internal/db"
	"storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) PlaceFromCart(ctx context.Context, userID string, decide PlaceFunc) (*domain.Order, error) {
	var placed *domain.Order

	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		items, err := lockCartItems(ctx, tx, userID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return domain.ErrEmptyCart
		}

		var priorOrders int
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID).Scan(&priorOrders); err != nil {
			return err
		}

		decision, err := decide(items, priorOrders)
		if err != nil {
			return err
		}
		if !decision.Commit {
			return nil
		}

		const insertOrder = `
INSERT INTO orders (user_id, total, currency, status, coupon_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING id::text, status, created_at
`
		var order domain.Order
		order.UserID = userID
		order.CouponID = decision.CouponID
		if err := tx.QueryRow(ctx, insertOrder, userID, decision.Total, decision.Currency, domain.OrderStatusPending, decision.CouponID).Scan(
			&order.ID,
			&order.Status,
			&order.CreatedAt,
		); err != nil {
			return err
		}
		total, err := domain.NewMoney(decision.Total, decision.Currency)
		if err != nil {
			return err
		}
		order.Total = total

		const insertItem = `
INSERT INTO order_items (order_id, product_id, quantity, price)
VALUES ($1, $2, $3, $4)
RETURNING id::text, created_at
`
		for _, item := range items {
			snapshot := domain.OrderItem{
				OrderID:     order.ID,
				ProductID:   item.ProductID,
				ProductName: item.Product.Name,
				Quantity:    item.Quantity,
				Price:       item.Product.Price,
			}
			if err := tx.QueryRow(ctx, insertItem, order.ID, item.ProductID, item.Quantity, item.Product.Price.Amount).Scan(
				&snapshot.ID,
				&snapshot.CreatedAt,
			); err != nil {
				return err
			}
			order.Items = append(order.Items, snapshot)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
			return err
		}

		placed = &order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return placed, nil
}

// lockCartItems reads the user's cart joined with current product data,
// locking the cart rows so a concurrent checkout for the same user waits and
// then observes the cleared cart instead of charging twice.
func lockCartItems(ctx context.Context, tx pgx.Tx, userID string) ([]domain.CartItem, error) {
	const q = `
SELECT ci.user_id::text, ci.product_id::text, ci.quantity, ci.created_at,
       p.id::text, p.name, p.description, p.price, p.currency, p.image_url, p.created_at
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
WHERE ci.user_id = $1
ORDER BY ci.created_at ASC
FOR UPDATE OF ci
`
	rows, err := tx.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

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

func (r *postgresRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID).Scan(&n)
	return n, err
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	const ordersQuery = `
SELECT o.id::text, o.user_id::text, o.total, o.currency, o.status, o.coupon_id::text, c.code, o.created_at
FROM orders o
LEFT JOIN coupons c ON c.id = o.coupon_id
WHERE o.user_id = $1
ORDER BY o.created_at DESC
`
	rows, err := r.pool.Query(ctx, ordersQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var (
			o        domain.Order
			amount   decimal.Decimal
			currency string
		)
		if err := rows.Scan(
			&o.ID,
			&o.UserID,
			&amount,
			&currency,
			&o.Status,
			&o.CouponID,
			&o.CouponCode,
			&o.CreatedAt,
		); err != nil {
			return nil, err
		}
		total, err := domain.NewMoney(amount, currency)
		if err != nil {
			return nil, err
		}
		o.Total = total
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := r.listItems(ctx, orders[i].ID, orders[i].Total.Currency.String())
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (r *postgresRepo) listItems(ctx context.Context, orderID, currency string) ([]domain.OrderItem, error) {
	const q = `
SELECT oi.id::text, oi.order_id::text, oi.product_id::text, p.name, oi.quantity, oi.price, oi.created_at
FROM order_items oi
JOIN products p ON p.id = oi.product_id
WHERE oi.order_id = $1
ORDER BY oi.created_at ASC
`
	rows, err := r.pool.Query(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var (
			item   domain.OrderItem
			amount decimal.Decimal
		)
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.ProductName,
			&item.Quantity,
			&amount,
			&item.CreatedAt,
		); err != nil {
			return nil, err
		}
		price, err := domain.NewMoney(amount, currency)
		if err != nil {
			return nil, err
		}
		item.Price = price
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *postgresRepo) CountItems(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM order_items`).Scan(&n)
	return n, err
}

func (r *postgresRepo) SumTotals(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(total), 0) FROM orders`).Scan(&sum)
	return sum, err
}
