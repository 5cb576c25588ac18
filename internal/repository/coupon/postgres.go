package coupon

import (
	"context"
	"errors"

	"storefront/internal/db"
	"storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	q db.Querier
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{q: pool}
}

func (r *postgresRepo) Create(ctx context.Context, code string, percentageOff int) (*domain.Coupon, error) {
	const q = `
INSERT INTO coupons (code, percentage_off)
VALUES ($1, $2)
RETURNING id::text, code, percentage_off, created_at
`
	var c domain.Coupon
	if err := r.q.QueryRow(ctx, q, code, percentageOff).Scan(
		&c.ID,
		&c.Code,
		&c.PercentageOff,
		&c.CreatedAt,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	const q = `
SELECT id::text, code, percentage_off, created_at
FROM coupons
WHERE code = $1
`
	var c domain.Coupon
	if err := r.q.QueryRow(ctx, q, code).Scan(
		&c.ID,
		&c.Code,
		&c.PercentageOff,
		&c.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) RedemptionTotals(ctx context.Context) ([]RedemptionTotal, error) {
	const q = `
SELECT c.code, c.percentage_off, COALESCE(SUM(o.total), 0)
FROM coupons c
LEFT JOIN orders o ON o.coupon_id = c.id
GROUP BY c.id, c.code, c.percentage_off
ORDER BY c.created_at ASC
`
	rows, err := r.q.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []RedemptionTotal
	for rows.Next() {
		var t RedemptionTotal
		if err := rows.Scan(&t.Code, &t.PercentageOff, &t.OrdersTotal); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}
