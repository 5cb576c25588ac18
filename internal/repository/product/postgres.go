package product

import (
	"context"
	"errors"
	"io"
	"log"

	"storefront/internal/db"
	"storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type postgresRepo struct {
	q      db.Querier
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{q: pool, logger: logger}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT id::text, name, description, price, currency, image_url, created_at
FROM products
ORDER BY created_at ASC
`
	rows, err := r.q.Query(ctx, q)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, err
	}
	return products, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `
SELECT id::text, name, description, price, currency, image_url, created_at
FROM products
WHERE id = $1
`
	row := r.q.QueryRow(ctx, q, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, in domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (id, name, description, price, currency, image_url)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name,
    description = EXCLUDED.description,
    price = EXCLUDED.price,
    currency = EXCLUDED.currency,
    image_url = EXCLUDED.image_url
RETURNING id::text, name, description, price, currency, image_url, created_at
`
	row := r.q.QueryRow(ctx, q, in.ID, in.Name, in.Description, in.Price.Amount, in.Price.Currency.String(), in.ImageURL)
	p, err := scanProduct(row)
	if err != nil {
		r.logger.Printf("product repo: upsert name=%s error=%v", in.Name, err)
		return nil, err
	}
	return &p, nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var (
		p        domain.Product
		amount   decimal.Decimal
		currency string
	)
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&amount,
		&currency,
		&p.ImageURL,
		&p.CreatedAt,
	); err != nil {
		return domain.Product{}, err
	}
	price, err := domain.NewMoney(amount, currency)
	if err != nil {
		return domain.Product{}, err
	}
	p.Price = price
	return p, nil
}
