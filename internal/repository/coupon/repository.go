package coupon

import (
	"context"

	"storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// RedemptionTotal aggregates the order totals a coupon was redeemed against,
// for the admin analytics view.
type RedemptionTotal struct {
	Code          string
	PercentageOff int
	OrdersTotal   decimal.Decimal
}

type Repository interface {
	Create(ctx context.Context, code string, percentageOff int) (*domain.Coupon, error)
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
	RedemptionTotals(ctx context.Context) ([]RedemptionTotal, error)
}
