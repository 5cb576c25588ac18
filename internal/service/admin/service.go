package admin

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain"
	couponrepo "storefront/internal/repository/coupon"
	"github.com/shopspring/decimal"
)

type Service struct {
	coupons couponRepo
	orders  orderRepo
}

type couponRepo interface {
	Create(ctx context.Context, code string, percentageOff int) (*domain.Coupon, error)
	RedemptionTotals(ctx context.Context) ([]couponrepo.RedemptionTotal, error)
}

type orderRepo interface {
	CountItems(ctx context.Context) (int, error)
	SumTotals(ctx context.Context) (decimal.Decimal, error)
}

func New(coupons couponRepo, orders orderRepo) *Service {
	return &Service{coupons: coupons, orders: orders}
}

// CreateCoupon registers a new discount code.
func (s *Service) CreateCoupon(ctx context.Context, code string, percentageOff int) (*domain.Coupon, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, errors.New("code required")
	}
	if percentageOff < 1 || percentageOff > 100 {
		return nil, errors.New("percentageOff must be between 1 and 100")
	}
	return s.coupons.Create(ctx, code, percentageOff)
}

// Report is the admin analytics view.
type Report struct {
	ItemsPurchasedCount int             `json:"itemsPurchasedCount"`
	TotalPurchaseAmount decimal.Decimal `json:"totalPurchaseAmount"`
	DiscountCodes       []DiscountCode  `json:"discountCodes"`
	TotalDiscountAmount decimal.Decimal `json:"totalDiscountAmount"`
}

type DiscountCode struct {
	Code                string          `json:"code"`
	PercentageOff       int             `json:"percentageOff"`
	TotalDiscountAmount decimal.Decimal `json:"totalDiscountAmount"`
}

// Analytics aggregates purchases and per-coupon discount totals. A coupon's
// discount is derived from the totals of the orders it was redeemed on.
func (s *Service) Analytics(ctx context.Context) (*Report, error) {
	itemCount, err := s.orders.CountItems(ctx)
	if err != nil {
		return nil, err
	}
	purchaseTotal, err := s.orders.SumTotals(ctx)
	if err != nil {
		return nil, err
	}
	redemptions, err := s.coupons.RedemptionTotals(ctx)
	if err != nil {
		return nil, err
	}

	hundred := decimal.NewFromInt(100)
	codes := make([]DiscountCode, 0, len(redemptions))
	discountTotal := decimal.Zero
	for _, r := range redemptions {
		discount := r.OrdersTotal.Mul(decimal.NewFromInt(int64(r.PercentageOff))).Div(hundred).Round(2)
		codes = append(codes, DiscountCode{
			Code:                r.Code,
			PercentageOff:       r.PercentageOff,
			TotalDiscountAmount: discount,
		})
		discountTotal = discountTotal.Add(discount)
	}

	return &Report{
		ItemsPurchasedCount: itemCount,
		TotalPurchaseAmount: purchaseTotal,
		DiscountCodes:       codes,
		TotalDiscountAmount: discountTotal.Round(2),
	}, nil
}
