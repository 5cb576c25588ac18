package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/domain"
	orderrepo "storefront/internal/repository/order"
	"github.com/shopspring/decimal"
)

// ErrInvalidCoupon is returned when the supplied coupon code does not exist.
// An unknown code aborts checkout rather than silently charging full price.
var ErrInvalidCoupon = errors.New("invalid coupon code")

// couponInterval is the redemption window: a coupon may be applied only when
// the order being placed is the user's 3rd, 6th, 9th, ... order overall.
const couponInterval = 3

type Service struct {
	coupons couponRepo
	orders  orderRepo
}

type couponRepo interface {
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
}

type orderRepo interface {
	PlaceFromCart(ctx context.Context, userID string, decide orderrepo.PlaceFunc) (*domain.Order, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
}

func New(coupons couponRepo, orders orderRepo) *Service {
	return &Service{coupons: coupons, orders: orders}
}

// Result is the outcome of a checkout attempt. Valid is false only for the
// ineligible-coupon case, which places no order and is not an error.
type Result struct {
	Valid           bool          `json:"valid"`
	Order           *domain.Order `json:"order,omitempty"`
	DiscountApplied bool          `json:"discountApplied"`
	Message         string        `json:"message"`
}

// CouponCheck is the eligibility probe result for the pre-checkout UI call.
type CouponCheck struct {
	Valid         bool   `json:"valid"`
	PercentageOff int    `json:"percentageOff,omitempty"`
	Message       string `json:"message,omitempty"`
}

// Checkout converts the user's cart into an order. The cart read, coupon
// eligibility check, order insert and cart clear all happen in one database
// transaction inside the order repository.
func (s *Service) Checkout(ctx context.Context, userID, couponCode string) (*Result, error) {
	var coupon *domain.Coupon
	if code := strings.TrimSpace(couponCode); code != "" {
		c, err := s.coupons.GetByCode(ctx, code)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, ErrInvalidCoupon
			}
			return nil, err
		}
		coupon = c
	}

	var (
		discountApplied bool
		ordersRemaining = -1
	)
	order, err := s.orders.PlaceFromCart(ctx, userID, func(items []domain.CartItem, priorOrders int) (orderrepo.PlaceDecision, error) {
		currency, err := cartCurrency(items)
		if err != nil {
			return orderrepo.PlaceDecision{}, err
		}
		total := rawTotal(items)
		decision := orderrepo.PlaceDecision{
			Total:    roundCurrency(total),
			Currency: currency,
			Commit:   true,
		}
		if coupon != nil {
			ok, remaining := eligible(priorOrders)
			if !ok {
				ordersRemaining = remaining
				return orderrepo.PlaceDecision{}, nil
			}
			decision.CouponID = &coupon.ID
			decision.Total = applyDiscount(total, coupon.PercentageOff)
			discountApplied = true
		}
		return decision, nil
	})
	if err != nil {
		return nil, err
	}

	if ordersRemaining >= 0 {
		return &Result{Valid: false, Message: eligibilityMessage(ordersRemaining)}, nil
	}
	return &Result{
		Valid:           true,
		Order:           order,
		DiscountApplied: discountApplied,
		Message:         "Order Created Successfully!",
	}, nil
}

// CheckCoupon evaluates coupon eligibility without placing an order.
func (s *Service) CheckCoupon(ctx context.Context, userID, code string) (*CouponCheck, error) {
	coupon, err := s.coupons.GetByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCoupon
		}
		return nil, err
	}

	priorOrders, err := s.orders.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if ok, remaining := eligible(priorOrders); !ok {
		return &CouponCheck{Valid: false, Message: eligibilityMessage(remaining)}, nil
	}
	return &CouponCheck{Valid: true, PercentageOff: coupon.PercentageOff}, nil
}

// Orders returns the user's order history, newest first, with item
// snapshots and any redeemed coupon code attached.
func (s *Service) Orders(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// eligible reports whether the order about to be placed falls on the coupon
// redemption window, and if not, how many more orders are needed first.
// All prior orders count, couponed or not.
func eligible(priorOrders int) (bool, int) {
	next := priorOrders + 1
	if next%couponInterval == 0 {
		return true, 0
	}
	return false, couponInterval - next%couponInterval
}

func eligibilityMessage(remaining int) string {
	return fmt.Sprintf("You can apply this coupon after %d more order(s).", remaining)
}

// cartCurrency returns the cart's single currency. The catalog is effectively
// single-currency (products default to USD), and raw amounts in different
// currencies must never be summed as if they were comparable.
func cartCurrency(items []domain.CartItem) (string, error) {
	currency := items[0].Product.Price.Currency.String()
	for _, item := range items[1:] {
		if c := item.Product.Price.Currency.String(); c != currency {
			return "", fmt.Errorf("cart mixes currencies %s and %s", currency, c)
		}
	}
	return currency, nil
}

func rawTotal(items []domain.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Product.Price.Amount.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

func applyDiscount(total decimal.Decimal, percentageOff int) decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(decimal.NewFromInt(int64(percentageOff)).Div(decimal.NewFromInt(100)))
	return roundCurrency(total.Mul(factor))
}

// roundCurrency rounds half away from zero to 2 decimal places; the one
// rounding rule used everywhere a total is stored or displayed.
func roundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
