package order_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"testing"

	"storefront/internal/db"
	"storefront/internal/domain"
	cartrepo "storefront/internal/repository/cart"
	couponrepo "storefront/internal/repository/coupon"
	orderrepo "storefront/internal/repository/order"
	productrepo "storefront/internal/repository/product"
	userrepo "storefront/internal/repository/user"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	container, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts("../../migrate/sql/0001_init.up.sql"),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("container.ConnectionString: %w", err)
	}

	return container, connStr, nil
}

type orderRepositorySuite struct {
	suite.Suite

	pool     *pgxpool.Pool
	repo     orderrepo.Repository
	carts    cartrepo.Repository
	users    userrepo.Repository
	products productrepo.Repository
	coupons  couponrepo.Repository
}

func TestOrderRepositorySuite(t *testing.T) {
	suite.Run(t, new(orderRepositorySuite))
}

func (suite *orderRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	_, connStr, err := startPostgres(ctx)
	suite.NoError(err)

	suite.pool, err = db.Connect(ctx, connStr)
	suite.NoError(err)

	suite.repo = orderrepo.NewPostgres(suite.pool)
	suite.carts = cartrepo.NewPostgres(suite.pool)
	suite.users = userrepo.NewPostgres(suite.pool)
	suite.products = productrepo.NewPostgres(suite.pool, log.New(io.Discard, "", 0))
	suite.coupons = couponrepo.NewPostgres(suite.pool)
}

func (suite *orderRepositorySuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *orderRepositorySuite) createUser() *domain.User {
	u, err := suite.users.Create(suite.T().Context(), userrepo.CreateUserInput{
		Email:        gofakeit.Email(),
		Name:         gofakeit.Name(),
		PasswordHash: "x",
	})
	suite.Require().NoError(err)
	return u
}

func (suite *orderRepositorySuite) createProduct(price string) *domain.Product {
	money, err := domain.NewMoney(decimal.RequireFromString(price), "USD")
	suite.Require().NoError(err)

	p, err := suite.products.Upsert(suite.T().Context(), domain.Product{
		Name:  gofakeit.ProductName(),
		Price: money,
	})
	suite.Require().NoError(err)
	return p
}

func (suite *orderRepositorySuite) addToCart(userID string, productID string, times int) {
	for i := 0; i < times; i++ {
		_, err := suite.carts.AddItem(suite.T().Context(), userID, productID)
		suite.Require().NoError(err)
	}
}

// commitAll is a decide callback that charges the raw cart total.
func commitAll(items []domain.CartItem, _ int) (orderrepo.PlaceDecision, error) {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Product.Price.Amount.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return orderrepo.PlaceDecision{
		Total:    total,
		Currency: "USD",
		Commit:   true,
	}, nil
}

func (suite *orderRepositorySuite) TestPlaceFromCartCommits() {
	t := suite.T()
	ctx := t.Context()

	user := suite.createUser()
	widget := suite.createProduct("19.99")
	gadget := suite.createProduct("5.50")
	suite.addToCart(user.ID, widget.ID, 2)
	suite.addToCart(user.ID, gadget.ID, 1)

	order, err := suite.repo.PlaceFromCart(ctx, user.ID, commitAll)
	require.NoError(t, err)
	require.NotNil(t, order)
	require.Equal(t, domain.OrderStatusPending, order.Status)
	require.True(t, order.Total.Amount.Equal(decimal.RequireFromString("45.48")))
	require.Len(t, order.Items, 2)
	require.Equal(t, 2, order.Items[0].Quantity)
	require.True(t, order.Items[0].Price.Amount.Equal(decimal.RequireFromString("19.99")))

	// the cart is cleared in the same transaction
	items, err := suite.carts.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Empty(t, items)

	count, err := suite.repo.CountByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func (suite *orderRepositorySuite) TestPlaceFromCartRollbackDecision() {
	t := suite.T()
	ctx := t.Context()

	user := suite.createUser()
	widget := suite.createProduct("19.99")
	suite.addToCart(user.ID, widget.ID, 1)

	order, err := suite.repo.PlaceFromCart(ctx, user.ID, func(_ []domain.CartItem, _ int) (orderrepo.PlaceDecision, error) {
		return orderrepo.PlaceDecision{}, nil
	})
	require.NoError(t, err)
	require.Nil(t, order)

	// nothing was written and the cart survives
	items, err := suite.carts.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	count, err := suite.repo.CountByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Zero(t, count)
}

func (suite *orderRepositorySuite) TestPlaceFromCartEmptyCart() {
	t := suite.T()

	user := suite.createUser()

	_, err := suite.repo.PlaceFromCart(t.Context(), user.ID, commitAll)
	require.ErrorIs(t, err, domain.ErrEmptyCart)
}

func (suite *orderRepositorySuite) TestPlaceFromCartDecideErrorAborts() {
	t := suite.T()
	ctx := t.Context()

	user := suite.createUser()
	widget := suite.createProduct("19.99")
	suite.addToCart(user.ID, widget.ID, 1)

	boom := errors.New("boom")
	_, err := suite.repo.PlaceFromCart(ctx, user.ID, func(_ []domain.CartItem, _ int) (orderrepo.PlaceDecision, error) {
		return orderrepo.PlaceDecision{}, boom
	})
	require.ErrorIs(t, err, boom)

	items, err := suite.carts.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func (suite *orderRepositorySuite) TestPlaceFromCartReportsPriorOrders() {
	t := suite.T()
	ctx := t.Context()

	user := suite.createUser()
	widget := suite.createProduct("10.00")

	var seen []int
	for i := 0; i < 3; i++ {
		suite.addToCart(user.ID, widget.ID, 1)
		_, err := suite.repo.PlaceFromCart(ctx, user.ID, func(items []domain.CartItem, priorOrders int) (orderrepo.PlaceDecision, error) {
			seen = append(seen, priorOrders)
			return commitAll(items, priorOrders)
		})
		require.NoError(t, err)
	}
	require.Equal(t, []int{0, 1, 2}, seen)
}

func (suite *orderRepositorySuite) TestOrderItemsSnapshotPrices() {
	t := suite.T()
	ctx := t.Context()

	user := suite.createUser()
	widget := suite.createProduct("19.99")
	suite.addToCart(user.ID, widget.ID, 1)

	_, err := suite.repo.PlaceFromCart(ctx, user.ID, commitAll)
	require.NoError(t, err)

	// reprice the product after the order is placed
	repriced := *widget
	money, err := domain.NewMoney(decimal.RequireFromString("99.99"), "USD")
	require.NoError(t, err)
	repriced.Price = money
	_, err = suite.products.Upsert(ctx, repriced)
	require.NoError(t, err)

	orders, err := suite.repo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Len(t, orders[0].Items, 1)
	require.True(t, orders[0].Items[0].Price.Amount.Equal(decimal.RequireFromString("19.99")))
}

func (suite *orderRepositorySuite) TestCountItemsAndSumTotals() {
	t := suite.T()
	ctx := t.Context()

	itemsBefore, err := suite.repo.CountItems(ctx)
	require.NoError(t, err)
	totalBefore, err := suite.repo.SumTotals(ctx)
	require.NoError(t, err)

	user := suite.createUser()
	widget := suite.createProduct("12.25")
	gadget := suite.createProduct("3.75")
	suite.addToCart(user.ID, widget.ID, 1)
	suite.addToCart(user.ID, gadget.ID, 1)

	_, err = suite.repo.PlaceFromCart(ctx, user.ID, commitAll)
	require.NoError(t, err)

	itemsAfter, err := suite.repo.CountItems(ctx)
	require.NoError(t, err)
	require.Equal(t, itemsBefore+2, itemsAfter)

	totalAfter, err := suite.repo.SumTotals(ctx)
	require.NoError(t, err)
	require.True(t, totalAfter.Sub(totalBefore).Equal(decimal.RequireFromString("16.00")))
}

func (suite *orderRepositorySuite) TestListByUserCarriesCouponCode() {
	t := suite.T()
	ctx := t.Context()

	user := suite.createUser()
	widget := suite.createProduct("100.00")
	suite.addToCart(user.ID, widget.ID, 1)

	coupon, err := suite.coupons.Create(ctx, gofakeit.LetterN(8), 50)
	require.NoError(t, err)

	_, err = suite.repo.PlaceFromCart(ctx, user.ID, func(_ []domain.CartItem, _ int) (orderrepo.PlaceDecision, error) {
		return orderrepo.PlaceDecision{
			Total:    decimal.RequireFromString("50.00"),
			Currency: "USD",
			CouponID: &coupon.ID,
			Commit:   true,
		}, nil
	})
	require.NoError(t, err)

	orders, err := suite.repo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.NotNil(t, orders[0].CouponCode)
	require.Equal(t, coupon.Code, *orders[0].CouponCode)
	require.True(t, orders[0].Total.Amount.Equal(decimal.RequireFromString("50.00")))
}
