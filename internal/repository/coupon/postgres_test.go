package coupon_test

import (
	"context"
	"fmt"
	"testing"

	"storefront/internal/db"
	"storefront/internal/domain"
	couponrepo "storefront/internal/repository/coupon"
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

type couponRepositorySuite struct {
	suite.Suite

	pool  *pgxpool.Pool
	repo  couponrepo.Repository
	users userrepo.Repository
}

func TestCouponRepositorySuite(t *testing.T) {
	suite.Run(t, new(couponRepositorySuite))
}

func (suite *couponRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	_, connStr, err := startPostgres(ctx)
	suite.NoError(err)

	suite.pool, err = db.Connect(ctx, connStr)
	suite.NoError(err)

	suite.repo = couponrepo.NewPostgres(suite.pool)
	suite.users = userrepo.NewPostgres(suite.pool)
}

func (suite *couponRepositorySuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *couponRepositorySuite) deleteAll() {
	_, err := suite.pool.Exec(suite.T().Context(), "TRUNCATE TABLE coupons CASCADE")
	suite.NoError(err)
}

func (suite *couponRepositorySuite) TestCreateAndGetByCode() {
	defer suite.deleteAll()
	t := suite.T()
	ctx := t.Context()

	created, err := suite.repo.Create(ctx, "offer50", 50)
	require.NoError(t, err)
	require.Equal(t, "offer50", created.Code)
	require.Equal(t, 50, created.PercentageOff)
	require.NotEmpty(t, created.ID)

	got, err := suite.repo.GetByCode(ctx, "offer50")
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
}

func (suite *couponRepositorySuite) TestCreateDuplicateCode() {
	defer suite.deleteAll()
	t := suite.T()
	ctx := t.Context()

	_, err := suite.repo.Create(ctx, "offer50", 50)
	require.NoError(t, err)

	_, err = suite.repo.Create(ctx, "offer50", 20)
	require.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func (suite *couponRepositorySuite) TestGetByCodeNotFound() {
	t := suite.T()

	_, err := suite.repo.GetByCode(t.Context(), "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func (suite *couponRepositorySuite) TestRedemptionTotals() {
	defer suite.deleteAll()
	t := suite.T()
	ctx := t.Context()

	user, err := suite.users.Create(ctx, userrepo.CreateUserInput{
		Email:        gofakeit.Email(),
		PasswordHash: "x",
	})
	require.NoError(t, err)

	redeemed, err := suite.repo.Create(ctx, "offer50", 50)
	require.NoError(t, err)
	unredeemed, err := suite.repo.Create(ctx, "offer10", 10)
	require.NoError(t, err)

	const insertOrder = `
INSERT INTO orders (user_id, total, currency, coupon_id)
VALUES ($1, $2, 'USD', $3)
`
	_, err = suite.pool.Exec(ctx, insertOrder, user.ID, decimal.RequireFromString("100.00"), redeemed.ID)
	require.NoError(t, err)
	_, err = suite.pool.Exec(ctx, insertOrder, user.ID, decimal.RequireFromString("60.50"), redeemed.ID)
	require.NoError(t, err)

	totals, err := suite.repo.RedemptionTotals(ctx)
	require.NoError(t, err)
	require.Len(t, totals, 2)

	require.Equal(t, redeemed.Code, totals[0].Code)
	require.Equal(t, 50, totals[0].PercentageOff)
	require.True(t, totals[0].OrdersTotal.Equal(decimal.RequireFromString("160.50")))

	require.Equal(t, unredeemed.Code, totals[1].Code)
	require.True(t, totals[1].OrdersTotal.IsZero())
}
