package httpserver

import (
	"context"
	"errors"
	"log"
	"time"

	"storefront/internal/domain"
	accountsvc "storefront/internal/service/account"
	adminsvc "storefront/internal/service/admin"
	checkoutsvc "storefront/internal/service/checkout"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type accountService interface {
	Signup(ctx context.Context, in accountsvc.SignupInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error)
	LookupByToken(ctx context.Context, token string) (*domain.User, error)
	AccessTTLSeconds() int
}

type catalogService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
}

type cartService interface {
	Add(ctx context.Context, userID, productID string) (*domain.CartItem, error)
	Remove(ctx context.Context, userID, productID string) error
	List(ctx context.Context, userID string) ([]domain.CartItem, error)
}

type checkoutService interface {
	Checkout(ctx context.Context, userID, couponCode string) (*checkoutsvc.Result, error)
	CheckCoupon(ctx context.Context, userID, code string) (*checkoutsvc.CouponCheck, error)
	Orders(ctx context.Context, userID string) ([]domain.Order, error)
}

type adminService interface {
	CreateCoupon(ctx context.Context, code string, percentageOff int) (*domain.Coupon, error)
	Analytics(ctx context.Context) (*adminsvc.Report, error)
}

// Deps carries the services the router depends on.
type Deps struct {
	AccountSvc  accountService
	CatalogSvc  catalogService
	CartSvc     cartService
	CheckoutSvc checkoutService
	AdminSvc    adminService
}

func (d Deps) validate() error {
	if d.AccountSvc == nil || d.CatalogSvc == nil || d.CartSvc == nil || d.CheckoutSvc == nil || d.AdminSvc == nil {
		return errors.New("httpserver: all services are required")
	}
	return nil
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, corsOrigins []string) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.POST("/signup", signupHandler(deps.AccountSvc, logger))
	router.POST("/login", loginHandler(deps.AccountSvc, logger))

	router.GET("/products", listProductsHandler(deps.CatalogSvc, logger))
	router.GET("/products/:id", getProductHandler(deps.CatalogSvc, logger))

	authed := router.Group("", authMiddleware(deps.AccountSvc))
	authed.GET("/cart", listCartHandler(deps.CartSvc, logger))
	authed.POST("/cart/add", addToCartHandler(deps.CartSvc, logger))
	authed.POST("/cart/remove", removeFromCartHandler(deps.CartSvc, logger))
	authed.POST("/coupon", checkCouponHandler(deps.CheckoutSvc, logger))
	authed.POST("/checkout", checkoutHandler(deps.CheckoutSvc, logger))
	authed.GET("/orders", listOrdersHandler(deps.CheckoutSvc, logger))

	adm := authed.Group("/admin", adminOnly())
	adm.POST("/coupons", createCouponHandler(deps.AdminSvc, logger))
	adm.GET("/analytics", analyticsHandler(deps.AdminSvc, logger))

	return router, nil
}
