package httpserver

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"storefront/internal/domain"
	checkoutsvc "storefront/internal/service/checkout"
	"github.com/gin-gonic/gin"
)

type couponRequest struct {
	Code string `json:"code"`
}

type checkoutRequest struct {
	CouponCode string `json:"couponCode"`
}

func checkCouponHandler(checkouts checkoutService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, _ := currentUser(c)
		var in couponRequest
		if err := c.ShouldBindJSON(&in); err != nil || strings.TrimSpace(in.Code) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Coupon code is required"})
			return
		}

		check, err := checkouts.CheckCoupon(c.Request.Context(), u.ID, in.Code)
		if err != nil {
			if errors.Is(err, checkoutsvc.ErrInvalidCoupon) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Invalid coupon code"})
				return
			}
			logger.Printf("check coupon for %s: %v", u.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.JSON(http.StatusOK, check)
	}
}

func checkoutHandler(checkouts checkoutService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, _ := currentUser(c)
		var in checkoutRequest
		// The body is optional; checkout without a coupon posts nothing.
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&in); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
				return
			}
		}

		result, err := checkouts.Checkout(c.Request.Context(), u.ID, in.CouponCode)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrEmptyCart):
				c.JSON(http.StatusNotFound, gin.H{"error": "cart is empty"})
			case errors.Is(err, checkoutsvc.ErrInvalidCoupon):
				c.JSON(http.StatusNotFound, gin.H{"error": "Invalid coupon code"})
			default:
				logger.Printf("checkout for %s: %v", u.ID, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			}
			return
		}

		if !result.Valid {
			c.JSON(http.StatusOK, result)
			return
		}
		c.JSON(http.StatusCreated, result)
	}
}

type orderView struct {
	ID         string       `json:"id"`
	OrderDate  time.Time    `json:"orderDate"`
	Status     string       `json:"status"`
	TotalPrice domain.Money `json:"totalPrice"`
	CouponCode *string      `json:"couponCode"`
	Products   []string     `json:"products"`
}

func listOrdersHandler(checkouts checkoutService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, _ := currentUser(c)
		orders, err := checkouts.Orders(c.Request.Context(), u.ID)
		if err != nil {
			logger.Printf("list orders for %s: %v", u.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		views := make([]orderView, 0, len(orders))
		for _, o := range orders {
			products := make([]string, 0, len(o.Items))
			for _, item := range o.Items {
				products = append(products, item.ProductName)
			}
			views = append(views, orderView{
				ID:         o.ID,
				OrderDate:  o.CreatedAt,
				Status:     o.Status,
				TotalPrice: o.Total,
				CouponCode: o.CouponCode,
				Products:   products,
			})
		}
		c.JSON(http.StatusOK, views)
	}
}
