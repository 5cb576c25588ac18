package httpserver

import (
	"errors"
	"log"
	"net/http"

	"storefront/internal/domain"
	"github.com/gin-gonic/gin"
)

type createCouponRequest struct {
	Code          string `json:"code"`
	PercentageOff int    `json:"percentageOff"`
}

func createCouponHandler(admins adminService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in createCouponRequest
		if err := c.ShouldBindJSON(&in); err != nil || in.Code == "" || in.PercentageOff == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Code and percentageOff are required"})
			return
		}

		coupon, err := admins.CreateCoupon(c.Request.Context(), in.Code, in.PercentageOff)
		if err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				c.JSON(http.StatusConflict, gin.H{"error": "coupon code already exists"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, coupon)
	}
}

func analyticsHandler(admins adminService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, err := admins.Analytics(c.Request.Context())
		if err != nil {
			logger.Printf("analytics: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.JSON(http.StatusOK, report)
	}
}
