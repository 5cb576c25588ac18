package httpserver

import (
	"errors"
	"log"
	"net/http"

	"storefront/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type cartItemRequest struct {
	ProductID string `json:"productId"`
}

func (r cartItemRequest) valid() bool {
	_, err := uuid.Parse(r.ProductID)
	return err == nil
}

func listCartHandler(carts cartService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, _ := currentUser(c)
		items, err := carts.List(c.Request.Context(), u.ID)
		if err != nil {
			logger.Printf("list cart for %s: %v", u.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		if items == nil {
			items = []domain.CartItem{}
		}
		c.JSON(http.StatusOK, items)
	}
}

func addToCartHandler(carts cartService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, _ := currentUser(c)
		var in cartItemRequest
		if err := c.ShouldBindJSON(&in); err != nil || !in.valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "productId is required"})
			return
		}

		item, err := carts.Add(c.Request.Context(), u.ID, in.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			logger.Printf("add to cart for %s: %v", u.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "cartItem": item})
	}
}

func removeFromCartHandler(carts cartService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, _ := currentUser(c)
		var in cartItemRequest
		if err := c.ShouldBindJSON(&in); err != nil || !in.valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "productId is required"})
			return
		}

		if err := carts.Remove(c.Request.Context(), u.ID, in.ProductID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
				return
			}
			logger.Printf("remove from cart for %s: %v", u.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart successfully"})
	}
}
