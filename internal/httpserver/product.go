package httpserver

import (
	"errors"
	"log"
	"net/http"

	"storefront/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func listProductsHandler(catalog catalogService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := catalog.List(c.Request.Context())
		if err != nil {
			logger.Printf("list products: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch products"})
			return
		}
		if products == nil {
			products = []domain.Product{}
		}
		c.JSON(http.StatusOK, products)
	}
}

func getProductHandler(catalog catalogService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if _, err := uuid.Parse(id); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		p, err := catalog.Get(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			logger.Printf("get product %s: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}
