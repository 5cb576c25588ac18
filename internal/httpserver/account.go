package httpserver

import (
	"errors"
	"log"
	"net/http"

	"storefront/internal/domain"
	accountsvc "storefront/internal/service/account"
	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

func signupHandler(accounts accountService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in accountsvc.SignupInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		u, err := accounts.Signup(c.Request.Context(), in)
		if err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"user": u})
	}
}

func loginHandler(accounts accountService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in loginRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
			return
		}

		u, access, refresh, err := accounts.Login(c.Request.Context(), in.Email, in.Password)
		if err != nil {
			if errors.Is(err, accountsvc.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
				return
			}
			logger.Printf("login: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"user": u,
			"token": tokenResponse{
				AccessToken:  access,
				RefreshToken: refresh,
				TokenType:    "Bearer",
				ExpiresIn:    accounts.AccessTTLSeconds(),
			},
		})
	}
}
