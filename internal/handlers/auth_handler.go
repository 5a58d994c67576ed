package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/railbook/railbook/internal/middleware"
	"github.com/railbook/railbook/internal/models"
	"github.com/railbook/railbook/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func Register(as *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		user, token, err := as.Register(c.Request.Context(), &req)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(gin.H{
			"user":  user,
			"token": token,
		}, "Account created successfully"))
	}
}

func Login(as *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		user, token, err := as.Login(c.Request.Context(), &req)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"user":  user,
			"token": token,
		}, ""))
	}
}

func Me(as *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid user ID in token"))
			return
		}

		user, err := as.Me(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(user, ""))
	}
}
