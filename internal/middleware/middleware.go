package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/railbook/railbook/internal/helpers"
	"github.com/railbook/railbook/internal/models"
)

// ContextUserKey is where the auth middleware stores the caller's claims.
const ContextUserKey = "user"

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// StructuredLogger provides structured logging middleware
func StructuredLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		if raw != "" {
			path = path + "?" + raw
		}
		requestID, _ := c.Get("request_id")

		logger.Info("HTTP Request",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", latency,
			"client_ip", c.ClientIP(),
		)
	}
}

// ErrorHandler provides centralized error handling. Unexpected errors are
// logged with their request ID and surfaced as a generic 500.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			requestID, _ := c.Get("request_id")

			logger.Error("Request error",
				"request_id", requestID,
				"error", err.Error(),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
			)

			if !c.Writer.Written() {
				c.JSON(http.StatusInternalServerError, models.ErrorResponse("Internal server error"))
			}
		}
	}
}

// AuthMiddleware validates the bearer token (Authorization header, with an
// access_token cookie fallback) and stores the claims in the context.
func AuthMiddleware(jwtSecret string, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse("Not authorized, no token"))
			return
		}

		claims, err := helpers.ValidateToken(token, jwtSecret)
		if err != nil {
			logger.Debug("Token rejected", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse("Not authorized, token failed"))
			return
		}

		c.Set(ContextUserKey, claims)
		c.Next()
	}
}

// AdminOnly must run after AuthMiddleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := CurrentUser(c)
		if !ok || !claims.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse("Not authorized as admin"))
			return
		}
		c.Next()
	}
}

// CurrentUser returns the claims stored by AuthMiddleware.
func CurrentUser(c *gin.Context) (*helpers.CustomClaims, bool) {
	v, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*helpers.CustomClaims)
	return claims, ok
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie
	}
	return ""
}
