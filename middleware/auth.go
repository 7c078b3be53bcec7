package middleware

import (
	"fmt"
	"strings"
	"time"

	"dealflow/services"
	"dealflow/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func abortUnauthorized(c *gin.Context, message string) {
	utils.TrackAuthAttempt("failure", "bearer")
	utils.Unauthorized(c, message)
	c.Abort()
}

// AuthMiddleware validates the bearer token and puts user_id on the
// context. Refresh tokens are rejected here; they are only good for the
// refresh endpoint.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c, "Missing or invalid token")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		if services.IsTokenBlacklisted(tokenString) {
			abortUnauthorized(c, "Token has been invalidated")
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(utils.JWTSecretKey), nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(c, "Invalid token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || claims["user_id"] == nil || claims["exp"] == nil {
			abortUnauthorized(c, "Invalid token claims")
			return
		}

		if tokenType, exists := claims["type"]; exists && tokenType == "refresh" {
			abortUnauthorized(c, "Invalid token type")
			return
		}

		if exp, ok := claims["exp"].(float64); ok && time.Now().Unix() > int64(exp) {
			abortUnauthorized(c, "Token has expired")
			return
		}

		if iss, ok := claims["iss"].(string); ok && iss != utils.JWTIssuer {
			abortUnauthorized(c, "Invalid token issuer")
			return
		}

		userID, ok := claims["user_id"].(string)
		if !ok {
			abortUnauthorized(c, "Invalid user ID in token")
			return
		}
		c.Set("user_id", userID)

		if iat, ok := claims["iat"].(float64); ok {
			c.Set("token_issued_at", time.Unix(int64(iat), 0))
		}

		c.Next()
	}
}
