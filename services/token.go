package services

import (
	"time"

	"dealflow/utils"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateToken issues a short-lived access token for the user.
func GenerateToken(userID string) (string, error) {
	return signToken(userID, "access", utils.JWTExpirationTime)
}

// GenerateRefreshToken issues a long-lived refresh token for the user.
func GenerateRefreshToken(userID string) (string, error) {
	return signToken(userID, "refresh", utils.RefreshTokenExpirationTime)
}

func signToken(userID, tokenType string, ttlSeconds int64) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"type":    tokenType,
		"iss":     utils.JWTIssuer,
		"iat":     now.Unix(),
		"exp":     now.Add(time.Duration(ttlSeconds) * time.Second).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(utils.JWTSecretKey))
}
