package services

import (
	"os"
	"testing"

	"dealflow/utils"

	"github.com/golang-jwt/jwt/v5"
)

func initTestJWT(t *testing.T) {
	t.Helper()
	os.Setenv("GO_ENV", "test")
	os.Setenv("JWT_SECRET_KEY", "test_secret_key")
	os.Setenv("JWT_EXPIRATION_TIME", "3600")
	os.Setenv("REFRESH_TOKEN_EXPIRATION_TIME", "604800")
	utils.InitJWT()
}

func parseClaims(t *testing.T, tokenString string) jwt.MapClaims {
	t.Helper()
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(utils.JWTSecretKey), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("failed to parse token: %v", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("claims are not MapClaims")
	}
	return claims
}

func TestGenerateToken(t *testing.T) {
	initTestJWT(t)

	tokenString, err := GenerateToken("user-123")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims := parseClaims(t, tokenString)
	if claims["user_id"] != "user-123" {
		t.Errorf("user_id claim = %v, want user-123", claims["user_id"])
	}
	if claims["type"] != "access" {
		t.Errorf("type claim = %v, want access", claims["type"])
	}
	if claims["iss"] != utils.JWTIssuer {
		t.Errorf("iss claim = %v, want %v", claims["iss"], utils.JWTIssuer)
	}
	if _, ok := claims["exp"].(float64); !ok {
		t.Error("exp claim missing")
	}
}

func TestGenerateRefreshToken(t *testing.T) {
	initTestJWT(t)

	tokenString, err := GenerateRefreshToken("user-123")
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error = %v", err)
	}

	claims := parseClaims(t, tokenString)
	if claims["type"] != "refresh" {
		t.Errorf("type claim = %v, want refresh", claims["type"])
	}

	exp, _ := claims["exp"].(float64)
	iat, _ := claims["iat"].(float64)
	if exp-iat != 604800 {
		t.Errorf("refresh token lifetime = %v seconds, want 604800", exp-iat)
	}
}
