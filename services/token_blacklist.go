package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dealflow/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

// RedisTokenBlacklist stores revoked tokens until their natural expiry,
// so a logged-out token cannot be replayed.
type RedisTokenBlacklist struct {
	Client *redis.Client
}

var TokenBlacklist *RedisTokenBlacklist

func NewTokenBlacklist(redisURL string) (*RedisTokenBlacklist, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisTokenBlacklist{Client: client}, nil
}

// BlacklistTokens revokes an access/refresh token pair on logout.
func BlacklistTokens(accessToken, refreshToken string) error {
	if TokenBlacklist == nil {
		return errors.New("token blacklist not initialized")
	}
	if err := TokenBlacklist.blacklistSingleToken(accessToken, "access"); err != nil {
		return fmt.Errorf("failed to blacklist access token: %w", err)
	}
	if err := TokenBlacklist.blacklistSingleToken(refreshToken, "refresh"); err != nil {
		return fmt.Errorf("failed to blacklist refresh token: %w", err)
	}
	return nil
}

// BlacklistRefreshToken revokes a single refresh token, used when rotating
// tokens on refresh.
func BlacklistRefreshToken(refreshToken string) error {
	if TokenBlacklist == nil {
		return errors.New("token blacklist not initialized")
	}
	return TokenBlacklist.blacklistSingleToken(refreshToken, "refresh")
}

// blacklistSingleToken stores the token with a TTL matching its exp claim.
// Already-expired tokens are still accepted so logout never fails on them.
func (tb *RedisTokenBlacklist) blacklistSingleToken(tokenString string, tokenType string) error {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(utils.JWTSecretKey), nil
	})
	if err != nil && !errors.Is(err, jwt.ErrTokenExpired) {
		return fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return errors.New("failed to get claims from token")
	}

	expiration := time.Now().Add(24 * time.Hour)
	if exp, ok := claims["exp"].(float64); ok {
		expiration = time.Unix(int64(exp), 0)
	}

	key := fmt.Sprintf("blacklist:%s:%s", tokenType, tokenString)
	if err := tb.Client.Set(context.Background(), key, "true", time.Until(expiration)).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token in redis: %w", err)
	}
	return nil
}

// IsTokenBlacklisted reports whether a token was revoked. It fails open
// when the blacklist is unreachable; token expiry still bounds the damage.
func IsTokenBlacklisted(tokenString string) bool {
	if TokenBlacklist == nil {
		return false
	}
	return TokenBlacklist.isTokenBlacklisted(tokenString)
}

func (tb *RedisTokenBlacklist) isTokenBlacklisted(tokenString string) bool {
	ctx := context.Background()

	pipe := tb.Client.Pipeline()
	accessCmd := pipe.Exists(ctx, "blacklist:access:"+tokenString)
	refreshCmd := pipe.Exists(ctx, "blacklist:refresh:"+tokenString)
	if _, err := pipe.Exec(ctx); err != nil {
		return false
	}
	return accessCmd.Val() > 0 || refreshCmd.Val() > 0
}

func (tb *RedisTokenBlacklist) IsConnected() bool {
	if tb == nil || tb.Client == nil {
		return false
	}
	return tb.Client.Ping(context.Background()).Err() == nil
}

func (tb *RedisTokenBlacklist) Close() error {
	return tb.Client.Close()
}
