package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"dealflow/model"
	"dealflow/utils"

	"github.com/redis/go-redis/v9"
)

const (
	userSessionsTTL       = 5 * time.Minute
	userSessionsStaleness = 30 * time.Second
)

// SessionCache keeps sessions and per-user session lists in redis so the
// auth middleware does not hit mongo on every request.
type SessionCache struct {
	client    *redis.Client
	cacheLock sync.RWMutex
}

type SessionCacheEntry struct {
	Sessions  []*model.Session `json:"sessions"`
	Version   int64            `json:"version"`
	UpdatedAt time.Time        `json:"updated_at"`
}

var GlobalSessionCache *SessionCache

func NewSessionCache(redisURL string) (*SessionCache, error) {
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

	return &SessionCache{client: client}, nil
}

func sessionKey(sessionID string) string     { return "session:" + sessionID }
func userSessionsKey(userID string) string   { return "user_sessions:" + userID }
func sessionVersionKey(userID string) string { return "user_sessions_version:" + userID }

// SetSession caches one session with a TTL matching its expiry.
func (sc *SessionCache) SetSession(session *model.Session) error {
	if session == nil {
		return errors.New("cannot cache nil session")
	}
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session has already expired")
	}

	sc.cacheLock.Lock()
	defer sc.cacheLock.Unlock()

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := sc.client.Set(context.Background(), sessionKey(session.SessionID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache session: %w", err)
	}
	return nil
}

// GetSession returns nil, nil on a cache miss.
func (sc *SessionCache) GetSession(sessionID string) (*model.Session, error) {
	if sessionID == "" {
		return nil, errors.New("sessionID cannot be empty")
	}

	sc.cacheLock.RLock()
	data, err := sc.client.Get(context.Background(), sessionKey(sessionID)).Bytes()
	sc.cacheLock.RUnlock()

	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session from cache: %w", err)
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	if time.Now().After(session.ExpiresAt) {
		sc.DeleteSession(sessionID)
		return nil, nil
	}
	return &session, nil
}

// CacheUserSessions stores a user's active-session list.
func (sc *SessionCache) CacheUserSessions(userID string, sessions []*model.Session) error {
	if userID == "" {
		return errors.New("userID cannot be empty")
	}

	sc.cacheLock.Lock()
	defer sc.cacheLock.Unlock()

	entry := SessionCacheEntry{
		Sessions:  sessions,
		Version:   time.Now().UnixNano(),
		UpdatedAt: time.Now(),
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal sessions: %w", err)
	}
	if err := sc.client.Set(context.Background(), userSessionsKey(userID), data, userSessionsTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache user sessions: %w", err)
	}
	return nil
}

// GetUserSessions returns the cached list plus whether it is stale. A miss
// is nil, false, nil.
func (sc *SessionCache) GetUserSessions(userID string) ([]*model.Session, bool, error) {
	if userID == "" {
		return nil, false, errors.New("userID cannot be empty")
	}

	sc.cacheLock.RLock()
	data, err := sc.client.Get(context.Background(), userSessionsKey(userID)).Bytes()
	sc.cacheLock.RUnlock()

	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read user sessions from cache: %w", err)
	}

	var entry SessionCacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal sessions: %w", err)
	}
	return entry.Sessions, time.Since(entry.UpdatedAt) > userSessionsStaleness, nil
}

func (sc *SessionCache) DeleteSession(sessionID string) error {
	if sessionID == "" {
		return errors.New("sessionID cannot be empty")
	}

	sc.cacheLock.Lock()
	defer sc.cacheLock.Unlock()

	if err := sc.client.Del(context.Background(), sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session from cache: %w", err)
	}
	return nil
}

// IncrementSessionVersion marks a user's cached session list as outdated.
func (sc *SessionCache) IncrementSessionVersion(userID string) error {
	if userID == "" {
		return errors.New("userID cannot be empty")
	}
	if err := sc.client.Incr(context.Background(), sessionVersionKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to increment session version: %w", err)
	}
	return nil
}

// CleanupExpiredSessions scans session keys and drops the expired ones.
// Redis TTLs cover the common case; this catches entries written with a
// longer TTL than the session's remaining lifetime.
func (sc *SessionCache) CleanupExpiredSessions() error {
	sc.cacheLock.Lock()
	defer sc.cacheLock.Unlock()

	ctx := context.Background()
	var cursor uint64
	for {
		keys, next, err := sc.client.Scan(ctx, cursor, "session:*", 100).Result()
		if err != nil {
			return fmt.Errorf("failed to scan session keys: %w", err)
		}

		for _, key := range keys {
			data, err := sc.client.Get(ctx, key).Bytes()
			if err != nil {
				continue
			}
			var session model.Session
			if err := json.Unmarshal(data, &session); err != nil {
				continue
			}
			if time.Now().After(session.ExpiresAt) {
				sc.client.Del(ctx, key)
			}
		}

		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// StartCleanupTask runs CleanupExpiredSessions on an interval in the
// background.
func (sc *SessionCache) StartCleanupTask() {
	go func() {
		ticker := time.NewTicker(utils.GetEnvAsDuration("SESSION_CLEANUP_INTERVAL", 15*time.Minute))
		for range ticker.C {
			if err := sc.CleanupExpiredSessions(); err != nil {
				log.Printf("session cache cleanup: %v", err)
			}
		}
	}()
}

func (sc *SessionCache) IsConnected() bool {
	if sc == nil || sc.client == nil {
		return false
	}
	return sc.client.Ping(context.Background()).Err() == nil
}

func (sc *SessionCache) Close() error {
	return sc.client.Close()
}
