package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"dealflow/config"
	"dealflow/model"
	"dealflow/services"
	"dealflow/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SessionRepo persists login sessions. Reads go through the redis cache
// when it is configured; mongo stays the source of truth.
type SessionRepo struct {
	MongoCollection *mongo.Collection
}

func GetSessionRepo(client *mongo.Client) *SessionRepo {
	dbName := os.Getenv("MONGO_DB")
	return &SessionRepo{
		MongoCollection: client.Database(dbName).Collection(config.CollectionName("SESSIONS_COLLECTION")),
	}
}

func sessionCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// bumpSessionVersion invalidates cached per-user session lists.
func bumpSessionVersion(userID string) {
	if services.GlobalSessionCache == nil {
		return
	}
	if err := services.GlobalSessionCache.IncrementSessionVersion(userID); err != nil {
		utils.TrackError("cache", "session_version_increment_failed")
		log.Printf("failed to bump session version for user %s: %v", userID, err)
	}
}

func (r *SessionRepo) CreateSession(session *model.Session) error {
	timer := utils.TrackDBOperation("insert", "sessions")
	defer timer.ObserveDuration()

	if session == nil || session.SessionID == "" || session.UserID == "" {
		utils.TrackError("database", "invalid_session_data")
		return errors.New("invalid session data: missing required fields")
	}

	ctx, cancel := sessionCtx()
	defer cancel()

	if _, err := r.MongoCollection.InsertOne(ctx, session); err != nil {
		utils.TrackError("database", "session_creation_failed")
		return fmt.Errorf("failed to create session: %w", err)
	}

	if services.GlobalSessionCache != nil {
		if err := services.GlobalSessionCache.SetSession(session); err != nil {
			utils.TrackError("cache", "session_cache_set_failed")
			log.Printf("failed to cache session %s: %v", session.SessionID, err)
		}
		bumpSessionVersion(session.UserID)
	}
	return nil
}

// GetSession returns nil, nil when the session does not exist.
func (r *SessionRepo) GetSession(sessionID string) (*model.Session, error) {
	timer := utils.TrackDBOperation("find", "sessions")
	defer timer.ObserveDuration()

	if sessionID == "" {
		return nil, errors.New("sessionID cannot be empty")
	}

	if services.GlobalSessionCache != nil {
		if session, err := services.GlobalSessionCache.GetSession(sessionID); err == nil && session != nil {
			utils.TrackCacheOperation("session", true)
			return session, nil
		}
		utils.TrackCacheOperation("session", false)
	}

	ctx, cancel := sessionCtx()
	defer cancel()

	var session model.Session
	err := r.MongoCollection.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		utils.TrackError("database", "session_fetch_failed")
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}

	if services.GlobalSessionCache != nil {
		if err := services.GlobalSessionCache.SetSession(&session); err != nil {
			log.Printf("failed to cache session %s: %v", sessionID, err)
		}
	}
	return &session, nil
}

func (r *SessionRepo) UpdateSession(session *model.Session) error {
	if session == nil {
		return errors.New("session cannot be nil")
	}

	ctx, cancel := sessionCtx()
	defer cancel()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"session_id": session.SessionID},
		bson.M{"$set": bson.M{
			"last_activity_at": time.Now(),
			"is_active":        session.IsActive,
			"expires_at":       session.ExpiresAt,
			"device_info":      session.DeviceInfo,
			"ip_address":       session.IPAddress,
		}})
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	if result.MatchedCount == 0 {
		return errors.New("session not found")
	}

	if services.GlobalSessionCache != nil {
		if err := services.GlobalSessionCache.SetSession(session); err != nil {
			log.Printf("failed to refresh cached session %s: %v", session.SessionID, err)
		}
		bumpSessionVersion(session.UserID)
	}
	return nil
}

func (r *SessionRepo) DeleteSession(sessionID string) error {
	timer := utils.TrackDBOperation("delete", "sessions")
	defer timer.ObserveDuration()

	session, err := r.GetSession(sessionID)
	if err != nil {
		return fmt.Errorf("failed to fetch session for deletion: %w", err)
	}
	if session == nil {
		return errors.New("session not found")
	}
	if session.Protected {
		utils.TrackError("database", "protected_session_deletion_attempt")
		return errors.New("cannot delete protected session")
	}

	ctx, cancel := sessionCtx()
	defer cancel()

	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"session_id": sessionID})
	if err != nil {
		utils.TrackError("database", "session_deletion_failed")
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if result.DeletedCount == 0 {
		return errors.New("session not found")
	}

	if services.GlobalSessionCache != nil {
		if err := services.GlobalSessionCache.DeleteSession(sessionID); err != nil {
			log.Printf("failed to evict session %s from cache: %v", sessionID, err)
		}
		bumpSessionVersion(session.UserID)
	}
	return nil
}

// DeleteUserSessions removes every session of a user; used by the
// account-deletion cascade.
func (r *SessionRepo) DeleteUserSessions(userID string) error {
	if userID == "" {
		return errors.New("userID cannot be empty")
	}

	ctx, cancel := sessionCtx()
	defer cancel()

	result, err := r.MongoCollection.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return fmt.Errorf("failed to delete user sessions: %w", err)
	}
	bumpSessionVersion(userID)

	log.Printf("deleted %d sessions for user %s", result.DeletedCount, userID)
	return nil
}

func (r *SessionRepo) GetUserActiveSessions(userID string) ([]*model.Session, error) {
	timer := utils.TrackDBOperation("find", "sessions")
	defer timer.ObserveDuration()

	if userID == "" {
		return nil, errors.New("userID cannot be empty")
	}

	if services.GlobalSessionCache != nil {
		sessions, isStale, err := services.GlobalSessionCache.GetUserSessions(userID)
		if err == nil && sessions != nil && !isStale {
			utils.TrackCacheOperation("user_sessions", true)
			return sessions, nil
		}
		utils.TrackCacheOperation("user_sessions", false)

		if isStale {
			// Stale data is still usable when the refresh fails.
			fresh, err := r.fetchAndCacheActiveSessions(userID)
			if err != nil {
				return sessions, nil
			}
			return fresh, nil
		}
	}

	return r.fetchAndCacheActiveSessions(userID)
}

func (r *SessionRepo) fetchAndCacheActiveSessions(userID string) ([]*model.Session, error) {
	ctx, cancel := sessionCtx()
	defer cancel()

	opts := options.Find().SetSort(bson.M{"last_activity_at": -1})
	cursor, err := r.MongoCollection.Find(ctx, bson.M{
		"user_id":    userID,
		"is_active":  true,
		"expires_at": bson.M{"$gt": time.Now()},
	}, opts)
	if err != nil {
		utils.TrackError("database", "session_fetch_failed")
		return nil, fmt.Errorf("failed to fetch active sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var sessions []*model.Session
	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("failed to decode sessions: %w", err)
	}

	if services.GlobalSessionCache != nil {
		if err := services.GlobalSessionCache.CacheUserSessions(userID, sessions); err != nil {
			log.Printf("failed to cache sessions for user %s: %v", userID, err)
		}
	}
	return sessions, nil
}

// EndAllUserSessions deactivates every active session without deleting
// the records.
func (r *SessionRepo) EndAllUserSessions(userID string) error {
	if userID == "" {
		return errors.New("userID cannot be empty")
	}

	ctx, cancel := sessionCtx()
	defer cancel()

	result, err := r.MongoCollection.UpdateMany(ctx,
		bson.M{"user_id": userID, "is_active": true},
		bson.M{"$set": bson.M{"is_active": false, "last_activity_at": time.Now()}})
	if err != nil {
		return fmt.Errorf("failed to end user sessions: %w", err)
	}
	bumpSessionVersion(userID)

	log.Printf("ended %d active sessions for user %s", result.ModifiedCount, userID)
	return nil
}

// EndLeastActiveSession evicts the stalest session when the per-user
// session cap is hit.
func (r *SessionRepo) EndLeastActiveSession(userID string) error {
	sessions, err := r.GetUserActiveSessions(userID)
	if err != nil {
		return fmt.Errorf("failed to fetch active sessions: %w", err)
	}
	if len(sessions) == 0 {
		return errors.New("no active sessions found")
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].LastActivityAt.Before(sessions[j].LastActivityAt)
	})
	leastActive := sessions[0]

	ctx, cancel := sessionCtx()
	defer cancel()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"session_id": leastActive.SessionID},
		bson.M{"$set": bson.M{"is_active": false, "last_activity_at": time.Now()}})
	if err != nil {
		return fmt.Errorf("failed to end least active session: %w", err)
	}
	if result.ModifiedCount == 0 {
		return errors.New("failed to end session: session not found")
	}

	if services.GlobalSessionCache != nil {
		if err := services.GlobalSessionCache.DeleteSession(leastActive.SessionID); err != nil {
			log.Printf("failed to evict session %s from cache: %v", leastActive.SessionID, err)
		}
		bumpSessionVersion(userID)
	}
	return nil
}

func (r *SessionRepo) CountActiveSessions(userID string) (int, error) {
	if userID == "" {
		return 0, errors.New("userID cannot be empty")
	}

	if services.GlobalSessionCache != nil {
		sessions, isStale, err := services.GlobalSessionCache.GetUserSessions(userID)
		if err == nil && !isStale && sessions != nil {
			count := 0
			now := time.Now()
			for _, session := range sessions {
				if session.IsActive && session.ExpiresAt.After(now) {
					count++
				}
			}
			return count, nil
		}
	}

	ctx, cancel := sessionCtx()
	defer cancel()

	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{
		"user_id":    userID,
		"is_active":  true,
		"expires_at": bson.M{"$gt": time.Now()},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count active sessions: %w", err)
	}
	return int(count), nil
}
