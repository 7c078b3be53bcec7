package middleware

import (
	"fmt"
	"log"
	"time"

	"dealflow/model"
	"dealflow/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Sessions idle out after this much inactivity regardless of expiry.
const sessionInactivityLimit = 48 * time.Hour

// SessionRepository is what the session layer needs from persistence;
// *repository.SessionRepo satisfies it.
type SessionRepository interface {
	CreateSession(*model.Session) error
	GetSession(string) (*model.Session, error)
	UpdateSession(*model.Session) error
	DeleteSession(string) error
	CountActiveSessions(string) (int, error)
	EndLeastActiveSession(string) error
}

// SessionMiddleware resolves the session cookie, expires idle sessions and
// refreshes the activity timestamp. Requests without a cookie pass through;
// auth enforcement is AuthMiddleware's job.
func SessionMiddleware(sessionRepo SessionRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie("session_id")
		if err != nil {
			c.Next()
			return
		}

		session, err := sessionRepo.GetSession(sessionID)
		if err != nil || session == nil || !session.IsActive {
			c.SetCookie("session_id", "", -1, "/", "", true, true)
			c.Next()
			return
		}

		if time.Since(session.LastActivityAt) > sessionInactivityLimit {
			session.IsActive = false
			if err := sessionRepo.UpdateSession(session); err != nil {
				log.Printf("failed to end idle session %s: %v", session.SessionID, err)
			}
			c.SetCookie("session_id", "", -1, "/", "", true, true)
			c.Next()
			return
		}

		session.LastActivityAt = time.Now()
		if err := sessionRepo.UpdateSession(session); err != nil {
			log.Printf("failed to refresh session %s: %v", session.SessionID, err)
		}

		c.Set("session", session)
		c.Next()
	}
}

// CreateSession records a new login session and sets the cookie. The
// display name comes from the User-Agent and a best-effort IP geolocation.
func CreateSession(c *gin.Context, userID string, sessionRepo SessionRepository) error {
	userAgent := c.Request.UserAgent()
	browser, os, device := utils.ParseUserAgent(userAgent)

	location, _ := utils.GetLocationFromIP(c.ClientIP())
	displayName := utils.GenerateSessionName(userAgent, location)

	duration := time.Duration(utils.GetEnvAsInt("SESSION_DURATION", int((24 * time.Hour).Seconds()))) * time.Second

	session := &model.Session{
		SessionID:      uuid.New().String(),
		UserID:         userID,
		DisplayName:    displayName,
		DeviceInfo:     fmt.Sprintf("%s on %s (%s)", browser, os, device),
		CreatedAt:      time.Now(),
		ExpiresAt:      time.Now().Add(duration),
		LastActivityAt: time.Now(),
		IPAddress:      c.ClientIP(),
		IsActive:       true,
	}

	if err := sessionRepo.CreateSession(session); err != nil {
		return err
	}

	c.SetCookie("session_id", session.SessionID, int(duration.Seconds()), "/", "", true, true)
	return nil
}
