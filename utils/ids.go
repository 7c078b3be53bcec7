package utils

import "github.com/google/uuid"

// GenerateUserID returns a random v4 UUID for new accounts. Entity ids
// elsewhere are generated the same way at the service layer.
func GenerateUserID() string {
	return uuid.New().String()
}
