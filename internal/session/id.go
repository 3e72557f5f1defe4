package session

import "github.com/google/uuid"

// newSessionID returns a time-ordered UUIDv7, falling back to a random
// UUIDv4 if the clock-based generator fails.
func newSessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
