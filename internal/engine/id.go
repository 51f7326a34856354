package engine

import "github.com/google/uuid"

// generateID creates a random id for a voice session.
func generateID() string {
	return uuid.NewString()
}
