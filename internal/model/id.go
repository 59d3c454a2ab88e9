package model

import "github.com/google/uuid"

// NewID returns a UUIDv7 string: a millisecond timestamp with a monotonic
// sequence followed by random bits, so rapid creation does not collide.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
