package model

import "time"

// SlotLock is an advisory lock document keyed by room and slot start. Insert
// succeeds for at most one writer; a TTL index on expires_at reaps locks left
// behind by crashed processes.
type SlotLock struct {
	ID        string    `bson:"_id"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt time.Time `bson:"created_at"`
}
