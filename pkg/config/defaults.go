package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "roomly"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// DefaultMaxTimeSlotHours bounds a single booking's duration.
	DefaultMaxTimeSlotHours = 4

	// DefaultCheckSubmittedForConflicts keeps merely-submitted requests out
	// of the conflicting set; only confirmed bookings block a slot.
	DefaultCheckSubmittedForConflicts = false

	// DefaultSlotLockTTL caps how long a room/slot advisory lock survives if
	// its holder dies before releasing it.
	DefaultSlotLockTTL = 10 * time.Second

	DefaultTransitionsTopic    = "roomly.booking.transitions"
	DefaultTransitionsDLQTopic = ""

	DefaultPaginationLimit = 100
)
