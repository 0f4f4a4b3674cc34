package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvMaxTimeSlotHours           = "MAX_TIME_SLOT_HOURS"
	EnvCheckSubmittedForConflicts = "CHECK_SUBMITTED_FOR_CONFLICTS"
	EnvSlotLockTTL                = "SLOT_LOCK_TTL"

	EnvTransitionsTopic    = "KAFKA_TRANSITIONS_TOPIC"
	EnvTransitionsDLQTopic = "KAFKA_TRANSITIONS_DLQ_TOPIC"

	EnvRedisAddr = "REDIS_ADDR"
)
