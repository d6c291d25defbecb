package config

import "time"

// Worker intervals
const (
	// RedisBackupInterval defines how often dirty plans are flushed to Redis
	RedisBackupInterval = 10 * time.Second

	// PostgresBackupInterval defines how often plans are persisted to PostgreSQL
	PostgresBackupInterval = 60 * time.Second
)
