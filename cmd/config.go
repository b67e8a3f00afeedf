package cmd

import "time"

// Config is read once at startup and passed to the composition root.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// RedisAddr selects the Redis GEO courier index; empty falls back to PostgreSQL.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// KafkaBrokers empty disables the outbox publisher.
	KafkaBrokers     []string
	KafkaEventsTopic string

	RestaurantServiceURL string
	// NotificationServiceURL empty disables notifications.
	NotificationServiceURL string
	CollaboratorTimeout    time.Duration

	PaymentWebhookSecret    string
	PaymentWebhookTolerance time.Duration

	AssignmentRetryEnabled  bool
	AssignmentRetrySchedule string
	AssignmentRetryLimit    int
	OutboxSchedule          string
	OutboxBatchSize         int

	JaegerEndpoint string
	LogLevel       string
}
