// Package payment implements the Payment aggregate settled by provider webhooks.
// Applying the same outcome twice is a no-op, which makes webhook handling idempotent.
package payment
