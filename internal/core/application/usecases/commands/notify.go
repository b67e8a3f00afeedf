package commands

import (
	"context"
	"log/slog"

	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/metrics"
)

// notifyBestEffort hands n to the notifier and only logs a failure.
func notifyBestEffort(ctx context.Context, notifier ports.Notifier, logger *slog.Logger, n ports.Notification) {
	if notifier == nil {
		return
	}
	if err := notifier.Notify(ctx, n); err != nil {
		metrics.NotificationFailures.WithLabelValues(n.Type).Inc()
		logger.WarnContext(ctx, "notification failed",
			"type", n.Type,
			"user_id", n.UserID,
			"order_id", n.OrderID,
			"error", err,
		)
	}
}
