// Package metrics registers the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders created by the saga",
	})

	OrderTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_transitions_total",
		Help: "Order status transitions applied, by target status",
	}, []string{"status"})

	DeliveryTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "delivery_status_transitions_total",
		Help: "Delivery status transitions applied, by target status",
	}, []string{"status"})

	Assignments = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "delivery_assignments_total",
		Help: "Courier assignment attempts, by result",
	}, []string{"result"})

	PaymentWebhooks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_webhooks_total",
		Help: "Payment provider webhook events, by outcome",
	}, []string{"outcome"})

	NotificationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notification_failures_total",
		Help: "Best-effort notifications that could not be delivered, by type",
	}, []string{"type"})

	OutboxPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "outbox_messages_published_total",
		Help: "Outbox messages published to the event log",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latencies in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// EchoMiddleware observes request latency per route template.
func EchoMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}
			HTTPRequestDuration.
				WithLabelValues(c.Request().Method, c.Path(), strconv.Itoa(status)).
				Observe(time.Since(start).Seconds())
			return err
		}
	}
}
