package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis command errors by operation type.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "inkwell_redis_errors_total",
	Help: "Total number of Redis errors by operation type",
}, []string{"operation"})

// WebhookEvents counts processed identity-provider webhook events by type
// and outcome.
var WebhookEvents = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "inkwell_webhook_events_total",
	Help: "Total number of identity webhook events by type and outcome",
}, []string{"type", "outcome"})

var (
	promOnce sync.Once
	promInst *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus middleware for the given service name.
// The underlying collectors register against the default registry, so the
// instance is created once and shared.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promInst = fiberprometheus.New(serviceName)
	})
	return promInst
}

// MetricsMiddleware wraps the Prometheus middleware as a fiber.Handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
