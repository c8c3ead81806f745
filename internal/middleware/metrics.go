package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis command failures by command name. It is fed by a
// go-redis hook installed in the cache package.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "chirp_redis_errors_total",
	Help: "Total number of Redis errors by command",
}, []string{"command"})

// InteractionsTotal counts interaction service outcomes by action and result.
var InteractionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "chirp_interactions_total",
	Help: "Total interaction actions by action and outcome code",
}, []string{"action", "code"})

// InitMetrics creates the Prometheus middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the HTTP middleware that records request metrics.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
