package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatroom_http_requests_total",
			Help: "Total number of HTTP requests processed by the chatroom service.",
		},
		[]string{"method", "route", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chatroom_http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
	registrationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatroom_registrations_total",
			Help: "Registration attempts by outcome.",
		},
		[]string{"outcome"},
	)
	loginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatroom_logins_total",
			Help: "Login attempts by outcome.",
		},
		[]string{"outcome"},
	)
	chatroomsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chatroom_chatrooms_created_total",
			Help: "Total number of chatrooms created.",
		},
	)
	membershipChangesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatroom_membership_changes_total",
			Help: "Admin membership mutations by action.",
		},
		[]string{"action"},
	)
	messagesPostedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chatroom_messages_posted_total",
			Help: "Total number of messages appended to any chatroom.",
		},
	)
	amqpPublishErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chatroom_amqp_publish_errors_total",
			Help: "Total number of AMQP publish errors.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		registrationsTotal,
		loginsTotal,
		chatroomsCreatedTotal,
		membershipChangesTotal,
		messagesPostedTotal,
		amqpPublishErrorsTotal,
	)
}

// HTTPMetricsMiddleware records request counts and latency per matched route.
func HTTPMetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()

		httpRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// MetricsHandler serves the default registry.
func MetricsHandler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

func RecordRegistration(outcome string) {
	registrationsTotal.WithLabelValues(outcome).Inc()
}

func RecordLogin(outcome string) {
	loginsTotal.WithLabelValues(outcome).Inc()
}

func IncChatroomsCreated() {
	chatroomsCreatedTotal.Inc()
}

func RecordMembershipChange(action string) {
	membershipChangesTotal.WithLabelValues(action).Inc()
}

func IncMessagesPosted() {
	messagesPostedTotal.Inc()
}

func IncAMQPPublishError() {
	amqpPublishErrorsTotal.Inc()
}
