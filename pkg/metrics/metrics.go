package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "resumeoptimizer"

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	AIRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "ai_requests_total", Help: "AI requests by endpoint and outcome (generated, fallback, job_description, error)."},
		[]string{"endpoint", "outcome"},
	)
	GeneratorCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "ai_generator_calls_total", Help: "Calls to a text generator by provider and result."},
		[]string{"provider", "result"},
	)
	ResponseParses = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "ai_response_parse_total", Help: "AI response parse outcomes."},
		[]string{"outcome"},
	)
	EditsApplied = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "edits_applied_total", Help: "Edit proposals applied to documents by action and result."},
		[]string{"action", "result"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(AIRequests)
	reg.MustRegister(GeneratorCalls)
	reg.MustRegister(ResponseParses)
	reg.MustRegister(EditsApplied)
}
