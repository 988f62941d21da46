package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// outcome labels shared by the analysis operations
const (
	OutcomeOK          = "ok"
	OutcomeDiagnostics = "diagnostics"
	OutcomeUnsupported = "unsupported"
	OutcomeUnavailable = "unavailable"
	OutcomeTimeout     = "timeout"
	OutcomeFailed      = "failed"
	OutcomeEmptyInput  = "empty_input"
	OutcomeUnhelpful   = "unhelpful"
)

var (
	syntaxChecksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "codelens_syntax_checks_total",
		Help: "Syntax checks by language and outcome",
	}, []string{"language", "outcome"})

	syntaxCheckDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "codelens_syntax_check_duration_seconds",
		Help:    "Wall time of external checker invocations",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"language"})

	suggestionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "codelens_suggestions_total",
		Help: "Suggestion requests by provider and outcome",
	}, []string{"provider", "outcome"})

	suggestionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "codelens_suggestion_duration_seconds",
		Help:    "Latency of remote completion calls",
		Buckets: prometheus.ExponentialBuckets(0.25, 2, 8),
	}, []string{"provider"})

	detectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "codelens_language_detections_total",
		Help: "Language detections by detected tag",
	}, []string{"language"})

	unauthorizedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "codelens_unauthorized_requests_total",
		Help: "Requests rejected by the shared-secret gate",
	})
)

func ObserveSyntaxCheck(language, outcome string, elapsed time.Duration) {
	syntaxChecksTotal.WithLabelValues(language, outcome).Inc()

	if outcome != OutcomeUnsupported && outcome != OutcomeUnavailable {
		syntaxCheckDuration.WithLabelValues(language).Observe(elapsed.Seconds())
	}
}

func ObserveSuggestion(provider, outcome string, elapsed time.Duration) {
	suggestionsTotal.WithLabelValues(provider, outcome).Inc()

	if elapsed > 0 {
		suggestionDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
	}
}

func ObserveDetection(language string) {
	detectionsTotal.WithLabelValues(language).Inc()
}

func ObserveUnauthorized() {
	unauthorizedTotal.Inc()
}
