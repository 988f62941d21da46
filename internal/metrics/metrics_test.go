package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveSyntaxCheck(t *testing.T) {
	counter := syntaxChecksTotal.WithLabelValues("java", OutcomeDiagnostics)
	before := testutil.ToFloat64(counter)

	ObserveSyntaxCheck("java", OutcomeDiagnostics, 300*time.Millisecond)

	assert.InDelta(t, before+1, testutil.ToFloat64(counter), 0.0001)
}

func TestObserveSyntaxCheck_SkipsDurationWithoutRun(t *testing.T) {
	before := testutil.CollectAndCount(syntaxCheckDuration)

	ObserveSyntaxCheck("fortran-metrics-test", OutcomeUnsupported, 0)

	assert.Equal(t, before, testutil.CollectAndCount(syntaxCheckDuration))
}

func TestObserveSuggestion(t *testing.T) {
	counter := suggestionsTotal.WithLabelValues("cohere", OutcomeUnhelpful)
	before := testutil.ToFloat64(counter)

	ObserveSuggestion("cohere", OutcomeUnhelpful, time.Second)
	ObserveSuggestion("cohere", OutcomeUnhelpful, time.Second)

	assert.InDelta(t, before+2, testutil.ToFloat64(counter), 0.0001)
}

func TestObserveDetectionAndUnauthorized(t *testing.T) {
	detections := detectionsTotal.WithLabelValues("plaintext")
	beforeDetections := testutil.ToFloat64(detections)
	beforeRejected := testutil.ToFloat64(unauthorizedTotal)

	ObserveDetection("plaintext")
	ObserveUnauthorized()

	assert.InDelta(t, beforeDetections+1, testutil.ToFloat64(detections), 0.0001)
	assert.InDelta(t, beforeRejected+1, testutil.ToFloat64(unauthorizedTotal), 0.0001)
}
