package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/voicemode/internal/domain"
)

func TestCollectorCountsEvents(t *testing.T) {
	c := NewCollector("test")

	c.StateChanged(domain.StateIdle, domain.StateListening)
	c.SignalShown(domain.TrustSignal{Trigger: domain.TriggerSessionStart})
	c.MessageCommitted(domain.Message{Role: domain.RoleUser, Text: "hi"})
	c.StateChanged(domain.StateListening, domain.StateProcessing)
	c.MessageCommitted(domain.Message{Role: domain.RoleAssistant, Text: "hello"})
	c.StateChanged(domain.StateProcessing, domain.StateListening)
	c.FeedbackSubmitted(domain.Feedback{Rating: domain.RatingNegative})

	assert.Equal(t, 1.0, testutil.ToFloat64(c.transitions.WithLabelValues("idle", "listening")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.transitions.WithLabelValues("processing", "listening")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.signals.WithLabelValues("session-start")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.messages.WithLabelValues("user")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.messages.WithLabelValues("assistant")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.feedback.WithLabelValues("negative")))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.state.WithLabelValues("listening")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.state.WithLabelValues("processing")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.state.WithLabelValues("idle")))
}

func TestCollectorSessionDuration(t *testing.T) {
	c := NewCollector("test")
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.StateChanged(domain.StateIdle, domain.StateListening)
	now = now.Add(42 * time.Second)
	c.StateChanged(domain.StateListening, domain.StatePaused)
	c.StateChanged(domain.StatePaused, domain.StateIdle)

	assert.Equal(t, 1, testutil.CollectAndCount(c.sessionDuration))
	out := scrape(t, c)
	assert.Contains(t, out, "test_session_duration_seconds_sum 42")
	assert.Contains(t, out, "test_session_duration_seconds_count 1")
}

func TestCollectorHandler(t *testing.T) {
	c := NewCollector("voicemode")
	c.SignalShown(domain.TrustSignal{Trigger: domain.TriggerSessionSaved})

	out := scrape(t, c)
	assert.Contains(t, out, `voicemode_trust_signals_total{trigger="session-saved"} 1`)
	assert.Contains(t, out, `voicemode_session_state{state="idle"} 1`)
}

func scrape(t *testing.T, c *Collector) string {
	t.Helper()
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return strings.TrimSpace(string(body))
}
