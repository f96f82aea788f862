package pkgmetric

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCounts(t *testing.T) {
	rec := NewRecorder()

	rec.RecordExport("csv", OutcomeOK, 128, 3*time.Millisecond)
	rec.RecordExport("csv", OutcomeOK, 256, time.Millisecond)
	rec.RecordExport("pdf", OutcomeRejected, 0, 0)
	rec.RecordUpload(OutcomeOK)
	rec.RecordUpload(OutcomeRejected)
	rec.RecordChatMessage("user")
	rec.SetPipelineStep(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.exportsTotal.WithLabelValues("csv", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.exportsTotal.WithLabelValues("pdf", OutcomeRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.uploadsTotal.WithLabelValues(OutcomeRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.chatMessages.WithLabelValues("user")))
	assert.Equal(t, 3.0, testutil.ToFloat64(rec.pipelineStep))
}

func TestNilRecorderIsNoop(t *testing.T) {
	var rec *Recorder
	assert.NotPanics(t, func() {
		rec.RecordExport("json", OutcomeOK, 1, time.Millisecond)
		rec.RecordUpload(OutcomeOK)
		rec.RecordChatMessage("bot")
		rec.SetPipelineStep(1)
	})
}

func TestHandlerExposesMetrics(t *testing.T) {
	rec := NewRecorder()
	rec.RecordUpload(OutcomeOK)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	rec.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `godna_uploads_total{outcome="ok"} 1`))
}

func TestObserveChatQueue(t *testing.T) {
	rec := NewRecorder()
	depth := 3
	rec.ObserveChatQueue(func() int { return depth })

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	rec.Handler().ServeHTTP(w, req)
	assert.Contains(t, w.Body.String(), "godna_chat_queue_depth 3")

	var nilRec *Recorder
	assert.NotPanics(t, func() { nilRec.ObserveChatQueue(func() int { return 0 }) })
}
