// internal/metrics/metrics_test.go
package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/users/{id}", "200"))

	RecordAPIRequest("GET", "/api/users/{id}", "200", 15*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/users/{id}", "200"))
	assert.Equal(t, before+1, after)
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	assert.Equal(t, before+1, testutil.ToFloat64(APIActiveRequests))

	TrackActiveRequest(false)
	assert.Equal(t, before, testutil.ToFloat64(APIActiveRequests))
}

func TestRecordMovieRequest(t *testing.T) {
	ok := testutil.ToFloat64(MovieRequests.WithLabelValues("by_title", "success"))
	failed := testutil.ToFloat64(MovieRequests.WithLabelValues("by_title", "error"))

	RecordMovieRequest("by_title", nil)
	RecordMovieRequest("by_title", errors.New("timeout"))

	assert.Equal(t, ok+1, testutil.ToFloat64(MovieRequests.WithLabelValues("by_title", "success")))
	assert.Equal(t, failed+1, testutil.ToFloat64(MovieRequests.WithLabelValues("by_title", "error")))
}
