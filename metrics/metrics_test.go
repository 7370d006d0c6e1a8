package metrics

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordSubmission(t *testing.T) {
	assert := assert.New(t)
	before := testutil.ToFloat64(submissionsTotal.WithLabelValues("succeeded"))
	RecordSubmission("succeeded")
	RecordSubmission("succeeded")
	assert.Equal(before+2, testutil.ToFloat64(submissionsTotal.WithLabelValues("succeeded")))
}

func TestRecordUpload(t *testing.T) {
	assert := assert.New(t)
	RecordUpload(time.Millisecond, nil)
	RecordUpload(time.Millisecond, errors.New("Upload failed"))
	assert.Equal(2, testutil.CollectAndCount(uploadDuration))
}

func TestHandler(t *testing.T) {
	assert := assert.New(t)
	SetViewsMounted(3)
	RecordHTTPRequest("GET", "/", 200, time.Millisecond)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(200, rec.Code)
	assert.Contains(rec.Body.String(), "cheers_views_mounted 3")
	assert.Contains(rec.Body.String(), `cheers_http_requests_total{method="GET",route="/",status_code="200"}`)
}
