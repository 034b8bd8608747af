package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditRecorded(t *testing.T) {
	m := New()

	m.AuditRecorded(nil)
	m.AuditRecorded(nil)
	m.AuditRecorded(errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.AuditEntries.WithLabelValues(ResultSaved)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuditEntries.WithLabelValues(ResultFailed)))
}

func TestAuthFailed(t *testing.T) {
	m := New()

	m.AuthFailed("invalid_token")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuthFailures.WithLabelValues("invalid_token")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.AuthFailures.WithLabelValues("unknown_user")))
}

func TestHandler(t *testing.T) {
	m := New()
	m.AuditRecorded(nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, string(body), `actionlog_audit_entries_total{result="saved"} 1`)
}
