package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()

	m.RegistrationCreated()
	m.RegistrationCreated()
	m.RegistrationDeleted()
	m.ValidationFailed("age_out_of_range")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RegistrationsCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RegistrationsDeleted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ValidationFailures.WithLabelValues("age_out_of_range")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.ValidationFailures.WithLabelValues("invalid_email")))
}

func TestObserveRequest(t *testing.T) {
	m := New()

	m.ObserveRequest(http.MethodGet, "/api/statistics", "200", 0.01)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues(http.MethodGet, "/api/statistics", "200")))
}

func TestNewIsIndependent(t *testing.T) {
	a, b := New(), New()
	a.RegistrationCreated()

	assert.Equal(t, 0.0, testutil.ToFloat64(b.RegistrationsCreated))
}

func TestHandler(t *testing.T) {
	m := New()
	m.RegistrationCreated()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "registration_api_registrations_created_total 1")
}
