package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveGeneration(t *testing.T) {
	m := New()

	m.ObserveGeneration(2*time.Millisecond, 5, 3, nil)
	m.ObserveGeneration(time.Millisecond, 0, 0, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.generations.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.generations.WithLabelValues("error")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.operations))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.schemas))
}

func TestObserveCacheLookup(t *testing.T) {
	m := New()

	m.ObserveCacheLookup(true)
	m.ObserveCacheLookup(false)
	m.ObserveCacheLookup(false)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.lookups.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.lookups.WithLabelValues("miss")))
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveGeneration(time.Millisecond, 1, 1, nil)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "apidoc_generator_passes_total")
	assert.Contains(t, w.Body.String(), "apidoc_generator_pass_duration_seconds")
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
