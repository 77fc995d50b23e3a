package observability

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/recipe", "200", time.Millisecond)
	m.ObserveAggregateOperation("Recipe.RecipeAggregate.Get", "ok", time.Millisecond)
	m.IncAggregateConflict("op")
	m.IncAggregateRetry("op")
	m.ApiInflightInc()
	m.ApiInflightDec()
	require.NoError(t, m.WritePrometheus(&bytes.Buffer{}))

	rec := httptest.NewRecorder()
	m.WriteHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestObserveAPICountsServerErrors(t *testing.T) {
	m := New()
	m.ObserveAPI("GET", "/recipe/:id", "200", 10*time.Millisecond)
	m.ObserveAPI("GET", "/recipe/:id", "500", 10*time.Millisecond)
	m.ObserveAPI("", "", "", time.Millisecond)

	assert.Equal(t, float64(3), m.apiReqTotal.Value())
	assert.Equal(t, float64(1), m.apiReqError.Value())
	assert.Equal(t, float64(1), m.apiRequests.Value("GET", "/recipe/:id", "500"))
	assert.Equal(t, float64(1), m.apiRequests.Value("UNKNOWN", "unknown", "0"))
}

func TestAggregateObservations(t *testing.T) {
	m := New()
	m.ObserveAggregateOperation("Recipe.RecipeAggregate.Update", "conflict", 2*time.Millisecond)
	m.IncAggregateConflict("Recipe.RecipeAggregate.Update")
	m.IncAggregateRetry("Recipe.RecipeAggregate.Update")

	assert.Equal(t, uint64(1), m.aggregateLatency.Count("Recipe.RecipeAggregate.Update", "conflict"))
	assert.Equal(t, float64(1), m.aggregateConflicts.Value("Recipe.RecipeAggregate.Update"))
	assert.Equal(t, float64(1), m.aggregateRetries.Value("Recipe.RecipeAggregate.Update"))
}

func TestWriteHTTPExposesSeries(t *testing.T) {
	m := New()
	m.ObserveAPI("POST", "/recipe", "201", 30*time.Millisecond)

	rec := httptest.NewRecorder()
	m.WriteHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "# TYPE stockpot_api_requests_total counter")
	assert.Contains(t, body, `stockpot_api_requests_total{method="POST",route="/recipe",status="201"} 1`)
	assert.Contains(t, body, `stockpot_api_request_duration_seconds_bucket{method="POST",route="/recipe",status="201",le="0.05"} 1`)
	assert.Contains(t, body, `stockpot_api_request_duration_seconds_bucket{method="POST",route="/recipe",status="201",le="0.025"} 0`)
	assert.Contains(t, body, `stockpot_api_request_duration_seconds_count{method="POST",route="/recipe",status="201"} 1`)
}

func TestVecOutputIsSorted(t *testing.T) {
	c := NewCounterVec("c", "help", []string{"k"})
	c.Inc("b")
	c.Inc("a")
	c.Inc("c")

	var buf bytes.Buffer
	require.NoError(t, c.WritePrometheus(&buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, []string{`c{k="a"} 1`, `c{k="b"} 1`, `c{k="c"} 1`}, lines[2:])
}

func TestLabelEscaping(t *testing.T) {
	assert.Equal(t, `{a="x\"y",b="unknown"}`, labelString([]string{"a", "b"}, []string{`x"y`}))
	assert.Equal(t, `{le="1"}`, withLe("", "1"))
	assert.Equal(t, `{a="x",le="+Inf"}`, withLe(`{a="x"}`, "+Inf"))
}

func TestEnabled(t *testing.T) {
	t.Setenv("METRICS_ENABLED", "")
	assert.False(t, Enabled())
	t.Setenv("METRICS_ENABLED", "yes")
	assert.True(t, Enabled())
}
