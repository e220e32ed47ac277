package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveToolExecution(t *testing.T) {
	m := NewMetrics()

	m.ObserveToolExecution("gst_verify", true, 120*time.Millisecond)
	m.ObserveToolExecution("gst_verify", false, 10*time.Millisecond)
	m.ObserveToolExecution("gst_verify", false, 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ToolExecutionsTotal.WithLabelValues("gst_verify", "success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ToolExecutionsTotal.WithLabelValues("gst_verify", "error")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.ToolExecutionDuration))
}

func TestObserveCatalogLoad(t *testing.T) {
	m := NewMetrics()

	m.ObserveCatalogLoad("full", 42)
	m.ObserveCatalogLoad("fallback-static", 35)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CatalogLoadsTotal.WithLabelValues("full")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CatalogLoadsTotal.WithLabelValues("fallback-static")))
	assert.Equal(t, 35.0, testutil.ToFloat64(m.CatalogTools))
}

func TestObserveSkills(t *testing.T) {
	m := NewMetrics()

	m.ObserveSkillAdmitted(300, false)
	m.ObserveSkillAdmitted(40, true)
	m.ObserveSkillSkipped("budget")
	m.ObserveSkillSkipped("budget")
	m.ObserveSkillSkipped("missing")

	assert.Equal(t, 2, testutil.CollectAndCount(m.SkillTokensAdmitted))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.SkillsSkippedTotal.WithLabelValues("budget")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SkillsSkippedTotal.WithLabelValues("missing")))
}

func TestHandler(t *testing.T) {
	m := NewMetrics()
	m.ObserveToolExecution("echo", true, time.Millisecond)

	server := httptest.NewServer(m.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "tool_executions_total")
	assert.Contains(t, string(body), `tool_name="echo"`)
}
