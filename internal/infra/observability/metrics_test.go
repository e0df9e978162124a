package observability_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/boddenberg/digtecnico-client-go/internal/infra/observability"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap/zapcore"
)

func TestMetrics_RecordRequest(t *testing.T) {
	m := observability.NewMetrics()

	m.RecordRequest("GET", "ok", 20*time.Millisecond)
	m.RecordRequest("GET", "timeout", time.Second)
	m.RecordRequest("POST", "timeout", time.Second)

	if got := m.ErrorCount("timeout"); got != 2 {
		t.Errorf("expected 2 timeouts, got %v", got)
	}
	if got := m.ErrorCount("ok"); got != 0 {
		t.Errorf("successful requests must not count as errors, got %v", got)
	}
}

func TestMetrics_Handler(t *testing.T) {
	m := observability.NewMetrics()
	m.IncrLogin("success")
	m.IncrSessionInvalidation()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, name := range []string{"digtec_logins_total", "digtec_session_invalidations_total"} {
		if !strings.Contains(body, name) {
			t.Errorf("expected %s in exposition", name)
		}
	}
}

func TestNewLogger_UnknownLevelFallsBack(t *testing.T) {
	logger := observability.NewLogger("verbose")
	if logger == nil {
		t.Fatal("expected logger")
	}
	if logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug should be disabled for unknown level")
	}
}

func TestMetrics_LoginSeries(t *testing.T) {
	m := observability.NewMetrics()
	m.IncrLogin("success")
	m.IncrLogin("failure")
	m.IncrLogin("failure")

	n, err := testutil.GatherAndCount(m.Registry, "digtec_logins_total")
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("expected one series per result, got %d", n)
	}
	if got := m.LoginCount("failure"); got != 2 {
		t.Errorf("expected 2 failures, got %v", got)
	}
}
