package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

func newTestCollector(t *testing.T) (*Collector, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}
	return c, reg
}

func TestSessionLifecycle(t *testing.T) {
	c, _ := newTestCollector(t)

	c.SessionStarted("flappy")
	c.SessionStarted("flappy-lite")
	c.SessionEnded()

	if got := testutil.ToFloat64(c.SessionsActive); got != 1 {
		t.Errorf("sessions_active = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.SessionsTotal.WithLabelValues("flappy")); got != 1 {
		t.Errorf("sessions_total{flappy} = %v, want 1", got)
	}
}

func TestObserveStep(t *testing.T) {
	c, reg := newTestCollector(t)

	c.ObserveStep("flappy", core.StepResult{})
	c.ObserveStep("flappy", core.StepResult{Events: []core.Signal{core.SignalPoint, core.SignalPoint}})
	c.ObserveStep("flappy", core.StepResult{
		State:  core.GameState{Score: 2, GameOver: true},
		Events: []core.Signal{core.SignalHit, core.SignalGameOverShown},
	})

	if got := testutil.ToFloat64(c.FramesTotal.WithLabelValues("flappy")); got != 3 {
		t.Errorf("frames_total = %v, want 3", got)
	}
	if got := testutil.ToFloat64(c.PointsTotal.WithLabelValues("flappy")); got != 2 {
		t.Errorf("points_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.RunsEnded.WithLabelValues("flappy")); got != 1 {
		t.Errorf("runs_ended_total = %v, want 1", got)
	}
	if n := testutil.CollectAndCount(c.RunScores); n != 1 {
		t.Errorf("run_score series = %d, want 1", n)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	for _, mf := range families {
		if mf.GetName() != "flappy_run_score" {
			continue
		}
		h := mf.Metric[0].GetHistogram()
		if h.GetSampleCount() != 1 || h.GetSampleSum() != 2 {
			t.Errorf("run_score count=%d sum=%v, want 1 and 2", h.GetSampleCount(), h.GetSampleSum())
		}
	}
}

func TestNilCollector(t *testing.T) {
	var c *Collector
	c.SessionStarted("flappy")
	c.ObserveStep("flappy", core.StepResult{Events: []core.Signal{core.SignalHit}})
	c.SessionEnded()
}

func TestReRegisterReturnsExisting(t *testing.T) {
	reg := prometheus.NewRegistry()
	c1, err := NewCollector(reg)
	if err != nil {
		t.Fatal(err)
	}
	c2, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("second NewCollector: %v", err)
	}
	c1.SessionStarted("flappy")
	if got := testutil.ToFloat64(c2.SessionsTotal.WithLabelValues("flappy")); got != 1 {
		t.Errorf("collectors do not share series: %v", got)
	}
}

func TestHandler(t *testing.T) {
	c, _ := newTestCollector(t)
	c.SessionStarted("flappy")
	c.ObserveStep("flappy", core.StepResult{Events: []core.Signal{core.SignalPoint}})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	c.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("/metrics status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	for _, metric := range []string{
		"flappy_sessions_active",
		"flappy_sessions_total",
		"flappy_frames_total",
		"flappy_points_total",
	} {
		if !strings.Contains(body, metric) {
			t.Errorf("expected %q in /metrics output", metric)
		}
	}
}
