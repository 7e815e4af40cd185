package metrics

import (
	"strings"
	"testing"
)

func TestRenderIncludesCounters(t *testing.T) {
	IncSubmissionScored(true)
	IncLLMRequest()
	ObserveLLMDurationMs(300)

	out := Render()
	for _, name := range []string{
		"triage_submissions_scored_total",
		"triage_self_harm_flagged_total",
		"triage_llm_requests_total",
		"triage_llm_duration_ms_count",
	} {
		if !strings.Contains(out, name) {
			t.Fatalf("expected %s in output", name)
		}
	}
}

func TestHistogramBucketsAreCumulative(t *testing.T) {
	h := newHistogram([]float64{10, 100})
	h.Observe(5)
	h.Observe(50)
	h.Observe(500)

	snap := h.Snapshot()
	var cumulative uint64
	got := make([]uint64, 0, len(snap.counts))
	for _, c := range snap.counts {
		cumulative += c
		got = append(got, cumulative)
	}
	if got[0] != 1 || got[1] != 2 {
		t.Fatalf("unexpected cumulative buckets %v", got)
	}
	if snap.count != 3 {
		t.Fatalf("expected count 3, got %d", snap.count)
	}
}
