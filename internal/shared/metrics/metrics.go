package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	submissionsScoredTotal atomic.Uint64
	selfHarmFlaggedTotal   atomic.Uint64
	llmRequestsTotal       atomic.Uint64
	llmFailuresTotal       atomic.Uint64
	quotaRejectedTotal     atomic.Uint64

	llmDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncSubmissionScored counts a scored questionnaire submission.
func IncSubmissionScored(selfHarm bool) {
	submissionsScoredTotal.Add(1)
	if selfHarm {
		selfHarmFlaggedTotal.Add(1)
	}
}

// IncLLMRequest counts a model request.
func IncLLMRequest() {
	llmRequestsTotal.Add(1)
}

// IncLLMFailure counts a model request that ended in an upstream error.
func IncLLMFailure() {
	llmFailuresTotal.Add(1)
}

// IncQuotaRejected counts requests refused by the daily usage quota.
func IncQuotaRejected() {
	quotaRejectedTotal.Add(1)
}

// ObserveLLMDurationMs records a model round trip in milliseconds.
func ObserveLLMDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	llmDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "triage_submissions_scored_total", "Total questionnaire submissions scored", submissionsScoredTotal.Load())
	writeCounter(&buf, "triage_self_harm_flagged_total", "Total submissions with the self-harm item endorsed", selfHarmFlaggedTotal.Load())
	writeCounter(&buf, "triage_llm_requests_total", "Total model requests", llmRequestsTotal.Load())
	writeCounter(&buf, "triage_llm_failures_total", "Total model requests that failed", llmFailuresTotal.Load())
	writeCounter(&buf, "triage_quota_rejected_total", "Total requests rejected by the daily quota", quotaRejectedTotal.Load())
	writeHistogram(&buf, "triage_llm_duration_ms", "Model round trip in milliseconds", llmDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
