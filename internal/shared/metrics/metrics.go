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
	assessmentsScoredTotal     atomic.Uint64
	assessmentsIncompleteTotal atomic.Uint64
	persistenceFailuresTotal   atomic.Uint64
	chatbotQuestionsTotal      atomic.Uint64
	chatbotFallbackTotal       atomic.Uint64
	gameSessionsTotal          atomic.Uint64

	requestDuration = newHistogram([]float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500})
)

// IncAssessmentsScored counts completed scoring calls.
func IncAssessmentsScored() {
	assessmentsScoredTotal.Add(1)
}

// IncAssessmentsIncomplete counts scoring calls rejected for missing answers.
func IncAssessmentsIncomplete() {
	assessmentsIncompleteTotal.Add(1)
}

// IncPersistenceFailures counts storage writes that failed after a result was computed.
func IncPersistenceFailures() {
	persistenceFailuresTotal.Add(1)
}

// IncChatbotQuestions counts chatbot questions answered.
func IncChatbotQuestions() {
	chatbotQuestionsTotal.Add(1)
}

// IncChatbotFallback counts questions answered with the generic fallback.
func IncChatbotFallback() {
	chatbotFallbackTotal.Add(1)
}

// IncGameSessions counts recorded game sessions.
func IncGameSessions() {
	gameSessionsTotal.Add(1)
}

// ObserveRequestDurationMs records an HTTP request duration in milliseconds.
func ObserveRequestDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	requestDuration.Observe(value)
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
	writeCounter(&buf, "assessments_scored_total", "Total assessments scored", assessmentsScoredTotal.Load())
	writeCounter(&buf, "assessments_incomplete_total", "Total assessments rejected as incomplete", assessmentsIncompleteTotal.Load())
	writeCounter(&buf, "persistence_failures_total", "Total storage writes that failed after computing a result", persistenceFailuresTotal.Load())
	writeCounter(&buf, "chatbot_questions_total", "Total chatbot questions answered", chatbotQuestionsTotal.Load())
	writeCounter(&buf, "chatbot_fallback_total", "Total chatbot questions answered with the generic fallback", chatbotFallbackTotal.Load())
	writeCounter(&buf, "game_sessions_total", "Total game sessions recorded", gameSessionsTotal.Load())
	writeHistogram(&buf, "request_duration_ms", "HTTP request duration in milliseconds", requestDuration.Snapshot())
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
	// Observe already counts a value in every bucket whose bound it fits under.
	for i, bound := range snap.buckets {
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), snap.counts[i])
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
