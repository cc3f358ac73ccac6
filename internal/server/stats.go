package server

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"accessible-palette/internal/palette"
)

// StatsTracker tracks service statistics for the /api/stats endpoint
type StatsTracker struct {
	startTime  time.Time
	generated  atomic.Int64
	shortfalls atomic.Int64
	failures   atomic.Int64
	rejected   atomic.Int64
	inFlight   atomic.Int64
}

// StatsResponse is the JSON response for /api/stats
type StatsResponse struct {
	Generated     int64   `json:"generated"`
	Failed        int64   `json:"failed"`
	Rejected      int64   `json:"rejected"`
	Shortfalls    int64   `json:"shortfalls"`
	InFlight      int64   `json:"inFlight"`
	UptimeSeconds int64   `json:"uptimeSeconds"`
	SuccessRate   float64 `json:"successRate"`
}

// NewStatsTracker starts tracking from now
func NewStatsTracker() *StatsTracker {
	return &StatsTracker{startTime: time.Now()}
}

// RecordPalette records a generated palette and its shortfalls
func (s *StatsTracker) RecordPalette(p *palette.Palette) {
	s.generated.Add(1)
	s.shortfalls.Add(int64(len(p.Shortfalls)))

	MetricGeneratedTotal.Inc()
	for _, sf := range p.Shortfalls {
		MetricShortfallsTotal.WithLabelValues(string(sf.Tone)).Inc()
	}
}

// RecordFailure records a generation that returned an error
func (s *StatsTracker) RecordFailure(kind string) {
	s.failures.Add(1)
	MetricErrorsTotal.WithLabelValues(kind).Inc()
}

// RecordRejected records a request refused before generation
func (s *StatsTracker) RecordRejected(reason string) {
	s.rejected.Add(1)
	MetricRejectedTotal.WithLabelValues(reason).Inc()
}

func (s *StatsTracker) begin() {
	s.inFlight.Add(1)
	MetricInFlight.Inc()
}

func (s *StatsTracker) end() {
	s.inFlight.Add(-1)
	MetricInFlight.Dec()
}

// SuccessRate is the percentage of generation attempts that succeeded
func (s *StatsTracker) SuccessRate() float64 {
	ok := s.generated.Load()
	total := ok + s.failures.Load()
	if total == 0 {
		return 100.0
	}
	return float64(ok) / float64(total) * 100.0
}

// Snapshot returns the current stats
func (s *StatsTracker) Snapshot() StatsResponse {
	return StatsResponse{
		Generated:     s.generated.Load(),
		Failed:        s.failures.Load(),
		Rejected:      s.rejected.Load(),
		Shortfalls:    s.shortfalls.Load(),
		InFlight:      s.inFlight.Load(),
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		SuccessRate:   s.SuccessRate(),
	}
}

// ServeHTTP handles /api/stats requests
func (s *StatsTracker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "use GET", nil)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.Snapshot())
}
