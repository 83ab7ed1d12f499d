package main

import (
	"strings"
	"testing"
)

const sampleLog = `{"t":"2026-01-02T10:00:00Z","level":"info","kind":"sys.startup","comp":"main","session_id":"s1"}
{"t":"2026-01-02T10:00:01Z","level":"info","kind":"search.start","comp":"search","session_id":"s1","qid":"q1","query":"dune"}
{"t":"2026-01-02T10:00:01Z","level":"info","kind":"search.complete","comp":"search","session_id":"s1","qid":"q1","dur_ms":120,"count":10}
{"t":"2026-01-02T10:00:02Z","level":"info","kind":"search.start","comp":"search","session_id":"s1","qid":"q2","query":"dune 2"}
{"t":"2026-01-02T10:00:02Z","level":"warn","kind":"search.error","comp":"search","session_id":"s1","qid":"q2","err":"omdb: transport failure: HTTP 503"}
not json at all

{"t":"2026-01-03T09:00:00Z","level":"info","kind":"search.start","comp":"search","session_id":"s2","qid":"q3","query":"alien"}
{"t":"2026-01-03T09:00:00Z","level":"info","kind":"search.complete","comp":"search","session_id":"s2","qid":"q3","dur_ms":80,"count":3}
`

func TestSummarize(t *testing.T) {
	st, err := summarize(strings.NewReader(sampleLog), "")
	if err != nil {
		t.Fatalf("summarize() error = %v", err)
	}
	if st.Lines != 7 || st.Bad != 1 {
		t.Errorf("Lines = %d, Bad = %d, want 7 and 1", st.Lines, st.Bad)
	}
	if len(st.Sessions) != 2 {
		t.Errorf("Sessions = %v, want 2", st.Sessions)
	}
	if st.Kinds["search.start"] != 3 || st.Kinds["search.complete"] != 2 {
		t.Errorf("Kinds = %v", st.Kinds)
	}
	if got := st.Latency["search.complete"]; len(got) != 2 {
		t.Errorf("latency samples = %v", got)
	}
	if st.Errors["omdb: transport failure: HTTP 503"] != 1 {
		t.Errorf("Errors = %v", st.Errors)
	}
}

func TestSummarizeSession(t *testing.T) {
	st, err := summarize(strings.NewReader(sampleLog), "s2")
	if err != nil {
		t.Fatalf("summarize() error = %v", err)
	}
	if st.Lines != 2 || st.Kinds["search.complete"] != 1 {
		t.Errorf("session filter: Lines = %d, Kinds = %v", st.Lines, st.Kinds)
	}
}

func TestPercentile(t *testing.T) {
	samples := []float64{50, 10, 40, 20, 30}
	tests := []struct {
		p    float64
		want float64
	}{
		{0, 10},
		{0.5, 30},
		{0.95, 50},
		{1, 50},
	}
	for _, tt := range tests {
		if got := percentile(samples, tt.p); got != tt.want {
			t.Errorf("percentile(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
	if percentile(nil, 0.5) != 0 {
		t.Error("percentile of no samples should be 0")
	}
	if samples[0] != 50 {
		t.Error("percentile must not reorder its input")
	}
}

func TestMean(t *testing.T) {
	if got := mean([]float64{80, 120}); got != 100 {
		t.Errorf("mean = %v, want 100", got)
	}
	if mean(nil) != 0 {
		t.Error("mean of no samples should be 0")
	}
}
