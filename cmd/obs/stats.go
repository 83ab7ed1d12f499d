package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/abelbrown/popcorn/internal/config"
)

// eventStats aggregates an event log.
type eventStats struct {
	Lines    int
	Bad      int
	Sessions map[string]int      // session ID -> event count
	Kinds    map[string]int      // kind -> count
	Latency  map[string][]float64 // kind -> dur_ms samples
	Errors   map[string]int      // error text -> count
}

func newEventStats() *eventStats {
	return &eventStats{
		Sessions: map[string]int{},
		Kinds:    map[string]int{},
		Latency:  map[string][]float64{},
		Errors:   map[string]int{},
	}
}

// summarize reads JSONL events from r. Undecodable lines are counted, not
// fatal.
func summarize(r io.Reader, session string) (*eventStats, error) {
	st := newEventStats()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 256*1024)

	for scanner.Scan() {
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var ev eventRecord
		if json.Unmarshal(raw, &ev) != nil {
			st.Bad++
			continue
		}
		if session != "" && ev.SessionID != session {
			continue
		}
		st.Lines++
		st.Sessions[ev.SessionID]++
		st.Kinds[ev.Kind]++
		if ev.DurMs > 0 {
			st.Latency[ev.Kind] = append(st.Latency[ev.Kind], ev.DurMs)
		}
		if ev.Err != "" {
			st.Errors[ev.Err]++
		}
	}
	return st, scanner.Err()
}

// percentile returns the p-th percentile (0..1) of samples by nearest rank.
func percentile(samples []float64, p float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	sorted := slices.Clone(samples)
	slices.Sort(sorted)
	idx := int(p*float64(len(sorted))+0.5) - 1
	idx = max(0, min(idx, len(sorted)-1))
	return sorted[idx]
}

func mean(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += s
	}
	return sum / float64(len(samples))
}

func runStats() {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	session := fs.String("session", "", "Only count events from this session ID")
	topErrors := fs.Int("errors", 5, "Number of distinct errors to list")
	fs.Parse(os.Args[1:])

	logPath := config.EventLogPath()
	f, err := os.Open(logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	st, err := summarize(f, *session)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading %s: %v\n", logPath, err)
		os.Exit(1)
	}

	fmt.Printf("Events:                %d\n", st.Lines)
	fmt.Printf("Undecodable lines:     %d\n", st.Bad)
	fmt.Printf("Sessions:              %d\n", len(st.Sessions))

	fmt.Println("\n=== Searches ===")
	fmt.Printf("Started:               %d\n", st.Kinds["search.start"])
	fmt.Printf("Completed:             %d\n", st.Kinds["search.complete"])
	fmt.Printf("Cancelled:             %d\n", st.Kinds["search.cancel"])
	fmt.Printf("Failed:                %d\n", st.Kinds["search.error"])
	printLatency("search.complete", st.Latency["search.complete"])

	fmt.Println("\n=== Details ===")
	fmt.Printf("Started:               %d\n", st.Kinds["detail.start"])
	fmt.Printf("Completed:             %d\n", st.Kinds["detail.complete"])
	fmt.Printf("Stale (ignored):       %d\n", st.Kinds["detail.stale"])
	fmt.Printf("Failed:                %d\n", st.Kinds["detail.error"])
	printLatency("detail.complete", st.Latency["detail.complete"])

	fmt.Println("\n=== Watched list ===")
	fmt.Printf("Added:                 %d\n", st.Kinds["watched.add"])
	fmt.Printf("Removed:               %d\n", st.Kinds["watched.remove"])
	fmt.Printf("Store errors:          %d\n", st.Kinds["store.error"])

	if len(st.Errors) == 0 {
		return
	}
	type errCount struct {
		msg string
		n   int
	}
	var errs []errCount
	for msg, n := range st.Errors {
		errs = append(errs, errCount{msg, n})
	}
	sort.Slice(errs, func(i, j int) bool {
		if errs[i].n != errs[j].n {
			return errs[i].n > errs[j].n
		}
		return errs[i].msg < errs[j].msg
	})

	fmt.Println("\n=== Top errors ===")
	for i, e := range errs {
		if i >= *topErrors {
			break
		}
		fmt.Printf("  %4d  %s\n", e.n, truncate(strings.TrimSpace(e.msg), 70))
	}
}

func printLatency(kind string, samples []float64) {
	if len(samples) == 0 {
		return
	}
	fmt.Printf("Latency (%s):  mean %.0fms  p50 %.0fms  p95 %.0fms\n",
		kind, mean(samples), percentile(samples, 0.5), percentile(samples, 0.95))
}
