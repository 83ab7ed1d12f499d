package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/abelbrown/popcorn/internal/model"
	"github.com/abelbrown/popcorn/internal/omdb"
)

// maxConcurrentDetails bounds in-flight detail fetches. The client's limiter
// still paces them.
const maxConcurrentDetails = 4

type detailResult struct {
	detail model.MovieDetail
	dur    time.Duration
	err    error
}

func runDetail() {
	fs := flag.NewFlagSet("detail", flag.ExitOnError)
	timeout := fs.Duration("timeout", 0, "Per-request timeout (default from config)")
	fs.Parse(os.Args[1:])

	ids := fs.Args()
	if len(ids) == 0 {
		fmt.Fprintln(os.Stderr, "usage: obs detail [-timeout D] <imdb-id> [imdb-id...]")
		os.Exit(1)
	}

	client := newClient(loadConfig(), *timeout)
	results := fetchDetails(context.Background(), client, ids)

	for i, id := range ids {
		r := results[i]
		if r.err != nil {
			fmt.Printf("%s: ERROR [%v]: %v (UI: %q)\n", id, r.dur.Round(time.Millisecond), r.err, omdb.UserMessage(r.err))
			continue
		}
		printDetail(r.detail, r.dur)
	}
}

type detailFetcher interface {
	Detail(ctx context.Context, id string) (model.MovieDetail, error)
}

// fetchDetails fetches every id concurrently. Results are in argument order;
// one failure does not stop the others.
func fetchDetails(ctx context.Context, f detailFetcher, ids []string) []detailResult {
	results := make([]detailResult, len(ids))

	var g errgroup.Group
	g.SetLimit(maxConcurrentDetails)
	for i, id := range ids {
		g.Go(func() error {
			t0 := time.Now()
			d, err := f.Detail(ctx, id)
			results[i] = detailResult{detail: d, dur: time.Since(t0), err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func printDetail(d model.MovieDetail, dur time.Duration) {
	released := "unknown"
	switch {
	case !d.Released.IsZero():
		released = fmt.Sprintf("%s (%s)", d.Released.Format("2006-01-02"), humanize.Time(d.Released))
	case d.ReleasedRaw != "":
		released = d.ReleasedRaw + " (unparsed)"
	}

	fmt.Printf("%s  [%v]\n", d.ID, dur.Round(time.Millisecond))
	fmt.Printf("  Title:     %s (%s)\n", d.Title, d.Year)
	fmt.Printf("  Released:  %s\n", released)
	fmt.Printf("  Rating:    %.1f\n", d.ExternalRating)
	fmt.Printf("  Runtime:   %d min\n", d.RuntimeMinutes)
	fmt.Printf("  Poster:    %s\n", orDash(d.PosterURL))
	fmt.Printf("  Plot:      %s\n\n", truncate(orDash(d.Plot), 200))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
