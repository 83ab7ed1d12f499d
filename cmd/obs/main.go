// Command obs is the debugging CLI for popcorn.
//
// Usage:
//
//	obs                     Show help
//	obs search <query>      Run OMDb searches outside the TUI
//	obs detail <id>         Fetch one movie's detail record
//	obs events              JSONL event log viewer
//	obs stats               Event log statistics
package main

import (
	"fmt"
	"os"
)

const usage = `obs - popcorn debug CLI

Usage:
  obs <command> [flags]

Commands:
  search      Run OMDb searches and print the mapped results (requires OMDB_API_KEY)
  detail      Fetch and print a movie's detail record (requires OMDB_API_KEY)
  events      JSONL event log viewer
  stats       Event counts and request latencies from the event log

Environment:
  OMDB_API_KEY       OMDb API key
  POPCORN_OMDB_URL   OMDb base URL (default: https://www.omdbapi.com/)

Run 'obs <command> -h' for command-specific help.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(0)
	}

	cmd := os.Args[1]
	// Strip the program name + subcommand so flag sets see only their flags
	os.Args = os.Args[1:]

	switch cmd {
	case "search":
		runSearch()
	case "detail":
		runDetail()
	case "events":
		runEvents()
	case "stats":
		runStats()
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "obs: unknown command %q\n\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
}
