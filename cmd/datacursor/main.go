// Package main is a terminal demo for the datacursor engine: it opens a
// dataset, binds a cursor to it and runs a grid navigator/editor on top.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"

	"github.com/dshills/datacursor/internal/cursor"
	"github.com/dshills/datacursor/internal/datasource"
	"github.com/dshills/datacursor/internal/datasource/jsonrow"
	"github.com/dshills/datacursor/internal/event"
	"github.com/dshills/datacursor/internal/guard"
	"github.com/dshills/datacursor/internal/tui"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

// sampleDataset is used when no -data file is given.
const sampleDataset = `{
  "columns": [
    {"name": "id", "caption": "ID"},
    {"name": "name", "caption": "Name"}
  ],
  "rows": [
    {"id": 1, "name": "John"},
    {"id": 2, "name": "James"},
    {"id": 5, "name": "Peter"}
  ]
}`

func main() {
	os.Exit(run())
}

func run() int {
	var (
		dataPath    string
		backend     string
		guardPath   string
		debug       bool
		logPath     string
		showVersion bool
	)

	flag.StringVar(&dataPath, "data", "", "Path to a JSON dataset file")
	flag.StringVar(&backend, "backend", "memory", "Datasource backend (memory, jsonrow)")
	flag.StringVar(&guardPath, "guard", "", "Path to a Lua guard script")
	flag.BoolVar(&debug, "debug", false, "Log cursor notifications")
	flag.StringVar(&logPath, "log", "datacursor.log", "Debug log file")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "datacursor - cursor engine demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: datacursor [options]\n\n")
		fmt.Fprintf(os.Stderr, "Keys: arrows move, Enter edits, s saves, S forces, u discards,\n")
		fmt.Fprintf(os.Stderr, "      n starts a new record, x deletes, Home/End jump, q quits.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("datacursor %s (%s)\n", version, commit)
		return 0
	}

	data := []byte(sampleDataset)
	if dataPath != "" {
		var err error
		data, err = os.ReadFile(dataPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: read dataset: %v\n", err)
			return 1
		}
	}

	columns, rows, err := jsonrow.ParseDataset(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: parse dataset: %v\n", err)
		return 1
	}

	ds, err := buildDatasource(backend, columns, rows)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	cur := cursor.New(ds)
	defer cur.Close()

	if debug {
		closeLog, err := attachLogger(cur, logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: open log: %v\n", err)
			return 1
		}
		defer closeLog()
	}

	if guardPath != "" {
		script, err := os.ReadFile(guardPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: read guard script: %v\n", err)
			return 1
		}
		g, err := guard.New(string(script))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer g.Close()
		if err := g.Attach(cur); err != nil {
			fmt.Fprintf(os.Stderr, "Error: attach guard: %v\n", err)
			return 1
		}
	}

	grid, err := tui.New(cur)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: create screen: %v\n", err)
		return 1
	}
	if err := grid.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func buildDatasource(backend string, columns datasource.Columns, rows []datasource.Record) (datasource.Datasource, error) {
	switch backend {
	case "memory":
		return datasource.NewMemory(columns, rows), nil
	case "jsonrow":
		src := jsonrow.New(columns)
		for _, row := range rows {
			if _, err := src.Add(row); err != nil {
				return nil, err
			}
		}
		return src, nil
	default:
		return nil, fmt.Errorf("unknown backend %q (memory, jsonrow)", backend)
	}
}

// attachLogger subscribes a listener that logs every cursor notification to
// the given file. The TUI owns the terminal, so the log never goes to
// stderr.
func attachLogger(cur *cursor.Cursor, path string) (func(), error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	logger := newLogger(f)
	var subs []event.Subscription
	for t := event.MoveFirst; t <= event.RowsDelete; t++ {
		t := t
		sub, err := cur.Notifier().Subscribe(t, func(e event.Event) bool {
			logger.Debug("notification",
				"type", e.Type.String(),
				"position", e.Position.String(),
				"new_position", e.NewPosition.String(),
				"delta", e.Delta,
			)
			return true
		})
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		subs = append(subs, sub)
	}

	return func() {
		for _, sub := range subs {
			_ = cur.Notifier().Unsubscribe(sub)
		}
		_ = f.Close()
	}, nil
}

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:   slog.LevelDebug,
		NoColor: true,
	}))
}
