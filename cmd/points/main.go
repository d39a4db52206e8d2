package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"points/internal/cli"
)

const version = "0.1.0"

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	switch args[0] {
	case "-h", "--help", "help":
		usage()
		return
	case "-v", "--version", "version":
		fmt.Printf("points version %s\n", version)
		return
	}

	cli.LoadEnvFile()
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res := cli.InitBackend(ctx, logger, cfg)
	recs := cli.NewRecordStore(res.Backend, logger)

	a := &app{
		records: recs,
		roster:  cli.NewRoster(cfg, res.Backend, recs, logger),
		logger:  logger,
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}

	err := a.run(ctx, args[0], args[1:])
	if cerr := res.Close(); cerr != nil {
		logger.Warn("Failed to close backend", "error", cerr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `points - allowance points ledger for kids

Usage: points <command> [options] [args]

Commands:
  kids                                   List kids with their totals
  add-kid <name>                         Add a kid to the roster
  remove-kid [--yes] <name>              Remove a kid from the roster
  show [--json] [--all] <name>           Show a kid's days, newest first
  add --label L --price P [--qty N] [--date YYYY-MM-DD] <name>
                                         Add an item (quantity 1, today by default)
  delete <name> <record-id>              Delete one item (id or unique id prefix)
  delete-day [--yes] <name> <YYYY-MM-DD> Delete every item of a day
  orphans                                List stored records of removed kids
  version                                Show version

Environment:
  DATA_BACKEND          sqlite (default) or memory
  SQLITE_DB_PATH        SQLite file (default ./data/points.db)
  DATA_DIR              memory backend seed directory (default data)
  PURGE_ON_REMOVE       delete a kid's records on remove-kid (default false)
  OVERVIEW_CONCURRENCY  parallel loads for 'kids' (default 4)
  LOG_LEVEL             debug, info, warn or error (default warn)

Examples:
  points add-kid Ada
  points add --label chores --price 5 --qty 2 Ada
  points show --all Ada
  points delete-day Ada 2025-03-01
`)
}
