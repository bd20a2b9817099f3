package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pflow-xyz/go-soulbound/journal"
)

func events(args []string) error {
	fs := flag.NewFlagSet("events", flag.ExitOnError)
	lf := addLedgerFlags(fs)
	typeFilter := fs.String("type", "", "Filter by event type (Issued or Destroyed)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: soulbound events [options]

Display the audit trail of ledger changes.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Show all events
  soulbound events --db ledger.db

  # Only issuance
  soulbound events --db ledger.db --type Issued
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := journal.NewSQLiteStore(*lf.db)
	if err != nil {
		return err
	}
	defer store.Close()

	filter := journal.EventFilter{StreamID: *lf.stream}
	if *typeFilter != "" {
		filter.Types = []string{*typeFilter}
	}

	list, err := store.ReadAll(context.Background(), filter)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("No events recorded")
		return nil
	}

	for _, e := range list {
		var c journal.Change
		if err := e.Decode(&c); err != nil {
			return err
		}
		fmt.Printf("%4d  %-10s %s  from=%s to=%s amount=%s\n",
			e.Version, e.Type, e.Timestamp.Format("2006-01-02 15:04:05"),
			c.From, c.To, c.Amount)
	}
	return nil
}
