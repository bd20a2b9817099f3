package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pflow-xyz/go-soulbound/journal"
)

func export(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	lf := addLedgerFlags(fs)
	format := fs.String("format", "jsonl", "Output format: jsonl or csv")
	output := fs.String("output", "", "Output file (default: stdout)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: soulbound export [options]

Export the audit trail to JSONL or CSV.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  soulbound export --db ledger.db --format jsonl --output audit.jsonl
  soulbound export --db ledger.db --format csv
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

	list, err := store.Read(context.Background(), *lf.stream, 0)
	if err != nil {
		return err
	}

	switch *format {
	case "jsonl":
		if *output != "" {
			return journal.ExportJSONL(*output, list)
		}
		return journal.WriteJSONL(os.Stdout, list)
	case "csv":
		if *output != "" {
			return journal.ExportCSV(*output, list)
		}
		return journal.WriteCSV(os.Stdout, list)
	default:
		return fmt.Errorf("unknown format %q (want jsonl or csv)", *format)
	}
}
