package main

import (
	"context"
	"flag"
	"fmt"
	"os"
)

func supply(args []string) error {
	fs := flag.NewFlagSet("supply", flag.ExitOnError)
	lf := addLedgerFlags(fs)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: soulbound supply [options]

Show token metadata, total supply, and the snapshot content id after
replaying the journal.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	store, tok, err := openLedger(ctx, lf)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := tok.CheckConservation(); err != nil {
		return err
	}

	snap := tok.Snapshot()
	fmt.Printf("token:    %s (%s), %d decimals\n", tok.Name(), tok.Symbol(), tok.Decimals())
	fmt.Printf("supply:   %s\n", tok.TotalSupply().Dec())
	fmt.Printf("accounts: %d\n", len(snap.Balances))
	fmt.Printf("cid:      %s\n", snap.CID())
	return nil
}
