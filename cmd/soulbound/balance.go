package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pflow-xyz/go-soulbound/token"
)

func balance(args []string) error {
	fs := flag.NewFlagSet("balance", flag.ExitOnError)
	lf := addLedgerFlags(fs)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: soulbound balance [options] <account>

Show the balance of an account after replaying the journal.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("account required")
	}

	account, err := token.ParseAddress(fs.Arg(0))
	if err != nil {
		return err
	}

	ctx := context.Background()
	store, tok, err := openLedger(ctx, lf)
	if err != nil {
		return err
	}
	defer store.Close()

	fmt.Printf("%s: %s %s\n", account.Hex(), tok.BalanceOf(account).Dec(), tok.Symbol())
	return nil
}
