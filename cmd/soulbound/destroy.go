package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-soulbound/journal"
	"github.com/pflow-xyz/go-soulbound/token"
)

func destroy(args []string) error {
	fs := flag.NewFlagSet("destroy", flag.ExitOnError)
	lf := addLedgerFlags(fs)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: soulbound destroy [options] <account> <amount>

Destroy tokens held by an account and append the change to the audit trail.
Fails if the account holds less than the requested amount.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  soulbound destroy --db ledger.db 0x00000000000000000000000000000000000000a1 400
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		fs.Usage()
		return fmt.Errorf("account and amount required")
	}

	account, err := token.ParseAddress(fs.Arg(0))
	if err != nil {
		return err
	}
	amount, err := uint256.FromDecimal(fs.Arg(1))
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", fs.Arg(1), err)
	}

	ctx := context.Background()
	store, tok, err := openLedger(ctx, lf)
	if err != nil {
		return err
	}
	defer store.Close()

	recorder, err := journal.NewRecorder(ctx, store, *lf.stream)
	if err != nil {
		return err
	}
	tok.WithNotifier(recorder)

	if err := tok.Destroy(account, amount); err != nil {
		return err
	}

	fmt.Printf("destroyed %s %s from %s\n", amount.Dec(), tok.Symbol(), account.Hex())
	fmt.Printf("balance: %s\n", tok.BalanceOf(account).Dec())
	fmt.Printf("supply:  %s\n", tok.TotalSupply().Dec())
	return nil
}
