package main

import (
	"context"
	"flag"

	"github.com/pflow-xyz/go-soulbound/journal"
	"github.com/pflow-xyz/go-soulbound/token"
)

// ledgerFlags are the options every command that touches the journal
// shares.
type ledgerFlags struct {
	db     *string
	stream *string
	name   *string
	symbol *string
}

func addLedgerFlags(fs *flag.FlagSet) ledgerFlags {
	return ledgerFlags{
		db:     fs.String("db", "soulbound.db", "Journal database path"),
		stream: fs.String("stream", "ledger", "Journal stream name"),
		name:   fs.String("name", "Experience", "Token display name"),
		symbol: fs.String("symbol", "EXP", "Token symbol"),
	}
}

// openLedger opens the journal and rebuilds the token state from it.
// The caller closes the returned store.
func openLedger(ctx context.Context, lf ledgerFlags) (journal.Store, *token.Token, error) {
	store, err := journal.NewSQLiteStore(*lf.db)
	if err != nil {
		return nil, nil, err
	}
	tok, err := journal.Rebuild(ctx, store, *lf.stream, *lf.name, *lf.symbol)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	return store, tok, nil
}
