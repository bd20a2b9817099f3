package journal

import (
	"context"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-soulbound/token"
)

// Recorder forwards ledger change notifications into a journal stream. It
// implements token.Notifier, so attaching it to a ledger makes the audit
// trail durable:
//
//	tok := token.New("Experience", "EXP")
//	rec, _ := journal.NewRecorder(ctx, store, "ledger")
//	tok.WithNotifier(rec)
//
// A Recorder tracks the stream version it last wrote, so a concurrent
// writer on the same stream surfaces as ErrConcurrencyConflict and the
// ledger mutation rolls back.
type Recorder struct {
	store   Store
	stream  string
	version int
}

// NewRecorder attaches to a stream, reading its current version.
func NewRecorder(ctx context.Context, store Store, stream string) (*Recorder, error) {
	version, err := store.StreamVersion(ctx, stream)
	if err != nil {
		return nil, err
	}
	return &Recorder{store: store, stream: stream, version: version}, nil
}

// LedgerChanged appends one event per ledger mutation.
func (r *Recorder) LedgerChanged(from, to token.Address, amount *uint256.Int) error {
	eventType := TypeIssued
	if to.IsZero() {
		eventType = TypeDestroyed
	}
	event, err := NewEvent(r.stream, eventType, Change{
		From:   from.Hex(),
		To:     to.Hex(),
		Amount: amount.Dec(),
	})
	if err != nil {
		return err
	}
	version, err := r.store.Append(context.Background(), r.stream, r.version, []*Event{event})
	if err != nil {
		return err
	}
	r.version = version
	return nil
}

var _ token.Notifier = (*Recorder)(nil)

// Rebuild replays a journal stream through a fresh token, restoring the
// ledger state that produced it. Replay goes through Issue and Destroy, so
// every invariant is re-checked.
func Rebuild(ctx context.Context, store Store, stream, name, symbol string) (*token.Token, error) {
	events, err := store.Read(ctx, stream, 0)
	if err != nil {
		return nil, err
	}

	tok := token.New(name, symbol)
	for _, e := range events {
		var c Change
		if err := e.Decode(&c); err != nil {
			return nil, fmt.Errorf("journal: event %d: %w", e.Version, err)
		}
		amount, err := uint256.FromDecimal(c.Amount)
		if err != nil {
			return nil, fmt.Errorf("journal: event %d: bad amount %q: %w", e.Version, c.Amount, err)
		}

		switch e.Type {
		case TypeIssued:
			account, err := token.ParseAddress(c.To)
			if err != nil {
				return nil, fmt.Errorf("journal: event %d: %w", e.Version, err)
			}
			if err := tok.Issue(account, amount); err != nil {
				return nil, fmt.Errorf("journal: replay event %d: %w", e.Version, err)
			}
		case TypeDestroyed:
			account, err := token.ParseAddress(c.From)
			if err != nil {
				return nil, fmt.Errorf("journal: event %d: %w", e.Version, err)
			}
			if err := tok.Destroy(account, amount); err != nil {
				return nil, fmt.Errorf("journal: replay event %d: %w", e.Version, err)
			}
		default:
			return nil, fmt.Errorf("journal: event %d: unknown type %q", e.Version, e.Type)
		}
	}
	return tok, nil
}
