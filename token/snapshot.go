package token

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/holiman/uint256"
)

// Snapshot is a point-in-time copy of ledger state. Snapshots serve tooling
// and tests; the caller-facing Token surface exposes no enumeration of
// accounts.
//
// Amounts are decimal strings so snapshots survive JSON round-trips without
// precision loss.
type Snapshot struct {
	Name        string            `json:"name,omitempty"`
	Symbol      string            `json:"symbol,omitempty"`
	TotalSupply string            `json:"totalSupply"`
	Balances    map[string]string `json:"balances"`
}

// Snapshot captures the current balances and supply. Zero balances are
// omitted.
func (l *Ledger) Snapshot() *Snapshot {
	s := &Snapshot{
		TotalSupply: l.totalSupply.Dec(),
		Balances:    make(map[string]string, len(l.balances)),
	}
	for a, b := range l.balances {
		if b.IsZero() {
			continue
		}
		s.Balances[a.Hex()] = b.Dec()
	}
	return s
}

// Snapshot captures ledger state together with the token metadata.
func (t *Token) Snapshot() *Snapshot {
	s := t.Ledger.Snapshot()
	s.Name = t.name
	s.Symbol = t.symbol
	return s
}

// Clone creates a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	clone := &Snapshot{
		Name:        s.Name,
		Symbol:      s.Symbol,
		TotalSupply: s.TotalSupply,
		Balances:    make(map[string]string, len(s.Balances)),
	}
	for k, v := range s.Balances {
		clone.Balances[k] = v
	}
	return clone
}

// CID computes the content-addressed identifier for this snapshot. Any
// change to metadata, supply, or balances changes the CID.
func (s *Snapshot) CID() string {
	data, err := json.Marshal(s.normalize())
	if err != nil {
		return ""
	}
	hash := sha256.Sum256(data)
	return "cid:" + hex.EncodeToString(hash[:])
}

// normalize creates a deterministically ordered form for hashing.
func (s *Snapshot) normalize() any {
	type pair struct {
		Account string `json:"account"`
		Amount  string `json:"amount"`
	}
	pairs := make([]pair, 0, len(s.Balances))
	for a, v := range s.Balances {
		pairs = append(pairs, pair{Account: a, Amount: v})
	}
	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].Account < pairs[j].Account
	})
	return struct {
		Name        string `json:"name"`
		Symbol      string `json:"symbol"`
		TotalSupply string `json:"totalSupply"`
		Balances    []pair `json:"balances"`
	}{
		Name:        s.Name,
		Symbol:      s.Symbol,
		TotalSupply: s.TotalSupply,
		Balances:    pairs,
	}
}

// Restore builds a token whose ledger matches the snapshot. Balances are
// replayed through Issue, so restoring re-checks every invariant.
func Restore(s *Snapshot) (*Token, error) {
	t := New(s.Name, s.Symbol)

	accounts := make([]string, 0, len(s.Balances))
	for a := range s.Balances {
		accounts = append(accounts, a)
	}
	sort.Strings(accounts)

	for _, a := range accounts {
		account, err := ParseAddress(a)
		if err != nil {
			return nil, err
		}
		amount, err := uint256.FromDecimal(s.Balances[a])
		if err != nil {
			return nil, fmt.Errorf("token: restore balance of %s: %w", a, err)
		}
		if err := t.Issue(account, amount); err != nil {
			return nil, err
		}
	}

	want, err := uint256.FromDecimal(s.TotalSupply)
	if err != nil {
		return nil, fmt.Errorf("token: restore total supply: %w", err)
	}
	if !t.totalSupply.Eq(want) {
		return nil, fmt.Errorf("%w: restored supply %s, snapshot records %s",
			ErrConservationViolated, t.totalSupply.Dec(), s.TotalSupply)
	}
	return t, nil
}
