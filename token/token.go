// Package token implements a soul-bound fungible-token ledger: balances are
// issued and destroyed under administrative control and never move between
// accounts. The standard transfer and allowance entry points remain in the
// public surface for interface compatibility and always fail.
package token

import "github.com/holiman/uint256"

// Decimals is the fixed display precision of the ledger.
const Decimals = 18

// Token is the caller-facing surface: a transfer-policy gate wrapped around
// a Ledger, plus immutable metadata and the capability registry.
//
// Authorization of who may call Issue and Destroy belongs to the layer that
// owns the Token instance; the caller identity passed to the disabled entry
// points is ignored.
type Token struct {
	*Ledger
	name   string
	symbol string
	caps   map[CapabilityID]struct{}
}

// New creates a ledger with the given display name and symbol and registers
// the two supported capability identifiers.
func New(name, symbol string) *Token {
	t := &Token{
		Ledger: NewLedger(),
		name:   name,
		symbol: symbol,
		caps:   make(map[CapabilityID]struct{}),
	}
	t.RegisterCapability(CapIntrospection)
	t.RegisterCapability(CapLedger)
	return t
}

// Name returns the display name of the token.
func (t *Token) Name() string {
	return t.name
}

// Symbol returns the display symbol of the token.
func (t *Token) Symbol() string {
	return t.symbol
}

// Decimals returns the fixed display precision.
func (t *Token) Decimals() uint8 {
	return Decimals
}

// Transfer is disabled by policy: balances are soul-bound. Always fails
// with ErrOperationNotAllowed.
func (t *Token) Transfer(caller, to Address, amount *uint256.Int) error {
	return ErrOperationNotAllowed
}

// Approve is disabled by policy. Always fails with ErrOperationNotAllowed.
func (t *Token) Approve(caller, spender Address, amount *uint256.Int) error {
	return ErrOperationNotAllowed
}

// TransferFrom is disabled by policy. Always fails with
// ErrOperationNotAllowed.
func (t *Token) TransferFrom(caller, from, to Address, amount *uint256.Int) error {
	return ErrOperationNotAllowed
}

// Allowance has no meaning in this ledger: allowances never existed, so
// even the read fails with ErrUnsupportedAction rather than returning a
// default.
func (t *Token) Allowance(owner, spender Address) (*uint256.Int, error) {
	return nil, ErrUnsupportedAction
}

// IncreaseAllowance has no meaning in this ledger. Always fails with
// ErrUnsupportedAction.
func (t *Token) IncreaseAllowance(caller, spender Address, delta *uint256.Int) error {
	return ErrUnsupportedAction
}

// DecreaseAllowance has no meaning in this ledger. Always fails with
// ErrUnsupportedAction.
func (t *Token) DecreaseAllowance(caller, spender Address, delta *uint256.Int) error {
	return ErrUnsupportedAction
}

// setApproval is the internal allowance mutation entry. No call path in
// this package invokes it; a richer policy built by wrapping Token inherits
// the hard failure as its default.
func (t *Token) setApproval(owner, spender Address, amount *uint256.Int) error {
	return ErrOperationNotAllowed
}
