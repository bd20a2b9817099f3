package token

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Hook is a ledger mutation extension point. Hooks run with
// (from, to, amount) where exactly one of from/to is the null identity:
// from is zero on issue, to is zero on destroy. A hook error aborts the
// operation with no state change.
type Hook func(from, to Address, amount *uint256.Int) error

// Notifier observes successful ledger changes. The stream of notifications
// is the sole audit trail of the ledger.
type Notifier interface {
	LedgerChanged(from, to Address, amount *uint256.Int) error
}

// Ledger owns the account balance map and the total supply counter.
// Between operations, total supply equals the sum of all balances.
//
// The ledger takes no locks: each operation runs to completion before the
// next begins, and every operation either completes fully or fails with all
// state unchanged.
type Ledger struct {
	balances    map[Address]*uint256.Int
	totalSupply *uint256.Int

	beforeChange Hook
	afterChange  Hook
	notifier     Notifier
}

// NewLedger creates an empty ledger with no-op hooks and no notifier.
func NewLedger() *Ledger {
	return &Ledger{
		balances:    make(map[Address]*uint256.Int),
		totalSupply: uint256.NewInt(0),
	}
}

// WithBeforeChange sets the pre-mutation hook.
func (l *Ledger) WithBeforeChange(h Hook) *Ledger {
	l.beforeChange = h
	return l
}

// WithAfterChange sets the post-mutation hook.
func (l *Ledger) WithAfterChange(h Hook) *Ledger {
	l.afterChange = h
	return l
}

// WithNotifier sets the change notification sink.
func (l *Ledger) WithNotifier(n Notifier) *Ledger {
	l.notifier = n
	return l
}

// BalanceOf returns the balance of an account, zero for unknown accounts.
// The returned value is a copy.
func (l *Ledger) BalanceOf(account Address) *uint256.Int {
	if b, ok := l.balances[account]; ok {
		return new(uint256.Int).Set(b)
	}
	return uint256.NewInt(0)
}

// TotalSupply returns the current total supply. The returned value is a
// copy.
func (l *Ledger) TotalSupply() *uint256.Int {
	return new(uint256.Int).Set(l.totalSupply)
}

// Issue creates amount new tokens on account and grows the total supply.
// It fails with ErrInvalidAccount for the null identity and with
// ErrSupplyOverflow if the supply counter would wrap.
func (l *Ledger) Issue(account Address, amount *uint256.Int) error {
	if account.IsZero() {
		return ErrInvalidAccount
	}

	// Supply holds the sum of all balances, so checking the supply add
	// also covers the balance add.
	newSupply := new(uint256.Int)
	if _, overflow := newSupply.AddOverflow(l.totalSupply, amount); overflow {
		return ErrSupplyOverflow
	}

	if err := l.fireBefore(ZeroAddress, account, amount); err != nil {
		return err
	}

	prevSupply := l.totalSupply
	prevBalance, held := l.balances[account]

	newBalance := uint256.NewInt(0)
	if held {
		newBalance.Set(prevBalance)
	}
	newBalance.Add(newBalance, amount)

	l.totalSupply = newSupply
	l.balances[account] = newBalance

	if err := l.finish(ZeroAddress, account, amount); err != nil {
		l.totalSupply = prevSupply
		if held {
			l.balances[account] = prevBalance
		} else {
			delete(l.balances, account)
		}
		return err
	}
	return nil
}

// Destroy removes amount tokens from account and shrinks the total supply.
// It fails with ErrInvalidAccount for the null identity and with
// ErrInsufficientBalance when the account holds less than amount.
func (l *Ledger) Destroy(account Address, amount *uint256.Int) error {
	if account.IsZero() {
		return ErrInvalidAccount
	}

	prevBalance, held := l.balances[account]
	current := uint256.NewInt(0)
	if held {
		current.Set(prevBalance)
	}
	if current.Lt(amount) {
		return ErrInsufficientBalance
	}

	if err := l.fireBefore(account, ZeroAddress, amount); err != nil {
		return err
	}

	prevSupply := l.totalSupply

	// The sufficiency check above makes both subtractions safe; this path
	// carries no underflow guard.
	l.balances[account] = new(uint256.Int).Sub(current, amount)
	l.totalSupply = new(uint256.Int).Sub(prevSupply, amount)

	if err := l.finish(account, ZeroAddress, amount); err != nil {
		l.totalSupply = prevSupply
		if held {
			l.balances[account] = prevBalance
		} else {
			delete(l.balances, account)
		}
		return err
	}
	return nil
}

// CheckConservation verifies that total supply equals the sum of all
// account balances.
func (l *Ledger) CheckConservation() error {
	sum := uint256.NewInt(0)
	for _, b := range l.balances {
		sum.Add(sum, b)
	}
	if !sum.Eq(l.totalSupply) {
		return fmt.Errorf("%w: sum(balances)=%s totalSupply=%s",
			ErrConservationViolated, sum.Dec(), l.totalSupply.Dec())
	}
	return nil
}

func (l *Ledger) fireBefore(from, to Address, amount *uint256.Int) error {
	if l.beforeChange == nil {
		return nil
	}
	return l.beforeChange(from, to, amount)
}

// finish emits the change notification and runs the post-mutation hook.
// Callers roll back the mutation when it fails.
func (l *Ledger) finish(from, to Address, amount *uint256.Int) error {
	if l.notifier != nil {
		if err := l.notifier.LedgerChanged(from, to, amount); err != nil {
			return fmt.Errorf("token: notify ledger change: %w", err)
		}
	}
	if l.afterChange == nil {
		return nil
	}
	return l.afterChange(from, to, amount)
}
