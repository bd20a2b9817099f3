package token

import (
	"errors"
	"testing"

	"github.com/holiman/uint256"
)

func addr(b byte) Address {
	var a Address
	a[AddressLength-1] = b
	return a
}

func TestIssue(t *testing.T) {
	t.Run("Accumulates", func(t *testing.T) {
		l := NewLedger()
		alice := addr(0xa1)

		if err := l.Issue(alice, uint256.NewInt(40)); err != nil {
			t.Fatalf("issue failed: %v", err)
		}
		if err := l.Issue(alice, uint256.NewInt(60)); err != nil {
			t.Fatalf("issue failed: %v", err)
		}

		if got := l.BalanceOf(alice); !got.Eq(uint256.NewInt(100)) {
			t.Errorf("expected balance 100, got %s", got.Dec())
		}
		if got := l.TotalSupply(); !got.Eq(uint256.NewInt(100)) {
			t.Errorf("expected supply 100, got %s", got.Dec())
		}
	})

	t.Run("NullIdentity", func(t *testing.T) {
		l := NewLedger()
		err := l.Issue(ZeroAddress, uint256.NewInt(1))
		if !errors.Is(err, ErrInvalidAccount) {
			t.Errorf("expected ErrInvalidAccount, got: %v", err)
		}
		if !l.TotalSupply().IsZero() {
			t.Errorf("supply changed after failed issue: %s", l.TotalSupply().Dec())
		}
	})

	t.Run("SupplyOverflow", func(t *testing.T) {
		l := NewLedger()
		alice := addr(0xa1)
		bob := addr(0xb0)

		max := new(uint256.Int).SetAllOne()
		if err := l.Issue(alice, max); err != nil {
			t.Fatalf("issue failed: %v", err)
		}

		err := l.Issue(bob, uint256.NewInt(1))
		if !errors.Is(err, ErrSupplyOverflow) {
			t.Errorf("expected ErrSupplyOverflow, got: %v", err)
		}
		if !l.BalanceOf(bob).IsZero() {
			t.Errorf("balance changed after failed issue: %s", l.BalanceOf(bob).Dec())
		}
		if !l.TotalSupply().Eq(max) {
			t.Errorf("supply changed after failed issue: %s", l.TotalSupply().Dec())
		}
	})

	t.Run("UnknownAccountReadsZero", func(t *testing.T) {
		l := NewLedger()
		if got := l.BalanceOf(addr(0x99)); !got.IsZero() {
			t.Errorf("expected 0 for unknown account, got %s", got.Dec())
		}
	})
}

func TestDestroy(t *testing.T) {
	t.Run("Insufficient", func(t *testing.T) {
		l := NewLedger()
		alice := addr(0xa1)

		if err := l.Issue(alice, uint256.NewInt(100)); err != nil {
			t.Fatalf("issue failed: %v", err)
		}

		err := l.Destroy(alice, uint256.NewInt(101))
		if !errors.Is(err, ErrInsufficientBalance) {
			t.Errorf("expected ErrInsufficientBalance, got: %v", err)
		}
		if got := l.BalanceOf(alice); !got.Eq(uint256.NewInt(100)) {
			t.Errorf("balance changed after failed destroy: %s", got.Dec())
		}
		if got := l.TotalSupply(); !got.Eq(uint256.NewInt(100)) {
			t.Errorf("supply changed after failed destroy: %s", got.Dec())
		}
	})

	t.Run("NullIdentity", func(t *testing.T) {
		l := NewLedger()
		err := l.Destroy(ZeroAddress, uint256.NewInt(0))
		if !errors.Is(err, ErrInvalidAccount) {
			t.Errorf("expected ErrInvalidAccount, got: %v", err)
		}
	})

	t.Run("ZeroFromUnknownAccount", func(t *testing.T) {
		l := NewLedger()
		if err := l.Destroy(addr(0x99), uint256.NewInt(0)); err != nil {
			t.Errorf("destroying zero should succeed, got: %v", err)
		}
	})

	t.Run("RoundTrip", func(t *testing.T) {
		l := NewLedger()
		alice := addr(0xa1)

		if err := l.Issue(alice, uint256.NewInt(100)); err != nil {
			t.Fatalf("issue failed: %v", err)
		}
		if err := l.Destroy(alice, uint256.NewInt(100)); err != nil {
			t.Fatalf("destroy failed: %v", err)
		}

		if !l.BalanceOf(alice).IsZero() {
			t.Errorf("expected balance 0 after round trip, got %s", l.BalanceOf(alice).Dec())
		}
		if !l.TotalSupply().IsZero() {
			t.Errorf("expected supply 0 after round trip, got %s", l.TotalSupply().Dec())
		}
	})
}

type change struct {
	from, to Address
	amount   *uint256.Int
}

type recordingNotifier struct {
	changes []change
	fail    error
}

func (n *recordingNotifier) LedgerChanged(from, to Address, amount *uint256.Int) error {
	if n.fail != nil {
		return n.fail
	}
	n.changes = append(n.changes, change{from, to, new(uint256.Int).Set(amount)})
	return nil
}

func TestNotifications(t *testing.T) {
	t.Run("TagsEndpoints", func(t *testing.T) {
		n := &recordingNotifier{}
		l := NewLedger().WithNotifier(n)
		alice := addr(0xa1)

		if err := l.Issue(alice, uint256.NewInt(10)); err != nil {
			t.Fatalf("issue failed: %v", err)
		}
		if err := l.Destroy(alice, uint256.NewInt(4)); err != nil {
			t.Fatalf("destroy failed: %v", err)
		}

		if len(n.changes) != 2 {
			t.Fatalf("expected 2 notifications, got %d", len(n.changes))
		}
		if n.changes[0].from != ZeroAddress || n.changes[0].to != alice {
			t.Errorf("issue notification endpoints wrong: from=%s to=%s",
				n.changes[0].from, n.changes[0].to)
		}
		if n.changes[1].from != alice || n.changes[1].to != ZeroAddress {
			t.Errorf("destroy notification endpoints wrong: from=%s to=%s",
				n.changes[1].from, n.changes[1].to)
		}
	})

	t.Run("FailureRollsBack", func(t *testing.T) {
		sinkErr := errors.New("sink unavailable")
		n := &recordingNotifier{fail: sinkErr}
		l := NewLedger().WithNotifier(n)
		alice := addr(0xa1)

		err := l.Issue(alice, uint256.NewInt(10))
		if !errors.Is(err, sinkErr) {
			t.Fatalf("expected notifier error, got: %v", err)
		}
		if !l.BalanceOf(alice).IsZero() {
			t.Errorf("balance changed after notifier failure: %s", l.BalanceOf(alice).Dec())
		}
		if !l.TotalSupply().IsZero() {
			t.Errorf("supply changed after notifier failure: %s", l.TotalSupply().Dec())
		}
	})
}

func TestHooks(t *testing.T) {
	t.Run("OrderAndEndpoints", func(t *testing.T) {
		var calls []string
		l := NewLedger().
			WithBeforeChange(func(from, to Address, amount *uint256.Int) error {
				calls = append(calls, "before")
				if !from.IsZero() && !to.IsZero() {
					t.Error("neither endpoint is the null identity")
				}
				return nil
			}).
			WithAfterChange(func(from, to Address, amount *uint256.Int) error {
				calls = append(calls, "after")
				return nil
			})

		if err := l.Issue(addr(0xa1), uint256.NewInt(5)); err != nil {
			t.Fatalf("issue failed: %v", err)
		}
		if len(calls) != 2 || calls[0] != "before" || calls[1] != "after" {
			t.Errorf("expected [before after], got %v", calls)
		}
	})

	t.Run("BeforeHookAborts", func(t *testing.T) {
		denied := errors.New("account not whitelisted")
		l := NewLedger().WithBeforeChange(func(from, to Address, amount *uint256.Int) error {
			return denied
		})

		err := l.Issue(addr(0xa1), uint256.NewInt(5))
		if !errors.Is(err, denied) {
			t.Fatalf("expected hook error, got: %v", err)
		}
		if !l.TotalSupply().IsZero() {
			t.Errorf("supply changed after aborted issue: %s", l.TotalSupply().Dec())
		}
	})

	t.Run("AfterHookRollsBack", func(t *testing.T) {
		alice := addr(0xa1)
		boom := errors.New("post check failed")

		l := NewLedger()
		if err := l.Issue(alice, uint256.NewInt(50)); err != nil {
			t.Fatalf("issue failed: %v", err)
		}

		l.WithAfterChange(func(from, to Address, amount *uint256.Int) error {
			return boom
		})
		err := l.Destroy(alice, uint256.NewInt(20))
		if !errors.Is(err, boom) {
			t.Fatalf("expected hook error, got: %v", err)
		}
		if got := l.BalanceOf(alice); !got.Eq(uint256.NewInt(50)) {
			t.Errorf("balance changed after rolled-back destroy: %s", got.Dec())
		}
		if got := l.TotalSupply(); !got.Eq(uint256.NewInt(50)) {
			t.Errorf("supply changed after rolled-back destroy: %s", got.Dec())
		}
		if err := l.CheckConservation(); err != nil {
			t.Errorf("conservation broken after rollback: %v", err)
		}
	})
}

func TestConservation(t *testing.T) {
	l := NewLedger()
	accounts := []Address{addr(0x01), addr(0x02), addr(0x03)}

	for i, a := range accounts {
		if err := l.Issue(a, uint256.NewInt(uint64(100*(i+1)))); err != nil {
			t.Fatalf("issue failed: %v", err)
		}
	}
	if err := l.Destroy(accounts[1], uint256.NewInt(50)); err != nil {
		t.Fatalf("destroy failed: %v", err)
	}

	if err := l.CheckConservation(); err != nil {
		t.Errorf("conservation check failed: %v", err)
	}
	if got := l.TotalSupply(); !got.Eq(uint256.NewInt(550)) {
		t.Errorf("expected supply 550, got %s", got.Dec())
	}
}

func TestExperienceScenario(t *testing.T) {
	tok := New("Experience", "EXP")
	alice := addr(0xa1)

	if err := tok.Issue(alice, uint256.NewInt(1000)); err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if got := tok.BalanceOf(alice); !got.Eq(uint256.NewInt(1000)) {
		t.Errorf("expected balance 1000, got %s", got.Dec())
	}
	if got := tok.TotalSupply(); !got.Eq(uint256.NewInt(1000)) {
		t.Errorf("expected supply 1000, got %s", got.Dec())
	}

	if err := tok.Destroy(alice, uint256.NewInt(400)); err != nil {
		t.Fatalf("destroy failed: %v", err)
	}
	if got := tok.BalanceOf(alice); !got.Eq(uint256.NewInt(600)) {
		t.Errorf("expected balance 600, got %s", got.Dec())
	}
	if got := tok.TotalSupply(); !got.Eq(uint256.NewInt(600)) {
		t.Errorf("expected supply 600, got %s", got.Dec())
	}

	err := tok.Destroy(alice, uint256.NewInt(601))
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got: %v", err)
	}
	if got := tok.BalanceOf(alice); !got.Eq(uint256.NewInt(600)) {
		t.Errorf("expected balance unchanged at 600, got %s", got.Dec())
	}
	if got := tok.TotalSupply(); !got.Eq(uint256.NewInt(600)) {
		t.Errorf("expected supply unchanged at 600, got %s", got.Dec())
	}
}
