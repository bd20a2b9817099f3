package token

import "errors"

var (
	// Ledger errors
	ErrInvalidAccount      = errors.New("token: invalid account: null identity")
	ErrInsufficientBalance = errors.New("token: insufficient balance")
	ErrSupplyOverflow      = errors.New("token: total supply overflow")

	// Policy errors. ErrOperationNotAllowed marks entry points that exist in
	// the standard token surface but are disabled here; ErrUnsupportedAction
	// marks entry points that have no meaning at all in a soul-bound ledger.
	// Callers probing for allowance support see a different failure than
	// callers attempting a transfer.
	ErrOperationNotAllowed = errors.New("token: operation not allowed by transfer policy")
	ErrUnsupportedAction   = errors.New("token: action not supported by this ledger")

	// Invariant errors
	ErrConservationViolated = errors.New("token: conservation violated")
)
