package token

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// AddressLength is the byte length of an account identity.
const AddressLength = 20

// Address is an account identity in the ledger.
type Address [AddressLength]byte

// ZeroAddress is the null identity. It can never hold a balance; issue and
// destroy reject it.
var ZeroAddress = Address{}

// ParseAddress decodes a hex string, with or without 0x prefix, into an
// Address.
func ParseAddress(s string) (Address, error) {
	var a Address
	raw := strings.TrimPrefix(s, "0x")
	b, err := hex.DecodeString(raw)
	if err != nil {
		return a, fmt.Errorf("token: invalid address %q: %w", s, err)
	}
	if len(b) != AddressLength {
		return a, fmt.Errorf("token: invalid address %q: %d bytes, want %d", s, len(b), AddressLength)
	}
	copy(a[:], b)
	return a, nil
}

// Hex returns the 0x-prefixed hex form of the address.
func (a Address) Hex() string {
	return "0x" + hex.EncodeToString(a[:])
}

// IsZero reports whether the address is the null identity.
func (a Address) IsZero() bool {
	return a == ZeroAddress
}

func (a Address) String() string {
	return a.Hex()
}
