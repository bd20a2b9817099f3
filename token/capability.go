package token

// CapabilityID is an opaque identifier for an interface standard the ledger
// may claim to support.
type CapabilityID [4]byte

// Capability identifiers registered at construction.
var (
	// CapIntrospection identifies the capability-introspection surface
	// itself (SupportsCapability).
	CapIntrospection = CapabilityID{0x01, 0xff, 0xc9, 0xa7}

	// CapLedger identifies the fungible-token ledger surface
	// (metadata, BalanceOf, TotalSupply).
	CapLedger = CapabilityID{0x36, 0x37, 0x2b, 0x07}
)

// RegisterCapability declares support for a capability identifier.
// Registration happens at construction time; capabilities are never
// removed.
func (t *Token) RegisterCapability(id CapabilityID) {
	t.caps[id] = struct{}{}
}

// SupportsCapability reports whether the ledger claims support for id.
// The zero identifier is never registered and always reports false.
func (t *Token) SupportsCapability(id CapabilityID) bool {
	_, ok := t.caps[id]
	return ok
}
