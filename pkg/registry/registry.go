package registry

import (
	"strings"
)

// AddressCategory groups known contracts by the role they play on chain
type AddressCategory string

const (
	CategoryToken       AddressCategory = "token"
	CategoryRouter      AddressCategory = "router"
	CategoryFactory     AddressCategory = "factory"
	CategoryBridge      AddressCategory = "bridge"
	CategoryMarketplace AddressCategory = "marketplace"
	CategoryYield       AddressCategory = "yield"
)

// BridgeRole distinguishes the contracts of the canonical bridge
type BridgeRole string

const (
	BridgeRoleDeposit    BridgeRole = "deposit"
	BridgeRoleWithdrawal BridgeRole = "withdrawal"
	BridgeRolePortal     BridgeRole = "portal"
)

// Entry is the static metadata recorded for a known contract address
type Entry struct {
	Address    string          `json:"address"`
	Symbol     string          `json:"symbol"`
	Decimals   int32           `json:"decimals"`
	Category   AddressCategory `json:"category"`
	Protocol   string          `json:"protocol,omitempty"`
	BridgeRole BridgeRole      `json:"bridgeRole,omitempty"`
}

// Registry is an immutable lookup table from contract address to metadata.
// It is populated once at construction and safe for concurrent reads.
type Registry struct {
	byAddress map[string]Entry
	ordered   []Entry
}

// New builds a registry from the given entries. Addresses are keyed
// lower-cased so lookups are case-insensitive; later duplicates win.
func New(entries []Entry) *Registry {
	r := &Registry{
		byAddress: make(map[string]Entry, len(entries)),
		ordered:   make([]Entry, 0, len(entries)),
	}
	for _, e := range entries {
		key := strings.ToLower(e.Address)
		if _, dup := r.byAddress[key]; !dup {
			r.ordered = append(r.ordered, e)
		}
		r.byAddress[key] = e
	}
	return r
}

// NewBaseMainnet builds the registry preloaded with the Base mainnet table
func NewBaseMainnet() *Registry {
	return New(baseMainnetEntries)
}

// Lookup returns the entry for the address, matching case-insensitively.
// Most addresses are unknown; absence is an expected outcome, not an error.
func (r *Registry) Lookup(address string) (Entry, bool) {
	e, ok := r.byAddress[strings.ToLower(address)]
	return e, ok
}

// EntriesByCategory returns all entries of a category in insertion order
func (r *Registry) EntriesByCategory(category AddressCategory) []Entry {
	var out []Entry
	for _, e := range r.ordered {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of distinct registered addresses
func (r *Registry) Len() int {
	return len(r.byAddress)
}
