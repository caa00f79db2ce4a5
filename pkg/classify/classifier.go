package classify

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/txlens/base-tx-analyzer/pkg/events"
	"github.com/txlens/base-tx-analyzer/pkg/registry"
	"github.com/txlens/base-tx-analyzer/pkg/types"
)

// Classifier assigns each transaction exactly one category from the decoded
// event list, the destination address, and the static address registry.
// Rules are evaluated in a fixed order and the first match wins.
type Classifier struct {
	registry *registry.Registry
}

// NewClassifier creates a classifier backed by the given registry
func NewClassifier(reg *registry.Registry) *Classifier {
	return &Classifier{registry: reg}
}

// Classify is total: every well-formed context yields a category. It is a
// pure function of the context and the immutable registry.
func (c *Classifier) Classify(ctx types.TransactionContext) types.ClassificationResult {
	if ctx.To == nil {
		return result(types.CategoryContractDeployment, "contract_creation")
	}

	entry, known := c.registry.Lookup(ctx.To.Hex())
	transfers := tokenTransfers(ctx.Events)

	if known {
		switch entry.Category {
		case registry.CategoryBridge:
			return c.classifyBridge(entry, ctx)
		case registry.CategoryRouter, registry.CategoryFactory:
			if distinctTokens(transfers) > 1 {
				return result(types.CategorySwap, "known_router", "multi_token_transfer")
			}
			if hasSwapEvent(ctx.Events) {
				return result(types.CategorySwap, "known_router", "swap_signature")
			}
			if hasLiquidityEvent(ctx.Events) {
				return result(types.CategoryLiquidity, "known_router", "liquidity_signature")
			}
		case registry.CategoryMarketplace:
			if hasNFTTransfer(transfers) {
				return result(types.CategoryNFTTrade, "known_marketplace", "erc721_transfer")
			}
		case registry.CategoryYield:
			return result(types.CategoryYield, "known_yield_protocol")
		}
	}

	if ctx.Value != nil && ctx.Value.Sign() > 0 && len(ctx.Events) == 0 {
		return result(types.CategoryTransfer, "native_transfer")
	}
	if len(transfers) == 1 {
		return result(types.CategoryTransfer, "single_token_transfer")
	}
	if len(transfers) > 1 {
		return result(types.CategoryDefiSwap, "multi_token_transfer")
	}
	if ctx.LogCount > 0 {
		return result(types.CategoryContractInteraction, "unclassified_logs")
	}
	return result(types.CategoryUnknown, "no_signals")
}

// classifyBridge maps the matched bridge contract to a phase. The portal
// handles both the prove and finalize steps of a withdrawal; a
// WithdrawalProven topic among the logs marks the prove step.
func (c *Classifier) classifyBridge(entry registry.Entry, ctx types.TransactionContext) types.ClassificationResult {
	switch entry.BridgeRole {
	case registry.BridgeRoleDeposit:
		return result(types.CategoryBridgeDeposit, "bridge_deposit_contract")
	case registry.BridgeRoleWithdrawal:
		return result(types.CategoryBridgeWithdrawal, "bridge_withdrawal_contract")
	case registry.BridgeRolePortal:
		if hasTopic(ctx.Events, events.SigWithdrawalProven) {
			return result(types.CategoryBridgeProve, "bridge_portal_contract", "withdrawal_proven_topic")
		}
		return result(types.CategoryBridgeFinalize, "bridge_portal_contract")
	}
	return result(types.CategoryBridgeDeposit, "bridge_contract")
}

func result(category types.Category, factors ...string) types.ClassificationResult {
	return types.ClassificationResult{Category: category, ConfidenceFactors: factors}
}

func tokenTransfers(evs []types.DecodedEvent) []*types.TokenTransfer {
	var out []*types.TokenTransfer
	for i := range evs {
		if evs[i].Kind == types.EventKindTokenTransfer && evs[i].Transfer != nil {
			out = append(out, evs[i].Transfer)
		}
	}
	return out
}

func distinctTokens(transfers []*types.TokenTransfer) int {
	seen := make(map[common.Address]struct{}, len(transfers))
	for _, t := range transfers {
		seen[t.Token] = struct{}{}
	}
	return len(seen)
}

func hasSwapEvent(evs []types.DecodedEvent) bool {
	for i := range evs {
		if evs[i].Kind == types.EventKindSwap {
			return true
		}
	}
	return false
}

func hasLiquidityEvent(evs []types.DecodedEvent) bool {
	for i := range evs {
		if evs[i].Kind == types.EventKindLiquidity {
			return true
		}
	}
	return false
}

func hasNFTTransfer(transfers []*types.TokenTransfer) bool {
	for _, t := range transfers {
		if t.IsERC721() {
			return true
		}
	}
	return false
}

func hasTopic(evs []types.DecodedEvent, topic common.Hash) bool {
	for i := range evs {
		if evs[i].Topic0 == topic {
			return true
		}
	}
	return false
}
