package types

// Category is the economic classification assigned to a transaction
type Category string

const (
	CategoryContractDeployment  Category = "contract_deployment"
	CategoryBridgeDeposit       Category = "bridge_deposit"
	CategoryBridgeWithdrawal    Category = "bridge_withdrawal"
	CategoryBridgeProve         Category = "bridge_prove"
	CategoryBridgeFinalize      Category = "bridge_finalize"
	CategorySwap                Category = "swap"
	CategoryLiquidity           Category = "liquidity"
	CategoryNFTTrade            Category = "nft_trade"
	CategoryYield               Category = "yield"
	CategoryTransfer            Category = "transfer"
	CategoryDefiSwap            Category = "defi_swap"
	CategoryContractInteraction Category = "contract_interaction"
	CategoryUnknown             Category = "unknown"
)

// ClassificationResult pairs the assigned category with the names of the
// rules that fired, in evaluation order
type ClassificationResult struct {
	Category          Category `json:"category"`
	ConfidenceFactors []string `json:"confidenceFactors,omitempty"`
}
