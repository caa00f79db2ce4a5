package events

import (
	"github.com/ethereum/go-ethereum/common"
)

// Event signatures (keccak256 of the canonical event declaration) recognized
// by the decoder. Transfer is shared by ERC-20 and ERC-721; the two are told
// apart by topic count.
var (
	// Transfer(address,address,uint256)
	SigTransfer = common.HexToHash("0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef")

	// Swap(address,uint256,uint256,uint256,uint256,address) emitted by V2 pairs
	SigSwapV2 = common.HexToHash("0xd78ad95fa46c994b6551d0da85fc275fe613ce37657fb8d5e3d130840159d822")
	// Swap(address,address,int256,int256,uint160,uint128,int24) emitted by V3 pools
	SigSwapV3 = common.HexToHash("0xc42079f94a6350d7e6235f29174924f928cc2ac818eb64fed8004e115fbcca67")

	// Mint(address,uint256,uint256) emitted by V2 pairs
	SigMintV2 = common.HexToHash("0x4c209b5fc8ad50758f13e2e1088ba56a560dff690a1c6fef26394f4c03821c4f")
	// Burn(address,uint256,uint256,address) emitted by V2 pairs
	SigBurnV2 = common.HexToHash("0xdccd412f0b1252819cb1fd330b93224ca42612892bb3f4f789976e6d81936496")
	// Mint(address,address,int24,int24,uint128,uint256,uint256) emitted by V3 pools
	SigMintV3 = common.HexToHash("0x7a53080ba414158be7ec69b987b5fb7d07dee101fe85488f0853ae16239d0bde")
	// Burn(address,int24,int24,uint128,uint256,uint256) emitted by V3 pools
	SigBurnV3 = common.HexToHash("0x0c396cd989a39f4459b5fa1aed6a9a8dcdbc45908acfd67e028cd568da98982c")

	// WithdrawalProven(bytes32,address,address) emitted by the OptimismPortal
	SigWithdrawalProven = common.HexToHash("0x67a6208cfcc0801d50f6cbe764733f4fddf66ac0b04442061a8a8c0cb6b63f62")
	// WithdrawalFinalized(bytes32,bool) emitted by the OptimismPortal
	SigWithdrawalFinalized = common.HexToHash("0xdb5c7652857aa163daadd670e116628fb42e869d8ac4251ef8971d9e5727df1b")
)

// liquiditySignatures maps pool Mint/Burn topics to a liquidity direction
var liquiditySignatures = map[common.Hash]liquidityShape{
	SigMintV2: {direction: "add"},
	SigBurnV2: {direction: "remove"},
	SigMintV3: {direction: "add"},
	SigBurnV3: {direction: "remove"},
}

type liquidityShape struct {
	direction string
}

// IsSwapSignature reports whether topic0 is a known DEX swap event
func IsSwapSignature(topic0 common.Hash) bool {
	return topic0 == SigSwapV2 || topic0 == SigSwapV3
}

// IsLiquiditySignature reports whether topic0 is a known pool Mint or Burn
func IsLiquiditySignature(topic0 common.Hash) bool {
	_, ok := liquiditySignatures[topic0]
	return ok
}
