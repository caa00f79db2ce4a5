package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// EventKind identifies the decoded shape of a log
type EventKind string

const (
	EventKindTokenTransfer EventKind = "token_transfer"
	EventKindSwap          EventKind = "swap"
	EventKindLiquidity     EventKind = "liquidity"
	EventKindUnrecognized  EventKind = "unrecognized"
)

// LiquidityDirection distinguishes deposits into and withdrawals from a pool
type LiquidityDirection string

const (
	LiquidityAdd    LiquidityDirection = "add"
	LiquidityRemove LiquidityDirection = "remove"
)

// DecodedEvent is the typed result of decoding a single raw log. Exactly one
// of Transfer/Swap/Liquidity is set according to Kind; unrecognized logs keep
// only their emitting address and topic0.
type DecodedEvent struct {
	Kind      EventKind       `json:"kind"`
	Address   common.Address  `json:"address"`
	Topic0    common.Hash     `json:"topic0"`
	Transfer  *TokenTransfer  `json:"transfer,omitempty"`
	Swap      *SwapEvent      `json:"swap,omitempty"`
	Liquidity *LiquidityEvent `json:"liquidity,omitempty"`
}

// TokenTransfer is a decoded ERC-20 or ERC-721 Transfer event. TokenID is
// set only for the 4-topic ERC-721 form; Amount is the raw amount scaled by
// the token's decimals (18 when the token is unknown to the registry).
type TokenTransfer struct {
	Token     common.Address  `json:"token"`
	From      common.Address  `json:"from"`
	To        common.Address  `json:"to"`
	RawAmount *big.Int        `json:"rawAmount"`
	Amount    decimal.Decimal `json:"amount"`
	TokenID   *big.Int        `json:"tokenId,omitempty"`
	Symbol    string          `json:"symbol,omitempty"`
}

// IsERC721 reports whether the transfer used the 4-topic NFT form
func (t *TokenTransfer) IsERC721() bool {
	return t.TokenID != nil
}

// SwapEvent is a decoded DEX pool Swap. The token legs travel as separate
// Transfer events; the swap log itself identifies the pool.
type SwapEvent struct {
	Pool common.Address `json:"pool"`
}

// LiquidityEvent is a decoded pool Mint or Burn
type LiquidityEvent struct {
	Pool      common.Address     `json:"pool"`
	Direction LiquidityDirection `json:"direction"`
}
