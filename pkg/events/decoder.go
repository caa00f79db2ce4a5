package events

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/txlens/base-tx-analyzer/pkg/registry"
	"github.com/txlens/base-tx-analyzer/pkg/types"
)

const defaultTokenDecimals = 18

// Decoder turns raw event logs into typed events. Chain log data comes from
// arbitrary third-party contracts, so every structural defect degrades to an
// Unrecognized event instead of an error.
type Decoder struct {
	registry *registry.Registry
	logger   *zap.Logger
}

// NewDecoder creates a decoder backed by the given address registry
func NewDecoder(reg *registry.Registry, logger *zap.Logger) *Decoder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Decoder{registry: reg, logger: logger}
}

// DecodeLogs decodes a log list in a single pass. The output has one entry
// per input log, in input order.
func (d *Decoder) DecodeLogs(logs []types.RawLog) []types.DecodedEvent {
	out := make([]types.DecodedEvent, 0, len(logs))
	for _, log := range logs {
		out = append(out, d.DecodeLog(log))
	}
	return out
}

// DecodeLog decodes a single raw log. It never panics and never returns an
// error; anything it cannot validate comes back as Unrecognized.
func (d *Decoder) DecodeLog(log types.RawLog) types.DecodedEvent {
	base := d.unrecognized(log)
	if len(log.Topics) == 0 {
		return base
	}

	topic0, ok := parseTopic(log.Topics[0])
	if !ok {
		return base
	}

	switch {
	case topic0 == SigTransfer:
		if ev, ok := d.decodeTransfer(log, base); ok {
			return ev
		}
	case IsSwapSignature(topic0):
		if ev, ok := d.decodeSwap(log, base, topic0); ok {
			return ev
		}
	case IsLiquiditySignature(topic0):
		if ev, ok := d.decodeLiquidity(log, base, topic0); ok {
			return ev
		}
	}
	return base
}

// decodeTransfer handles both Transfer forms: 3 topics with a 32-byte amount
// word in data (ERC-20), or 4 topics with the token id in topics[3] and no
// data (ERC-721).
func (d *Decoder) decodeTransfer(log types.RawLog, base types.DecodedEvent) (types.DecodedEvent, bool) {
	if len(log.Topics) != 3 && len(log.Topics) != 4 {
		return base, false
	}
	if !common.IsHexAddress(log.Address) {
		return base, false
	}
	token := common.HexToAddress(log.Address)

	fromTopic, ok := parseTopic(log.Topics[1])
	if !ok {
		return base, false
	}
	toTopic, ok := parseTopic(log.Topics[2])
	if !ok {
		return base, false
	}

	transfer := &types.TokenTransfer{
		Token: token,
		From:  topicAddress(fromTopic),
		To:    topicAddress(toTopic),
	}

	if len(log.Topics) == 4 {
		// ERC-721: amount is implicitly one, topics[3] is the token id
		id, ok := parseTopic(log.Topics[3])
		if !ok {
			return base, false
		}
		transfer.TokenID = new(big.Int).SetBytes(id.Bytes())
		transfer.RawAmount = big.NewInt(1)
		transfer.Amount = decimal.NewFromInt(1)
	} else {
		raw, ok := parseDataWord(log.Data)
		if !ok {
			return base, false
		}
		transfer.RawAmount = raw
		transfer.Amount = d.normalize(token, raw)
	}

	if entry, known := d.registry.Lookup(log.Address); known {
		transfer.Symbol = entry.Symbol
	}

	return types.DecodedEvent{
		Kind:     types.EventKindTokenTransfer,
		Address:  token,
		Topic0:   SigTransfer,
		Transfer: transfer,
	}, true
}

func (d *Decoder) decodeSwap(log types.RawLog, base types.DecodedEvent, topic0 common.Hash) (types.DecodedEvent, bool) {
	if !common.IsHexAddress(log.Address) {
		return base, false
	}
	pool := common.HexToAddress(log.Address)
	return types.DecodedEvent{
		Kind:    types.EventKindSwap,
		Address: pool,
		Topic0:  topic0,
		Swap:    &types.SwapEvent{Pool: pool},
	}, true
}

func (d *Decoder) decodeLiquidity(log types.RawLog, base types.DecodedEvent, topic0 common.Hash) (types.DecodedEvent, bool) {
	if !common.IsHexAddress(log.Address) {
		return base, false
	}
	shape := liquiditySignatures[topic0]
	direction := types.LiquidityAdd
	if shape.direction == "remove" {
		direction = types.LiquidityRemove
	}
	pool := common.HexToAddress(log.Address)
	return types.DecodedEvent{
		Kind:    types.EventKindLiquidity,
		Address: pool,
		Topic0:  topic0,
		Liquidity: &types.LiquidityEvent{
			Pool:      pool,
			Direction: direction,
		},
	}, true
}

// normalize scales a raw token amount by the token's decimals, defaulting to
// 18 when the token is unknown. decimal arithmetic keeps amounts beyond
// 2^53 exact.
func (d *Decoder) normalize(token common.Address, raw *big.Int) decimal.Decimal {
	decimals := int32(defaultTokenDecimals)
	if entry, ok := d.registry.Lookup(token.Hex()); ok && entry.Category == registry.CategoryToken {
		decimals = entry.Decimals
	}
	return decimal.NewFromBigInt(raw, -decimals)
}

// unrecognized builds the fallback event, keeping whatever identifying
// fields parse cleanly so the classifier can still scan topic0.
func (d *Decoder) unrecognized(log types.RawLog) types.DecodedEvent {
	ev := types.DecodedEvent{Kind: types.EventKindUnrecognized}
	if common.IsHexAddress(log.Address) {
		ev.Address = common.HexToAddress(log.Address)
	}
	if len(log.Topics) > 0 {
		if topic0, ok := parseTopic(log.Topics[0]); ok {
			ev.Topic0 = topic0
		}
	}
	return ev
}

// parseTopic validates a 0x-prefixed 32-byte hex word
func parseTopic(s string) (common.Hash, bool) {
	b, err := hexutil.Decode(s)
	if err != nil || len(b) != common.HashLength {
		return common.Hash{}, false
	}
	return common.BytesToHash(b), true
}

// topicAddress extracts the trailing 20 bytes of a 32-byte topic word
func topicAddress(h common.Hash) common.Address {
	return common.BytesToAddress(h.Bytes()[common.HashLength-common.AddressLength:])
}

// parseDataWord parses the single 32-byte big-endian amount word of an
// ERC-20 Transfer
func parseDataWord(s string) (*big.Int, bool) {
	b, err := hexutil.Decode(s)
	if err != nil || len(b) != common.HashLength {
		return nil, false
	}
	return new(big.Int).SetBytes(b), true
}
