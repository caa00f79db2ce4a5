package events

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/txlens/base-tx-analyzer/pkg/registry"
	"github.com/txlens/base-tx-analyzer/pkg/types"
)

const (
	usdcAddress = "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913"
	fromAddress = "0x1111111111111111111111111111111111111111"
	toAddress   = "0x2222222222222222222222222222222222222222"
)

func newTestDecoder() *Decoder {
	return NewDecoder(registry.NewBaseMainnet(), nil)
}

// addressTopic zero-pads an address to a 32-byte topic word
func addressTopic(address string) string {
	return common.BytesToHash(common.HexToAddress(address).Bytes()).Hex()
}

func amountWord(amount *big.Int) string {
	return common.BigToHash(amount).Hex()
}

func transferLog(token string, amount *big.Int) types.RawLog {
	return types.RawLog{
		Address: token,
		Topics: []string{
			SigTransfer.Hex(),
			addressTopic(fromAddress),
			addressTopic(toAddress),
		},
		Data: amountWord(amount),
	}
}

func TestDecoder_DecodeLog_Transfer(t *testing.T) {
	d := newTestDecoder()

	amount := big.NewInt(2500000) // 2.5 USDC
	ev := d.DecodeLog(transferLog(usdcAddress, amount))

	require.Equal(t, types.EventKindTokenTransfer, ev.Kind)
	require.NotNil(t, ev.Transfer)
	assert.Equal(t, common.HexToAddress(usdcAddress), ev.Transfer.Token)
	assert.Equal(t, common.HexToAddress(fromAddress), ev.Transfer.From)
	assert.Equal(t, common.HexToAddress(toAddress), ev.Transfer.To)
	assert.Equal(t, amount, ev.Transfer.RawAmount)
	assert.Equal(t, "USDC", ev.Transfer.Symbol)
	assert.True(t, ev.Transfer.Amount.Equal(decimal.RequireFromString("2.5")))
	assert.Nil(t, ev.Transfer.TokenID)
}

func TestDecoder_DecodeLog_TransferDefaultsTo18Decimals(t *testing.T) {
	d := newTestDecoder()

	// 1 token of an unregistered 18-decimal ERC-20
	amount := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	ev := d.DecodeLog(transferLog("0x3333333333333333333333333333333333333333", amount))

	require.Equal(t, types.EventKindTokenTransfer, ev.Kind)
	assert.True(t, ev.Transfer.Amount.Equal(decimal.NewFromInt(1)))
	assert.Empty(t, ev.Transfer.Symbol)
}

func TestDecoder_DecodeLog_LargeAmountExact(t *testing.T) {
	d := newTestDecoder()

	// 10^30 raw units of a 6-decimal token must normalize without precision loss
	raw, ok := new(big.Int).SetString("1000000000000000000000000000000", 10)
	require.True(t, ok)

	ev := d.DecodeLog(transferLog(usdcAddress, raw))

	require.Equal(t, types.EventKindTokenTransfer, ev.Kind)
	assert.Equal(t, raw, ev.Transfer.RawAmount)
	assert.True(t, ev.Transfer.Amount.Equal(decimal.RequireFromString("1000000000000000000000000")))
}

func TestDecoder_DecodeLog_ERC721Transfer(t *testing.T) {
	d := newTestDecoder()

	tokenID := big.NewInt(7331)
	ev := d.DecodeLog(types.RawLog{
		Address: "0x4444444444444444444444444444444444444444",
		Topics: []string{
			SigTransfer.Hex(),
			addressTopic(fromAddress),
			addressTopic(toAddress),
			common.BigToHash(tokenID).Hex(),
		},
		Data: "0x",
	})

	require.Equal(t, types.EventKindTokenTransfer, ev.Kind)
	require.NotNil(t, ev.Transfer.TokenID)
	assert.Equal(t, tokenID, ev.Transfer.TokenID)
	assert.True(t, ev.Transfer.IsERC721())
	assert.Equal(t, big.NewInt(1), ev.Transfer.RawAmount)
}

func TestDecoder_DecodeLog_SwapEvents(t *testing.T) {
	d := newTestDecoder()
	pool := "0x6666666666666666666666666666666666666666"

	for _, topic0 := range []common.Hash{SigSwapV2, SigSwapV3} {
		ev := d.DecodeLog(types.RawLog{
			Address: pool,
			Topics:  []string{topic0.Hex()},
			Data:    "0x",
		})
		require.Equal(t, types.EventKindSwap, ev.Kind)
		require.NotNil(t, ev.Swap)
		assert.Equal(t, common.HexToAddress(pool), ev.Swap.Pool)
		assert.Equal(t, topic0, ev.Topic0)
	}
}

func TestDecoder_DecodeLog_SwapInvalidAddressDegrades(t *testing.T) {
	d := newTestDecoder()

	ev := d.DecodeLog(types.RawLog{
		Address: "not-an-address",
		Topics:  []string{SigSwapV3.Hex()},
		Data:    "0x",
	})
	assert.Equal(t, types.EventKindUnrecognized, ev.Kind)
	assert.Nil(t, ev.Swap)
}

func TestDecoder_DecodeLog_LiquidityEvents(t *testing.T) {
	d := newTestDecoder()
	pool := "0x5555555555555555555555555555555555555555"

	tests := []struct {
		name          string
		topic0        common.Hash
		wantDirection types.LiquidityDirection
	}{
		{"v2 mint", SigMintV2, types.LiquidityAdd},
		{"v2 burn", SigBurnV2, types.LiquidityRemove},
		{"v3 mint", SigMintV3, types.LiquidityAdd},
		{"v3 burn", SigBurnV3, types.LiquidityRemove},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := d.DecodeLog(types.RawLog{
				Address: pool,
				Topics:  []string{tt.topic0.Hex()},
				Data:    "0x",
			})
			require.Equal(t, types.EventKindLiquidity, ev.Kind)
			require.NotNil(t, ev.Liquidity)
			assert.Equal(t, common.HexToAddress(pool), ev.Liquidity.Pool)
			assert.Equal(t, tt.wantDirection, ev.Liquidity.Direction)
		})
	}
}

func TestDecoder_DecodeLog_MalformedInputDegrades(t *testing.T) {
	d := newTestDecoder()

	tests := []struct {
		name string
		log  types.RawLog
	}{
		{
			name: "no topics",
			log:  types.RawLog{Address: usdcAddress, Topics: nil, Data: "0x"},
		},
		{
			name: "unknown signature",
			log: types.RawLog{
				Address: usdcAddress,
				Topics:  []string{"0x0000000000000000000000000000000000000000000000000000000000000001"},
				Data:    "0x",
			},
		},
		{
			name: "transfer with too few topics",
			log: types.RawLog{
				Address: usdcAddress,
				Topics:  []string{SigTransfer.Hex(), addressTopic(fromAddress)},
				Data:    amountWord(big.NewInt(1)),
			},
		},
		{
			name: "transfer with short from topic",
			log: types.RawLog{
				Address: usdcAddress,
				Topics:  []string{SigTransfer.Hex(), "0x1111", addressTopic(toAddress)},
				Data:    amountWord(big.NewInt(1)),
			},
		},
		{
			name: "transfer with non-hex topic",
			log: types.RawLog{
				Address: usdcAddress,
				Topics:  []string{SigTransfer.Hex(), "0xzzzz", addressTopic(toAddress)},
				Data:    amountWord(big.NewInt(1)),
			},
		},
		{
			name: "transfer with truncated data",
			log: types.RawLog{
				Address: usdcAddress,
				Topics:  []string{SigTransfer.Hex(), addressTopic(fromAddress), addressTopic(toAddress)},
				Data:    "0x01",
			},
		},
		{
			name: "transfer with invalid contract address",
			log: types.RawLog{
				Address: "not-an-address",
				Topics:  []string{SigTransfer.Hex(), addressTopic(fromAddress), addressTopic(toAddress)},
				Data:    amountWord(big.NewInt(1)),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				ev := d.DecodeLog(tt.log)
				assert.Equal(t, types.EventKindUnrecognized, ev.Kind)
				assert.Nil(t, ev.Transfer)
				assert.Nil(t, ev.Liquidity)
			})
		})
	}
}

func TestDecoder_DecodeLogs_PreservesOrder(t *testing.T) {
	d := newTestDecoder()

	logs := []types.RawLog{
		transferLog(usdcAddress, big.NewInt(100)),
		{Address: usdcAddress, Topics: []string{"0x00000000000000000000000000000000000000000000000000000000000000aa"}, Data: "0x"},
		transferLog("0x4200000000000000000000000000000000000006", big.NewInt(200)),
	}

	decoded := d.DecodeLogs(logs)
	require.Len(t, decoded, 3)
	assert.Equal(t, types.EventKindTokenTransfer, decoded[0].Kind)
	assert.Equal(t, types.EventKindUnrecognized, decoded[1].Kind)
	assert.Equal(t, types.EventKindTokenTransfer, decoded[2].Kind)
	assert.Equal(t, "WETH", decoded[2].Transfer.Symbol)
}

func TestDecoder_UnrecognizedKeepsTopic0(t *testing.T) {
	d := newTestDecoder()

	ev := d.DecodeLog(types.RawLog{
		Address: "0x49048044D57e1C92A77f79988d21Fa8fAF74E97e",
		Topics:  []string{SigWithdrawalProven.Hex()},
		Data:    "0x",
	})

	assert.Equal(t, types.EventKindUnrecognized, ev.Kind)
	assert.Equal(t, SigWithdrawalProven, ev.Topic0)
}
