package analyzer

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/txlens/base-tx-analyzer/pkg/classify"
	"github.com/txlens/base-tx-analyzer/pkg/events"
	"github.com/txlens/base-tx-analyzer/pkg/registry"
	"github.com/txlens/base-tx-analyzer/pkg/types"
)

var (
	testRouter = common.HexToAddress("0x2626664c2603336E57B271c5C0b26F421741e481")
	testWETH   = "0x4200000000000000000000000000000000000006"
	testUSDC   = "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913"
	testSender = common.HexToAddress("0xabcdabcdabcdabcdabcdabcdabcdabcdabcdabcd")
)

// stubFetcher serves canned transactions and receipts
type stubFetcher struct {
	mu        sync.Mutex
	txs       map[string]*types.Transaction
	receipts  map[string]*types.Receipt
	timestamp time.Time
}

func (f *stubFetcher) TransactionByHash(ctx context.Context, hash string) (*types.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tx, ok := f.txs[hash]
	if !ok {
		return nil, fmt.Errorf("transaction %s: %w", hash, types.ErrNotFound)
	}
	return tx, nil
}

func (f *stubFetcher) ReceiptByHash(ctx context.Context, hash string) (*types.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	receipt, ok := f.receipts[hash]
	if !ok {
		return nil, fmt.Errorf("receipt %s: %w", hash, types.ErrNotFound)
	}
	return receipt, nil
}

func (f *stubFetcher) BlockTimestamp(ctx context.Context, number *big.Int) (time.Time, error) {
	if f.timestamp.IsZero() {
		return time.Time{}, fmt.Errorf("block %s: %w", number, types.ErrNotFound)
	}
	return f.timestamp, nil
}

func transferRawLog(token, from, to string, amount *big.Int) types.RawLog {
	pad := func(addr string) string {
		return common.BytesToHash(common.HexToAddress(addr).Bytes()).Hex()
	}
	return types.RawLog{
		Address: token,
		Topics:  []string{events.SigTransfer.Hex(), pad(from), pad(to)},
		Data:    common.BigToHash(amount).Hex(),
	}
}

func swapFixture(hash string) (*types.Transaction, *types.Receipt) {
	to := testRouter
	tx := &types.Transaction{
		Hash:     hash,
		From:     testSender,
		To:       &to,
		Value:    big.NewInt(0),
		GasPrice: big.NewInt(30_000_000_000),
		GasLimit: 200_000,
	}
	receipt := &types.Receipt{
		TxHash:      hash,
		Status:      1,
		GasUsed:     150_000,
		BlockNumber: big.NewInt(123456),
		Logs: []types.RawLog{
			transferRawLog(testWETH, testSender.Hex(), testRouter.Hex(), big.NewInt(1e18)),
			transferRawLog(testUSDC, testRouter.Hex(), testSender.Hex(), big.NewInt(2500_000_000)),
		},
	}
	return tx, receipt
}

func newTestService(fetcher *stubFetcher, opts ...Option) *Service {
	reg := registry.NewBaseMainnet()
	return NewService(
		fetcher,
		events.NewDecoder(reg, nil),
		classify.NewClassifier(reg),
		zap.NewNop(),
		opts...,
	)
}

func TestService_AnalyzeTransaction(t *testing.T) {
	hash := "0x" + "11" + "00000000000000000000000000000000000000000000000000000000000011"
	tx, receipt := swapFixture(hash)

	fetcher := &stubFetcher{
		txs:       map[string]*types.Transaction{hash: tx},
		receipts:  map[string]*types.Receipt{hash: receipt},
		timestamp: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	svc := newTestService(fetcher)

	analysis, err := svc.AnalyzeTransaction(context.Background(), hash)
	require.NoError(t, err)

	assert.Equal(t, hash, analysis.Hash)
	assert.Equal(t, types.CategorySwap, analysis.Classification.Category)
	require.Len(t, analysis.Events, 2)
	assert.Equal(t, types.EventKindTokenTransfer, analysis.Events[0].Kind)
	assert.Equal(t, "WETH", analysis.Events[0].Transfer.Symbol)
	assert.Equal(t, "USDC", analysis.Events[1].Transfer.Symbol)

	require.NotNil(t, analysis.Gas)
	assert.Equal(t, uint64(150_000), analysis.Gas.GasUsed)
	assert.Equal(t, types.RatingGood, analysis.Gas.Rating) // 75% of limit

	assert.Equal(t, fetcher.timestamp, analysis.Timestamp)
	assert.Equal(t, uint64(1), analysis.Status)
}

func TestService_AnalyzeTransaction_NotFound(t *testing.T) {
	svc := newTestService(&stubFetcher{})

	_, err := svc.AnalyzeTransaction(context.Background(), "0xmissing")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestService_AnalyzeTransaction_TimestampFailureIsNotFatal(t *testing.T) {
	hash := "0x" + "22" + "00000000000000000000000000000000000000000000000000000000000022"
	tx, receipt := swapFixture(hash)

	fetcher := &stubFetcher{
		txs:      map[string]*types.Transaction{hash: tx},
		receipts: map[string]*types.Receipt{hash: receipt},
		// zero timestamp: BlockTimestamp fails
	}
	svc := newTestService(fetcher)

	analysis, err := svc.AnalyzeTransaction(context.Background(), hash)
	require.NoError(t, err)
	assert.True(t, analysis.Timestamp.IsZero())
	assert.Equal(t, types.CategorySwap, analysis.Classification.Category)
}

func TestService_AnalyzeBatch(t *testing.T) {
	good1 := "0x" + "aa" + "000000000000000000000000000000000000000000000000000000000000aa"
	missing := "0x" + "bb" + "000000000000000000000000000000000000000000000000000000000000bb"
	good2 := "0x" + "cc" + "000000000000000000000000000000000000000000000000000000000000cc"

	tx1, rc1 := swapFixture(good1)
	tx2, rc2 := swapFixture(good2)

	fetcher := &stubFetcher{
		txs:       map[string]*types.Transaction{good1: tx1, good2: tx2},
		receipts:  map[string]*types.Receipt{good1: rc1, good2: rc2},
		timestamp: time.Now(),
	}
	svc := newTestService(fetcher, WithWorkers(2))

	results := svc.AnalyzeBatch(context.Background(), []string{good1, missing, good2})
	require.Len(t, results, 3)

	// result order matches input order
	assert.Equal(t, good1, results[0].Hash)
	assert.Equal(t, missing, results[1].Hash)
	assert.Equal(t, good2, results[2].Hash)

	// one failure does not disturb the others
	require.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, types.ErrNotFound)
	require.NoError(t, results[2].Err)
	assert.Equal(t, types.CategorySwap, results[0].Analysis.Classification.Category)
	assert.Nil(t, results[1].Analysis)
}

func TestService_AnalyzeBatch_Empty(t *testing.T) {
	svc := newTestService(&stubFetcher{})
	assert.Empty(t, svc.AnalyzeBatch(context.Background(), nil))
}

func TestService_AnalyzeBatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	hash := "0x" + "dd" + "000000000000000000000000000000000000000000000000000000000000dd"
	tx, rc := swapFixture(hash)
	fetcher := &stubFetcher{
		txs:      map[string]*types.Transaction{hash: tx},
		receipts: map[string]*types.Receipt{hash: rc},
	}
	svc := newTestService(fetcher, WithWorkers(1))

	hashes := make([]string, 50)
	for i := range hashes {
		hashes[i] = hash
	}
	results := svc.AnalyzeBatch(ctx, hashes)
	require.Len(t, results, 50)
	for _, res := range results {
		assert.Equal(t, hash, res.Hash)
	}
}
