package interfaces

import (
	"context"
	"math/big"
	"time"

	"github.com/txlens/base-tx-analyzer/pkg/types"
)

// TransactionFetcher retrieves raw chain data for a single transaction.
// Implementations return types.ErrNotFound for absent entities; retries and
// timeouts belong to the implementation, never to the decoding core.
type TransactionFetcher interface {
	TransactionByHash(ctx context.Context, hash string) (*types.Transaction, error)
	ReceiptByHash(ctx context.Context, hash string) (*types.Receipt, error)
	BlockTimestamp(ctx context.Context, number *big.Int) (time.Time, error)
}

// EventDecoder turns raw logs into typed events without ever failing
type EventDecoder interface {
	DecodeLogs(logs []types.RawLog) []types.DecodedEvent
	DecodeLog(log types.RawLog) types.DecodedEvent
}

// TransactionClassifier assigns exactly one category per context
type TransactionClassifier interface {
	Classify(ctx types.TransactionContext) types.ClassificationResult
}

// Analyzer is the full fetch-decode-classify pipeline for one hash
type Analyzer interface {
	AnalyzeTransaction(ctx context.Context, hash string) (*types.TransactionAnalysis, error)
	AnalyzeBatch(ctx context.Context, hashes []string) []BatchResult
}

// BatchResult is one slot of a batch analysis. Exactly one of Analysis and
// Err is set; a failed hash never disturbs the other slots.
type BatchResult struct {
	Hash     string                     `json:"hash"`
	Analysis *types.TransactionAnalysis `json:"analysis,omitempty"`
	Err      error                      `json:"-"`
}
