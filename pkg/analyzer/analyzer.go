package analyzer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/txlens/base-tx-analyzer/pkg/economics"
	"github.com/txlens/base-tx-analyzer/pkg/interfaces"
	"github.com/txlens/base-tx-analyzer/pkg/types"
)

// Service runs the fetch → decode → classify → metrics pipeline per hash
type Service struct {
	fetcher    interfaces.TransactionFetcher
	decoder    interfaces.EventDecoder
	classifier interfaces.TransactionClassifier
	collector  interfaces.MetricsCollector
	logger     *zap.Logger
	workers    int
}

// Option customizes a Service
type Option func(*Service)

// WithWorkers sets the batch worker count
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithCollector attaches an operational metrics collector
func WithCollector(c interfaces.MetricsCollector) Option {
	return func(s *Service) { s.collector = c }
}

// NewService creates the analysis pipeline
func NewService(
	fetcher interfaces.TransactionFetcher,
	decoder interfaces.EventDecoder,
	classifier interfaces.TransactionClassifier,
	logger *zap.Logger,
	opts ...Option,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		fetcher:    fetcher,
		decoder:    decoder,
		classifier: classifier,
		logger:     logger,
		workers:    defaultBatchWorkers,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AnalyzeTransaction fetches a transaction and its receipt, decodes the
// receipt's logs, classifies the transaction, and derives its gas metrics.
// A missing transaction or receipt surfaces as types.ErrNotFound.
func (s *Service) AnalyzeTransaction(ctx context.Context, hash string) (*types.TransactionAnalysis, error) {
	tx, err := s.fetchTransaction(ctx, hash)
	if err != nil {
		s.recordError("fetch_transaction")
		return nil, err
	}
	receipt, err := s.fetchReceipt(ctx, hash)
	if err != nil {
		s.recordError("fetch_receipt")
		return nil, err
	}

	decoded := s.decoder.DecodeLogs(receipt.Logs)
	for i := range decoded {
		s.recordEvent(decoded[i].Kind)
	}

	classification := s.classifier.Classify(types.TransactionContext{
		From:     tx.From,
		To:       tx.To,
		Value:    tx.Value,
		Events:   decoded,
		LogCount: len(receipt.Logs),
	})
	s.recordClassification(classification.Category)

	gas, err := economics.ComputeGasMetrics(receipt.GasUsed, tx.GasPrice, tx.GasLimit)
	if err != nil {
		return nil, fmt.Errorf("gas metrics for %s: %w", hash, err)
	}

	analysis := &types.TransactionAnalysis{
		Hash:           tx.Hash,
		Classification: classification,
		Events:         decoded,
		Gas:            gas,
		Status:         receipt.Status,
		BlockNumber:    receipt.BlockNumber,
	}

	// The timestamp is contextual, not load-bearing: a failed header fetch
	// does not fail the analysis.
	if receipt.BlockNumber != nil {
		if ts, err := s.fetchTimestamp(ctx, receipt); err == nil {
			analysis.Timestamp = ts
		} else {
			s.logger.Debug("block timestamp unavailable",
				zap.String("hash", hash), zap.Error(err))
		}
	}

	return analysis, nil
}

func (s *Service) fetchTransaction(ctx context.Context, hash string) (*types.Transaction, error) {
	start := time.Now()
	tx, err := s.fetcher.TransactionByHash(ctx, hash)
	s.recordLatency("transaction_by_hash", time.Since(start))
	return tx, err
}

func (s *Service) fetchReceipt(ctx context.Context, hash string) (*types.Receipt, error) {
	start := time.Now()
	receipt, err := s.fetcher.ReceiptByHash(ctx, hash)
	s.recordLatency("receipt_by_hash", time.Since(start))
	return receipt, err
}

func (s *Service) fetchTimestamp(ctx context.Context, receipt *types.Receipt) (time.Time, error) {
	start := time.Now()
	ts, err := s.fetcher.BlockTimestamp(ctx, receipt.BlockNumber)
	s.recordLatency("block_timestamp", time.Since(start))
	return ts, err
}

func (s *Service) recordClassification(category types.Category) {
	if s.collector != nil {
		s.collector.RecordClassification(category)
	}
}

func (s *Service) recordEvent(kind types.EventKind) {
	if s.collector != nil {
		s.collector.RecordDecodedEvent(kind)
	}
}

func (s *Service) recordLatency(op string, d time.Duration) {
	if s.collector != nil {
		s.collector.RecordRPCLatency(op, d)
	}
}

func (s *Service) recordError(stage string) {
	if s.collector != nil {
		s.collector.RecordAnalysisError(stage)
	}
}
