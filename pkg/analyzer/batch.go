package analyzer

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/txlens/base-tx-analyzer/pkg/interfaces"
)

const defaultBatchWorkers = 8

// AnalyzeBatch analyzes many hashes concurrently with a bounded worker pool.
// Each hash is independent: a failure fills its own slot and never blocks or
// corrupts the others. Result order matches input order.
func (s *Service) AnalyzeBatch(ctx context.Context, hashes []string) []interfaces.BatchResult {
	results := make([]interfaces.BatchResult, len(hashes))
	if len(hashes) == 0 {
		return results
	}

	workers := s.workers
	if workers > len(hashes) {
		workers = len(hashes)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = s.analyzeOne(ctx, hashes[i])
			}
		}()
	}

	for i := range hashes {
		select {
		case jobs <- i:
		case <-ctx.Done():
			// Mark everything not yet handed out as cancelled.
			close(jobs)
			wg.Wait()
			for j := range results {
				if results[j].Hash == "" {
					results[j] = interfaces.BatchResult{Hash: hashes[j], Err: ctx.Err()}
				}
			}
			return results
		}
	}
	close(jobs)
	wg.Wait()
	return results
}

func (s *Service) analyzeOne(ctx context.Context, hash string) interfaces.BatchResult {
	analysis, err := s.AnalyzeTransaction(ctx, hash)
	if err != nil {
		s.logger.Warn("batch analysis failed",
			zap.String("hash", hash), zap.Error(err))
		return interfaces.BatchResult{Hash: hash, Err: err}
	}
	return interfaces.BatchResult{Hash: hash, Analysis: analysis}
}
