package chain

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/txlens/base-tx-analyzer/pkg/types"
)

func TestMapNotFound(t *testing.T) {
	err := mapNotFound(ethereum.NotFound, "transaction", "0xabc")
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.Contains(t, err.Error(), "0xabc")

	other := mapNotFound(errors.New("connection reset"), "receipt", "0xdef")
	assert.NotErrorIs(t, other, types.ErrNotFound)
	assert.Contains(t, other.Error(), "connection reset")
}

func TestWithRetry_TransientThenSuccess(t *testing.T) {
	c := &Client{
		cfg:    Config{MaxRetries: 3, RetryDelay: time.Millisecond},
		logger: zap.NewNop(),
	}

	calls := 0
	err := c.withRetry(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithRetry_NotFoundReturnsImmediately(t *testing.T) {
	c := &Client{
		cfg:    Config{MaxRetries: 3, RetryDelay: time.Millisecond},
		logger: zap.NewNop(),
	}

	calls := 0
	err := c.withRetry(context.Background(), func(ctx context.Context) error {
		calls++
		return ethereum.NotFound
	})
	assert.ErrorIs(t, err, ethereum.NotFound)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_ExhaustsRetries(t *testing.T) {
	c := &Client{
		cfg:    Config{MaxRetries: 2, RetryDelay: time.Millisecond},
		logger: zap.NewNop(),
	}

	calls := 0
	err := c.withRetry(context.Background(), func(ctx context.Context) error {
		calls++
		return errors.New("down")
	})
	require.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithRetry_ContextCancelled(t *testing.T) {
	c := &Client{
		cfg:    Config{MaxRetries: 5, RetryDelay: 50 * time.Millisecond},
		logger: zap.NewNop(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.withRetry(ctx, func(ctx context.Context) error {
		return errors.New("transient")
	})
	assert.ErrorIs(t, err, context.Canceled)
}
