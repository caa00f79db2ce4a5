package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"

	"github.com/txlens/base-tx-analyzer/pkg/types"
)

// Config controls RPC dialing and retry behavior
type Config struct {
	URL        string
	BackupURLs []string
	MaxRetries int
	RetryDelay time.Duration
}

// Client fetches transactions, receipts, and block headers over JSON-RPC.
// Transient failures are retried with exponential backoff; a missing entity
// surfaces as types.ErrNotFound and is never retried.
type Client struct {
	cfg       Config
	rpcClient *rpc.Client
	eth       *ethclient.Client
	logger    *zap.Logger

	mu      sync.RWMutex
	tsCache map[uint64]uint64
}

// Dial connects to the first reachable endpoint, trying backups in order
func Dial(ctx context.Context, cfg Config, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 200 * time.Millisecond
	}

	urls := append([]string{cfg.URL}, cfg.BackupURLs...)
	var lastErr error
	for _, url := range urls {
		rpcClient, err := rpc.DialContext(ctx, url)
		if err != nil {
			logger.Warn("rpc dial failed", zap.String("url", url), zap.Error(err))
			lastErr = err
			continue
		}
		return &Client{
			cfg:       cfg,
			rpcClient: rpcClient,
			eth:       ethclient.NewClient(rpcClient),
			logger:    logger,
			tsCache:   make(map[uint64]uint64),
		}, nil
	}
	return nil, fmt.Errorf("no reachable rpc endpoint: %w", lastErr)
}

// Close closes the underlying RPC connection
func (c *Client) Close() {
	if c.rpcClient != nil {
		c.rpcClient.Close()
	}
}

// TransactionByHash fetches a transaction and maps it into the analyzer's
// representation. Pending transactions have no receipt yet and are reported
// as not found.
func (c *Client) TransactionByHash(ctx context.Context, hash string) (*types.Transaction, error) {
	txHash := common.HexToHash(hash)

	var tx *ethtypes.Transaction
	err := c.withRetry(ctx, func(ctx context.Context) error {
		var pending bool
		var err error
		tx, pending, err = c.eth.TransactionByHash(ctx, txHash)
		if err != nil {
			return err
		}
		if pending {
			return ethereum.NotFound
		}
		return nil
	})
	if err != nil {
		return nil, mapNotFound(err, "transaction", hash)
	}

	from, err := ethtypes.Sender(ethtypes.LatestSignerForChainID(tx.ChainId()), tx)
	if err != nil {
		return nil, fmt.Errorf("recover sender of %s: %w", hash, err)
	}

	return &types.Transaction{
		Hash:     tx.Hash().Hex(),
		From:     from,
		To:       tx.To(),
		Value:    tx.Value(),
		GasPrice: tx.GasPrice(),
		GasLimit: tx.Gas(),
		Nonce:    tx.Nonce(),
		ChainID:  tx.ChainId(),
	}, nil
}

// ReceiptByHash fetches the receipt and converts its logs into the raw hex
// form consumed by the decoder
func (c *Client) ReceiptByHash(ctx context.Context, hash string) (*types.Receipt, error) {
	txHash := common.HexToHash(hash)

	var receipt *ethtypes.Receipt
	err := c.withRetry(ctx, func(ctx context.Context) error {
		var err error
		receipt, err = c.eth.TransactionReceipt(ctx, txHash)
		return err
	})
	if err != nil {
		return nil, mapNotFound(err, "receipt", hash)
	}

	logs := make([]types.RawLog, 0, len(receipt.Logs))
	for _, l := range receipt.Logs {
		topics := make([]string, 0, len(l.Topics))
		for _, t := range l.Topics {
			topics = append(topics, t.Hex())
		}
		logs = append(logs, types.RawLog{
			Address: l.Address.Hex(),
			Topics:  topics,
			Data:    hexutil.Encode(l.Data),
		})
	}

	return &types.Receipt{
		TxHash:      receipt.TxHash.Hex(),
		Status:      receipt.Status,
		GasUsed:     receipt.GasUsed,
		BlockNumber: receipt.BlockNumber,
		Logs:        logs,
	}, nil
}

// BlockTimestamp returns the block's timestamp, caching headers already seen
func (c *Client) BlockTimestamp(ctx context.Context, number *big.Int) (time.Time, error) {
	if number == nil {
		return time.Time{}, fmt.Errorf("%w: block number is required", types.ErrInvalidArgument)
	}

	c.mu.RLock()
	ts, ok := c.tsCache[number.Uint64()]
	c.mu.RUnlock()
	if ok {
		return time.Unix(int64(ts), 0).UTC(), nil
	}

	var header *ethtypes.Header
	err := c.withRetry(ctx, func(ctx context.Context) error {
		var err error
		header, err = c.eth.HeaderByNumber(ctx, number)
		return err
	})
	if err != nil {
		return time.Time{}, mapNotFound(err, "block", number.String())
	}

	c.mu.Lock()
	c.tsCache[number.Uint64()] = header.Time
	c.mu.Unlock()

	return time.Unix(int64(header.Time), 0).UTC(), nil
}

// withRetry retries transient failures with doubling delay. Not-found is a
// definitive answer from the node and returns immediately.
func (c *Client) withRetry(ctx context.Context, fn func(context.Context) error) error {
	delay := c.cfg.RetryDelay
	for attempt := 0; ; attempt++ {
		err := fn(ctx)
		if err == nil || errors.Is(err, ethereum.NotFound) {
			return err
		}
		if attempt >= c.cfg.MaxRetries {
			return err
		}
		c.logger.Debug("rpc call failed, retrying",
			zap.Int("attempt", attempt+1),
			zap.Duration("delay", delay),
			zap.Error(err))

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
}

func mapNotFound(err error, kind, id string) error {
	if errors.Is(err, ethereum.NotFound) {
		return fmt.Errorf("%s %s: %w", kind, id, types.ErrNotFound)
	}
	return fmt.Errorf("fetch %s %s: %w", kind, id, err)
}
