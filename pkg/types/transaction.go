package types

import (
	"errors"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// ErrNotFound indicates a transaction, receipt, or block is absent on chain.
var ErrNotFound = errors.New("not found")

// ErrInvalidArgument indicates a caller-supplied precondition violation.
var ErrInvalidArgument = errors.New("invalid argument")

// Transaction holds the fields of an on-chain transaction needed for analysis
type Transaction struct {
	Hash        string          `json:"hash"`
	From        common.Address  `json:"from"`
	To          *common.Address `json:"to"`
	Value       *big.Int        `json:"value"`
	GasPrice    *big.Int        `json:"gasPrice"`
	GasLimit    uint64          `json:"gasLimit"`
	Nonce       uint64          `json:"nonce"`
	BlockNumber *big.Int        `json:"blockNumber,omitempty"`
	ChainID     *big.Int        `json:"chainId,omitempty"`
}

// IsContractCreation reports whether the transaction deploys a contract
func (t *Transaction) IsContractCreation() bool {
	return t.To == nil
}

// Receipt holds the execution result of a transaction
type Receipt struct {
	TxHash      string   `json:"transactionHash"`
	Status      uint64   `json:"status"`
	GasUsed     uint64   `json:"gasUsed"`
	BlockNumber *big.Int `json:"blockNumber"`
	Logs        []RawLog `json:"logs"`
}

// Succeeded reports whether the transaction executed without reverting
func (r *Receipt) Succeeded() bool {
	return r.Status == 1
}

// RawLog is the untrusted wire form of an event log. Topics and data are
// 0x-prefixed hex strings and must be validated before extraction.
type RawLog struct {
	Address string   `json:"address"`
	Topics  []string `json:"topics"`
	Data    string   `json:"data"`
}

// TransactionContext is the input to classification: the transaction's
// destination and value plus the decoded event list from its receipt.
type TransactionContext struct {
	From     common.Address  `json:"from"`
	To       *common.Address `json:"to"`
	Value    *big.Int        `json:"value"`
	Events   []DecodedEvent  `json:"events"`
	LogCount int             `json:"logCount"`
}

// TransactionAnalysis is the full result produced for a single hash
type TransactionAnalysis struct {
	Hash           string               `json:"hash"`
	Classification ClassificationResult `json:"classification"`
	Events         []DecodedEvent       `json:"events"`
	Gas            *GasMetrics          `json:"gas,omitempty"`
	Status         uint64               `json:"status"`
	BlockNumber    *big.Int             `json:"blockNumber,omitempty"`
	Timestamp      time.Time            `json:"timestamp,omitempty"`
}
