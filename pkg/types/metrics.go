package types

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// EfficiencyRating buckets how much of its gas limit a transaction consumed
type EfficiencyRating string

const (
	RatingExcellent EfficiencyRating = "excellent"
	RatingGood      EfficiencyRating = "good"
	RatingAverage   EfficiencyRating = "average"
	RatingPoor      EfficiencyRating = "poor"
)

// GasMetrics holds the derived gas economics of a transaction. Cost is
// denominated in ether. UsagePercentage is nil when the gas limit is unknown.
type GasMetrics struct {
	GasUsed         uint64           `json:"gasUsed"`
	GasPrice        *big.Int         `json:"gasPrice"`
	Cost            decimal.Decimal  `json:"cost"`
	UsagePercentage *decimal.Decimal `json:"usagePercentage,omitempty"`
	Rating          EfficiencyRating `json:"rating"`
}
