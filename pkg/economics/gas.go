package economics

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/txlens/base-tx-analyzer/pkg/types"
)

// etherDecimals is the wei→ether scale of the chain's native unit
const etherDecimals = 18

// GasCost converts gasUsed*gasPrice from wei into ether. decimal arithmetic
// keeps the full fractional precision of the product.
func GasCost(gasUsed uint64, gasPrice *big.Int) (decimal.Decimal, error) {
	if gasPrice == nil || gasPrice.Sign() < 0 {
		return decimal.Zero, fmt.Errorf("%w: gas price must be a non-negative integer", types.ErrInvalidArgument)
	}
	wei := new(big.Int).Mul(new(big.Int).SetUint64(gasUsed), gasPrice)
	return decimal.NewFromBigInt(wei, -etherDecimals), nil
}

// GasEfficiency derives the gas-limit usage percentage and its rating. A
// zero gas limit means the limit is unknown: the percentage is nil and the
// rating defaults to average.
func GasEfficiency(gasUsed, gasLimit uint64) (*decimal.Decimal, types.EfficiencyRating) {
	if gasLimit == 0 {
		return nil, types.RatingAverage
	}
	pct := decimal.NewFromUint64(gasUsed).
		Div(decimal.NewFromUint64(gasLimit)).
		Mul(decimal.NewFromInt(100))
	return &pct, rate(pct)
}

// rate buckets a usage percentage. Thresholds are fixed so results stay
// reproducible across runs.
func rate(pct decimal.Decimal) types.EfficiencyRating {
	switch {
	case pct.GreaterThanOrEqual(decimal.NewFromInt(90)):
		return types.RatingExcellent
	case pct.GreaterThanOrEqual(decimal.NewFromInt(70)):
		return types.RatingGood
	case pct.GreaterThanOrEqual(decimal.NewFromInt(40)):
		return types.RatingAverage
	default:
		return types.RatingPoor
	}
}

// ComputeGasMetrics derives the full gas economics of a transaction. Pass a
// zero gasLimit when the limit is unknown.
func ComputeGasMetrics(gasUsed uint64, gasPrice *big.Int, gasLimit uint64) (*types.GasMetrics, error) {
	cost, err := GasCost(gasUsed, gasPrice)
	if err != nil {
		return nil, err
	}
	pct, rating := GasEfficiency(gasUsed, gasLimit)
	return &types.GasMetrics{
		GasUsed:         gasUsed,
		GasPrice:        new(big.Int).Set(gasPrice),
		Cost:            cost,
		UsagePercentage: pct,
		Rating:          rating,
	}, nil
}
