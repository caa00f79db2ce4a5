package economics

import (
	"fmt"
	"math"

	"github.com/txlens/base-tx-analyzer/pkg/types"
)

// ImpermanentLoss returns the loss percentage of holding a 50/50 pool
// position versus holding the assets, given the entry and current price of
// one leg: |2*sqrt(r)/(1+r) - 1| * 100 with r = current/entry.
//
// The loss is symmetric in direction and exactly zero when the price has not
// moved.
func ImpermanentLoss(entryPrice, currentPrice float64) (float64, error) {
	if entryPrice <= 0 {
		return 0, fmt.Errorf("%w: entry price must be positive", types.ErrInvalidArgument)
	}
	if currentPrice < 0 {
		return 0, fmt.Errorf("%w: current price must not be negative", types.ErrInvalidArgument)
	}
	if currentPrice == entryPrice {
		return 0, nil
	}
	ratio := currentPrice / entryPrice
	loss := math.Abs(2*math.Sqrt(ratio)/(1+ratio) - 1)
	return loss * 100, nil
}
