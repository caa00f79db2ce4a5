package economics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/txlens/base-tx-analyzer/pkg/types"
)

func TestImpermanentLoss(t *testing.T) {
	t.Run("unchanged price is exactly zero", func(t *testing.T) {
		loss, err := ImpermanentLoss(2000, 2000)
		require.NoError(t, err)
		assert.Zero(t, loss)
	})

	t.Run("loss in both directions", func(t *testing.T) {
		up, err := ImpermanentLoss(2000, 2500)
		require.NoError(t, err)
		assert.Greater(t, up, 0.0)

		down, err := ImpermanentLoss(2000, 1500)
		require.NoError(t, err)
		assert.Greater(t, down, 0.0)
	})

	t.Run("magnitude grows with deviation", func(t *testing.T) {
		small, err := ImpermanentLoss(2000, 2200)
		require.NoError(t, err)
		large, err := ImpermanentLoss(2000, 4000)
		require.NoError(t, err)
		assert.Greater(t, large, small)
	})

	t.Run("doubled price matches the known formula value", func(t *testing.T) {
		// r=2: |2*sqrt(2)/3 - 1| * 100 ≈ 5.719
		loss, err := ImpermanentLoss(1000, 2000)
		require.NoError(t, err)
		assert.InDelta(t, 5.719, loss, 0.001)
	})

	t.Run("non-positive entry price is invalid", func(t *testing.T) {
		_, err := ImpermanentLoss(0, 2000)
		assert.ErrorIs(t, err, types.ErrInvalidArgument)

		_, err = ImpermanentLoss(-1, 2000)
		assert.ErrorIs(t, err, types.ErrInvalidArgument)
	})

	t.Run("negative current price is invalid", func(t *testing.T) {
		_, err := ImpermanentLoss(2000, -1)
		assert.ErrorIs(t, err, types.ErrInvalidArgument)
	})
}
