package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bevcli/internal/pipeerrors"
)

func TestSkewness(t *testing.T) {
	t.Run("symmetric series has zero skew", func(t *testing.T) {
		skew, err := Skewness([]float64{1, 2, 3, 4, 5})
		require.NoError(t, err)
		assert.InDelta(t, 0, skew, 1e-12)
	})

	t.Run("right tail is positive", func(t *testing.T) {
		// mean 2, m2 = 3, m3 = 6, skew = 6 / 3^1.5
		skew, err := Skewness([]float64{1, 1, 1, 5})
		require.NoError(t, err)
		assert.InDelta(t, 6.0/math.Pow(3, 1.5), skew, 1e-12)
	})

	t.Run("left tail is negative", func(t *testing.T) {
		skew, err := Skewness([]float64{-5, -1, -1, -1})
		require.NoError(t, err)
		assert.Less(t, skew, 0.0)
	})

	t.Run("too few values", func(t *testing.T) {
		_, err := Skewness([]float64{8.2})
		require.Error(t, err)
		assert.Equal(t, pipeerrors.CategoryData, pipeerrors.CategoryOf(err))
	})

	t.Run("zero variance", func(t *testing.T) {
		_, err := Skewness([]float64{8.2, 8.2, 8.2})
		require.Error(t, err)
		assert.Equal(t, pipeerrors.CategoryData, pipeerrors.CategoryOf(err))
	})
}

func TestRMSE(t *testing.T) {
	t.Run("zero iff predictions match", func(t *testing.T) {
		obs := []float64{8.1, 8.2, 8.3}
		rmse, err := RMSE(obs, []float64{8.1, 8.2, 8.3})
		require.NoError(t, err)
		assert.Zero(t, rmse)

		rmse, err = RMSE(obs, []float64{8.1, 8.2, 8.4})
		require.NoError(t, err)
		assert.Greater(t, rmse, 0.0)
	})

	t.Run("known value", func(t *testing.T) {
		rmse, err := RMSE([]float64{1, 2, 3}, []float64{2, 2, 2})
		require.NoError(t, err)
		assert.InDelta(t, math.Sqrt(2.0/3.0), rmse, 1e-12)
	})

	t.Run("misaligned series", func(t *testing.T) {
		_, err := RMSE([]float64{1, 2}, []float64{1})
		require.Error(t, err)
		assert.Equal(t, pipeerrors.CategoryData, pipeerrors.CategoryOf(err))
	})

	t.Run("empty series", func(t *testing.T) {
		_, err := RMSE(nil, nil)
		require.Error(t, err)
		assert.Equal(t, pipeerrors.CategoryData, pipeerrors.CategoryOf(err))
	})
}

func TestSummarize(t *testing.T) {
	t.Run("known series", func(t *testing.T) {
		s, err := Summarize("PH", []float64{8.0, 8.5, 9.0})
		require.NoError(t, err)

		assert.Equal(t, "PH", s.Name)
		assert.Equal(t, 3, s.Count)
		assert.InDelta(t, 8.5, s.Mean, 1e-12)
		assert.InDelta(t, 8.5, s.Median, 1e-12)
		assert.Equal(t, 8.0, s.Min)
		assert.Equal(t, 9.0, s.Max)
		assert.InDelta(t, math.Sqrt(1.0/6.0), s.StdDev, 1e-12)
	})

	t.Run("empty series", func(t *testing.T) {
		_, err := Summarize("PH", nil)
		require.Error(t, err)
		assert.Equal(t, pipeerrors.CategoryData, pipeerrors.CategoryOf(err))
	})
}
