package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMannWhitneyAUC(t *testing.T) {
	tests := []struct {
		name   string
		labels []int
		scores []float64
		want   float64
	}{
		{"perfect", []int{1, 1, 0, 0}, []float64{0.9, 0.8, 0.2, 0.1}, 1},
		{"inverted", []int{1, 1, 0, 0}, []float64{0.1, 0.2, 0.8, 0.9}, 0},
		{"all tied", []int{1, 0, 1, 0}, []float64{0.5, 0.5, 0.5, 0.5}, 0.5},
		{"mixed", []int{1, 0, 1, 0}, []float64{0.9, 0.8, 0.7, 0.6}, 0.75},
		{"partial tie", []int{1, 0, 1, 0}, []float64{0.5, 0.5, 0.5, 0.1}, 0.75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MannWhitneyAUC(tt.labels, tt.scores)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestMannWhitneyAUC_Errors(t *testing.T) {
	_, err := MannWhitneyAUC([]int{0, 0}, []float64{1, 2})
	assert.ErrorIs(t, err, ErrDegenerate)

	_, err = MannWhitneyAUC(nil, nil)
	assert.ErrorIs(t, err, ErrDegenerate)

	_, err = MannWhitneyAUC([]int{0, 1}, []float64{1})
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestPrevalence(t *testing.T) {
	assert.Equal(t, 0.0, Prevalence(nil))
	assert.Equal(t, 0.25, Prevalence([]int{1, 0, 0, 0}))
}

func TestMinMaxAndPaddedRange(t *testing.T) {
	lo, hi := MinMax([]float64{3, -1, 7, 2})
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 7.0, hi)

	lo, hi = MinMax(nil)
	assert.Zero(t, lo)
	assert.Zero(t, hi)

	lo, hi = PaddedRange(-1, 3, 0.05)
	assert.InDelta(t, -1.1, lo, 1e-15)
	assert.InDelta(t, 3.2, hi, 1e-15)
}

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 2.0, Mean([]float64{1, 2, 3}))
}
