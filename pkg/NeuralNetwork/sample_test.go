package NeuralNetwork

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinspace(t *testing.T) {
	assert.Nil(t, Linspace(0, 1, 0))
	assert.Equal(t, []float64{3}, Linspace(3, 5, 1))
	assert.Equal(t, []float64{-2, -1, 0, 1, 2}, Linspace(-2, 2, 5))

	grid := DefaultGrid()
	require.Len(t, grid, DefaultPoints)
	assert.Equal(t, DefaultDomainMin, grid[0])
	assert.InDelta(t, DefaultDomainMax, grid[len(grid)-1], 1e-12)
}

func TestEvaluate_MatchesSerial(t *testing.T) {
	grid := Linspace(-3, 3, 10007)
	got := Evaluate("gelu", GELU, grid)

	require.Equal(t, "gelu", got.Name)
	require.Len(t, got.Y, len(grid))
	for i, z := range grid {
		if got.Y[i] != GELU(z) {
			t.Fatalf("Y[%d] = %v, want %v", i, got.Y[i], GELU(z))
		}
	}
	assert.Equal(t, grid, got.X)
}

func TestEvaluate_CopiesGrid(t *testing.T) {
	grid := []float64{-1, 0, 1}
	s := Evaluate("relu", ReLU, grid)
	grid[0] = 42
	assert.Equal(t, -1.0, s.X[0])
}

func TestEvaluate_Empty(t *testing.T) {
	s := Evaluate("none", ReLU, nil)
	assert.Empty(t, s.X)
	assert.Empty(t, s.Y)
}

func TestGallery(t *testing.T) {
	grid := Linspace(-2, 2, 5)
	samples := Gallery(grid)

	names := make([]string, len(samples))
	for i, s := range samples {
		names[i] = s.Name
		assert.Len(t, s.Y, len(grid))
	}
	assert.Equal(t, []string{
		"ReLU",
		"Leaky ReLU (a=0.1)",
		"tanh",
		"Sigmoid",
		"ELU (α=1)",
		"GELU (tanh approx)",
		"Swish / SiLU",
		"GLU (1D slice)",
		"SwiGLU (1D slice)",
		"Softmax: P(class 1) vs t",
	}, names)

	// grid point 2 is z = 0
	assert.Equal(t, 0.5, samples[3].Y[2])
	assert.Equal(t, 1.0/3.0, samples[9].Y[2])
	assert.Equal(t, []float64{0, 0, 0, 1, 2}, samples[0].Y)
}

func TestSharedRange(t *testing.T) {
	samples := []ActivationSample{
		{Name: "a", Y: []float64{-1, 0, 1}},
		{Name: "b", Y: []float64{0, 4}},
		{Name: "empty"},
	}
	lo, hi := SharedRange(samples)
	assert.InDelta(t, -1-0.05*2, lo, 1e-15)
	assert.InDelta(t, 4+0.05*5, hi, 1e-15)

	lo, hi = SharedRange(nil)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 0.0, hi)
}

func TestSharedRange_DefaultGallery(t *testing.T) {
	lo, hi := SharedRange(Gallery(DefaultGrid()))

	// SwiGLU peaks at 2*swish(2) on [-2,2]; Leaky ReLU bottoms out at -0.2
	wantHi := 2 * Swish(2)
	assert.InDelta(t, wantHi+0.05*(math.Abs(wantHi)+1), hi, 1e-12)
	assert.Less(t, lo, -0.2)
}
