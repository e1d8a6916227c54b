package main

import (
	"os"
	"path/filepath"
	"testing"

	"mlviz/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivationsFigure_Layout(t *testing.T) {
	cfg := config.Default()
	cfg.Activations.Points = 101

	_, fig, err := activationsFigure(cfg.Theme, cfg.Activations)
	require.NoError(t, err)

	assert.Equal(t, 3, fig.Rows)
	assert.Equal(t, 4, fig.Cols)
	require.Len(t, fig.Panels, 10)

	first := fig.Panels[0]
	assert.Equal(t, "ReLU", first.Title)
	assert.Equal(t, []float64{0}, first.Ticks)
	for _, p := range fig.Panels {
		assert.Equal(t, first.YRange, p.YRange, "every panel shares one y-range")
		assert.Equal(t, -2.0, p.XRange.Min)
		assert.Equal(t, 2.0, p.XRange.Max)
		require.Len(t, p.Series, 1)
		assert.Len(t, p.Series[0].X, 101)
	}
	assert.Equal(t, "Softmax: P(class 1) vs t", fig.Panels[9].Title)
}

func TestRunActivations_WritesFigure(t *testing.T) {
	cfg := config.Default()
	ac := cfg.Activations
	ac.Output = filepath.Join(t.TempDir(), "gallery.png")
	ac.DPI = 10
	ac.Points = 64

	require.NoError(t, runActivations(cfg.Theme, ac))

	info, err := os.Stat(ac.Output)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestRunActivations_TooFewPoints(t *testing.T) {
	cfg := config.Default()
	ac := cfg.Activations
	ac.Points = 1

	assert.Error(t, runActivations(cfg.Theme, ac))
}
