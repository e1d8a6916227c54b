package NeuralNetwork

import (
	"runtime"
	"sync"

	"mlviz/pkg/stats"

	"gonum.org/v1/gonum/floats"
)

// Default input domain used by the gallery.
const (
	DefaultDomainMin = -2.0
	DefaultDomainMax = 2.0
	DefaultPoints    = 2000
)

// rangePad is the fraction of (|y|+1) added above and below the shared y-range.
const rangePad = 0.05

// ActivationSample is one activation evaluated over an input grid.
type ActivationSample struct {
	Name string
	X    []float64
	Y    []float64
}

// Linspace returns n evenly spaced points from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}

// DefaultGrid is Linspace(DefaultDomainMin, DefaultDomainMax, DefaultPoints).
func DefaultGrid() []float64 {
	return Linspace(DefaultDomainMin, DefaultDomainMax, DefaultPoints)
}

// Evaluate applies fn to every grid point. Work is split into contiguous
// chunks across GOMAXPROCS goroutines; each output slot is written by exactly
// one worker, so the result is identical to a serial loop.
func Evaluate(name string, fn Func, grid []float64) ActivationSample {
	x := make([]float64, len(grid))
	copy(x, grid)
	out := make([]float64, len(x))
	if len(x) == 0 {
		return ActivationSample{Name: name, X: x, Y: out}
	}

	var wg sync.WaitGroup
	workers := runtime.GOMAXPROCS(0)
	rowsPerWorker := (len(x) + workers - 1) / workers

	for w := 0; w < workers; w++ {
		start := w * rowsPerWorker
		end := min(start+rowsPerWorker, len(x))
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				out[i] = fn(x[i])
			}
		}(start, end)
	}
	wg.Wait()
	return ActivationSample{Name: name, X: x, Y: out}
}

// Gallery evaluates every activation in display order over grid.
func Gallery(grid []float64) []ActivationSample {
	entries := []struct {
		name string
		fn   Func
	}{
		{"ReLU", ReLU},
		{"Leaky ReLU (a=0.1)", LeakyReLUWith(DefaultLeakySlope)},
		{"tanh", Tanh},
		{"Sigmoid", Sigmoid},
		{"ELU (α=1)", ELUWith(DefaultELUAlpha)},
		{"GELU (tanh approx)", GELU},
		{"Swish / SiLU", Swish},
		{"GLU (1D slice)", GLUSlice},
		{"SwiGLU (1D slice)", SwiGLUSlice},
		{"Softmax: P(class 1) vs t", SoftmaxProbability},
	}
	out := make([]ActivationSample, len(entries))
	for i, e := range entries {
		out[i] = Evaluate(e.name, e.fn, grid)
	}
	return out
}

// SharedRange returns one y-range covering every sample, padded so curves do
// not touch the panel edges.
func SharedRange(samples []ActivationSample) (lo, hi float64) {
	first := true
	for _, s := range samples {
		if len(s.Y) == 0 {
			continue
		}
		mn, mx := stats.MinMax(s.Y)
		if first {
			lo, hi, first = mn, mx, false
			continue
		}
		lo = min(lo, mn)
		hi = max(hi, mx)
	}
	if first {
		return 0, 0
	}
	return stats.PaddedRange(lo, hi, rangePad)
}
