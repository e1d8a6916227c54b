package data

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// ErrInvalidCase is returned for simulation parameters outside their domain.
var ErrInvalidCase = errors.New("data: invalid simulation parameters")

// LabeledScore is one detector output with its ground-truth class (0 or 1).
type LabeledScore struct {
	Label int
	Score float64
}

// Case names one simulated dataset.
type Case struct {
	Name         string  `yaml:"name" json:"name"`
	Separation   float64 `yaml:"separation" json:"separation"`
	N            int     `yaml:"n" json:"n"`
	PositiveRate float64 `yaml:"positive_rate" json:"positive_rate"`
	Seed         uint64  `yaml:"seed" json:"seed"`
}

// Reference scenario constants.
const (
	DefaultN            = 300_000
	DefaultPositiveRate = 0.2
)

// DefaultCases returns the Fair, Good and Ideal scenarios.
func DefaultCases() []Case {
	seps := []struct {
		label string
		sep   float64
	}{
		{"Fair", 0.7},
		{"Good", 1.5},
		{"Ideal", 3.0},
	}
	out := make([]Case, len(seps))
	for i, s := range seps {
		out[i] = Case{
			Name:         fmt.Sprintf("%s (sep=%.1f)", s.label, s.sep),
			Separation:   s.sep,
			N:            DefaultN,
			PositiveRate: DefaultPositiveRate,
			Seed:         uint64(42 + int(s.sep*10)),
		}
	}
	return out
}

// Validate checks the case parameters.
func (c Case) Validate() error {
	if c.N <= 0 {
		return fmt.Errorf("%q: n must be positive, got %d: %w", c.Name, c.N, ErrInvalidCase)
	}
	if !(c.PositiveRate > 0 && c.PositiveRate < 1) {
		return fmt.Errorf("%q: positive rate must be in (0,1), got %v: %w", c.Name, c.PositiveRate, ErrInvalidCase)
	}
	if !(c.Separation >= 0) || math.IsInf(c.Separation, 0) {
		return fmt.Errorf("%q: separation must be finite and >= 0, got %v: %w", c.Name, c.Separation, ErrInvalidCase)
	}
	return nil
}

// Simulate draws the case's dataset.
func (c Case) Simulate() ([]LabeledScore, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return simulate(c.N, c.PositiveRate, c.Separation, c.Seed), nil
}

// SimulateScores draws floor(n*posRate) positives from N(+sep/2, 1) followed
// by the remaining negatives from N(-sep/2, 1). Equal arguments always give
// bit-identical output.
func SimulateScores(n int, posRate, sep float64, seed uint64) ([]LabeledScore, error) {
	return Case{N: n, PositiveRate: posRate, Separation: sep, Seed: seed}.Simulate()
}

func simulate(n int, posRate, sep float64, seed uint64) []LabeledScore {
	src := rand.NewPCG(seed, seed)
	nPos := int(float64(n) * posRate)

	pos := distuv.Normal{Mu: sep / 2, Sigma: 1, Src: src}
	neg := distuv.Normal{Mu: -sep / 2, Sigma: 1, Src: src}

	out := make([]LabeledScore, n)
	for i := range nPos {
		out[i] = LabeledScore{Label: 1, Score: pos.Rand()}
	}
	for i := nPos; i < n; i++ {
		out[i] = LabeledScore{Label: 0, Score: neg.Rand()}
	}
	return out
}

// Split separates labels and scores into parallel slices.
func Split(scores []LabeledScore) (labels []int, values []float64) {
	labels = make([]int, len(scores))
	values = make([]float64, len(scores))
	for i, s := range scores {
		labels[i] = s.Label
		values[i] = s.Score
	}
	return labels, values
}
