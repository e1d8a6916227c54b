package stats

import (
	"errors"
	"math"
	"sort"
)

// ErrDegenerate is returned when a statistic needs both classes present.
var ErrDegenerate = errors.New("stats: need at least one positive and one negative")

// ErrLengthMismatch is returned when labels and scores differ in length.
var ErrLengthMismatch = errors.New("stats: labels and scores differ in length")

// Mean computes the average of a slice.
func Mean(x []float64) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range x {
		sum += v
	}
	return sum / float64(n)
}

// MinMax returns the minimum and maximum values in the slice.
func MinMax(x []float64) (float64, float64) {
	if len(x) == 0 {
		return 0, 0
	}
	min, max := x[0], x[0]
	for i := 1; i < len(x); i++ {
		if x[i] < min {
			min = x[i]
		} else if x[i] > max {
			max = x[i]
		}
	}
	return min, max
}

// PaddedRange widens [lo, hi] by frac*(|lo|+1) below and frac*(|hi|+1) above.
func PaddedRange(lo, hi, frac float64) (float64, float64) {
	return lo - frac*(math.Abs(lo)+1), hi + frac*(math.Abs(hi)+1)
}

// Prevalence is the fraction of labels equal to 1.
func Prevalence(labels []int) float64 {
	if len(labels) == 0 {
		return 0
	}
	pos := 0
	for _, l := range labels {
		if l == 1 {
			pos++
		}
	}
	return float64(pos) / float64(len(labels))
}

// MannWhitneyAUC computes the probability that a random positive scores above
// a random negative, counting ties as one half. Tied scores share their
// average rank, so the result equals the trapezoidal ROC area.
func MannWhitneyAUC(labels []int, scores []float64) (float64, error) {
	n := len(labels)
	if len(scores) != n {
		return 0, ErrLengthMismatch
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return scores[idx[a]] < scores[idx[b]] })

	var nPos, nNeg int
	rankSum := 0.0
	for i := 0; i < n; {
		j := i
		for j < n && scores[idx[j]] == scores[idx[i]] {
			j++
		}
		// ranks i+1..j share their mean
		mid := float64(i+1+j) / 2
		for k := i; k < j; k++ {
			if labels[idx[k]] == 1 {
				nPos++
				rankSum += mid
			} else {
				nNeg++
			}
		}
		i = j
	}
	if nPos == 0 || nNeg == 0 {
		return 0, ErrDegenerate
	}
	u := rankSum - float64(nPos)*float64(nPos+1)/2
	return u / (float64(nPos) * float64(nNeg)), nil
}
