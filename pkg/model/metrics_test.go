package model

import (
	"testing"

	"mlviz/pkg/data"

	"github.com/stretchr/testify/assert"
)

func TestBinaryPredFromScore(t *testing.T) {
	got := BinaryPredFromScore([]float64{-1, 0, 0.5, 2}, 0)
	assert.Equal(t, []int{0, 1, 1, 1}, got)
}

func TestPrecisionRecallF1(t *testing.T) {
	yTrue := []int{1, 1, 0, 0, 1}
	yPred := []int{1, 0, 1, 0, 1}

	prec, rec, f1 := PrecisionRecallF1(yTrue, yPred)
	assert.InDelta(t, 2.0/3.0, prec, 1e-12)
	assert.InDelta(t, 2.0/3.0, rec, 1e-12)
	assert.InDelta(t, 2.0/3.0, f1, 1e-12)

	prec, rec, f1 = PrecisionRecallF1([]int{0, 0}, []int{0, 0})
	assert.Zero(t, prec)
	assert.Zero(t, rec)
	assert.Zero(t, f1)
}

func TestAccuracy(t *testing.T) {
	assert.Equal(t, 0.0, Accuracy(nil, nil))
	assert.Equal(t, 0.75, Accuracy([]int{1, 0, 1, 0}, []int{1, 0, 0, 0}))
}

func TestEvaluate_OperatingPoint(t *testing.T) {
	scores := []data.LabeledScore{
		{Label: 1, Score: 0.9},
		{Label: 0, Score: 0.8},
		{Label: 1, Score: 0.7},
		{Label: 0, Score: 0.6},
	}

	op := Evaluate(scores, 0.75)
	assert.Equal(t, 0.75, op.Threshold)
	assert.Equal(t, 0.5, op.Precision)
	assert.Equal(t, 0.5, op.Recall)
	assert.Equal(t, 0.5, op.F1)
	assert.Equal(t, 0.5, op.Accuracy)
}
