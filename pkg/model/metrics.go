package model

import "mlviz/pkg/data"

// Classification metrics (binary, labels 0/1)
func Accuracy(yTrue []int, yPred []int) float64 {
	if len(yTrue) == 0 {
		return 0
	}
	c := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			c++
		}
	}
	return float64(c) / float64(len(yTrue))
}

// BinaryPredFromScore predicts 1 for every score at or above threshold.
func BinaryPredFromScore(scores []float64, threshold float64) []int {
	out := make([]int, len(scores))
	for i, s := range scores {
		if s >= threshold {
			out[i] = 1
		} else {
			out[i] = 0
		}
	}
	return out
}

func PrecisionRecallF1(yTrue []int, yPred []int) (prec, rec, f1 float64) {
	tp, fp, fn := 0, 0, 0
	for i := range yTrue {
		if yPred[i] == 1 && yTrue[i] == 1 {
			tp++
		}
		if yPred[i] == 1 && yTrue[i] == 0 {
			fp++
		}
		if yPred[i] == 0 && yTrue[i] == 1 {
			fn++
		}
	}
	if tp+fp > 0 {
		prec = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		rec = float64(tp) / float64(tp+fn)
	}
	if prec+rec > 0 {
		f1 = 2 * prec * rec / (prec + rec)
	}
	return
}

// OperatingPoint summarises a classifier at one fixed decision threshold.
type OperatingPoint struct {
	Threshold float64 `json:"threshold" yaml:"threshold"`
	Precision float64 `json:"precision" yaml:"precision"`
	Recall    float64 `json:"recall" yaml:"recall"`
	F1        float64 `json:"f1" yaml:"f1"`
	Accuracy  float64 `json:"accuracy" yaml:"accuracy"`
}

// Evaluate reports precision, recall, F1 and accuracy at threshold.
func Evaluate(scores []data.LabeledScore, threshold float64) OperatingPoint {
	labels, values := data.Split(scores)
	pred := BinaryPredFromScore(values, threshold)
	prec, rec, f1 := PrecisionRecallF1(labels, pred)
	return OperatingPoint{
		Threshold: threshold,
		Precision: prec,
		Recall:    rec,
		F1:        f1,
		Accuracy:  Accuracy(labels, pred),
	}
}
