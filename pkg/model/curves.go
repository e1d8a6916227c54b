package model

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"

	"mlviz/pkg/data"

	"gonum.org/v1/gonum/integrate"
)

// ErrInvalidInput is returned when a labeled score set cannot define a curve.
var ErrInvalidInput = errors.New("model: invalid input")

// CurveKind identifies which metric a Curve plots.
type CurveKind int

const (
	ROC CurveKind = iota
	PR
)

func (k CurveKind) String() string {
	switch k {
	case ROC:
		return "ROC"
	case PR:
		return "PR"
	default:
		return fmt.Sprintf("CurveKind(%d)", int(k))
	}
}

// Curve is a threshold sweep from the highest score to the lowest.
//
// For ROC, X is the false-positive rate and Y the true-positive rate and
// Summary is the AUC. For PR, X is recall and Y precision and Summary is the
// average precision. Thresholds[i] is the score cut that produced point i;
// the first threshold is +Inf (nothing predicted positive).
type Curve struct {
	Name       string
	Kind       CurveKind
	X          []float64
	Y          []float64
	Thresholds []float64
	Summary    float64
}

// Len returns the number of points.
func (c Curve) Len() int { return len(c.X) }

// XY returns point i.
func (c Curve) XY(i int) (x, y float64) { return c.X[i], c.Y[i] }

// sweep holds cumulative confusion counts at each distinct threshold.
type sweep struct {
	thresholds []float64
	tp, fp     []int
	pos, neg   int
}

func newSweep(scores []data.LabeledScore) (*sweep, error) {
	if len(scores) == 0 {
		return nil, fmt.Errorf("empty score set: %w", ErrInvalidInput)
	}
	s := &sweep{}
	for i, ls := range scores {
		switch ls.Label {
		case 0:
			s.neg++
		case 1:
			s.pos++
		default:
			return nil, fmt.Errorf("sample %d: label %d not in {0,1}: %w", i, ls.Label, ErrInvalidInput)
		}
		if math.IsNaN(ls.Score) {
			return nil, fmt.Errorf("sample %d: NaN score: %w", i, ErrInvalidInput)
		}
	}
	if s.pos == 0 || s.neg == 0 {
		return nil, fmt.Errorf("need both classes, got %d positive and %d negative: %w", s.pos, s.neg, ErrInvalidInput)
	}

	sorted := make([]data.LabeledScore, len(scores))
	copy(sorted, scores)
	sort.Slice(sorted, func(a, b int) bool { return sorted[a].Score > sorted[b].Score })

	s.thresholds = append(s.thresholds, math.Inf(1))
	s.tp = append(s.tp, 0)
	s.fp = append(s.fp, 0)
	tp, fp := 0, 0
	for i := 0; i < len(sorted); {
		// equal scores form one step
		j := i
		for j < len(sorted) && sorted[j].Score == sorted[i].Score {
			if sorted[j].Label == 1 {
				tp++
			} else {
				fp++
			}
			j++
		}
		s.thresholds = append(s.thresholds, sorted[i].Score)
		s.tp = append(s.tp, tp)
		s.fp = append(s.fp, fp)
		i = j
	}
	return s, nil
}

// ROCCurve builds the ROC curve of scores. It starts at (0,0), ends at (1,1)
// and both coordinates are non-decreasing.
func ROCCurve(name string, scores []data.LabeledScore) (Curve, error) {
	s, err := newSweep(scores)
	if err != nil {
		return Curve{}, err
	}
	return s.roc(name), nil
}

func (s *sweep) roc(name string) Curve {
	n := len(s.thresholds)
	c := Curve{
		Name:       name,
		Kind:       ROC,
		X:          make([]float64, n),
		Y:          make([]float64, n),
		Thresholds: slices.Clone(s.thresholds),
	}
	for i := range n {
		c.X[i] = float64(s.fp[i]) / float64(s.neg)
		c.Y[i] = float64(s.tp[i]) / float64(s.pos)
	}
	c.Summary = AUC(c.X, c.Y)
	return c
}

// PRCurve builds the precision-recall curve of scores. Precision is 1 where
// nothing has been predicted positive yet.
func PRCurve(name string, scores []data.LabeledScore) (Curve, error) {
	s, err := newSweep(scores)
	if err != nil {
		return Curve{}, err
	}
	return s.pr(name), nil
}

func (s *sweep) pr(name string) Curve {
	n := len(s.thresholds)
	c := Curve{
		Name:       name,
		Kind:       PR,
		X:          make([]float64, n),
		Y:          make([]float64, n),
		Thresholds: slices.Clone(s.thresholds),
	}
	for i := range n {
		c.X[i] = float64(s.tp[i]) / float64(s.pos)
		if predicted := s.tp[i] + s.fp[i]; predicted > 0 {
			c.Y[i] = float64(s.tp[i]) / float64(predicted)
		} else {
			c.Y[i] = 1
		}
	}
	c.Summary = AveragePrecision(c.X, c.Y)
	return c
}

// AUC integrates y over x with the trapezoidal rule. x must be non-decreasing.
func AUC(x, y []float64) float64 {
	if len(x) < 2 {
		return 0
	}
	return integrate.Trapezoidal(x, y)
}

// AveragePrecision is the step-interpolated PR area:
// sum of (recall[i] - recall[i-1]) * precision[i].
func AveragePrecision(recall, precision []float64) float64 {
	ap := 0.0
	for i := 1; i < len(recall); i++ {
		ap += (recall[i] - recall[i-1]) * precision[i]
	}
	return ap
}

// Curves builds the PR and ROC curves for one dataset from a single sort.
func Curves(name string, scores []data.LabeledScore) (pr, roc Curve, err error) {
	s, err := newSweep(scores)
	if err != nil {
		return Curve{}, Curve{}, err
	}
	return s.pr(name), s.roc(name), nil
}
