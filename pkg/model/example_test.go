package model_test

import (
	"fmt"

	"mlviz/pkg/data"
	"mlviz/pkg/model"
)

// ExampleCurves sweeps four scored samples and prints both curves.
func ExampleCurves() {
	scores := []data.LabeledScore{
		{Label: 1, Score: 0.9},
		{Label: 0, Score: 0.8},
		{Label: 1, Score: 0.7},
		{Label: 0, Score: 0.6},
	}

	pr, roc, err := model.Curves("toy", scores)
	if err != nil {
		fmt.Println(err)
		return
	}
	for i := 0; i < roc.Len(); i++ {
		x, y := roc.XY(i)
		fmt.Printf("fpr=%.2f tpr=%.2f\n", x, y)
	}
	fmt.Printf("AUC %.3f\n", roc.Summary)
	fmt.Printf("AP  %.3f\n", pr.Summary)
	// Output:
	// fpr=0.00 tpr=0.00
	// fpr=0.00 tpr=0.50
	// fpr=0.50 tpr=0.50
	// fpr=0.50 tpr=1.00
	// fpr=1.00 tpr=1.00
	// AUC 0.750
	// AP  0.833
}
