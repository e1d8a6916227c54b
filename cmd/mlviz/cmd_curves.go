package main

import (
	"context"
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"mlviz/pkg/config"
	"mlviz/pkg/data"
	"mlviz/pkg/model"
	"mlviz/pkg/render"
	"mlviz/pkg/stats"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"

	baselineAlpha = 0.25
	baselineWidth = 1.2
)

type curvesOptions struct {
	scoresPath string
	output     string
	dpi        int
	format     string
	threshold  float64
	noFigure   bool
}

func newCurvesCommand(root *rootOptions) *cobra.Command {
	opts := &curvesOptions{}
	cmd := &cobra.Command{
		Use:   "curves",
		Short: "Plot Precision-Recall and ROC curves",
		Long: `Build Precision-Recall and ROC curves and plot them in a 1x2 figure.

By default the Fair, Good and Ideal scenarios are simulated from two unit
Gaussians whose means are one separation apart. With --scores a CSV of
"label,score" rows is evaluated instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCurves(cmd.Context(), cmd.OutOrStdout(), root.cfg, opts)
		},
	}

	cmd.Flags().StringVar(&opts.scoresPath, "scores", "", "CSV file of label,score rows to evaluate instead of simulating")
	cmd.Flags().StringVarP(&opts.output, "out", "o", "", "Output image (default from config)")
	cmd.Flags().IntVar(&opts.dpi, "dpi", 0, "Output resolution (default from config)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatTable, "Summary format: table, json or yaml")
	cmd.Flags().Float64Var(&opts.threshold, "threshold", 0, "Decision threshold for the reported operating point")
	cmd.Flags().BoolVar(&opts.noFigure, "no-figure", false, "Print the summary without rendering the figure")

	return cmd
}

// dataset is one named set of labeled scores.
type dataset struct {
	name   string
	scores []data.LabeledScore
}

// caseResult is everything computed for one dataset.
type caseResult struct {
	Name       string               `json:"name" yaml:"name"`
	Samples    int                  `json:"samples" yaml:"samples"`
	Prevalence float64              `json:"prevalence" yaml:"prevalence"`
	AP         float64              `json:"average_precision" yaml:"average_precision"`
	AUC        float64              `json:"auc" yaml:"auc"`
	RankAUC    float64              `json:"rank_auc" yaml:"rank_auc"`
	Operating  model.OperatingPoint `json:"operating_point" yaml:"operating_point"`

	pr, roc model.Curve
}

func runCurves(ctx context.Context, w io.Writer, cfg *config.Config, opts *curvesOptions) error {
	switch opts.format {
	case formatTable, formatJSON, formatYAML:
	default:
		return fmt.Errorf("unsupported format %q: must be table, json or yaml", opts.format)
	}

	sets, err := loadDatasets(ctx, cfg.Curves.Cases, opts.scoresPath)
	if err != nil {
		return err
	}
	results, err := evaluateDatasets(ctx, sets, opts.threshold)
	if err != nil {
		return err
	}
	if err := writeSummary(w, results, opts.format); err != nil {
		return err
	}
	if opts.noFigure {
		return nil
	}

	fc := cfg.Curves
	if opts.output != "" {
		fc.Output = opts.output
	}
	if opts.dpi > 0 {
		fc.DPI = opts.dpi
	}
	r, fig, err := curvesFigure(cfg.Theme, fc, results)
	if err != nil {
		return err
	}
	if err := r.Save(fig, fc.Output); err != nil {
		return fmt.Errorf("rendering curves: %w", err)
	}
	slog.Info("saved figure", "path", fc.Output, "dpi", fc.DPI)
	return nil
}

// loadDatasets reads the CSV at scoresPath, or simulates every case
// concurrently when it is empty. Each case owns its seeded source, so the
// data does not depend on scheduling.
func loadDatasets(ctx context.Context, cases []data.Case, scoresPath string) ([]dataset, error) {
	if scoresPath != "" {
		scores, err := data.LoadScoresCSV(scoresPath)
		if err != nil {
			return nil, fmt.Errorf("loading scores: %w", err)
		}
		name := strings.TrimSuffix(filepath.Base(scoresPath), filepath.Ext(scoresPath))
		slog.Info("loaded scores", "file", scoresPath, "samples", humanize.Comma(int64(len(scores))))
		return []dataset{{name: name, scores: scores}}, nil
	}

	sets := make([]dataset, len(cases))
	g, ctx := errgroup.WithContext(ctx)
	for i, c := range cases {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			scores, err := c.Simulate()
			if err != nil {
				return fmt.Errorf("simulating %s: %w", c.Name, err)
			}
			slog.Debug("simulated", "case", c.Name, "samples", humanize.Comma(int64(len(scores))), "seed", c.Seed)
			sets[i] = dataset{name: c.Name, scores: scores}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sets, nil
}

func evaluateDatasets(ctx context.Context, sets []dataset, threshold float64) ([]caseResult, error) {
	results := make([]caseResult, len(sets))
	g, ctx := errgroup.WithContext(ctx)
	for i, ds := range sets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := evaluate(ds, threshold)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, r := range results {
		slog.Info("curves built", "case", r.Name, "samples", humanize.Comma(int64(r.Samples)),
			"ap", fmt.Sprintf("%.3f", r.AP), "auc", fmt.Sprintf("%.3f", r.AUC))
	}
	return results, nil
}

func evaluate(ds dataset, threshold float64) (caseResult, error) {
	pr, roc, err := model.Curves(ds.name, ds.scores)
	if err != nil {
		return caseResult{}, fmt.Errorf("%s: %w", ds.name, err)
	}
	labels, values := data.Split(ds.scores)
	rank, err := stats.MannWhitneyAUC(labels, values)
	if err != nil {
		return caseResult{}, fmt.Errorf("%s: %w", ds.name, err)
	}
	return caseResult{
		Name:       ds.name,
		Samples:    len(ds.scores),
		Prevalence: stats.Prevalence(labels),
		AP:         pr.Summary,
		AUC:        roc.Summary,
		RankAUC:    rank,
		Operating:  model.Evaluate(ds.scores, threshold),
		pr:         pr,
		roc:        roc,
	}, nil
}

func writeSummary(w io.Writer, results []caseResult, format string) error {
	switch format {
	case formatJSON:
		e := json.NewEncoder(w)
		e.SetIndent("", "  ")
		return e.Encode(results)
	case formatYAML:
		return yaml.NewEncoder(w).Encode(results)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CASE\tSAMPLES\tPREVALENCE\tAP\tAUC\tRANK AUC\tPRECISION\tRECALL\tF1")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\n",
			r.Name, humanize.Comma(int64(r.Samples)), r.Prevalence, r.AP, r.AUC, r.RankAUC,
			r.Operating.Precision, r.Operating.Recall, r.Operating.F1)
	}
	return tw.Flush()
}

// curvesFigure lays out the PR panel on the left and the ROC panel on the right.
func curvesFigure(th config.Theme, fc config.CurvesConfig, results []caseResult) (*render.Renderer, render.Figure, error) {
	theme, err := rendererTheme(th, fc.AxisColor)
	if err != nil {
		return nil, render.Figure{}, err
	}
	palette := make([]render.LineStyle, len(fc.Palette))
	for i, hex := range fc.Palette {
		c, err := render.ParseColor(hex)
		if err != nil {
			return nil, render.Figure{}, err
		}
		palette[i] = render.LineStyle{Color: c, Width: fc.LineWidth}
	}

	unit := render.Range{Min: 0, Max: 1}
	ticks := []float64{0, 1}
	prPanel := render.Panel{
		Title: "Precision–Recall", XLabel: "Recall", YLabel: "Precision",
		XRange: unit, YRange: unit, Ticks: ticks, Legend: true,
	}
	rocPanel := render.Panel{
		Title: "ROC", XLabel: "FPR", YLabel: "TPR",
		XRange: unit, YRange: unit, Ticks: ticks, Legend: true,
	}

	if fc.Baselines && len(results) > 0 {
		faint := render.LineStyle{Color: theme.Foreground, Width: baselineWidth, Alpha: baselineAlpha}
		prev := results[0].Prevalence
		prPanel.Series = append(prPanel.Series, render.Series{X: []float64{0, 1}, Y: []float64{prev, prev}, Style: faint})
		rocPanel.Series = append(rocPanel.Series, render.Series{X: []float64{0, 1}, Y: []float64{0, 1}, Style: faint})
	}
	for i, r := range results {
		style := palette[i%len(palette)]
		prPanel.Series = append(prPanel.Series, render.Series{
			Label: fmt.Sprintf("%s — AP %.3f", r.Name, r.AP),
			X:     r.pr.X, Y: r.pr.Y, Style: style,
		})
		rocPanel.Series = append(rocPanel.Series, render.Series{
			Label: fmt.Sprintf("%s — AUC %.3f", r.Name, r.AUC),
			X:     r.roc.X, Y: r.roc.Y, Style: style,
		})
	}

	fig := render.Figure{
		Rows: 1, Cols: 2,
		WidthIn: fc.WidthIn, HeightIn: fc.HeightIn, DPI: fc.DPI,
		Panels: []render.Panel{prPanel, rocPanel},
	}
	return render.New(theme), fig, nil
}

func rendererTheme(th config.Theme, axis string) (render.Theme, error) {
	var t render.Theme
	for _, f := range []struct {
		dst *color.Color
		hex string
	}{
		{&t.FigureBackground, th.FigureBackground},
		{&t.AxesBackground, th.AxesBackground},
		{&t.Foreground, th.Foreground},
		{&t.Axis, axis},
	} {
		c, err := render.ParseColor(f.hex)
		if err != nil {
			return render.Theme{}, err
		}
		*f.dst = c
	}
	return t, nil
}
