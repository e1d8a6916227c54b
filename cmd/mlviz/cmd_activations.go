package main

import (
	"fmt"
	"log/slog"

	"mlviz/pkg/NeuralNetwork"
	"mlviz/pkg/config"
	"mlviz/pkg/render"

	"github.com/spf13/cobra"
)

type activationsOptions struct {
	output string
	dpi    int
	points int
}

func newActivationsCommand(root *rootOptions) *cobra.Command {
	opts := &activationsOptions{}
	cmd := &cobra.Command{
		Use:   "activations",
		Short: "Plot a gallery of activation functions",
		Long: `Evaluate ReLU, Leaky ReLU, tanh, sigmoid, ELU, GELU, Swish, the GLU and
SwiGLU 1-D slices and the softmax class probability over one input grid and
plot them on a shared y-range.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ac := root.cfg.Activations
			if opts.output != "" {
				ac.Output = opts.output
			}
			if opts.dpi > 0 {
				ac.DPI = opts.dpi
			}
			if opts.points > 0 {
				ac.Points = opts.points
			}
			return runActivations(root.cfg.Theme, ac)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "out", "o", "", "Output image (default from config)")
	cmd.Flags().IntVar(&opts.dpi, "dpi", 0, "Output resolution (default from config)")
	cmd.Flags().IntVar(&opts.points, "points", 0, "Grid points across the input domain (default from config)")

	return cmd
}

func runActivations(th config.Theme, ac config.ActivationsConfig) error {
	if ac.Points < 2 {
		return fmt.Errorf("activations: need at least 2 grid points, got %d", ac.Points)
	}
	r, fig, err := activationsFigure(th, ac)
	if err != nil {
		return err
	}
	if err := r.Save(fig, ac.Output); err != nil {
		return fmt.Errorf("rendering activations: %w", err)
	}
	slog.Info("saved figure", "path", ac.Output, "panels", len(fig.Panels), "dpi", ac.DPI)
	return nil
}

func activationsFigure(th config.Theme, ac config.ActivationsConfig) (*render.Renderer, render.Figure, error) {
	theme, err := rendererTheme(th, ac.AxisColor)
	if err != nil {
		return nil, render.Figure{}, err
	}
	lineColor, err := render.ParseColor(ac.LineColor)
	if err != nil {
		return nil, render.Figure{}, err
	}

	grid := NeuralNetwork.Linspace(ac.DomainMin, ac.DomainMax, ac.Points)
	samples := NeuralNetwork.Gallery(grid)
	lo, hi := NeuralNetwork.SharedRange(samples)
	slog.Debug("evaluated activations", "count", len(samples), "points", len(grid), "y_min", lo, "y_max", hi)

	style := render.LineStyle{Color: lineColor, Width: ac.LineWidth}
	panels := make([]render.Panel, len(samples))
	for i, s := range samples {
		panels[i] = render.Panel{
			Title:  s.Name,
			Series: []render.Series{{X: s.X, Y: s.Y, Style: style}},
			XRange: render.Range{Min: ac.DomainMin, Max: ac.DomainMax},
			YRange: render.Range{Min: lo, Max: hi},
			Ticks:  []float64{0},
		}
	}

	fig := render.Figure{
		Rows: ac.Rows, Cols: ac.Cols,
		WidthIn: ac.WidthIn, HeightIn: ac.HeightIn, DPI: ac.DPI,
		Panels: panels,
	}
	return render.New(theme), fig, nil
}
