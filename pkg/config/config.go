package config

import (
	"errors"
	"fmt"
	"os"

	"mlviz/pkg/NeuralNetwork"
	"mlviz/pkg/data"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Validate and Load for unusable settings.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config holds every literal the two figures are built from.
type Config struct {
	Theme       Theme             `yaml:"theme"`
	Curves      CurvesConfig      `yaml:"curves"`
	Activations ActivationsConfig `yaml:"activations"`
}

// Theme is shared by both figures. Colors are "#rrggbb".
type Theme struct {
	FigureBackground string `yaml:"figure_background"`
	AxesBackground   string `yaml:"axes_background"`
	Foreground       string `yaml:"foreground"`
}

// Figure is the output file and its physical size.
type Figure struct {
	Output   string  `yaml:"output"`
	WidthIn  float64 `yaml:"width_in"`
	HeightIn float64 `yaml:"height_in"`
	DPI      int     `yaml:"dpi"`
}

// CurvesConfig drives the PR/ROC figure.
type CurvesConfig struct {
	Figure    `yaml:",inline"`
	Cases     []data.Case `yaml:"cases"`
	Palette   []string    `yaml:"palette"`
	AxisColor string      `yaml:"axis_color"`
	LineWidth float64     `yaml:"line_width"`
	// Baselines draws the prevalence line on PR and the chance diagonal on ROC.
	Baselines bool `yaml:"baselines"`
}

// ActivationsConfig drives the activation gallery.
type ActivationsConfig struct {
	Figure    `yaml:",inline"`
	DomainMin float64 `yaml:"domain_min"`
	DomainMax float64 `yaml:"domain_max"`
	Points    int     `yaml:"points"`
	Rows      int     `yaml:"rows"`
	Cols      int     `yaml:"cols"`
	LineColor string  `yaml:"line_color"`
	AxisColor string  `yaml:"axis_color"`
	LineWidth float64 `yaml:"line_width"`
}

// galleryPanels is the number of activations in NeuralNetwork.Gallery.
const galleryPanels = 10

// Default returns the dark-theme settings both figures were designed with.
func Default() *Config {
	return &Config{
		Theme: Theme{
			FigureBackground: "#0b1020",
			AxesBackground:   "#141e2f",
			Foreground:       "#e6f7ff",
		},
		Curves: CurvesConfig{
			Figure: Figure{
				Output:   "pr_roc_1x2_smooth_dark.png",
				WidthIn:  14,
				HeightIn: 6,
				DPI:      600,
			},
			Cases:     data.DefaultCases(),
			Palette:   []string{"#00e5ff", "#ff6ad5", "#ffd166"},
			AxisColor: "#8bd3ff",
			LineWidth: 3.0,
			Baselines: true,
		},
		Activations: ActivationsConfig{
			Figure: Figure{
				Output:   "activations_5x2_dark_theme.png",
				WidthIn:  17,
				HeightIn: 12,
				DPI:      600,
			},
			DomainMin: NeuralNetwork.DefaultDomainMin,
			DomainMax: NeuralNetwork.DefaultDomainMax,
			Points:    NeuralNetwork.DefaultPoints,
			Rows:      3,
			Cols:      4,
			LineColor: "#00e5ff",
			AxisColor: "#ffffff",
			LineWidth: 3.2,
		},
	}
}

// Load reads a YAML file over Default. Keys absent from the file keep their
// default; a list such as curves.cases replaces the default list.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every setting.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}
	color := func(field, v string) {
		_, err := colorful.Hex(v)
		check(err == nil, "%s: bad color %q", field, v)
	}

	color("theme.figure_background", c.Theme.FigureBackground)
	color("theme.axes_background", c.Theme.AxesBackground)
	color("theme.foreground", c.Theme.Foreground)

	c.Curves.Figure.validate("curves", check)
	check(len(c.Curves.Cases) > 0, "curves.cases: at least one case required")
	for _, cs := range c.Curves.Cases {
		if err := cs.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	check(len(c.Curves.Palette) > 0, "curves.palette: at least one color required")
	for i, p := range c.Curves.Palette {
		color(fmt.Sprintf("curves.palette[%d]", i), p)
	}
	color("curves.axis_color", c.Curves.AxisColor)
	check(c.Curves.LineWidth > 0, "curves.line_width must be positive")

	a := c.Activations
	a.Figure.validate("activations", check)
	check(a.DomainMin < a.DomainMax, "activations: domain_min %v must be below domain_max %v", a.DomainMin, a.DomainMax)
	check(a.Points >= 2, "activations.points must be at least 2, got %d", a.Points)
	check(a.Rows > 0 && a.Cols > 0 && a.Rows*a.Cols >= galleryPanels,
		"activations: %dx%d grid cannot hold %d panels", a.Rows, a.Cols, galleryPanels)
	color("activations.line_color", a.LineColor)
	color("activations.axis_color", a.AxisColor)
	check(a.LineWidth > 0, "activations.line_width must be positive")

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

func (f Figure) validate(section string, check func(bool, string, ...any)) {
	check(f.Output != "", "%s.output is required", section)
	check(f.WidthIn > 0 && f.HeightIn > 0, "%s: figure size must be positive", section)
	check(f.DPI > 0, "%s.dpi must be positive", section)
}
