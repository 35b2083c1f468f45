package chart

import (
	"fmt"
	"slices"

	"github.com/teemow/gslides/internal/color"
	"github.com/teemow/gslides/internal/config"
	"github.com/teemow/gslides/internal/errs"
)

// Kind is the plot type of a series.
type Kind string

// Series kinds.
const (
	KindLine      Kind = "Line"
	KindArea      Kind = "Area"
	KindColumn    Kind = "Column"
	KindScatter   Kind = "Scatter"
	KindHistogram Kind = "Histogram"
)

// defaultPointSize is used when points are enabled without a size.
const defaultPointSize = 5

// Series configures how one or more frame columns are plotted.
type Series struct {
	kind    Kind
	columns []string

	lineStyle string
	lineWidth *int64

	pointEnabled bool
	pointShape   string
	pointSize    *int64

	dataLabelEnabled   bool
	dataLabelPlacement string

	color *color.RGB

	bucketSize        *int64
	outlierPercentage *float64
}

// LineOptions configure a Line series. Empty Columns plots every column
// except the x axis column.
type LineOptions struct {
	Columns            []string `yaml:"columns"`
	LineStyle          string   `yaml:"line_style"`
	LineWidth          *int64   `yaml:"line_width"`
	PointEnabled       bool     `yaml:"point_enabled"`
	PointShape         string   `yaml:"point_shape"`
	PointSize          *int64   `yaml:"point_size"`
	DataLabelEnabled   bool     `yaml:"data_label_enabled"`
	DataLabelPlacement string   `yaml:"data_label_placement"`
	Color              string   `yaml:"color"`
}

// AreaOptions configure an Area series.
type AreaOptions LineOptions

// ScatterOptions configure a Scatter series.
type ScatterOptions struct {
	Columns            []string `yaml:"columns"`
	PointShape         string   `yaml:"point_shape"`
	PointSize          *int64   `yaml:"point_size"`
	DataLabelEnabled   bool     `yaml:"data_label_enabled"`
	DataLabelPlacement string   `yaml:"data_label_placement"`
	Color              string   `yaml:"color"`
}

// ColumnOptions configure a Column series.
type ColumnOptions struct {
	Columns            []string `yaml:"columns"`
	DataLabelEnabled   bool     `yaml:"data_label_enabled"`
	DataLabelPlacement string   `yaml:"data_label_placement"`
	Color              string   `yaml:"color"`
}

// HistogramOptions configure a Histogram series. OutlierPercentage must lie
// in [0,1).
type HistogramOptions struct {
	Columns           []string `yaml:"columns"`
	BucketSize        *int64   `yaml:"bucket_size"`
	OutlierPercentage *float64 `yaml:"outlier_percentage"`
	Color             string   `yaml:"color"`
}

// Line returns a line series.
func Line(opts LineOptions) (*Series, error) {
	s := &Series{
		kind:               KindLine,
		columns:            slices.Clone(opts.Columns),
		lineStyle:          opts.LineStyle,
		lineWidth:          opts.LineWidth,
		pointEnabled:       opts.PointEnabled,
		pointShape:         opts.PointShape,
		pointSize:          opts.PointSize,
		dataLabelEnabled:   opts.DataLabelEnabled,
		dataLabelPlacement: opts.DataLabelPlacement,
	}
	return s.validate(opts.Color)
}

// Area returns an area series.
func Area(opts AreaOptions) (*Series, error) {
	s, err := Line(LineOptions(opts))
	if err != nil {
		return nil, err
	}
	s.kind = KindArea
	return s, nil
}

// Scatter returns a scatter series. Points are always drawn.
func Scatter(opts ScatterOptions) (*Series, error) {
	s := &Series{
		kind:               KindScatter,
		columns:            slices.Clone(opts.Columns),
		pointEnabled:       true,
		pointShape:         opts.PointShape,
		pointSize:          opts.PointSize,
		dataLabelEnabled:   opts.DataLabelEnabled,
		dataLabelPlacement: opts.DataLabelPlacement,
	}
	return s.validate(opts.Color)
}

// Column returns a column (vertical bar) series.
func Column(opts ColumnOptions) (*Series, error) {
	s := &Series{
		kind:               KindColumn,
		columns:            slices.Clone(opts.Columns),
		dataLabelEnabled:   opts.DataLabelEnabled,
		dataLabelPlacement: opts.DataLabelPlacement,
	}
	return s.validate(opts.Color)
}

// Histogram returns a histogram series.
func Histogram(opts HistogramOptions) (*Series, error) {
	s := &Series{
		kind:              KindHistogram,
		columns:           slices.Clone(opts.Columns),
		bucketSize:        opts.BucketSize,
		outlierPercentage: opts.OutlierPercentage,
	}
	if opts.OutlierPercentage != nil {
		if err := config.ValidateFraction("outlier_percentage", *opts.OutlierPercentage); err != nil {
			return nil, err
		}
	}
	return s.validate(opts.Color)
}

func (s *Series) validate(c string) (*Series, error) {
	if !s.pointEnabled {
		if s.pointShape != "" {
			return nil, fmt.Errorf("%w: point_enabled must be true if point_shape is specified", errs.ErrInvalidConfig)
		}
		if s.pointSize != nil {
			return nil, fmt.Errorf("%w: point_enabled must be true if point_size is specified", errs.ErrInvalidConfig)
		}
	}
	if !s.dataLabelEnabled && s.dataLabelPlacement != "" {
		return nil, fmt.Errorf("%w: data_label_enabled must be true if data_label_placement is specified", errs.ErrInvalidConfig)
	}

	enums := []struct{ param, value string }{
		{config.ParamLineStyle, s.lineStyle},
		{config.ParamPointShape, s.pointShape},
		{config.ParamDataLabelPlacement, s.dataLabelPlacement},
	}
	for _, e := range enums {
		if err := config.ValidateEnum(e.param, e.value); err != nil {
			return nil, err
		}
	}

	ints := []struct {
		param string
		value *int64
	}{
		{"line_width", s.lineWidth},
		{"point_size", s.pointSize},
		{"bucket_size", s.bucketSize},
	}
	for _, i := range ints {
		if err := config.ValidateNonNegative(i.param, i.value); err != nil {
			return nil, err
		}
	}

	for _, column := range s.columns {
		if column == "" {
			return nil, fmt.Errorf("%w: series columns must not be empty", errs.ErrInvalidConfig)
		}
	}

	if c != "" {
		rgb, err := color.Parse(c)
		if err != nil {
			return nil, err
		}
		s.color = &rgb
	}
	return s, nil
}

// Kind returns the plot type of the series.
func (s *Series) Kind() Kind { return s.kind }

// Columns returns the explicitly selected columns.
func (s *Series) Columns() []string { return slices.Clone(s.columns) }

func (s *Series) String() string {
	out := fmt.Sprintf("Series Type: %s", s.kind)
	if len(s.columns) > 0 {
		out += fmt.Sprintf("\n - series_columns: %v", s.columns)
	}
	if s.color != nil {
		out += fmt.Sprintf("\n - color: %v", *s.color)
	}
	return out
}
