package chart

import (
	"strings"

	sheets "google.golang.org/api/sheets/v4"

	"github.com/teemow/gslides/internal/color"
)

const (
	titleFontSize     = 16
	axisFontSize      = 14
	dataLabelFontSize = 12

	hiddenDimensionStrategy = "SKIP_HIDDEN_ROWS_AND_COLUMNS"
)

type binding struct {
	column string
	series *Series
}

type resolution struct {
	bindings          []binding
	bucketSize        *int64
	outlierPercentage *float64
}

// resolveSeries assigns a series to every plotted column. Series are
// applied in order and a later series claiming a column replaces the
// earlier one while the column keeps its first position.
func (c *Chart) resolveSeries() (resolution, error) {
	table, err := c.data.Data()
	if err != nil {
		return resolution{}, err
	}

	var r resolution
	index := make(map[string]int)
	claim := func(column string, s *Series) {
		if i, ok := index[column]; ok {
			r.bindings[i].series = s
			return
		}
		index[column] = len(r.bindings)
		r.bindings = append(r.bindings, binding{column: column, series: s})
	}

	for _, s := range c.series {
		if len(s.columns) == 0 {
			for _, column := range table.Columns() {
				if column != c.xColumn {
					claim(column, s)
				}
			}
		} else {
			for _, column := range s.columns {
				if table.HasColumn(column) {
					claim(column, s)
				}
			}
		}
		if s.outlierPercentage != nil && *s.outlierPercentage != 0 {
			r.outlierPercentage = s.outlierPercentage
		}
		if s.bucketSize != nil && *s.bucketSize != 0 {
			r.bucketSize = s.bucketSize
		}
	}
	return r, nil
}

// Request renders the addChart request.
func (c *Chart) Request(size Size) (*sheets.Request, error) {
	resolved, err := c.resolveSeries()
	if err != nil {
		return nil, err
	}

	var chart *sheets.EmbeddedChart
	if c.isHistogram() {
		chart, err = c.renderHistogram(resolved, size)
	} else {
		chart, err = c.renderBasic(resolved, size)
	}
	if err != nil {
		return nil, err
	}
	return &sheets.Request{AddChart: &sheets.AddChartRequest{Chart: chart}}, nil
}

func (c *Chart) spec() *sheets.ChartSpec {
	return &sheets.ChartSpec{
		Title:                   c.opts.Title,
		TitleTextPosition:       &sheets.TextPosition{HorizontalAlignment: "CENTER"},
		TitleTextFormat:         c.textFormat(titleFontSize),
		HiddenDimensionStrategy: hiddenDimensionStrategy,
		FontName:                c.style.Font,
	}
}

func (c *Chart) position(size Size) *sheets.EmbeddedObjectPosition {
	start := c.data.Start()
	return &sheets.EmbeddedObjectPosition{
		OverlayPosition: &sheets.OverlayPosition{
			AnchorCell: &sheets.GridCoordinate{
				SheetId:     c.data.SheetID(),
				RowIndex:    int64(start.Row - 1),
				ColumnIndex: int64(start.Column - 1),
			},
			WidthPixels:  size.Width,
			HeightPixels: size.Height,
		},
	}
}

func (c *Chart) textFormat(fontSize int64) *sheets.TextFormat {
	return &sheets.TextFormat{
		FontFamily:           c.style.Font,
		FontSize:             fontSize,
		Bold:                 true,
		ForegroundColor:      sheetsColor(color.Black),
		ForegroundColorStyle: &sheets.ColorStyle{RgbColor: sheetsColor(color.Black)},
	}
}

func (c *Chart) axis(position, title string, lo, hi *float64) *sheets.BasicChartAxis {
	window := &sheets.ChartAxisViewWindowOptions{}
	if lo != nil {
		window.ViewWindowMin = *lo
		window.ForceSendFields = append(window.ForceSendFields, "ViewWindowMin")
	}
	if hi != nil {
		window.ViewWindowMax = *hi
		window.ForceSendFields = append(window.ForceSendFields, "ViewWindowMax")
	}
	return &sheets.BasicChartAxis{
		Position:          position,
		Title:             title,
		Format:            c.textFormat(axisFontSize),
		ViewWindowOptions: window,
	}
}

// palette returns the cursor coloring series without an explicit color, or
// nil when none applies.
func (c *Chart) palette(fallback bool) (*color.Palette, error) {
	name := c.opts.Palette
	if name == "" && fallback {
		name = c.style.Palette
	}
	if name == "" {
		return nil, nil
	}
	return c.style.Palettes.Palette(name)
}

func (c *Chart) renderBasic(resolved resolution, size Size) (*sheets.EmbeddedChart, error) {
	domain, err := c.data.ColumnRange(c.xColumn)
	if err != nil {
		return nil, err
	}
	palette, err := c.palette(true)
	if err != nil {
		return nil, err
	}

	basic := &sheets.BasicChartSpec{
		ChartType: c.chartType,
		Axis: []*sheets.BasicChartAxis{
			c.axis("BOTTOM_AXIS", c.opts.XAxisLabel, c.opts.XMin, c.opts.XMax),
			c.axis("LEFT_AXIS", c.opts.YAxisLabel, c.opts.YMin, c.opts.YMax),
		},
		Domains: []*sheets.BasicChartDomain{
			{Domain: chartData(domain)},
		},
		LegendPosition: c.opts.LegendPosition,
		HeaderCount:    1,
		StackedType:    c.opts.Stacking,
	}

	for _, b := range resolved.bindings {
		rng, err := c.data.ColumnRange(b.column)
		if err != nil {
			return nil, err
		}
		basic.Series = append(basic.Series, c.basicSeries(b.series, rng, palette))
	}

	spec := c.spec()
	spec.BasicChart = basic
	return &sheets.EmbeddedChart{Spec: spec, Position: c.position(size)}, nil
}

func (c *Chart) basicSeries(s *Series, rng *sheets.GridRange, palette *color.Palette) *sheets.BasicChartSeries {
	out := &sheets.BasicChartSeries{
		TargetAxis: "LEFT_AXIS",
		Series:     chartData(rng),
	}
	if (s.kind == KindLine || s.kind == KindArea) && (s.lineStyle != "" || s.lineWidth != nil) {
		out.LineStyle = &sheets.LineStyle{Type: s.lineStyle}
		if s.lineWidth != nil {
			out.LineStyle.Width = *s.lineWidth
		}
	}
	if s.pointEnabled {
		pointSize := int64(defaultPointSize)
		if s.pointSize != nil && *s.pointSize != 0 {
			pointSize = *s.pointSize
		}
		out.PointStyle = &sheets.PointStyle{Shape: s.pointShape, Size: float64(pointSize)}
	}
	if s.dataLabelEnabled {
		out.DataLabel = &sheets.DataLabel{
			Placement: s.dataLabelPlacement,
			Type:      "DATA",
			TextFormat: &sheets.TextFormat{
				FontFamily: c.style.Font,
				FontSize:   dataLabelFontSize,
			},
		}
	}
	if c.chartType == TypeCombo {
		out.Type = strings.ToUpper(string(s.kind))
	}
	if rgb, ok := seriesColor(s, palette); ok {
		out.Color = sheetsColor(rgb)
		out.ColorStyle = &sheets.ColorStyle{RgbColor: sheetsColor(rgb)}
	}
	return out
}

func (c *Chart) renderHistogram(resolved resolution, size Size) (*sheets.EmbeddedChart, error) {
	palette, err := c.palette(false)
	if err != nil {
		return nil, err
	}

	histogram := &sheets.HistogramChartSpec{
		LegendPosition: c.opts.LegendPosition,
	}
	if resolved.bucketSize != nil {
		histogram.BucketSize = float64(*resolved.bucketSize)
	}
	if resolved.outlierPercentage != nil {
		histogram.OutlierPercentile = *resolved.outlierPercentage
	}

	for _, b := range resolved.bindings {
		rng, err := c.data.ColumnRange(b.column)
		if err != nil {
			return nil, err
		}
		series := &sheets.HistogramSeries{Data: chartData(rng)}
		if rgb, ok := seriesColor(b.series, palette); ok {
			series.BarColor = sheetsColor(rgb)
			series.BarColorStyle = &sheets.ColorStyle{RgbColor: sheetsColor(rgb)}
		}
		histogram.Series = append(histogram.Series, series)
	}

	spec := c.spec()
	spec.HistogramChart = histogram
	return &sheets.EmbeddedChart{Spec: spec, Position: c.position(size)}, nil
}

// seriesColor picks the explicit color of the series or advances the
// palette once.
func seriesColor(s *Series, palette *color.Palette) (color.RGB, bool) {
	if s.color != nil {
		return *s.color, true
	}
	if palette != nil {
		return palette.Next(), true
	}
	return color.RGB{}, false
}

func chartData(rng *sheets.GridRange) *sheets.ChartData {
	return &sheets.ChartData{
		SourceRange: &sheets.ChartSourceRange{Sources: []*sheets.GridRange{rng}},
	}
}

func sheetsColor(c color.RGB) *sheets.Color {
	return &sheets.Color{Red: c.Red, Green: c.Green, Blue: c.Blue}
}
