package chart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/gslides/internal/color"
	"github.com/teemow/gslides/internal/config"
	"github.com/teemow/gslides/internal/errs"
	"github.com/teemow/gslides/internal/frame"
	"github.com/teemow/gslides/internal/sheets/sheetstest"
)

func ptr[T any](v T) *T { return &v }

func newFrame(t *testing.T, fake *sheetstest.Fake) *frame.Frame {
	t.Helper()
	table, err := frame.NewTable([]string{"x", "a", "b", "c"}, [][]any{
		{1, 10, 20, 30},
		{2, 11, 21, 31},
	})
	require.NoError(t, err)

	f, err := frame.Create(context.Background(), fake, table, frame.CreateOptions{
		SpreadsheetID: "sp1",
		SheetID:       3,
		SheetName:     "Data",
		AnchorCell:    "B2",
	})
	require.NoError(t, err)
	return f
}

func newFake() *sheetstest.Fake {
	fake := sheetstest.New()
	fake.ChartID = 11111
	return fake
}

func mustLine(t *testing.T, opts LineOptions) *Series {
	t.Helper()
	s, err := Line(opts)
	require.NoError(t, err)
	return s
}

func mustColumn(t *testing.T, opts ColumnOptions) *Series {
	t.Helper()
	s, err := Column(opts)
	require.NoError(t, err)
	return s
}

func TestSeriesValidation(t *testing.T) {
	tests := []struct {
		name    string
		build   func() (*Series, error)
		wantMsg string
	}{
		{
			name:    "point shape without points",
			build:   func() (*Series, error) { return Line(LineOptions{PointShape: "CIRCLE"}) },
			wantMsg: "point_enabled must be true if point_shape is specified",
		},
		{
			name:    "point size without points",
			build:   func() (*Series, error) { return Area(AreaOptions{PointSize: ptr(int64(3))}) },
			wantMsg: "point_enabled must be true if point_size is specified",
		},
		{
			name:    "label placement without labels",
			build:   func() (*Series, error) { return Column(ColumnOptions{DataLabelPlacement: "ABOVE"}) },
			wantMsg: "data_label_enabled must be true if data_label_placement is specified",
		},
		{
			name:    "unknown line style",
			build:   func() (*Series, error) { return Line(LineOptions{LineStyle: "WAVY"}) },
			wantMsg: "WAVY is not an accepted value for line_style",
		},
		{
			name:    "unknown point shape",
			build:   func() (*Series, error) { return Scatter(ScatterOptions{PointShape: "BLOB"}) },
			wantMsg: "BLOB is not an accepted value for point_shape",
		},
		{
			name:    "negative line width",
			build:   func() (*Series, error) { return Line(LineOptions{LineWidth: ptr(int64(-1))}) },
			wantMsg: "line_width must be greater than or equal to 0",
		},
		{
			name:    "negative bucket size",
			build:   func() (*Series, error) { return Histogram(HistogramOptions{BucketSize: ptr(int64(-2))}) },
			wantMsg: "bucket_size must be greater than or equal to 0",
		},
		{
			name:    "outlier percentage out of range",
			build:   func() (*Series, error) { return Histogram(HistogramOptions{OutlierPercentage: ptr(1.0)}) },
			wantMsg: "outlier_percentage must be in [0,1)",
		},
		{
			name:    "unknown color",
			build:   func() (*Series, error) { return Column(ColumnOptions{Color: "notacolor"}) },
			wantMsg: "not a valid hex or named color",
		},
		{
			name:    "bad hex color",
			build:   func() (*Series, error) { return Column(ColumnOptions{Color: "#12345"}) },
			wantMsg: "not a valid hex color code",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := tt.build()
			require.Error(t, err)
			assert.Nil(t, s)
			assert.True(t, errors.Is(err, errs.ErrInvalidConfig))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestSeriesValid(t *testing.T) {
	s, err := Line(LineOptions{
		Columns:            []string{"a"},
		LineStyle:          "DOTTED",
		LineWidth:          ptr(int64(2)),
		PointEnabled:       true,
		PointShape:         "DIAMOND",
		DataLabelEnabled:   true,
		DataLabelPlacement: "ABOVE",
		Color:              "#61ab96",
	})
	require.NoError(t, err)
	assert.Equal(t, KindLine, s.Kind())
	assert.Equal(t, []string{"a"}, s.Columns())

	area, err := Area(AreaOptions{})
	require.NoError(t, err)
	assert.Equal(t, KindArea, area.Kind())

	scatter, err := Scatter(ScatterOptions{PointShape: "STAR"})
	require.NoError(t, err)
	assert.True(t, scatter.pointEnabled)
}

func TestChartType(t *testing.T) {
	line := func() *Series { return mustLine(t, LineOptions{}) }
	column := func() *Series { return mustColumn(t, ColumnOptions{}) }
	area := func() *Series {
		s, err := Area(AreaOptions{})
		require.NoError(t, err)
		return s
	}
	scatter := func() *Series {
		s, err := Scatter(ScatterOptions{})
		require.NoError(t, err)
		return s
	}
	histogram := func() *Series {
		s, err := Histogram(HistogramOptions{})
		require.NoError(t, err)
		return s
	}

	tests := []struct {
		name    string
		series  []*Series
		want    string
		wantErr string
	}{
		{name: "line", series: []*Series{line()}, want: "LINE"},
		{name: "two lines", series: []*Series{line(), line()}, want: "LINE"},
		{name: "scatter", series: []*Series{scatter()}, want: "SCATTER"},
		{name: "histogram", series: []*Series{histogram()}, want: "HISTOGRAM"},
		{name: "line and column", series: []*Series{line(), column()}, want: TypeCombo},
		{name: "line area column", series: []*Series{line(), area(), column()}, want: TypeCombo},
		{
			name:    "line and histogram",
			series:  []*Series{line(), histogram()},
			wantErr: "only Line, Area and Column series can be used in combination",
		},
		{
			name:    "scatter and line",
			series:  []*Series{scatter(), line()},
			wantErr: "only Line, Area and Column series can be used in combination",
		},
		{name: "no series", series: nil, wantErr: "at least one series"},
	}

	fake := newFake()
	data := newFrame(t, fake)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(data, "x", tt.series, Options{})
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, errors.Is(err, errs.ErrInvalidConfig))
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Type())
		})
	}
}

func TestStacking(t *testing.T) {
	fake := newFake()
	data := newFrame(t, fake)

	_, err := New(data, "x", []*Series{mustLine(t, LineOptions{})}, Options{Stacking: "STACKED"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stacking can only be enabled for Area and Column charts")

	_, err = New(data, "x", []*Series{mustLine(t, LineOptions{}), mustColumn(t, ColumnOptions{})}, Options{Stacking: "STACKED"})
	assert.NoError(t, err)

	_, err = New(data, "x", []*Series{mustColumn(t, ColumnOptions{})}, Options{Stacking: "SIDEWAYS"})
	assert.True(t, errors.Is(err, errs.ErrInvalidConfig))
}

func TestNewValidation(t *testing.T) {
	fake := newFake()
	data := newFrame(t, fake)
	line := mustLine(t, LineOptions{})

	_, err := New(data, "missing", []*Series{line}, Options{})
	assert.True(t, errors.Is(err, errs.ErrInvalidConfig))

	_, err = New(data, "x", []*Series{line}, Options{LegendPosition: "MIDDLE_LEGEND"})
	assert.True(t, errors.Is(err, errs.ErrInvalidConfig))

	_, err = New(data, "x", []*Series{line}, Options{Palette: "nope"})
	assert.True(t, errors.Is(err, errs.ErrInvalidConfig))

	_, err = New(&frame.Frame{}, "x", []*Series{line}, Options{})
	assert.True(t, errors.Is(err, errs.ErrNotExecuted))

	histogram, err := Histogram(HistogramOptions{})
	require.NoError(t, err)
	_, err = New(data, "", []*Series{histogram}, Options{})
	assert.NoError(t, err)
}

func TestResolveSeries(t *testing.T) {
	fake := newFake()
	data := newFrame(t, fake)

	all := mustLine(t, LineOptions{})
	some := mustColumn(t, ColumnOptions{Columns: []string{"b", "missing"}})
	h1, err := Histogram(HistogramOptions{BucketSize: ptr(int64(3)), OutlierPercentage: ptr(0.1)})
	require.NoError(t, err)
	h2, err := Histogram(HistogramOptions{Columns: []string{"c"}, BucketSize: ptr(int64(7))})
	require.NoError(t, err)

	c := &Chart{data: data, xColumn: "x", series: []*Series{all, some}}
	r, err := c.resolveSeries()
	require.NoError(t, err)
	require.Len(t, r.bindings, 3)
	assert.Equal(t, "a", r.bindings[0].column)
	assert.Same(t, all, r.bindings[0].series)
	assert.Equal(t, "b", r.bindings[1].column)
	assert.Same(t, some, r.bindings[1].series)
	assert.Equal(t, "c", r.bindings[2].column)
	assert.Same(t, all, r.bindings[2].series)

	c = &Chart{data: data, xColumn: "x", series: []*Series{some, all}}
	r, err = c.resolveSeries()
	require.NoError(t, err)
	assert.Equal(t, "b", r.bindings[0].column)
	assert.Same(t, all, r.bindings[0].series)

	c = &Chart{data: data, series: []*Series{h1, h2}}
	r, err = c.resolveSeries()
	require.NoError(t, err)
	assert.Len(t, r.bindings, 4)
	assert.Equal(t, int64(7), *r.bucketSize)
	assert.Equal(t, 0.1, *r.outlierPercentage)
}

func TestChartIDBeforeCreate(t *testing.T) {
	fake := newFake()
	c, err := New(newFrame(t, fake), "x", []*Series{mustLine(t, LineOptions{})}, Options{})
	require.NoError(t, err)

	_, err = c.ChartID()
	assert.True(t, errors.Is(err, errs.ErrNotExecuted))

	var nilChart *Chart
	_, err = nilChart.ChartID()
	assert.True(t, errors.Is(err, errs.ErrNotExecuted))
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	fake := newFake()
	data := newFrame(t, fake)

	line, err := Line(LineOptions{Columns: []string{"a"}, PointEnabled: true, LineWidth: ptr(int64(2))})
	require.NoError(t, err)
	column, err := Column(ColumnOptions{Columns: []string{"b"}, Color: "#61ab96", DataLabelEnabled: true})
	require.NoError(t, err)

	c, err := New(data, "x", []*Series{line, column}, Options{
		Title:          "Sales",
		YMin:           ptr(0.0),
		Palette:        "primary",
		LegendPosition: "BOTTOM_LEGEND",
		Stacking:       "STACKED",
		Style:          config.Style{Font: "Roboto"},
	})
	require.NoError(t, err)

	require.NoError(t, c.Create(ctx, fake, Size{}))
	id, err := c.ChartID()
	require.NoError(t, err)
	assert.Equal(t, int64(11111), id)

	require.Len(t, fake.Requests, 1)
	require.Len(t, fake.Requests[0], 1)
	chart := fake.Requests[0][0].AddChart.Chart

	overlay := chart.Position.OverlayPosition
	assert.Equal(t, int64(600), overlay.WidthPixels)
	assert.Equal(t, int64(371), overlay.HeightPixels)
	assert.Equal(t, int64(3), overlay.AnchorCell.SheetId)
	assert.Equal(t, int64(1), overlay.AnchorCell.RowIndex)
	assert.Equal(t, int64(1), overlay.AnchorCell.ColumnIndex)

	spec := chart.Spec
	assert.Equal(t, "Sales", spec.Title)
	assert.Equal(t, "Roboto", spec.FontName)
	assert.Equal(t, "CENTER", spec.TitleTextPosition.HorizontalAlignment)
	assert.Equal(t, int64(16), spec.TitleTextFormat.FontSize)
	assert.True(t, spec.TitleTextFormat.Bold)
	assert.Equal(t, "SKIP_HIDDEN_ROWS_AND_COLUMNS", spec.HiddenDimensionStrategy)

	basic := spec.BasicChart
	assert.Equal(t, TypeCombo, basic.ChartType)
	assert.Equal(t, "BOTTOM_LEGEND", basic.LegendPosition)
	assert.Equal(t, "STACKED", basic.StackedType)
	assert.Equal(t, int64(1), basic.HeaderCount)

	require.Len(t, basic.Axis, 2)
	assert.Equal(t, "BOTTOM_AXIS", basic.Axis[0].Position)
	assert.Empty(t, basic.Axis[0].ViewWindowOptions.ForceSendFields)
	assert.Equal(t, "LEFT_AXIS", basic.Axis[1].Position)
	assert.Equal(t, []string{"ViewWindowMin"}, basic.Axis[1].ViewWindowOptions.ForceSendFields)

	domain := basic.Domains[0].Domain.SourceRange.Sources[0]
	assert.Equal(t, int64(1), domain.StartRowIndex)
	assert.Equal(t, int64(4), domain.EndRowIndex)
	assert.Equal(t, int64(1), domain.StartColumnIndex)
	assert.Equal(t, int64(2), domain.EndColumnIndex)

	require.Len(t, basic.Series, 2)
	first := basic.Series[0]
	assert.Equal(t, "LEFT_AXIS", first.TargetAxis)
	assert.Equal(t, "LINE", first.Type)
	assert.Equal(t, int64(2), first.LineStyle.Width)
	assert.Equal(t, float64(5), first.PointStyle.Size)
	assert.Nil(t, first.DataLabel)
	assert.Equal(t, int64(2), first.Series.SourceRange.Sources[0].StartColumnIndex)

	red, err := color.Parse("red")
	require.NoError(t, err)
	assert.Equal(t, red.Red, first.Color.Red)
	assert.Equal(t, red.Red, first.ColorStyle.RgbColor.Red)

	second := basic.Series[1]
	assert.Equal(t, "COLUMN", second.Type)
	assert.Nil(t, second.LineStyle)
	assert.Nil(t, second.PointStyle)
	assert.Equal(t, "DATA", second.DataLabel.Type)
	assert.Equal(t, int64(12), second.DataLabel.TextFormat.FontSize)
	assert.InDelta(t, 0x61/255.0, second.Color.Red, 1e-9)
	assert.InDelta(t, 0xab/255.0, second.Color.Green, 1e-9)
	assert.InDelta(t, 0x96/255.0, second.Color.Blue, 1e-9)

	require.NoError(t, c.Create(ctx, fake, DefaultSize))
	assert.Len(t, fake.Requests, 2)
}

func TestCreateAppliesAxisFormats(t *testing.T) {
	ctx := context.Background()
	fake := newFake()
	data := newFrame(t, fake)

	c, err := New(data, "x", []*Series{mustColumn(t, ColumnOptions{Columns: []string{"a", "c"}})}, Options{
		XAxisFormat: "DATE",
		YAxisFormat: "0.0%",
	})
	require.NoError(t, err)
	require.NoError(t, c.Create(ctx, fake, Size{Width: 300, Height: 200}))

	require.Len(t, fake.Requests, 2)
	formats := fake.Requests[0]
	require.Len(t, formats, 3)
	assert.Equal(t, "DATE", formats[0].RepeatCell.Cell.UserEnteredFormat.NumberFormat.Type)
	assert.Equal(t, "0.0%", formats[1].RepeatCell.Cell.UserEnteredFormat.NumberFormat.Pattern)
	assert.Equal(t, "0.0%", formats[2].RepeatCell.Cell.UserEnteredFormat.NumberFormat.Pattern)

	overlay := fake.Requests[1][0].AddChart.Chart.Position.OverlayPosition
	assert.Equal(t, int64(300), overlay.WidthPixels)
	assert.Equal(t, int64(200), overlay.HeightPixels)
}

func TestCreateHistogram(t *testing.T) {
	fake := newFake()
	data := newFrame(t, fake)

	h, err := Histogram(HistogramOptions{Columns: []string{"a", "b"}, BucketSize: ptr(int64(4)), OutlierPercentage: ptr(0.05)})
	require.NoError(t, err)

	c, err := New(data, "x", []*Series{h}, Options{
		Style: config.Style{Palette: "tableau"},
	})
	require.NoError(t, err)
	require.NoError(t, c.Create(context.Background(), fake, Size{}))

	spec := fake.Requests[0][0].AddChart.Chart.Spec
	assert.Nil(t, spec.BasicChart)
	histogram := spec.HistogramChart
	require.NotNil(t, histogram)
	assert.Equal(t, float64(4), histogram.BucketSize)
	assert.Equal(t, 0.05, histogram.OutlierPercentile)
	require.Len(t, histogram.Series, 2)
	// The style palette only applies to basic charts.
	assert.Nil(t, histogram.Series[0].BarColor)

	c, err = New(data, "x", []*Series{h}, Options{Palette: "tableau"})
	require.NoError(t, err)
	require.NoError(t, c.Create(context.Background(), fake, Size{}))
	histogram = fake.Requests[1][0].AddChart.Chart.Spec.HistogramChart
	require.NotNil(t, histogram.Series[0].BarColor)
	assert.NotEqual(t, histogram.Series[0].BarColor, histogram.Series[1].BarColor)
}

func TestCreateFailureKeepsState(t *testing.T) {
	fake := newFake()
	c, err := New(newFrame(t, fake), "x", []*Series{mustLine(t, LineOptions{})}, Options{})
	require.NoError(t, err)

	fake.Err = errors.New("boom")
	require.Error(t, c.Create(context.Background(), fake, Size{}))
	_, err = c.ChartID()
	assert.True(t, errors.Is(err, errs.ErrNotExecuted))
}
