package chart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sheets "google.golang.org/api/sheets/v4"

	"github.com/teemow/gslides/internal/config"
	"github.com/teemow/gslides/internal/errs"
	"github.com/teemow/gslides/internal/frame"
	"github.com/teemow/gslides/internal/jsontree"
	gsheets "github.com/teemow/gslides/internal/sheets"
)

// TypeCombo is the chart type of a mix of Line, Area and Column series.
const TypeCombo = "COMBO"

// Size is a chart size in pixels.
type Size struct {
	Width  int64
	Height int64
}

// DefaultSize is the size Google suggests for embedded charts.
var DefaultSize = Size{Width: 600, Height: 371}

// Options configure a Chart. Axis bounds are only sent when set.
type Options struct {
	Title      string
	XAxisLabel string
	YAxisLabel string

	XMin *float64
	XMax *float64
	YMin *float64
	YMax *float64

	// XAxisFormat and YAxisFormat are number formats applied to the x
	// column and to every plotted column before the chart is created.
	XAxisFormat string
	YAxisFormat string

	// Palette names the palette coloring series without an explicit color.
	// Basic charts fall back to the style palette, histograms do not.
	Palette string

	LegendPosition string

	// Stacking is STACKED or PERCENT_STACKED; Area and Column only.
	Stacking string

	Style config.Style
}

// Chart is a chart over the columns of a frame.
type Chart struct {
	data      *frame.Frame
	xColumn   string
	series    []*Series
	opts      Options
	style     config.Style
	chartType string

	chartID  int64
	executed bool
}

// New validates a chart configuration. The chart type is derived from the
// series kinds: a single kind gives its upper-cased name and a mix of Line,
// Area and Column gives COMBO.
func New(data *frame.Frame, xColumn string, series []*Series, opts Options) (*Chart, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("%w: a chart needs at least one series", errs.ErrInvalidConfig)
	}
	chartType, err := resolveType(series)
	if err != nil {
		return nil, err
	}
	if err := checkStacking(series, opts.Stacking); err != nil {
		return nil, err
	}
	if err := config.ValidateEnum(config.ParamLegendPosition, opts.LegendPosition); err != nil {
		return nil, err
	}

	table, err := data.Data()
	if err != nil {
		return nil, err
	}
	if chartType != strings.ToUpper(string(KindHistogram)) && !table.HasColumn(xColumn) {
		return nil, fmt.Errorf("%w: x axis column %q is not in the frame", errs.ErrInvalidConfig, xColumn)
	}

	style := opts.Style.Normalize()
	if opts.Palette != "" && !style.Palettes.Has(opts.Palette) {
		return nil, fmt.Errorf("%w: %s is not in available palettes: %s",
			errs.ErrInvalidConfig, opts.Palette, strings.Join(style.Palettes.Names(), ", "))
	}

	return &Chart{
		data:      data,
		xColumn:   xColumn,
		series:    series,
		opts:      opts,
		style:     style,
		chartType: chartType,
	}, nil
}

func resolveType(series []*Series) (string, error) {
	kinds := make(map[Kind]bool)
	for _, s := range series {
		if s == nil {
			return "", fmt.Errorf("%w: nil series", errs.ErrInvalidConfig)
		}
		kinds[s.kind] = true
	}
	if len(kinds) == 1 {
		return strings.ToUpper(string(series[0].kind)), nil
	}
	for k := range kinds {
		if k != KindLine && k != KindArea && k != KindColumn {
			return "", fmt.Errorf("%w: only Line, Area and Column series can be used in combination", errs.ErrInvalidConfig)
		}
	}
	return TypeCombo, nil
}

func checkStacking(series []*Series, stacking string) error {
	if stacking == "" {
		return nil
	}
	if err := config.ValidateEnum(config.ParamStacking, stacking); err != nil {
		return err
	}
	for _, s := range series {
		if s.kind == KindArea || s.kind == KindColumn {
			return nil
		}
	}
	return fmt.Errorf("%w: stacking can only be enabled for Area and Column charts", errs.ErrInvalidConfig)
}

// Type returns the derived chart type, e.g. LINE or COMBO.
func (c *Chart) Type() string { return c.chartType }

// Title returns the chart title.
func (c *Chart) Title() string { return c.opts.Title }

// Data returns the frame the chart plots.
func (c *Chart) Data() *frame.Frame { return c.data }

func (c *Chart) isHistogram() bool {
	return c.chartType == strings.ToUpper(string(KindHistogram))
}

// Create applies the axis number formats, then adds the chart to the
// frame's sheet. A zero size selects DefaultSize. Each call creates a new
// chart.
func (c *Chart) Create(ctx context.Context, api gsheets.API, size Size) error {
	if size.Width == 0 && size.Height == 0 {
		size = DefaultSize
	}

	formats := make(map[string]string)
	if c.opts.XAxisFormat != "" && c.xColumn != "" {
		formats[c.xColumn] = c.opts.XAxisFormat
	}
	if c.opts.YAxisFormat != "" {
		resolved, err := c.resolveSeries()
		if err != nil {
			return err
		}
		for _, b := range resolved.bindings {
			formats[b.column] = c.opts.YAxisFormat
		}
	}
	if len(formats) > 0 {
		if err := c.data.Format(ctx, api, formats); err != nil {
			return err
		}
	}

	req, err := c.Request(size)
	if err != nil {
		return err
	}
	resp, err := api.BatchUpdate(ctx, c.data.SpreadsheetID(), []*sheets.Request{req})
	if err != nil {
		return fmt.Errorf("failed to create chart: %w", err)
	}

	tree, err := jsontree.Decode(resp)
	if err != nil {
		return err
	}
	raw, ok := jsontree.First(tree, "chartId")
	if !ok {
		return errors.New("no chart id in add chart response")
	}
	id, ok := jsontree.Int64(raw)
	if !ok {
		return fmt.Errorf("invalid chart id %v in add chart response", raw)
	}

	c.chartID = id
	c.executed = true
	return nil
}

// ChartID returns the id of the created chart.
func (c *Chart) ChartID() (int64, error) {
	if c == nil || !c.executed {
		return 0, fmt.Errorf("%w: must run create before using the chart id", errs.ErrNotExecuted)
	}
	return c.chartID, nil
}

func (c *Chart) String() string {
	return fmt.Sprintf("Chart\n - title = %s", c.opts.Title)
}
