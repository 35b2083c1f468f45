package manifest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/teemow/gslides/internal/chart"
	"github.com/teemow/gslides/internal/config"
	"github.com/teemow/gslides/internal/frame"
	"github.com/teemow/gslides/internal/instrumentation"
	"github.com/teemow/gslides/internal/layout"
	"github.com/teemow/gslides/internal/logging"
	"github.com/teemow/gslides/internal/presentation"
	gsheets "github.com/teemow/gslides/internal/sheets"
	gslides "github.com/teemow/gslides/internal/slides"
	"github.com/teemow/gslides/internal/spreadsheet"
	"github.com/teemow/gslides/internal/table"
)

// Builder builds manifests against the Sheets and Slides APIs.
type Builder struct {
	Sheets gsheets.API
	Slides gslides.API

	// Style is overridden by the manifest's style section.
	Style config.Style

	Metrics *instrumentation.Metrics
	Logger  *slog.Logger
}

// Result lists what a build created or updated.
type Result struct {
	SpreadsheetID  string
	PresentationID string
	SlideIDs       []string
	ChartIDs       map[string]int64
}

// Build uploads the data, creates the charts and tables and adds the slides.
// Charts not placed on any slide are still created in the spreadsheet.
func (b *Builder) Build(ctx context.Context, m *Manifest) (result *Result, err error) {
	ctx, span := instrumentation.StartSpan(ctx, "deck.build",
		instrumentation.Count(instrumentation.KindFrame, len(m.Data)),
		instrumentation.Count(instrumentation.KindChart, len(m.Charts)),
		instrumentation.Count(instrumentation.KindTable, len(m.Tables)),
		instrumentation.Count(instrumentation.KindSlide, len(m.Slides)),
	)
	defer func() { instrumentation.EndSpan(span, err) }()

	start := time.Now()
	result, err = b.build(ctx, m)

	logger := logging.WithOperation(logging.OrDefault(b.Logger), "deck_build")
	if err != nil {
		logger.Error("deck build failed", logging.Status(logging.StatusError),
			logging.Duration(time.Since(start)), logging.Err(err))
		return nil, err
	}
	logger.Info("deck built", logging.Status(logging.StatusSuccess),
		logging.Duration(time.Since(start)), "slides", len(result.SlideIDs), "charts", len(result.ChartIDs))
	return result, nil
}

func (b *Builder) build(ctx context.Context, m *Manifest) (*Result, error) {
	logger := logging.WithOperation(logging.OrDefault(b.Logger), "deck_build")
	style := b.style(m.Style)
	result := &Result{ChartIDs: make(map[string]int64)}

	frames := make(map[string]*frame.Frame)
	if len(m.Data) > 0 {
		sp, err := b.spreadsheet(ctx, m)
		if err != nil {
			return nil, err
		}
		result.SpreadsheetID, _ = sp.ID()
		logger.Info("using spreadsheet", logging.Spreadsheet(result.SpreadsheetID))

		for _, d := range m.Data {
			f, err := b.upload(ctx, m, sp, d)
			if err != nil {
				return nil, fmt.Errorf("data %q: %w", d.Name, err)
			}
			frames[d.Name] = f
			b.Metrics.RecordObjectCreated(ctx, instrumentation.KindFrame)
			logger.Info("uploaded frame", "data", d.Name, "sheet", f.SheetName(),
				"range", fmt.Sprintf("%s:%s", f.Start(), f.End()))
		}
	}

	charts := make(map[string]*chart.Chart)
	for _, c := range m.Charts {
		built, err := buildChart(c, frames[c.Data], style)
		if err != nil {
			return nil, fmt.Errorf("chart %q: %w", c.Name, err)
		}
		charts[c.Name] = built
	}

	tables := make(map[string]*table.Table)
	for _, t := range m.Tables {
		data, err := frames[t.Data].Data()
		if err != nil {
			return nil, fmt.Errorf("table %q: %w", t.Name, err)
		}
		built, err := table.New(data, table.Options{
			FontSize:          t.FontSize,
			NoHeader:          t.NoHeader,
			Stub:              t.Stub,
			HeaderBackground:  t.HeaderBackground,
			StubBackground:    t.StubBackground,
			ColumnProportions: t.ColumnProportions,
			Style:             style,
		})
		if err != nil {
			return nil, fmt.Errorf("table %q: %w", t.Name, err)
		}
		tables[t.Name] = built
	}

	placed := make(map[string]bool)
	if len(m.Slides) > 0 {
		pres, err := b.presentation(ctx, m)
		if err != nil {
			return nil, err
		}
		result.PresentationID, _ = pres.ID()
		logger.Info("using presentation", logging.Presentation(result.PresentationID))

		for i, s := range m.Slides {
			opts := slideOptions(s, style)
			for _, name := range s.Objects {
				placed[name] = true
				if c, ok := charts[name]; ok {
					opts.Objects = append(opts.Objects, c)
				} else {
					opts.Objects = append(opts.Objects, tables[name])
				}
			}

			slide, err := pres.AddSlide(ctx, b.Sheets, opts)
			if err != nil {
				return nil, fmt.Errorf("slide %d: %w", i+1, err)
			}
			id, _ := slide.SlideID()
			result.SlideIDs = append(result.SlideIDs, id)
			b.recordObjects(ctx, opts.Objects)
			b.Metrics.RecordObjectCreated(ctx, instrumentation.KindSlide)
			logger.Info("added slide", logging.Object(id), "objects", len(opts.Objects))
		}
	}

	for _, c := range m.Charts {
		if placed[c.Name] {
			continue
		}
		if err := charts[c.Name].Create(ctx, b.Sheets, chart.DefaultSize); err != nil {
			return nil, fmt.Errorf("chart %q: %w", c.Name, err)
		}
		b.Metrics.RecordObjectCreated(ctx, instrumentation.KindChart)
	}
	for name, c := range charts {
		if id, err := c.ChartID(); err == nil {
			result.ChartIDs[name] = id
		}
	}
	return result, nil
}

func (b *Builder) style(s Style) config.Style {
	style := b.Style
	if s.Font != "" {
		style.Font = s.Font
	}
	if s.Palette != "" {
		style.Palette = s.Palette
	}
	return style.Normalize()
}

func (b *Builder) recordObjects(ctx context.Context, objects []any) {
	for _, obj := range objects {
		switch obj.(type) {
		case *chart.Chart:
			b.Metrics.RecordObjectCreated(ctx, instrumentation.KindChart)
		case *table.Table:
			b.Metrics.RecordObjectCreated(ctx, instrumentation.KindTable)
		}
	}
}

// spreadsheet opens or creates the spreadsheet and adds the sheets the data
// sections need.
func (b *Builder) spreadsheet(ctx context.Context, m *Manifest) (*spreadsheet.Spreadsheet, error) {
	var wanted []string
	for _, d := range m.Data {
		if name := d.SheetName(); !slices.Contains(wanted, name) {
			wanted = append(wanted, name)
		}
	}

	if m.Spreadsheet.ID == "" {
		sp, err := spreadsheet.Create(ctx, b.Sheets, m.Spreadsheet.Title, wanted)
		if err != nil {
			return nil, err
		}
		b.Metrics.RecordObjectCreated(ctx, instrumentation.KindSpreadsheet)
		return sp, nil
	}

	sp, err := spreadsheet.Get(ctx, b.Sheets, m.Spreadsheet.ID)
	if err != nil {
		return nil, err
	}
	existing, err := sp.Sheets()
	if err != nil {
		return nil, err
	}
	var missing []string
	for _, name := range wanted {
		if _, ok := existing[name]; !ok {
			missing = append(missing, name)
		}
	}
	if err := sp.AddSheets(ctx, b.Sheets, missing); err != nil {
		return nil, err
	}
	for range missing {
		b.Metrics.RecordObjectCreated(ctx, instrumentation.KindSheet)
	}
	return sp, nil
}

func (b *Builder) presentation(ctx context.Context, m *Manifest) (*presentation.Presentation, error) {
	if m.Presentation.ID != "" {
		return presentation.Get(ctx, b.Slides, m.Presentation.ID)
	}
	pres, err := presentation.Create(ctx, b.Slides, m.Presentation.Title)
	if err != nil {
		return nil, err
	}
	b.Metrics.RecordObjectCreated(ctx, instrumentation.KindPresentation)
	return pres, nil
}

func (b *Builder) upload(ctx context.Context, m *Manifest, sp *spreadsheet.Spreadsheet, d Data) (*frame.Frame, error) {
	data, err := loadData(m, d)
	if err != nil {
		return nil, err
	}

	id, err := sp.ID()
	if err != nil {
		return nil, err
	}
	sheetID, err := sp.SheetID(d.SheetName())
	if err != nil {
		return nil, err
	}

	f, err := frame.Create(ctx, b.Sheets, data, frame.CreateOptions{
		SpreadsheetID: id,
		SheetID:       sheetID,
		SheetName:     d.SheetName(),
		AnchorCell:    d.Anchor,
		Overwrite:     d.Overwrite,
	})
	if err != nil {
		return nil, err
	}
	if len(d.Formats) > 0 {
		if err := f.Format(ctx, b.Sheets, d.Formats); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func loadData(m *Manifest, d Data) (*frame.Table, error) {
	if d.XLSX != "" {
		return frame.ReadXLSX(m.Path(d.XLSX), d.SourceSheet)
	}

	file, err := os.Open(m.Path(d.CSV))
	if err != nil {
		return nil, fmt.Errorf("failed to open csv: %w", err)
	}
	defer func() { _ = file.Close() }()

	opts := frame.CSVOptions{Encoding: d.Encoding}
	if d.Delimiter != "" {
		opts.Comma = []rune(d.Delimiter)[0]
	}
	return frame.ReadCSV(file, opts)
}

func buildChart(c Chart, data *frame.Frame, style config.Style) (*chart.Chart, error) {
	series := make([]*chart.Series, 0, len(c.Series))
	for i, s := range c.Series {
		built, err := s.Build()
		if err != nil {
			return nil, fmt.Errorf("series %d: %w", i+1, err)
		}
		series = append(series, built)
	}
	return chart.New(data, c.X, series, chart.Options{
		Title:          c.Title,
		XAxisLabel:     c.XAxisLabel,
		YAxisLabel:     c.YAxisLabel,
		XMin:           c.XMin,
		XMax:           c.XMax,
		YMin:           c.YMin,
		YMax:           c.YMax,
		XAxisFormat:    c.XAxisFormat,
		YAxisFormat:    c.YAxisFormat,
		Palette:        c.Palette,
		LegendPosition: c.LegendPosition,
		Stacking:       c.Stacking,
		Style:          style,
	})
}

func slideOptions(s Slide, style config.Style) presentation.SlideOptions {
	opts := presentation.SlideOptions{
		Rows:           s.Rows,
		Cols:           s.Cols,
		InsertionIndex: s.InsertionIndex,
		Layout: layout.Options{
			XBorder: s.XBorder,
			YBorder: s.YBorder,
			Spacing: s.Spacing,
		},
		Title: s.Title,
		Notes: s.Notes,
		Style: style,
	}
	if s.Margins != nil {
		opts.Margins = &presentation.Margins{
			Top:    s.Margins.Top,
			Bottom: s.Margins.Bottom,
			Left:   s.Margins.Left,
			Right:  s.Margins.Right,
		}
	}
	return opts
}
