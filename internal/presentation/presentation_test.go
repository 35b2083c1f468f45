package presentation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/gslides/internal/chart"
	"github.com/teemow/gslides/internal/config"
	"github.com/teemow/gslides/internal/errs"
	"github.com/teemow/gslides/internal/frame"
	"github.com/teemow/gslides/internal/sheets/sheetstest"
	"github.com/teemow/gslides/internal/slides/slidestest"
	"github.com/teemow/gslides/internal/table"
)

func newTable(t *testing.T) *frame.Table {
	t.Helper()
	data, err := frame.NewTable([]string{"month", "sales"}, [][]any{
		{"jan", 10},
		{"feb", 12},
	})
	require.NoError(t, err)
	return data
}

func newChart(t *testing.T, fake *sheetstest.Fake) *chart.Chart {
	t.Helper()
	f, err := frame.Create(context.Background(), fake, newTable(t), frame.CreateOptions{
		SpreadsheetID: "sp1",
		SheetName:     "Data",
	})
	require.NoError(t, err)

	series, err := chart.Column(chart.ColumnOptions{Columns: []string{"sales"}})
	require.NoError(t, err)
	c, err := chart.New(f, "month", []*chart.Series{series}, chart.Options{Title: "Sales"})
	require.NoError(t, err)
	return c
}

func newSlideTable(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.New(newTable(t), table.Options{})
	require.NoError(t, err)
	return tbl
}

func TestCreate(t *testing.T) {
	fake := slidestest.New()

	p, err := Create(context.Background(), fake, "Quarterly")
	require.NoError(t, err)

	id, err := p.ID()
	require.NoError(t, err)
	assert.Equal(t, "presentation-1", id)
	assert.Equal(t, "Quarterly", p.Title())

	require.Len(t, fake.Requests, 1)
	assert.Equal(t, "p", fake.Requests[0][0].DeleteObject.ObjectId)

	slideIDs, err := p.SlideIDs()
	require.NoError(t, err)
	assert.Empty(t, slideIDs)
}

func TestGet(t *testing.T) {
	fake := slidestest.New()
	fake.AddPresentation("pres", "Deck", "s0", "s1")

	p, err := Get(context.Background(), fake, "pres")
	require.NoError(t, err)
	assert.Equal(t, "Deck", p.Title())

	slideIDs, err := p.SlideIDs()
	require.NoError(t, err)
	assert.Equal(t, []string{"s0", "s1"}, slideIDs)

	_, err = Get(context.Background(), fake, "")
	assert.True(t, errors.Is(err, errs.ErrInvalidConfig))
}

func TestNotInitialized(t *testing.T) {
	var p Presentation

	_, err := p.ID()
	assert.True(t, errors.Is(err, errs.ErrNotExecuted))
	_, err = p.SlideIDs()
	assert.True(t, errors.Is(err, errs.ErrNotExecuted))
	err = p.RemoveSlide(context.Background(), "s0")
	assert.True(t, errors.Is(err, errs.ErrNotExecuted))
}

func TestAddSlide(t *testing.T) {
	ctx := context.Background()
	sheetsFake := sheetstest.New()
	sheetsFake.ChartID = 11111
	slidesFake := slidestest.New()
	slidesFake.AddPresentation("pres", "Deck", "s0")

	p, err := Get(ctx, slidesFake, "pres")
	require.NoError(t, err)

	c := newChart(t, sheetsFake)
	slide, err := p.AddSlide(ctx, sheetsFake, SlideOptions{
		Objects: []any{c, newSlideTable(t)},
		Cols:    2,
		Title:   "Sales",
		Style:   config.Style{Font: "Roboto"},
	})
	require.NoError(t, err)

	slideID, err := slide.SlideID()
	require.NoError(t, err)
	assert.Equal(t, "slide-1", slideID)
	titleID, notesID, err := slide.TextBoxIDs()
	require.NoError(t, err)
	assert.Equal(t, "shape-2", titleID)
	assert.Equal(t, "shape-3", notesID)

	slideIDs, err := p.SlideIDs()
	require.NoError(t, err)
	assert.Equal(t, []string{"s0", "slide-1"}, slideIDs)

	// The chart is created at the grid-derived pixel size.
	require.Len(t, sheetsFake.Requests, 1)
	overlay := sheetsFake.Requests[0][0].AddChart.Chart.Position.OverlayPosition
	assert.Equal(t, slide.ChartSize().Width, overlay.WidthPixels)
	assert.Equal(t, slide.ChartSize().Height, overlay.HeightPixels)

	// createSlide, text boxes, formatting, chart link, table create, table update.
	require.Len(t, slidesFake.Requests, 6)
	assert.NotNil(t, slidesFake.Requests[0][0].CreateSlide)
	assert.Empty(t, slidesFake.Requests[0][0].CreateSlide.ForceSendFields)

	boxes := slidesFake.Requests[1]
	require.Len(t, boxes, 2)
	assert.Equal(t, "TEXT_BOX", boxes[0].CreateShape.ShapeType)
	assert.Equal(t, 445025.0, boxes[0].CreateShape.ElementProperties.Transform.TranslateY)
	assert.Equal(t, 4722925.0, boxes[1].CreateShape.ElementProperties.Transform.TranslateY)

	format := slidesFake.Requests[2]
	require.Len(t, format, 5)
	assert.Equal(t, "Sales", format[0].InsertText.Text)
	assert.Equal(t, 24.0, format[1].UpdateTextStyle.Style.FontSize.Magnitude)
	assert.Equal(t, "Roboto", format[1].UpdateTextStyle.Style.FontFamily)
	assert.Equal(t, "MIDDLE", format[2].UpdateShapeProperties.ShapeProperties.ContentAlignment)
	assert.Equal(t, defaultNotes, format[3].InsertText.Text)
	assert.Equal(t, 7.0, format[4].UpdateTextStyle.Style.FontSize.Magnitude)

	cell := slide.ObjectSize()
	assert.InDelta(t, 4023360.0, cell.Width, 1e-6)
	assert.InDelta(t, 3631096.98, cell.Height, 1e-6)

	link := slidesFake.Requests[3][0].CreateSheetsChart
	require.NotNil(t, link)
	assert.Equal(t, "sp1", link.SpreadsheetId)
	assert.Equal(t, int64(11111), link.ChartId)
	assert.Equal(t, "LINKED", link.LinkingMode)
	assert.Equal(t, slideID, link.ElementProperties.PageObjectId)
	assert.InDelta(t, cell.Width, link.ElementProperties.Size.Width.Magnitude, 1e-6)
	assert.InDelta(t, 457200.0, link.ElementProperties.Transform.TranslateX, 1e-6)
	assert.InDelta(t, 1054776.01, link.ElementProperties.Transform.TranslateY, 1e-6)

	create := slidesFake.Requests[4][0].CreateTable
	require.NotNil(t, create)
	assert.Equal(t, slideID, create.ElementProperties.PageObjectId)
	move := slidesFake.Requests[5][0].UpdatePageElementTransform
	require.NotNil(t, move)
	assert.InDelta(t, 4663440.0, move.Transform.TranslateX, 1e-6)
	assert.InDelta(t, 1054776.01, move.Transform.TranslateY, 1e-6)
}

func TestAddSlideInsertionIndex(t *testing.T) {
	ctx := context.Background()
	slidesFake := slidestest.New()
	slidesFake.AddPresentation("pres", "Deck", "s0", "s1")

	p, err := Get(ctx, slidesFake, "pres")
	require.NoError(t, err)

	index := int64(0)
	_, err = p.AddSlide(ctx, sheetstest.New(), SlideOptions{InsertionIndex: &index})
	require.NoError(t, err)

	req := slidesFake.Requests[0][0].CreateSlide
	assert.Equal(t, int64(0), req.InsertionIndex)
	assert.Contains(t, req.ForceSendFields, "InsertionIndex")

	slideIDs, err := p.SlideIDs()
	require.NoError(t, err)
	assert.Equal(t, []string{"slide-1", "s0", "s1"}, slideIDs)
}

func TestNewSlideValidation(t *testing.T) {
	var nilChart *chart.Chart
	tests := []struct {
		name string
		opts SlideOptions
		want error
	}{
		{
			name: "too many objects",
			opts: SlideOptions{Objects: []any{newSlideTable(t), newSlideTable(t)}},
			want: errs.ErrInvalidConfig,
		},
		{
			name: "negative rows",
			opts: SlideOptions{Rows: -1},
			want: errs.ErrInvalidConfig,
		},
		{
			name: "negative margin",
			opts: SlideOptions{Margins: &Margins{Left: -1}},
			want: errs.ErrInvalidConfig,
		},
		{
			name: "negative insertion index",
			opts: SlideOptions{InsertionIndex: ptr(int64(-2))},
			want: errs.ErrInvalidConfig,
		},
		{
			name: "nil chart",
			opts: SlideOptions{Objects: []any{nilChart}},
			want: errs.ErrInvalidConfig,
		},
		{
			name: "unsupported object",
			opts: SlideOptions{Objects: []any{"text"}},
			want: errs.ErrUnsupportedType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSlide(tt.opts)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestExecuteSlideRequiresSheet(t *testing.T) {
	slide, err := NewSlide(SlideOptions{})
	require.NoError(t, err)

	fake := slidestest.New()
	err = slide.ExecuteSlide(context.Background(), fake, "pres")
	assert.True(t, errors.Is(err, errs.ErrNotExecuted))
	assert.Empty(t, fake.Calls)

	_, err = slide.SlideID()
	assert.True(t, errors.Is(err, errs.ErrNotExecuted))
}

func TestRemoveSlide(t *testing.T) {
	ctx := context.Background()
	fake := slidestest.New()
	fake.AddPresentation("pres", "Deck", "s0", "s1")

	p, err := Get(ctx, fake, "pres")
	require.NoError(t, err)

	err = p.RemoveSlide(ctx, "s9")
	assert.True(t, errors.Is(err, errs.ErrInvalidConfig))
	assert.Empty(t, fake.Requests)

	require.NoError(t, p.RemoveSlide(ctx, "s0"))
	require.Len(t, fake.Requests, 1)
	assert.Equal(t, "s0", fake.Requests[0][0].DeleteObject.ObjectId)

	slideIDs, err := p.SlideIDs()
	require.NoError(t, err)
	assert.Equal(t, []string{"s1"}, slideIDs)
}

func ptr[T any](v T) *T { return &v }
