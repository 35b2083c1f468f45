package table

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/gslides/internal/config"
	"github.com/teemow/gslides/internal/errs"
	"github.com/teemow/gslides/internal/frame"
	"github.com/teemow/gslides/internal/slides/slidestest"
)

func newData(t *testing.T) *frame.Table {
	t.Helper()
	data, err := frame.NewTable([]string{"name", "n", "x", "ok"}, [][]any{
		{"ab", 1, 2, "no"},
		{"b", 3, nil, "y"},
	})
	require.NoError(t, err)
	return data
}

func TestProportions(t *testing.T) {
	tbl, err := New(newData(t), Options{})
	require.NoError(t, err)

	got := tbl.Proportions()
	want := []float64{0.5, 0.125, 0.125, 0.25}
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-9)
	}

	tbl, err = New(newData(t), Options{ColumnProportions: []float64{1, 1, 1, 2}})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.2, 0.2, 0.2, 0.4}, tbl.Proportions())
}

func TestText(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"x", "x"},
		{int64(3), "3"},
		{1.0, "1.0"},
		{-20.0, "-20.0"},
		{2.25, "2.25"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, text(tt.in), "%v", tt.in)
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{name: "proportion count", opts: Options{ColumnProportions: []float64{1, 2}}},
		{name: "zero proportions", opts: Options{ColumnProportions: []float64{0, 0, 0, 0}}},
		{name: "negative proportion", opts: Options{ColumnProportions: []float64{1, -1, 1, 1}}},
		{name: "header color", opts: Options{HeaderBackground: "nocolor"}},
		{name: "stub color", opts: Options{StubBackground: "#xyz"}},
		{name: "font size", opts: Options{FontSize: -2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(newData(t), tt.opts)
			assert.True(t, errors.Is(err, errs.ErrInvalidConfig))
		})
	}

	_, err := New(nil, Options{})
	assert.True(t, errors.Is(err, errs.ErrInvalidConfig))
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	fake := slidestest.New()
	fake.AddPresentation("pres", "Deck", "s1")

	tbl, err := New(newData(t), Options{
		Stub:             true,
		HeaderBackground: "white",
		Style:            config.Style{Font: "Roboto"},
	})
	require.NoError(t, err)

	_, err = tbl.ObjectID()
	assert.True(t, errors.Is(err, errs.ErrNotExecuted))

	id, err := tbl.Create(ctx, fake, "pres", "s1", Size{Width: 800, Height: 300}, 10, 20)
	require.NoError(t, err)
	assert.Equal(t, "table-1", id)

	objectID, err := tbl.ObjectID()
	require.NoError(t, err)
	assert.Equal(t, id, objectID)

	require.Len(t, fake.Requests, 2)
	create := fake.Requests[0][0].CreateTable
	require.NotNil(t, create)
	assert.Equal(t, "s1", create.ElementProperties.PageObjectId)
	assert.Equal(t, int64(3), create.Rows)
	assert.Equal(t, int64(4), create.Columns)

	updates := fake.Requests[1]
	move := updates[0].UpdatePageElementTransform
	require.NotNil(t, move)
	assert.Equal(t, "ABSOLUTE", move.ApplyMode)
	assert.Equal(t, 10.0, move.Transform.TranslateX)
	assert.Equal(t, 20.0, move.Transform.TranslateY)
	assert.Equal(t, "EMU", move.Transform.Unit)

	var inserts, styles, cells, paragraphs, rows, columns int
	for _, req := range updates {
		switch {
		case req.InsertText != nil:
			inserts++
			assert.Equal(t, id, req.InsertText.ObjectId)
			assert.NotEmpty(t, req.InsertText.Text)
		case req.UpdateTextStyle != nil:
			styles++
			style := req.UpdateTextStyle.Style
			loc := req.UpdateTextStyle.CellLocation
			assert.Equal(t, "Roboto", style.FontFamily)
			assert.Equal(t, 12.0, style.FontSize.Magnitude)
			switch {
			case loc.RowIndex == 0:
				assert.True(t, style.Bold)
				// Black text on the white header.
				assert.Equal(t, 0.0, style.ForegroundColor.OpaqueColor.RgbColor.Red)
			case loc.ColumnIndex == 0:
				assert.True(t, style.Bold)
				// White text on the black stub.
				assert.Equal(t, 1.0, style.ForegroundColor.OpaqueColor.RgbColor.Red)
			default:
				assert.False(t, style.Bold)
				assert.Contains(t, style.ForceSendFields, "Bold")
			}
		case req.UpdateTableCellProperties != nil:
			cells++
		case req.UpdateParagraphStyle != nil:
			paragraphs++
			assert.Equal(t, "CENTER", req.UpdateParagraphStyle.Style.Alignment)
		case req.UpdateTableRowProperties != nil:
			rows++
			assert.Equal(t, 100.0, req.UpdateTableRowProperties.TableRowProperties.MinRowHeight.Magnitude)
		case req.UpdateTableColumnProperties != nil:
			columns++
		}
	}
	// One empty cell is skipped.
	assert.Equal(t, 11, inserts)
	assert.Equal(t, 12, styles)
	assert.Equal(t, 3, cells)
	assert.Equal(t, 12, paragraphs)
	assert.Equal(t, 1, rows)
	assert.Equal(t, 4, columns)

	last := updates[len(updates)-1].UpdateTableColumnProperties
	assert.Equal(t, []int64{3}, last.ColumnIndices)
	assert.InDelta(t, 200.0, last.TableColumnProperties.ColumnWidth.Magnitude, 1e-9)
}

func TestCreateWithoutHeader(t *testing.T) {
	fake := slidestest.New()
	tbl, err := New(newData(t), Options{NoHeader: true})
	require.NoError(t, err)

	_, err = tbl.Create(context.Background(), fake, "pres", "s1", Size{}, 0, 0)
	require.NoError(t, err)

	var fills int
	for _, req := range fake.Requests[1] {
		if p := req.UpdateTableCellProperties; p != nil && p.TableCellProperties.TableCellBackgroundFill != nil {
			fills++
		}
	}
	assert.Zero(t, fills)
}

func TestCreateFailure(t *testing.T) {
	fake := slidestest.New()
	fake.Err = errors.New("quota")

	tbl, err := New(newData(t), Options{})
	require.NoError(t, err)

	_, err = tbl.Create(context.Background(), fake, "pres", "s1", Size{}, 0, 0)
	require.Error(t, err)
	_, err = tbl.ObjectID()
	assert.True(t, errors.Is(err, errs.ErrNotExecuted))
}
