package table

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	slides "google.golang.org/api/slides/v1"

	"github.com/teemow/gslides/internal/color"
	"github.com/teemow/gslides/internal/config"
	"github.com/teemow/gslides/internal/errs"
	"github.com/teemow/gslides/internal/frame"
	"github.com/teemow/gslides/internal/jsontree"
	gslides "github.com/teemow/gslides/internal/slides"
)

const (
	defaultFontSize   = 12
	defaultBackground = "black"
)

// Size is a table size in EMU.
type Size struct {
	Width  float64
	Height float64
}

// DefaultSize is used by Create when no size is given.
var DefaultSize = Size{Width: 3000000, Height: 3000000}

// Options configure the table styling.
type Options struct {
	// FontSize in points (default 12).
	FontSize int64

	// NoHeader leaves the first row (column names) unstyled.
	NoHeader bool

	// Stub styles the first column.
	Stub bool

	// HeaderBackground and StubBackground are named or hex colors
	// (default black). Text on them is black or white by luminance.
	HeaderBackground string
	StubBackground   string

	// ColumnProportions sets the relative column widths. When empty the
	// widths follow the longest text of each column.
	ColumnProportions []float64

	Style config.Style
}

// Table is a Slides table rendered from tabular data. The column names
// become the first row.
type Table struct {
	cells [][]string

	fontSize          int64
	header            bool
	stub              bool
	headerBackground  color.RGB
	stubBackground    color.RGB
	headerFont        color.RGB
	stubFont          color.RGB
	columnProportions []float64
	font              string

	objectID string
}

// New validates the options and prepares the cell texts.
func New(data *frame.Table, opts Options) (*Table, error) {
	if data == nil || len(data.Columns()) == 0 {
		return nil, fmt.Errorf("%w: a table needs at least one column", errs.ErrInvalidConfig)
	}

	t := &Table{
		fontSize: opts.FontSize,
		header:   !opts.NoHeader,
		stub:     opts.Stub,
		font:     opts.Style.Normalize().Font,
	}
	if t.fontSize == 0 {
		t.fontSize = defaultFontSize
	}
	if t.fontSize < 0 {
		return nil, fmt.Errorf("%w: font size must be positive, got %d", errs.ErrInvalidConfig, t.fontSize)
	}

	var err error
	if t.headerBackground, err = background(opts.HeaderBackground); err != nil {
		return nil, err
	}
	if t.stubBackground, err = background(opts.StubBackground); err != nil {
		return nil, err
	}
	t.headerFont = color.BlackOrWhite(t.headerBackground)
	t.stubFont = color.BlackOrWhite(t.stubBackground)

	columns := data.Columns()
	t.cells = append(t.cells, columns)
	for _, row := range data.Rows() {
		texts := make([]string, len(row))
		for i, v := range row {
			texts[i] = text(v)
		}
		t.cells = append(t.cells, texts)
	}

	if len(opts.ColumnProportions) > 0 {
		if len(opts.ColumnProportions) != len(columns) {
			return nil, fmt.Errorf("%w: %d column proportions given for %d columns",
				errs.ErrInvalidConfig, len(opts.ColumnProportions), len(columns))
		}
		total := 0.0
		for _, p := range opts.ColumnProportions {
			if p < 0 {
				return nil, fmt.Errorf("%w: column proportions must not be negative", errs.ErrInvalidConfig)
			}
			total += p
		}
		if total <= 0 {
			return nil, fmt.Errorf("%w: column proportions must sum to a positive total", errs.ErrInvalidConfig)
		}
		t.columnProportions = append([]float64(nil), opts.ColumnProportions...)
	}
	return t, nil
}

func background(c string) (color.RGB, error) {
	if c == "" {
		c = defaultBackground
	}
	return color.Parse(c)
}

func text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		// Integral floats keep one decimal so they read as floats, 1.0 not 1.
		s := strconv.FormatFloat(x, 'f', -1, 64)
		if !strings.ContainsRune(s, '.') {
			s += ".0"
		}
		return s
	default:
		return fmt.Sprint(x)
	}
}

// Rows returns the number of table rows, header included.
func (t *Table) Rows() int { return len(t.cells) }

// Columns returns the number of table columns.
func (t *Table) Columns() int { return len(t.cells[0]) }

// Proportions returns the relative column widths, summing to 1.
func (t *Table) Proportions() []float64 {
	out := make([]float64, t.Columns())
	if t.columnProportions != nil {
		copy(out, t.columnProportions)
	} else {
		for _, row := range t.cells {
			for i, s := range row {
				out[i] = max(out[i], float64(utf8.RuneCountInString(s)))
			}
		}
	}

	total := 0.0
	for _, p := range out {
		total += p
	}
	if total == 0 {
		for i := range out {
			out[i] = 1 / float64(len(out))
		}
		return out
	}
	for i := range out {
		out[i] /= total
	}
	return out
}

// ObjectID returns the id of the table created by the last Create call.
func (t *Table) ObjectID() (string, error) {
	if t.objectID == "" {
		return "", fmt.Errorf("%w: must run create before using the table id", errs.ErrNotExecuted)
	}
	return t.objectID, nil
}

// Create adds the table to a slide. The table is created first, then
// moved, filled and styled with a second batch update. A zero size
// selects DefaultSize.
func (t *Table) Create(ctx context.Context, api gslides.API, presentationID, slideID string, size Size, translateX, translateY float64) (string, error) {
	if size.Width == 0 && size.Height == 0 {
		size = DefaultSize
	}

	resp, err := api.BatchUpdate(ctx, presentationID, []*slides.Request{t.createRequest(slideID)})
	if err != nil {
		return "", fmt.Errorf("failed to create table: %w", err)
	}

	tree, err := jsontree.Decode(resp)
	if err != nil {
		return "", err
	}
	created, ok := jsontree.First(tree, "createTable")
	if !ok {
		return "", errors.New("no table in create table response")
	}
	raw, _ := jsontree.First(created, "objectId")
	id, ok := jsontree.String(raw)
	if !ok || id == "" {
		return "", errors.New("no table id in create table response")
	}

	if _, err := api.BatchUpdate(ctx, presentationID, t.updateRequests(id, size, translateX, translateY)); err != nil {
		return "", fmt.Errorf("failed to update table %s: %w", id, err)
	}
	t.objectID = id
	return id, nil
}
