package layout

import (
	"fmt"

	"github.com/teemow/gslides/internal/config"
	"github.com/teemow/gslides/internal/errs"
)

// Default border and spacing fractions.
const (
	DefaultXBorder = 0.05
	DefaultYBorder = 0.01
	DefaultSpacing = 0.02
)

// Options set the borders and spacing as fractions of the canvas. Nil fields
// take the defaults.
type Options struct {
	XBorder *float64
	YBorder *float64
	Spacing *float64
}

// Size is a width and height in canvas units.
type Size struct {
	Width  float64
	Height float64
}

// Offset is a translation from the canvas origin.
type Offset struct {
	X float64
	Y float64
}

// Grid is a cyclic cursor over the cells of a canvas.
type Grid struct {
	canvas  Size
	rows    int
	cols    int
	xBorder float64
	yBorder float64
	spacing float64
	cell    Size
	index   int
}

// NewGrid validates the grid dimensions and derives the cell size.
func NewGrid(width, height float64, rows, cols int, opts Options) (*Grid, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: layout must have at least one row and one column, got %dx%d",
			errs.ErrInvalidConfig, rows, cols)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: canvas must be positive, got %gx%g", errs.ErrInvalidConfig, width, height)
	}

	g := &Grid{
		canvas:  Size{Width: width, Height: height},
		rows:    rows,
		cols:    cols,
		xBorder: valueOr(opts.XBorder, DefaultXBorder),
		yBorder: valueOr(opts.YBorder, DefaultYBorder),
		spacing: valueOr(opts.Spacing, DefaultSpacing),
	}
	for param, v := range map[string]float64{"x_border": g.xBorder, "y_border": g.yBorder, "spacing": g.spacing} {
		if err := config.ValidateFraction(param, v); err != nil {
			return nil, err
		}
	}

	g.cell = Size{
		Width:  (width - width*(float64(cols-1)*g.spacing+2*g.xBorder)) / float64(cols),
		Height: (height - height*(float64(rows-1)*g.spacing+2*g.yBorder)) / float64(rows),
	}
	if g.cell.Width <= 0 || g.cell.Height <= 0 {
		return nil, fmt.Errorf("%w: borders and spacing leave no room for a %dx%d layout",
			errs.ErrInvalidConfig, rows, cols)
	}
	return g, nil
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// Rows returns the number of grid rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of grid columns.
func (g *Grid) Cols() int { return g.cols }

// Capacity is the number of cells.
func (g *Grid) Capacity() int { return g.rows * g.cols }

// CellSize returns the size of every cell.
func (g *Grid) CellSize() Size { return g.cell }

// Coord returns the zero-based row and column of the next cell.
func (g *Grid) Coord() (row, col int) {
	return g.index / g.cols, g.index % g.cols
}

// Next returns the offset of the next cell and advances the cursor,
// wrapping to the first cell after the last one.
func (g *Grid) Next() Offset {
	r, c := g.Coord()
	off := Offset{
		X: g.canvas.Width*g.xBorder + float64(c)*g.cell.Width + float64(c)*g.canvas.Width*g.spacing,
		Y: g.canvas.Height*g.yBorder + float64(r)*g.cell.Height + float64(r)*g.canvas.Height*g.spacing,
	}
	g.index = (g.index + 1) % g.Capacity()
	return off
}

// Reset moves the cursor back to the first cell.
func (g *Grid) Reset() { g.index = 0 }
