package presentation

import (
	"context"
	"fmt"

	slides "google.golang.org/api/slides/v1"

	"github.com/teemow/gslides/internal/chart"
	"github.com/teemow/gslides/internal/config"
	"github.com/teemow/gslides/internal/errs"
	"github.com/teemow/gslides/internal/jsontree"
	"github.com/teemow/gslides/internal/layout"
	gsheets "github.com/teemow/gslides/internal/sheets"
	gslides "github.com/teemow/gslides/internal/slides"
	"github.com/teemow/gslides/internal/table"
)

// Slide dimensions in EMU.
const (
	SlideWidth  = 9144000
	SlideHeight = 5143500
)

const (
	defaultTitle = "Title placeholder"
	defaultNotes = "Notes placeholder"

	titleFontSize = 24
	notesFontSize = 7
	textBoxSize   = 3000000
)

// Margins are the EMU distances between the slide edges and the grid.
type Margins struct {
	Top    float64
	Bottom float64
	Left   float64
	Right  float64
}

// DefaultMargins leave room for the title and notes boxes.
var DefaultMargins = Margins{Top: 1017724, Bottom: 420575}

// SlideOptions describe a slide. Objects are *chart.Chart or *table.Table
// values and fill the grid row by row.
type SlideOptions struct {
	Objects []any

	// Rows and Cols of the grid, 1 when unset.
	Rows int
	Cols int

	// InsertionIndex places the slide in the deck. Nil appends it.
	InsertionIndex *int64

	// Margins default to DefaultMargins when nil.
	Margins *Margins

	Layout layout.Options

	Title string
	Notes string

	Style config.Style
}

// Slide builds one slide.
type Slide struct {
	objects        []any
	grid           *layout.Grid
	margins        Margins
	insertionIndex *int64
	title          string
	notes          string
	font           string

	sheetExecuted bool
	slideID       string
	titleBoxID    string
	notesBoxID    string
}

// NewSlide validates the slide configuration.
func NewSlide(opts SlideOptions) (*Slide, error) {
	rows, cols := opts.Rows, opts.Cols
	if rows == 0 {
		rows = 1
	}
	if cols == 0 {
		cols = 1
	}

	margins := DefaultMargins
	if opts.Margins != nil {
		margins = *opts.Margins
	}
	if margins.Top < 0 || margins.Bottom < 0 || margins.Left < 0 || margins.Right < 0 {
		return nil, fmt.Errorf("%w: margins must not be negative", errs.ErrInvalidConfig)
	}

	grid, err := layout.NewGrid(
		SlideWidth-margins.Left-margins.Right,
		SlideHeight-margins.Top-margins.Bottom,
		rows, cols, opts.Layout)
	if err != nil {
		return nil, err
	}
	if len(opts.Objects) > grid.Capacity() {
		return nil, fmt.Errorf("%w: %d objects do not fit a %dx%d layout",
			errs.ErrInvalidConfig, len(opts.Objects), rows, cols)
	}
	for i, obj := range opts.Objects {
		var isNil bool
		switch o := obj.(type) {
		case *chart.Chart:
			isNil = o == nil
		case *table.Table:
			isNil = o == nil
		default:
			return nil, fmt.Errorf("%w: object %d is a %T, must be a chart or a table", errs.ErrUnsupportedType, i, obj)
		}
		if isNil {
			return nil, fmt.Errorf("%w: object %d is nil", errs.ErrInvalidConfig, i)
		}
	}
	if opts.InsertionIndex != nil && *opts.InsertionIndex < 0 {
		return nil, fmt.Errorf("%w: insertion index must not be negative", errs.ErrInvalidConfig)
	}

	s := &Slide{
		objects:        opts.Objects,
		grid:           grid,
		margins:        margins,
		insertionIndex: opts.InsertionIndex,
		title:          opts.Title,
		notes:          opts.Notes,
		font:           opts.Style.Normalize().Font,
	}
	if s.title == "" {
		s.title = defaultTitle
	}
	if s.notes == "" {
		s.notes = defaultNotes
	}
	return s, nil
}

// ObjectSize is the EMU size of every grid cell.
func (s *Slide) ObjectSize() layout.Size { return s.grid.CellSize() }

// ChartSize is the pixel size charts are created at in their spreadsheet.
// It keeps the aspect ratio of a grid cell and shrinks the area with the
// number of cells.
func (s *Slide) ChartSize() chart.Size {
	cell := s.grid.CellSize()
	w, h := layout.OptimizeSize(cell.Height/cell.Width, layout.DefaultChartArea/float64(s.grid.Capacity()))
	return chart.Size{Width: int64(w), Height: int64(h)}
}

// ExecuteSheet creates the charts of the slide.
func (s *Slide) ExecuteSheet(ctx context.Context, api gsheets.API) error {
	size := s.ChartSize()
	for _, obj := range s.objects {
		if c, ok := obj.(*chart.Chart); ok {
			if err := c.Create(ctx, api, size); err != nil {
				return err
			}
		}
	}
	s.sheetExecuted = true
	return nil
}

// ExecuteSlide creates the slide, its text boxes and objects. ExecuteSheet
// must have run first.
func (s *Slide) ExecuteSlide(ctx context.Context, api gslides.API, presentationID string) error {
	if !s.sheetExecuted {
		return fmt.Errorf("%w: must run execute sheet before execute slide", errs.ErrNotExecuted)
	}

	resp, err := api.BatchUpdate(ctx, presentationID, []*slides.Request{s.createSlideRequest()})
	if err != nil {
		return fmt.Errorf("failed to create slide: %w", err)
	}
	slideID, err := replyID(resp, "createSlide")
	if err != nil {
		return err
	}

	resp, err = api.BatchUpdate(ctx, presentationID, textBoxRequests(slideID))
	if err != nil {
		return fmt.Errorf("failed to create text boxes on slide %s: %w", slideID, err)
	}
	boxIDs, err := replyIDs(resp, "createShape")
	if err != nil {
		return err
	}
	if len(boxIDs) != 2 {
		return fmt.Errorf("expected 2 text boxes in create shape response, got %d", len(boxIDs))
	}

	if _, err := api.BatchUpdate(ctx, presentationID, s.formatRequests(boxIDs[0], boxIDs[1])); err != nil {
		return fmt.Errorf("failed to format text boxes on slide %s: %w", slideID, err)
	}

	s.grid.Reset()
	cell := s.grid.CellSize()
	for _, obj := range s.objects {
		off := s.grid.Next()
		x, y := s.margins.Left+off.X, s.margins.Top+off.Y
		switch o := obj.(type) {
		case *chart.Chart:
			req, err := linkChartRequest(o, slideID, cell, x, y)
			if err != nil {
				return err
			}
			if _, err := api.BatchUpdate(ctx, presentationID, []*slides.Request{req}); err != nil {
				return fmt.Errorf("failed to link chart into slide %s: %w", slideID, err)
			}
		case *table.Table:
			size := table.Size{Width: cell.Width, Height: cell.Height}
			if _, err := o.Create(ctx, api, presentationID, slideID, size, x, y); err != nil {
				return err
			}
		}
	}

	s.slideID = slideID
	s.titleBoxID, s.notesBoxID = boxIDs[0], boxIDs[1]
	return nil
}

// SlideID returns the id of the created slide.
func (s *Slide) SlideID() (string, error) {
	if s == nil || s.slideID == "" {
		return "", fmt.Errorf("%w: must run execute slide before using the slide id", errs.ErrNotExecuted)
	}
	return s.slideID, nil
}

// TextBoxIDs returns the ids of the title and notes boxes.
func (s *Slide) TextBoxIDs() (title, notes string, err error) {
	if _, err := s.SlideID(); err != nil {
		return "", "", err
	}
	return s.titleBoxID, s.notesBoxID, nil
}

func (s *Slide) createSlideRequest() *slides.Request {
	req := &slides.CreateSlideRequest{}
	if s.insertionIndex != nil {
		req.InsertionIndex = *s.insertionIndex
		req.ForceSendFields = []string{"InsertionIndex"}
	}
	return &slides.Request{CreateSlide: req}
}

func textBoxRequests(slideID string) []*slides.Request {
	box := func(scaleX, scaleY, translateX, translateY float64) *slides.Request {
		return &slides.Request{
			CreateShape: &slides.CreateShapeRequest{
				ShapeType: "TEXT_BOX",
				ElementProperties: &slides.PageElementProperties{
					PageObjectId: slideID,
					Size: &slides.Size{
						Width:  emu(textBoxSize),
						Height: emu(textBoxSize),
					},
					Transform: &slides.AffineTransform{
						ScaleX:     scaleX,
						ScaleY:     scaleY,
						TranslateX: translateX,
						TranslateY: translateY,
						Unit:       "EMU",
					},
				},
			},
		}
	}
	return []*slides.Request{
		box(2.8402, 0.1909, 311700, 445025),
		box(2.7979, 0.0914, 311700, 4722925),
	}
}

func (s *Slide) formatRequests(titleID, notesID string) []*slides.Request {
	return []*slides.Request{
		insertText(titleID, s.title),
		s.boldText(titleID, titleFontSize),
		{
			UpdateShapeProperties: &slides.UpdateShapePropertiesRequest{
				ObjectId:        titleID,
				ShapeProperties: &slides.ShapeProperties{ContentAlignment: "MIDDLE"},
				Fields:          "contentAlignment",
			},
		},
		insertText(notesID, s.notes),
		s.boldText(notesID, notesFontSize),
	}
}

func insertText(id, text string) *slides.Request {
	return &slides.Request{
		InsertText: &slides.InsertTextRequest{ObjectId: id, Text: text},
	}
}

func (s *Slide) boldText(id string, size float64) *slides.Request {
	return &slides.Request{
		UpdateTextStyle: &slides.UpdateTextStyleRequest{
			ObjectId:  id,
			TextRange: &slides.Range{Type: "ALL"},
			Style: &slides.TextStyle{
				Bold:       true,
				FontFamily: s.font,
				FontSize:   &slides.Dimension{Magnitude: size, Unit: "PT"},
			},
			Fields: "bold,fontFamily,fontSize",
		},
	}
}

func linkChartRequest(c *chart.Chart, slideID string, size layout.Size, x, y float64) (*slides.Request, error) {
	chartID, err := c.ChartID()
	if err != nil {
		return nil, err
	}
	req := &slides.CreateSheetsChartRequest{
		SpreadsheetId: c.Data().SpreadsheetID(),
		ChartId:       chartID,
		LinkingMode:   "LINKED",
		ElementProperties: &slides.PageElementProperties{
			PageObjectId: slideID,
			Size: &slides.Size{
				Width:  emu(size.Width),
				Height: emu(size.Height),
			},
			Transform: &slides.AffineTransform{
				ScaleX:     1,
				ScaleY:     1,
				TranslateX: x,
				TranslateY: y,
				Unit:       "EMU",
			},
		},
	}
	if chartID == 0 {
		req.ForceSendFields = []string{"ChartId"}
	}
	return &slides.Request{CreateSheetsChart: req}, nil
}

func emu(v float64) *slides.Dimension {
	return &slides.Dimension{Magnitude: v, Unit: "EMU"}
}

func replyID(resp *slides.BatchUpdatePresentationResponse, reply string) (string, error) {
	ids, err := replyIDs(resp, reply)
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("no object id in %s response", reply)
	}
	return ids[0], nil
}

// replyIDs returns the object ids of every reply of the given kind, in
// request order.
func replyIDs(resp *slides.BatchUpdatePresentationResponse, reply string) ([]string, error) {
	tree, err := jsontree.Decode(resp)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, created := range jsontree.All(tree, reply) {
		raw, _ := jsontree.First(created, "objectId")
		id, ok := jsontree.String(raw)
		if !ok || id == "" {
			return nil, fmt.Errorf("reply without object id in %s response", reply)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
