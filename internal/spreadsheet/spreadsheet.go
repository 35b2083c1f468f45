package spreadsheet

import (
	"context"
	"fmt"
	"slices"
	"strings"

	sheets "google.golang.org/api/sheets/v4"

	"github.com/teemow/gslides/internal/errs"
	"github.com/teemow/gslides/internal/jsontree"
	gsheets "github.com/teemow/gslides/internal/sheets"
)

// DefaultSheet is the sheet created when no sheet names are given.
const DefaultSheet = "Sheet1"

const (
	locale     = "en_US"
	autoRecalc = "HOUR"
)

// Spreadsheet is a handle on a remote spreadsheet. Obtain one with Create
// or Get.
type Spreadsheet struct {
	id          string
	title       string
	names       []string
	sheetIDs    map[string]int64
	initialized bool
}

// Create creates a spreadsheet holding the given sheets.
func Create(ctx context.Context, api gsheets.API, title string, sheetNames []string) (*Spreadsheet, error) {
	if len(sheetNames) == 0 {
		sheetNames = []string{DefaultSheet}
	}
	if err := checkNames(sheetNames); err != nil {
		return nil, err
	}

	body := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title:      title,
			Locale:     locale,
			AutoRecalc: autoRecalc,
		},
	}
	for _, name := range sheetNames {
		body.Sheets = append(body.Sheets, &sheets.Sheet{
			Properties: &sheets.SheetProperties{Title: name},
		})
	}

	created, err := api.Create(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create spreadsheet %q: %w", title, err)
	}
	return fromSpreadsheet(created), nil
}

// Get reads the title and sheets of an existing spreadsheet.
func Get(ctx context.Context, api gsheets.API, id string) (*Spreadsheet, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: spreadsheet id is required", errs.ErrInvalidConfig)
	}
	s, err := api.GetSpreadsheet(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get spreadsheet %s: %w", id, err)
	}
	return fromSpreadsheet(s), nil
}

// The typed properties are read since sheet 0 is dropped from the JSON form.
func fromSpreadsheet(s *sheets.Spreadsheet) *Spreadsheet {
	out := &Spreadsheet{
		id:          s.SpreadsheetId,
		sheetIDs:    make(map[string]int64, len(s.Sheets)),
		initialized: true,
	}
	if s.Properties != nil {
		out.title = s.Properties.Title
	}
	for _, sheet := range s.Sheets {
		if sheet.Properties == nil {
			continue
		}
		out.names = append(out.names, sheet.Properties.Title)
		out.sheetIDs[sheet.Properties.Title] = sheet.Properties.SheetId
	}
	return out
}

func checkNames(names []string) error {
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: sheet names must not be empty", errs.ErrInvalidConfig)
		}
		if seen[name] {
			return fmt.Errorf("%w: duplicate sheet name %q", errs.ErrInvalidConfig, name)
		}
		seen[name] = true
	}
	return nil
}

func (s *Spreadsheet) check() error {
	if s == nil || !s.initialized {
		return fmt.Errorf("%w: must initialize the spreadsheet using create or get", errs.ErrNotExecuted)
	}
	return nil
}

// ID returns the spreadsheet id.
func (s *Spreadsheet) ID() (string, error) {
	if err := s.check(); err != nil {
		return "", err
	}
	return s.id, nil
}

// Title returns the spreadsheet title.
func (s *Spreadsheet) Title() string {
	if s == nil {
		return ""
	}
	return s.title
}

// Sheets returns the sheet ids by title.
func (s *Spreadsheet) Sheets() (map[string]int64, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(s.sheetIDs))
	for k, v := range s.sheetIDs {
		out[k] = v
	}
	return out, nil
}

// SheetNames returns the sheet titles in spreadsheet order.
func (s *Spreadsheet) SheetNames() ([]string, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	return slices.Clone(s.names), nil
}

// SheetID returns the id of the named sheet.
func (s *Spreadsheet) SheetID(name string) (int64, error) {
	if err := s.check(); err != nil {
		return 0, err
	}
	id, ok := s.sheetIDs[name]
	if !ok {
		return 0, fmt.Errorf("%w: sheet %q is not in spreadsheet %s", errs.ErrInvalidConfig, name, s.id)
	}
	return id, nil
}

// AddSheets appends sheets with the given titles.
func (s *Spreadsheet) AddSheets(ctx context.Context, api gsheets.API, names []string) error {
	if err := s.check(); err != nil {
		return err
	}
	if len(names) == 0 {
		return nil
	}
	if err := checkNames(names); err != nil {
		return err
	}
	for _, name := range names {
		if _, ok := s.sheetIDs[name]; ok {
			return fmt.Errorf("%w: sheet %q already exists", errs.ErrConflict, name)
		}
	}

	requests := make([]*sheets.Request, 0, len(names))
	for _, name := range names {
		requests = append(requests, &sheets.Request{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: name},
			},
		})
	}
	resp, err := api.BatchUpdate(ctx, s.id, requests)
	if err != nil {
		return fmt.Errorf("failed to add sheets to %s: %w", s.id, err)
	}

	tree, err := jsontree.Decode(resp)
	if err != nil {
		return err
	}
	added := jsontree.Pairs(tree, "title", "sheetId")
	ids := make(map[string]int64, len(names))
	for _, name := range names {
		id, ok := jsontree.Int64(added[name])
		if !ok {
			return fmt.Errorf("no sheet id for %q in add sheet response", name)
		}
		ids[name] = id
	}

	for _, name := range names {
		s.names = append(s.names, name)
		s.sheetIDs[name] = ids[name]
	}
	return nil
}

// RemoveSheets deletes the named sheets. Every name must exist.
func (s *Spreadsheet) RemoveSheets(ctx context.Context, api gsheets.API, names []string) error {
	if err := s.check(); err != nil {
		return err
	}
	if len(names) == 0 {
		return nil
	}

	var missing []string
	requests := make([]*sheets.Request, 0, len(names))
	for _, name := range names {
		id, ok := s.sheetIDs[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		req := &sheets.DeleteSheetRequest{SheetId: id}
		if id == 0 {
			req.ForceSendFields = []string{"SheetId"}
		}
		requests = append(requests, &sheets.Request{DeleteSheet: req})
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: sheets %s are not in spreadsheet %s",
			errs.ErrInvalidConfig, strings.Join(missing, ", "), s.id)
	}

	if _, err := api.BatchUpdate(ctx, s.id, requests); err != nil {
		return fmt.Errorf("failed to remove sheets from %s: %w", s.id, err)
	}

	for _, name := range names {
		delete(s.sheetIDs, name)
	}
	s.names = slices.DeleteFunc(s.names, func(n string) bool { return slices.Contains(names, n) })
	return nil
}

func (s *Spreadsheet) String() string {
	if s == nil || !s.initialized {
		return "Spreadsheet (not initialized)"
	}
	return fmt.Sprintf("Spreadsheet\n - id = %s\n - title = %s\n - sheets = %s",
		s.id, s.title, strings.Join(s.names, ", "))
}
