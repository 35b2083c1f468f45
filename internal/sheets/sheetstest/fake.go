// Package sheetstest provides an in-memory sheets.API for tests of the
// packages building Sheets requests.
package sheetstest

import (
	"context"
	"fmt"
	"sync"

	sheets "google.golang.org/api/sheets/v4"

	gsheets "github.com/teemow/gslides/internal/sheets"
)

// Fake records every call and answers from in-memory state.
//
// Spreadsheets created through Create or added with AddSpreadsheet are kept
// in sync with addSheet and deleteSheet requests. addChart requests are
// answered with ChartID.
type Fake struct {
	mu sync.Mutex

	// ChartID is returned for every addChart request.
	ChartID int64

	// Err, when set, is returned by every call.
	Err error

	spreadsheets map[string]*sheets.Spreadsheet
	values       map[string][][]any
	nextID       int
	nextSheetID  int64

	// Calls lists the methods invoked, in order.
	Calls []string
	// Requests holds the requests of every BatchUpdate call.
	Requests [][]*sheets.Request
	// ValueWrites holds the data of every BatchUpdateValues call.
	ValueWrites [][]*sheets.ValueRange
	// ValueReads holds the ranges passed to GetValues.
	ValueReads []string
	// Created holds the bodies passed to Create.
	Created []*sheets.Spreadsheet
}

var _ gsheets.API = (*Fake)(nil)

// New returns an empty fake.
func New() *Fake {
	return &Fake{
		spreadsheets: make(map[string]*sheets.Spreadsheet),
		values:       make(map[string][][]any),
		nextSheetID:  100,
	}
}

// AddSpreadsheet registers a spreadsheet with the given sheets, numbered
// from 0 in order.
func (f *Fake) AddSpreadsheet(id, title string, sheetTitles ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := &sheets.Spreadsheet{
		SpreadsheetId: id,
		Properties:    &sheets.SpreadsheetProperties{Title: title},
	}
	for i, name := range sheetTitles {
		s.Sheets = append(s.Sheets, &sheets.Sheet{
			Properties: &sheets.SheetProperties{SheetId: int64(i), Title: name},
		})
	}
	f.spreadsheets[id] = s
}

// SetValues sets the reply of GetValues for an exact A1 range.
func (f *Fake) SetValues(rng string, values [][]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[rng] = values
}

func (f *Fake) record(call string) error {
	f.Calls = append(f.Calls, call)
	return f.Err
}

// Create implements sheets.API.
func (f *Fake) Create(_ context.Context, spreadsheet *sheets.Spreadsheet) (*sheets.Spreadsheet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("Create"); err != nil {
		return nil, err
	}
	f.Created = append(f.Created, spreadsheet)

	f.nextID++
	out := &sheets.Spreadsheet{
		SpreadsheetId: fmt.Sprintf("spreadsheet-%d", f.nextID),
		Properties:    spreadsheet.Properties,
	}
	for i, sheet := range spreadsheet.Sheets {
		props := *sheet.Properties
		props.SheetId = int64(i)
		out.Sheets = append(out.Sheets, &sheets.Sheet{Properties: &props})
	}
	f.spreadsheets[out.SpreadsheetId] = out
	return out, nil
}

// GetSpreadsheet implements sheets.API.
func (f *Fake) GetSpreadsheet(_ context.Context, spreadsheetID string) (*sheets.Spreadsheet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("GetSpreadsheet"); err != nil {
		return nil, err
	}
	s, ok := f.spreadsheets[spreadsheetID]
	if !ok {
		return nil, fmt.Errorf("spreadsheet %s not found", spreadsheetID)
	}
	return s, nil
}

// GetValues implements sheets.API.
func (f *Fake) GetValues(_ context.Context, spreadsheetID, rng string) (*sheets.ValueRange, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("GetValues"); err != nil {
		return nil, err
	}
	f.ValueReads = append(f.ValueReads, rng)
	return &sheets.ValueRange{Range: rng, Values: f.values[rng]}, nil
}

// BatchUpdateValues implements sheets.API.
func (f *Fake) BatchUpdateValues(_ context.Context, spreadsheetID string, data []*sheets.ValueRange) (*sheets.BatchUpdateValuesResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("BatchUpdateValues"); err != nil {
		return nil, err
	}
	f.ValueWrites = append(f.ValueWrites, data)
	return &sheets.BatchUpdateValuesResponse{SpreadsheetId: spreadsheetID}, nil
}

// BatchUpdate implements sheets.API.
func (f *Fake) BatchUpdate(_ context.Context, spreadsheetID string, requests []*sheets.Request) (*sheets.BatchUpdateSpreadsheetResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("BatchUpdate"); err != nil {
		return nil, err
	}
	f.Requests = append(f.Requests, requests)

	resp := &sheets.BatchUpdateSpreadsheetResponse{SpreadsheetId: spreadsheetID}
	s := f.spreadsheets[spreadsheetID]
	for _, req := range requests {
		reply := &sheets.Response{}
		switch {
		case req.AddChart != nil:
			reply.AddChart = &sheets.AddChartResponse{
				Chart: &sheets.EmbeddedChart{ChartId: f.ChartID},
			}
		case req.AddSheet != nil:
			props := *req.AddSheet.Properties
			props.SheetId = f.nextSheetID
			f.nextSheetID++
			reply.AddSheet = &sheets.AddSheetResponse{Properties: &props}
			if s != nil {
				s.Sheets = append(s.Sheets, &sheets.Sheet{Properties: &props})
			}
		case req.DeleteSheet != nil && s != nil:
			kept := s.Sheets[:0]
			for _, sheet := range s.Sheets {
				if sheet.Properties.SheetId != req.DeleteSheet.SheetId {
					kept = append(kept, sheet)
				}
			}
			s.Sheets = kept
		}
		resp.Replies = append(resp.Replies, reply)
	}
	return resp, nil
}

// SheetTitle implements sheets.API.
func (f *Fake) SheetTitle(_ context.Context, spreadsheetID string, sheetID int64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("SheetTitle"); err != nil {
		return "", err
	}
	s, ok := f.spreadsheets[spreadsheetID]
	if !ok {
		return "", fmt.Errorf("spreadsheet %s not found", spreadsheetID)
	}
	title, ok := gsheets.FindSheetTitle(s, sheetID)
	if !ok {
		return "", fmt.Errorf("sheet %d not found in spreadsheet %s", sheetID, spreadsheetID)
	}
	return title, nil
}
