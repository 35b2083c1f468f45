package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/teemow/gslides/internal/instrumentation"
	"github.com/teemow/gslides/internal/logging"
)

// ValueInputOption is how written values are interpreted by Sheets.
const ValueInputOption = "USER_ENTERED"

const (
	defaultCacheSize = 128
	defaultCacheTTL  = 5 * time.Minute
)

// API is the subset of the Sheets service used by gslides.
type API interface {
	Create(ctx context.Context, spreadsheet *sheets.Spreadsheet) (*sheets.Spreadsheet, error)
	GetSpreadsheet(ctx context.Context, spreadsheetID string) (*sheets.Spreadsheet, error)
	GetValues(ctx context.Context, spreadsheetID, rng string) (*sheets.ValueRange, error)
	BatchUpdateValues(ctx context.Context, spreadsheetID string, data []*sheets.ValueRange) (*sheets.BatchUpdateValuesResponse, error)
	BatchUpdate(ctx context.Context, spreadsheetID string, requests []*sheets.Request) (*sheets.BatchUpdateSpreadsheetResponse, error)
	SheetTitle(ctx context.Context, spreadsheetID string, sheetID int64) (string, error)
}

// Config configures a Client.
type Config struct {
	// HTTPClient carries the OAuth credentials.
	HTTPClient *http.Client

	// Metrics records API call metrics. Optional.
	Metrics *instrumentation.Metrics

	// Logger receives debug dumps of request bodies. Optional.
	Logger *slog.Logger

	// ClientOptions are appended after the HTTP client option, e.g. to point
	// the client at a different endpoint.
	ClientOptions []option.ClientOption

	// CacheSize bounds the number of spreadsheets whose sheet titles are cached.
	CacheSize int
}

// Client wraps the Google Sheets API service
type Client struct {
	service *sheets.Service
	metrics *instrumentation.Metrics
	logger  *slog.Logger
	titles  *expirable.LRU[string, map[int64]string]
}

var _ API = (*Client)(nil)

// NewClient creates a Sheets client from an authorized HTTP client.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	opts := make([]option.ClientOption, 0, len(cfg.ClientOptions)+1)
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}
	opts = append(opts, cfg.ClientOptions...)

	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets service: %w", err)
	}

	size := cfg.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}

	return &Client{
		service: service,
		metrics: cfg.Metrics,
		logger:  logging.WithService(logging.OrDefault(cfg.Logger), instrumentation.ServiceSheets),
		titles:  expirable.NewLRU[string, map[int64]string](size, nil, defaultCacheTTL),
	}, nil
}

func (c *Client) observe(ctx context.Context, operation, spreadsheetID string, body any, fn func(context.Context) error, extra ...attribute.KeyValue) error {
	logger := logging.WithOperation(c.logger, operation)
	if body != nil {
		logger.DebugContext(ctx, "executing request", logging.Spreadsheet(spreadsheetID), logging.Request(body))
	}

	attrs := append(instrumentation.Document("spreadsheet", spreadsheetID), extra...)

	err := instrumentation.Observe(ctx, c.metrics, instrumentation.ServiceSheets, operation, fn, attrs...)
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			logger.WarnContext(ctx, "sheets request failed",
				logging.Spreadsheet(spreadsheetID),
				slog.Int("code", apiErr.Code),
				logging.Err(err))
		}
	}
	return err
}

// Create creates a new spreadsheet.
func (c *Client) Create(ctx context.Context, spreadsheet *sheets.Spreadsheet) (*sheets.Spreadsheet, error) {
	var resp *sheets.Spreadsheet
	err := c.observe(ctx, instrumentation.OperationCreate, "", spreadsheet, func(ctx context.Context) error {
		var err error
		resp, err = c.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create spreadsheet: %w", err)
	}
	return resp, nil
}

// GetSpreadsheet returns the spreadsheet metadata (properties and sheets).
func (c *Client) GetSpreadsheet(ctx context.Context, spreadsheetID string) (*sheets.Spreadsheet, error) {
	var resp *sheets.Spreadsheet
	err := c.observe(ctx, instrumentation.OperationGet, spreadsheetID, nil, func(ctx context.Context) error {
		var err error
		resp, err = c.service.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get spreadsheet %s: %w", spreadsheetID, err)
	}
	c.titles.Add(spreadsheetID, sheetTitles(resp))
	return resp, nil
}

// GetValues reads the values of an A1 range.
func (c *Client) GetValues(ctx context.Context, spreadsheetID, rng string) (*sheets.ValueRange, error) {
	var resp *sheets.ValueRange
	err := c.observe(ctx, instrumentation.OperationValuesGet, spreadsheetID, nil, func(ctx context.Context) error {
		var err error
		resp, err = c.service.Spreadsheets.Values.Get(spreadsheetID, rng).Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get values %s: %w", rng, err)
	}
	return resp, nil
}

// BatchUpdateValues writes several ranges in one call.
func (c *Client) BatchUpdateValues(ctx context.Context, spreadsheetID string, data []*sheets.ValueRange) (*sheets.BatchUpdateValuesResponse, error) {
	req := &sheets.BatchUpdateValuesRequest{
		ValueInputOption: ValueInputOption,
		Data:             data,
	}

	var resp *sheets.BatchUpdateValuesResponse
	err := c.observe(ctx, instrumentation.OperationValuesUpdate, spreadsheetID, req, func(ctx context.Context) error {
		var err error
		resp, err = c.service.Spreadsheets.Values.BatchUpdate(spreadsheetID, req).Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update values: %w", err)
	}
	return resp, nil
}

// BatchUpdate applies structural requests (charts, sheets, formats).
// Cached sheet titles of the spreadsheet are dropped since the requests may
// add, rename or delete sheets.
func (c *Client) BatchUpdate(ctx context.Context, spreadsheetID string, requests []*sheets.Request) (*sheets.BatchUpdateSpreadsheetResponse, error) {
	req := &sheets.BatchUpdateSpreadsheetRequest{Requests: requests}
	c.metrics.RecordBatchSize(ctx, instrumentation.ServiceSheets, len(requests))

	var resp *sheets.BatchUpdateSpreadsheetResponse
	err := c.observe(ctx, instrumentation.OperationBatchUpdate, spreadsheetID, req, func(ctx context.Context) error {
		var err error
		resp, err = c.service.Spreadsheets.BatchUpdate(spreadsheetID, req).Context(ctx).Do()
		return err
	}, instrumentation.RequestCount(len(requests)))
	c.titles.Remove(spreadsheetID)
	if err != nil {
		return nil, fmt.Errorf("failed to batch update spreadsheet %s: %w", spreadsheetID, err)
	}
	return resp, nil
}

// SheetTitle resolves a sheet id to its title, fetching the spreadsheet
// metadata on a cache miss.
func (c *Client) SheetTitle(ctx context.Context, spreadsheetID string, sheetID int64) (string, error) {
	if titles, ok := c.titles.Get(spreadsheetID); ok {
		if title, ok := titles[sheetID]; ok {
			return title, nil
		}
	}

	spreadsheet, err := c.GetSpreadsheet(ctx, spreadsheetID)
	if err != nil {
		return "", err
	}
	title, ok := FindSheetTitle(spreadsheet, sheetID)
	if !ok {
		return "", fmt.Errorf("sheet %d not found in spreadsheet %s", sheetID, spreadsheetID)
	}
	return title, nil
}

// FindSheetTitle returns the title of the sheet with the given id.
// The lookup reads the typed properties: sheet 0 is dropped by the vendor
// structs' omitempty encoding, so a generic JSON search cannot find it.
func FindSheetTitle(spreadsheet *sheets.Spreadsheet, sheetID int64) (string, bool) {
	title, ok := sheetTitles(spreadsheet)[sheetID]
	return title, ok
}

func sheetTitles(spreadsheet *sheets.Spreadsheet) map[int64]string {
	titles := make(map[int64]string, len(spreadsheet.Sheets))
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil {
			titles[sheet.Properties.SheetId] = sheet.Properties.Title
		}
	}
	return titles
}
