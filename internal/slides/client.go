package slides

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	slides "google.golang.org/api/slides/v1"

	"github.com/teemow/gslides/internal/instrumentation"
	"github.com/teemow/gslides/internal/logging"
)

// API is the subset of the Slides service used by gslides.
type API interface {
	Create(ctx context.Context, presentation *slides.Presentation) (*slides.Presentation, error)
	Get(ctx context.Context, presentationID string) (*slides.Presentation, error)
	BatchUpdate(ctx context.Context, presentationID string, requests []*slides.Request) (*slides.BatchUpdatePresentationResponse, error)
}

// Config configures a Client.
type Config struct {
	HTTPClient    *http.Client
	Metrics       *instrumentation.Metrics
	Logger        *slog.Logger
	ClientOptions []option.ClientOption
}

// Client wraps the Google Slides API service
type Client struct {
	service *slides.Service
	metrics *instrumentation.Metrics
	logger  *slog.Logger
}

var _ API = (*Client)(nil)

// NewClient creates a Slides client from an authorized HTTP client.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	opts := make([]option.ClientOption, 0, len(cfg.ClientOptions)+1)
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}
	opts = append(opts, cfg.ClientOptions...)

	service, err := slides.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Slides service: %w", err)
	}

	return &Client{
		service: service,
		metrics: cfg.Metrics,
		logger:  logging.WithService(logging.OrDefault(cfg.Logger), instrumentation.ServiceSlides),
	}, nil
}

func (c *Client) observe(ctx context.Context, operation, presentationID string, body any, fn func(context.Context) error, extra ...attribute.KeyValue) error {
	logger := logging.WithOperation(c.logger, operation)
	if body != nil {
		logger.DebugContext(ctx, "executing request", logging.Presentation(presentationID), logging.Request(body))
	}

	attrs := append(instrumentation.Document("presentation", presentationID), extra...)

	err := instrumentation.Observe(ctx, c.metrics, instrumentation.ServiceSlides, operation, fn, attrs...)
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			logger.WarnContext(ctx, "slides request failed",
				logging.Presentation(presentationID),
				slog.Int("code", apiErr.Code),
				logging.Err(err))
		}
	}
	return err
}

// Create creates a new presentation.
func (c *Client) Create(ctx context.Context, presentation *slides.Presentation) (*slides.Presentation, error) {
	var resp *slides.Presentation
	err := c.observe(ctx, instrumentation.OperationCreate, "", presentation, func(ctx context.Context) error {
		var err error
		resp, err = c.service.Presentations.Create(presentation).Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create presentation: %w", err)
	}
	return resp, nil
}

// Get returns the presentation including its slides.
func (c *Client) Get(ctx context.Context, presentationID string) (*slides.Presentation, error) {
	var resp *slides.Presentation
	err := c.observe(ctx, instrumentation.OperationGet, presentationID, nil, func(ctx context.Context) error {
		var err error
		resp, err = c.service.Presentations.Get(presentationID).Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get presentation %s: %w", presentationID, err)
	}
	return resp, nil
}

// BatchUpdate applies requests to a presentation in one call.
func (c *Client) BatchUpdate(ctx context.Context, presentationID string, requests []*slides.Request) (*slides.BatchUpdatePresentationResponse, error) {
	req := &slides.BatchUpdatePresentationRequest{Requests: requests}
	c.metrics.RecordBatchSize(ctx, instrumentation.ServiceSlides, len(requests))

	var resp *slides.BatchUpdatePresentationResponse
	err := c.observe(ctx, instrumentation.OperationBatchUpdate, presentationID, req, func(ctx context.Context) error {
		var err error
		resp, err = c.service.Presentations.BatchUpdate(presentationID, req).Context(ctx).Do()
		return err
	}, instrumentation.RequestCount(len(requests)))
	if err != nil {
		return nil, fmt.Errorf("failed to batch update presentation %s: %w", presentationID, err)
	}
	return resp, nil
}
