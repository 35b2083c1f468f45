package presentation

import (
	"context"
	"fmt"
	"slices"
	"strings"

	slides "google.golang.org/api/slides/v1"

	"github.com/teemow/gslides/internal/errs"
	gsheets "github.com/teemow/gslides/internal/sheets"
	gslides "github.com/teemow/gslides/internal/slides"
)

// Presentation is a handle on a remote presentation bound to a Slides
// client. Obtain one with Create or Get.
type Presentation struct {
	api         gslides.API
	id          string
	title       string
	slideIDs    []string
	initialized bool
}

// Create creates an empty presentation. The default slide added by Slides
// is deleted.
func Create(ctx context.Context, api gslides.API, title string) (*Presentation, error) {
	created, err := api.Create(ctx, &slides.Presentation{Title: title})
	if err != nil {
		return nil, fmt.Errorf("failed to create presentation %q: %w", title, err)
	}

	var requests []*slides.Request
	for _, page := range created.Slides {
		requests = append(requests, &slides.Request{
			DeleteObject: &slides.DeleteObjectRequest{ObjectId: page.ObjectId},
		})
	}
	if len(requests) > 0 {
		if _, err := api.BatchUpdate(ctx, created.PresentationId, requests); err != nil {
			return nil, fmt.Errorf("failed to delete default slide of %s: %w", created.PresentationId, err)
		}
	}

	return &Presentation{
		api:         api,
		id:          created.PresentationId,
		title:       created.Title,
		initialized: true,
	}, nil
}

// Get reads the title and slides of an existing presentation.
func Get(ctx context.Context, api gslides.API, id string) (*Presentation, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: presentation id is required", errs.ErrInvalidConfig)
	}
	p, err := api.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get presentation %s: %w", id, err)
	}

	out := &Presentation{api: api, id: id, title: p.Title, initialized: true}
	for _, page := range p.Slides {
		out.slideIDs = append(out.slideIDs, page.ObjectId)
	}
	return out, nil
}

func (p *Presentation) check() error {
	if p == nil || !p.initialized {
		return fmt.Errorf("%w: must initialize the presentation using create or get", errs.ErrNotExecuted)
	}
	return nil
}

// ID returns the presentation id.
func (p *Presentation) ID() (string, error) {
	if err := p.check(); err != nil {
		return "", err
	}
	return p.id, nil
}

// Title returns the presentation title.
func (p *Presentation) Title() string {
	if p == nil {
		return ""
	}
	return p.title
}

// SlideIDs returns the slide ids in deck order.
func (p *Presentation) SlideIDs() ([]string, error) {
	if err := p.check(); err != nil {
		return nil, err
	}
	return slices.Clone(p.slideIDs), nil
}

// AddSlide builds a slide: charts are created through sheetsAPI, then the
// slide is added to the presentation.
func (p *Presentation) AddSlide(ctx context.Context, sheetsAPI gsheets.API, opts SlideOptions) (*Slide, error) {
	if err := p.check(); err != nil {
		return nil, err
	}
	slide, err := NewSlide(opts)
	if err != nil {
		return nil, err
	}
	if err := slide.ExecuteSheet(ctx, sheetsAPI); err != nil {
		return nil, err
	}
	if err := slide.ExecuteSlide(ctx, p.api, p.id); err != nil {
		return nil, err
	}

	idx := len(p.slideIDs)
	if opts.InsertionIndex != nil && int(*opts.InsertionIndex) < idx {
		idx = int(*opts.InsertionIndex)
	}
	p.slideIDs = slices.Insert(p.slideIDs, idx, slide.slideID)
	return slide, nil
}

// RemoveSlide deletes a slide of the presentation.
func (p *Presentation) RemoveSlide(ctx context.Context, slideID string) error {
	if err := p.check(); err != nil {
		return err
	}
	idx := slices.Index(p.slideIDs, slideID)
	if idx < 0 {
		return fmt.Errorf("%w: slide %s is not in presentation %s", errs.ErrInvalidConfig, slideID, p.id)
	}

	req := &slides.Request{DeleteObject: &slides.DeleteObjectRequest{ObjectId: slideID}}
	if _, err := p.api.BatchUpdate(ctx, p.id, []*slides.Request{req}); err != nil {
		return fmt.Errorf("failed to delete slide %s: %w", slideID, err)
	}
	p.slideIDs = slices.Delete(p.slideIDs, idx, idx+1)
	return nil
}

func (p *Presentation) String() string {
	if p == nil || !p.initialized {
		return "Presentation (not initialized)"
	}
	return fmt.Sprintf("Presentation\n - id = %s\n - title = %s\n - slides = %s",
		p.id, p.title, strings.Join(p.slideIDs, ", "))
}
