// Package slidestest provides an in-memory slides.API for tests of the
// packages building Slides requests.
package slidestest

import (
	"context"
	"fmt"
	"slices"
	"sync"

	slides "google.golang.org/api/slides/v1"

	gslides "github.com/teemow/gslides/internal/slides"
)

// Fake records every call and answers from in-memory state. Created
// presentations start with the default slide "p", like the real API.
type Fake struct {
	mu sync.Mutex

	// Err, when set, is returned by every call.
	Err error

	presentations map[string]*slides.Presentation
	nextID        int

	// Calls lists the methods invoked, in order.
	Calls []string
	// Requests holds the requests of every BatchUpdate call.
	Requests [][]*slides.Request
}

var _ gslides.API = (*Fake)(nil)

// New returns an empty fake.
func New() *Fake {
	return &Fake{presentations: make(map[string]*slides.Presentation)}
}

// AddPresentation registers a presentation with the given slide ids.
func (f *Fake) AddPresentation(id, title string, slideIDs ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p := &slides.Presentation{PresentationId: id, Title: title}
	for _, s := range slideIDs {
		p.Slides = append(p.Slides, &slides.Page{ObjectId: s})
	}
	f.presentations[id] = p
}

func (f *Fake) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

// Create implements slides.API.
func (f *Fake) Create(_ context.Context, presentation *slides.Presentation) (*slides.Presentation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, "Create")
	if f.Err != nil {
		return nil, f.Err
	}

	p := &slides.Presentation{
		PresentationId: f.id("presentation"),
		Title:          presentation.Title,
		Slides:         []*slides.Page{{ObjectId: "p"}},
	}
	f.presentations[p.PresentationId] = p
	return p, nil
}

// Get implements slides.API.
func (f *Fake) Get(_ context.Context, presentationID string) (*slides.Presentation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, "Get")
	if f.Err != nil {
		return nil, f.Err
	}

	p, ok := f.presentations[presentationID]
	if !ok {
		return nil, fmt.Errorf("presentation %s not found", presentationID)
	}
	return p, nil
}

// BatchUpdate implements slides.API.
func (f *Fake) BatchUpdate(_ context.Context, presentationID string, requests []*slides.Request) (*slides.BatchUpdatePresentationResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, "BatchUpdate")
	if f.Err != nil {
		return nil, f.Err
	}
	f.Requests = append(f.Requests, requests)

	p := f.presentations[presentationID]
	resp := &slides.BatchUpdatePresentationResponse{PresentationId: presentationID}
	for _, req := range requests {
		reply := &slides.Response{}
		switch {
		case req.CreateSlide != nil:
			id := req.CreateSlide.ObjectId
			if id == "" {
				id = f.id("slide")
			}
			reply.CreateSlide = &slides.CreateSlideResponse{ObjectId: id}
			if p != nil {
				page := &slides.Page{ObjectId: id}
				idx := int(req.CreateSlide.InsertionIndex)
				if idx <= 0 && !slices.Contains(req.CreateSlide.ForceSendFields, "InsertionIndex") || idx > len(p.Slides) {
					idx = len(p.Slides)
				}
				p.Slides = slices.Insert(p.Slides, idx, page)
			}
		case req.CreateShape != nil:
			id := req.CreateShape.ObjectId
			if id == "" {
				id = f.id("shape")
			}
			reply.CreateShape = &slides.CreateShapeResponse{ObjectId: id}
		case req.CreateTable != nil:
			reply.CreateTable = &slides.CreateTableResponse{ObjectId: f.id("table")}
		case req.CreateSheetsChart != nil:
			id := req.CreateSheetsChart.ObjectId
			if id == "" {
				id = f.id("chart")
			}
			reply.CreateSheetsChart = &slides.CreateSheetsChartResponse{ObjectId: id}
		case req.DeleteObject != nil && p != nil:
			p.Slides = slices.DeleteFunc(p.Slides, func(s *slides.Page) bool {
				return s.ObjectId == req.DeleteObject.ObjectId
			})
		}
		resp.Replies = append(resp.Replies, reply)
	}
	return resp, nil
}
