package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/teemow/gslides/internal/chart"
	"github.com/teemow/gslides/internal/errs"
)

// Manifest describes a deck.
type Manifest struct {
	Spreadsheet  Target  `yaml:"spreadsheet"`
	Presentation Target  `yaml:"presentation"`
	Style        Style   `yaml:"style"`
	Data         []Data  `yaml:"data"`
	Charts       []Chart `yaml:"charts"`
	Tables       []Table `yaml:"tables"`
	Slides       []Slide `yaml:"slides"`

	dir string
}

// Target names an existing document by ID or a new one by Title.
type Target struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
}

// Style overrides the configured font and palette.
type Style struct {
	Font    string `yaml:"font"`
	Palette string `yaml:"palette"`
}

// Data is a local file uploaded as a frame.
type Data struct {
	Name string `yaml:"name"`

	CSV       string `yaml:"csv"`
	Encoding  string `yaml:"encoding"`
	Delimiter string `yaml:"delimiter"`

	XLSX        string `yaml:"xlsx"`
	SourceSheet string `yaml:"source_sheet"`

	// Sheet receives the frame, the data name when empty. Missing sheets
	// are added to the spreadsheet.
	Sheet     string            `yaml:"sheet"`
	Anchor    string            `yaml:"anchor"`
	Overwrite bool              `yaml:"overwrite"`
	Formats   map[string]string `yaml:"formats"`
}

// SheetName returns the sheet receiving the frame.
func (d Data) SheetName() string {
	if d.Sheet != "" {
		return d.Sheet
	}
	return d.Name
}

// Chart is a chart over a frame.
type Chart struct {
	Name string `yaml:"name"`
	Data string `yaml:"data"`
	X    string `yaml:"x"`

	Title      string `yaml:"title"`
	XAxisLabel string `yaml:"x_axis_label"`
	YAxisLabel string `yaml:"y_axis_label"`

	XMin *float64 `yaml:"x_min"`
	XMax *float64 `yaml:"x_max"`
	YMin *float64 `yaml:"y_min"`
	YMax *float64 `yaml:"y_max"`

	XAxisFormat    string `yaml:"x_axis_format"`
	YAxisFormat    string `yaml:"y_axis_format"`
	Palette        string `yaml:"palette"`
	LegendPosition string `yaml:"legend_position"`
	Stacking       string `yaml:"stacking"`

	Series []Series `yaml:"series"`
}

// Table is a slide table over a frame.
type Table struct {
	Name string `yaml:"name"`
	Data string `yaml:"data"`

	FontSize          int64     `yaml:"font_size"`
	NoHeader          bool      `yaml:"no_header"`
	Stub              bool      `yaml:"stub"`
	HeaderBackground  string    `yaml:"header_background"`
	StubBackground    string    `yaml:"stub_background"`
	ColumnProportions []float64 `yaml:"column_proportions"`
}

// Slide places charts and tables, by name, on a grid.
type Slide struct {
	Title   string   `yaml:"title"`
	Notes   string   `yaml:"notes"`
	Objects []string `yaml:"objects"`

	Rows           int    `yaml:"rows"`
	Cols           int    `yaml:"cols"`
	InsertionIndex *int64 `yaml:"insertion_index"`

	Margins *Margins `yaml:"margins"`
	XBorder *float64 `yaml:"x_border"`
	YBorder *float64 `yaml:"y_border"`
	Spacing *float64 `yaml:"spacing"`
}

// Margins in EMU.
type Margins struct {
	Top    float64 `yaml:"top"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
	Right  float64 `yaml:"right"`
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer func() { _ = f.Close() }()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.dir = filepath.Dir(path)
	return m, nil
}

// Parse decodes and validates a manifest. Unknown keys are rejected.
func Parse(r io.Reader) (*Manifest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidConfig, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Path resolves a data file path against the manifest directory.
func (m *Manifest) Path(p string) string {
	if p == "" || filepath.IsAbs(p) || m.dir == "" {
		return p
	}
	return filepath.Join(m.dir, p)
}

// Validate checks names and references. Series options are validated when
// the deck is built.
func (m *Manifest) Validate() error {
	var problems []string
	fail := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	names := make(map[string]string)
	declare := func(kind, name string) {
		if name == "" {
			fail("%s without a name", kind)
			return
		}
		if prev, ok := names[name]; ok {
			fail("%s %q reuses the name of a %s", kind, name, prev)
			return
		}
		names[name] = kind
	}

	for _, d := range m.Data {
		declare("data", d.Name)
		if (d.CSV == "") == (d.XLSX == "") {
			fail("data %q needs exactly one of csv or xlsx", d.Name)
		}
		if len([]rune(d.Delimiter)) > 1 {
			fail("data %q delimiter must be a single character", d.Name)
		}
	}
	isData := func(name string) bool { return names[name] == "data" }

	for _, c := range m.Charts {
		declare("chart", c.Name)
		if !isData(c.Data) {
			fail("chart %q refers to unknown data %q", c.Name, c.Data)
		}
		if len(c.Series) == 0 {
			fail("chart %q has no series", c.Name)
		}
	}
	for _, t := range m.Tables {
		declare("table", t.Name)
		if !isData(t.Data) {
			fail("table %q refers to unknown data %q", t.Name, t.Data)
		}
	}
	for i, s := range m.Slides {
		for _, obj := range s.Objects {
			if kind := names[obj]; kind != "chart" && kind != "table" {
				fail("slide %d refers to unknown chart or table %q", i+1, obj)
			}
		}
	}

	if len(m.Data) > 0 && m.Spreadsheet.ID == "" && m.Spreadsheet.Title == "" {
		fail("spreadsheet needs an id or a title")
	}
	if len(m.Slides) > 0 && m.Presentation.ID == "" && m.Presentation.Title == "" {
		fail("presentation needs an id or a title")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: invalid manifest: %s", errs.ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// Series is a chart series. Type selects the variant, the remaining keys
// are the options of that variant.
type Series struct {
	Type string
	node yaml.Node
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Series) UnmarshalYAML(value *yaml.Node) error {
	var head struct {
		Type string `yaml:"type"`
	}
	if err := value.Decode(&head); err != nil {
		return err
	}
	s.Type = head.Type
	s.node = *value
	return nil
}

// Build decodes the variant options and returns the validated series.
func (s Series) Build() (*chart.Series, error) {
	switch chart.Kind(normalizeKind(s.Type)) {
	case chart.KindLine:
		var opts chart.LineOptions
		if err := s.decode(&opts); err != nil {
			return nil, err
		}
		return chart.Line(opts)
	case chart.KindArea:
		var opts chart.AreaOptions
		if err := s.decode(&opts); err != nil {
			return nil, err
		}
		return chart.Area(opts)
	case chart.KindColumn:
		var opts chart.ColumnOptions
		if err := s.decode(&opts); err != nil {
			return nil, err
		}
		return chart.Column(opts)
	case chart.KindScatter:
		var opts chart.ScatterOptions
		if err := s.decode(&opts); err != nil {
			return nil, err
		}
		return chart.Scatter(opts)
	case chart.KindHistogram:
		var opts chart.HistogramOptions
		if err := s.decode(&opts); err != nil {
			return nil, err
		}
		return chart.Histogram(opts)
	default:
		return nil, fmt.Errorf("%w: unknown series type %q", errs.ErrInvalidConfig, s.Type)
	}
}

func (s Series) decode(out any) error {
	if s.node.Kind == 0 {
		return nil
	}
	if err := s.node.Decode(out); err != nil {
		return fmt.Errorf("%w: %s series: %v", errs.ErrInvalidConfig, s.Type, err)
	}
	return nil
}

// normalizeKind maps "line" or "LINE" to "Line".
func normalizeKind(t string) string {
	if t == "" {
		return ""
	}
	t = strings.ToLower(t)
	return strings.ToUpper(t[:1]) + t[1:]
}
