package color

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/teemow/gslides/internal/errs"
)

//go:embed base_palettes.yaml
var basePalettesYAML []byte

// DefaultPalette is used when no palette name is given.
const DefaultPalette = "black"

// CustomPalettesPath returns the default location of the user palette file.
func CustomPalettesPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gslides", "custom_palettes.yaml")
}

// Registry holds the available palettes by name.
type Registry struct {
	palettes map[string][]string
}

// NewRegistry returns a registry holding the embedded base palettes.
func NewRegistry() *Registry {
	r := &Registry{palettes: make(map[string][]string)}
	if err := yaml.Unmarshal(basePalettesYAML, &r.palettes); err != nil {
		panic(fmt.Sprintf("color: invalid embedded palettes: %v", err))
	}
	return r
}

// LoadRegistry returns the base palettes merged with the palettes in path.
// A missing file is not an error.
func LoadRegistry(path string) (*Registry, error) {
	r := NewRegistry()
	if path == "" {
		return r, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return r, nil
		}
		return nil, fmt.Errorf("failed to read palettes file: %w", err)
	}
	if err := r.Merge(data); err != nil {
		return nil, fmt.Errorf("failed to load palettes from %s: %w", path, err)
	}
	return r, nil
}

// Merge adds the palettes in the YAML document, replacing same-named ones.
func (r *Registry) Merge(data []byte) error {
	extra := make(map[string][]string)
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrInvalidConfig, err)
	}
	for name, colors := range extra {
		r.palettes[name] = colors
	}
	return nil
}

// Names returns the palette names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.palettes))
	for name := range r.palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a palette is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.palettes[name]
	return ok
}

// Palette returns a fresh cursor over the named palette. An empty name
// selects DefaultPalette.
func (r *Registry) Palette(name string) (*Palette, error) {
	if name == "" {
		name = DefaultPalette
	}
	entries, ok := r.palettes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s is not in available palettes: %s",
			errs.ErrInvalidConfig, name, strings.Join(r.Names(), ", "))
	}
	return NewPalette(entries)
}

// Palette is a cyclic cursor over a list of colors.
type Palette struct {
	colors []RGB
	index  int
}

// NewPalette translates and validates every entry.
func NewPalette(entries []string) (*Palette, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: palette has no colors", errs.ErrInvalidConfig)
	}
	p := &Palette{colors: make([]RGB, 0, len(entries))}
	for _, e := range entries {
		rgb, err := Parse(e)
		if err != nil {
			return nil, err
		}
		p.colors = append(p.colors, rgb)
	}
	return p, nil
}

// Len returns the number of colors in the palette.
func (p *Palette) Len() int {
	return len(p.colors)
}

// Next returns the color at the cursor and advances it, wrapping to the
// first color after the last.
func (p *Palette) Next() RGB {
	c := p.colors[p.index]
	p.index = (p.index + 1) % len(p.colors)
	return c
}
