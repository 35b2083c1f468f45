package config

import "github.com/teemow/gslides/internal/color"

// Style carries the font and palette defaults into the chart, table and
// slide renderers.
type Style struct {
	Font     string
	Palette  string
	Palettes *color.Registry
}

// DefaultStyle uses DefaultFont, no default palette and the base palettes.
func DefaultStyle() Style {
	return Style{Font: DefaultFont, Palettes: color.NewRegistry()}
}

// Normalize fills unset fields with defaults.
func (s Style) Normalize() Style {
	if s.Font != "" && s.Palettes != nil {
		return s
	}
	def := DefaultStyle()
	if s.Font == "" {
		s.Font = def.Font
	}
	if s.Palettes == nil {
		s.Palettes = def.Palettes
	}
	return s
}
