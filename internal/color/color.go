package color

import (
	_ "embed"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/teemow/gslides/internal/errs"
)

//go:embed named_colors.yaml
var namedColorsYAML []byte

var hexPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}){1,2}$`)

var namedColors = mustLoadNamed()

// RGB is a color with components normalized to [0,1].
type RGB struct {
	Red   float64
	Green float64
	Blue  float64
}

var (
	// Black is the RGB value of black.
	Black = RGB{}
	// White is the RGB value of white.
	White = RGB{Red: 1, Green: 1, Blue: 1}
)

func mustLoadNamed() map[string]string {
	m := make(map[string]string)
	if err := yaml.Unmarshal(namedColorsYAML, &m); err != nil {
		panic(fmt.Sprintf("color: invalid embedded named colors: %v", err))
	}
	return m
}

// Names returns the known named colors.
func Names() []string {
	names := make([]string, 0, len(namedColors))
	for k := range namedColors {
		names = append(names, k)
	}
	return names
}

// Translate resolves a named color to its hex code. Values starting with '#'
// are returned unchanged and validated later by ValidateHex.
func Translate(c string) (string, error) {
	if hex, ok := namedColors[strings.ToLower(c)]; ok {
		return hex, nil
	}
	if strings.HasPrefix(c, "#") {
		return c, nil
	}
	return "", fmt.Errorf("%w: %q is not a valid hex or named color", errs.ErrInvalidConfig, c)
}

// ValidateHex checks that c is a 3 or 6 digit hex color code.
func ValidateHex(c string) (string, error) {
	if !hexPattern.MatchString(c) {
		return "", fmt.Errorf("%w: %q is not a valid hex color code", errs.ErrInvalidConfig, c)
	}
	return c, nil
}

// HexToRGB converts a hex color code to normalized RGB.
func HexToRGB(c string) (RGB, error) {
	if _, err := ValidateHex(c); err != nil {
		return RGB{}, err
	}
	digits := c[1:]
	if len(digits) == 3 {
		digits = string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]})
	}
	var comps [3]float64
	for i := range comps {
		v, err := strconv.ParseUint(digits[i*2:i*2+2], 16, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("%w: %q is not a valid hex color code", errs.ErrInvalidConfig, c)
		}
		comps[i] = float64(v) / 255
	}
	return RGB{Red: comps[0], Green: comps[1], Blue: comps[2]}, nil
}

// Parse translates and converts a named or hex color.
func Parse(c string) (RGB, error) {
	hex, err := Translate(c)
	if err != nil {
		return RGB{}, err
	}
	return HexToRGB(hex)
}

// Luminance returns the relative luminance of the color.
func (c RGB) Luminance() float64 {
	return 0.2126*c.Red + 0.7152*c.Green + 0.0722*c.Blue
}

// BlackOrWhite picks the text color readable on top of background.
func BlackOrWhite(background RGB) RGB {
	if background.Luminance() > 0.5 {
		return Black
	}
	return White
}
