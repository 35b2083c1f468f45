package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/teemow/gslides/internal/color"
)

// DefaultFont is the font applied to titles, labels and table text.
const DefaultFont = "Arial"

// Environment variables overriding the settings file.
const (
	EnvFont           = "GSLIDES_FONT"
	EnvPalette        = "GSLIDES_PALETTE"
	EnvAccount        = "GSLIDES_ACCOUNT"
	EnvCredentials    = "GSLIDES_CREDENTIALS"
	EnvCustomPalettes = "GSLIDES_CUSTOM_PALETTES"

	// EnvAccessToken is an OAuth access token used instead of the cached
	// account tokens. It is never written to the settings file.
	EnvAccessToken = "GSLIDES_ACCESS_TOKEN"
)

// Settings are the user level defaults.
type Settings struct {
	// Font used for chart titles, axis labels, data labels and tables.
	Font string `toml:"font"`

	// Palette is the palette applied to charts that do not name one.
	// Empty leaves series uncolored unless they set a color.
	Palette string `toml:"palette"`

	// Account selects the cached OAuth token (default: "default").
	Account string `toml:"account"`

	// CredentialsFile is an OAuth client or service account JSON file.
	CredentialsFile string `toml:"credentials_file"`

	// CustomPalettesFile holds extra palettes merged over the base ones.
	CustomPalettesFile string `toml:"custom_palettes_file"`
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Font:               DefaultFont,
		Account:            "default",
		CustomPalettesFile: color.CustomPalettesPath(),
	}
}

// DefaultPath returns ~/.gslides/config.toml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gslides", "config.toml")
}

// Load reads the settings file at path over the defaults and applies
// environment overrides. A missing file is not an error.
func Load(path string) (Settings, error) {
	s := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return s, fmt.Errorf("failed to read settings file: %w", err)
		default:
			if err := toml.Unmarshal(data, &s); err != nil {
				return s, fmt.Errorf("failed to parse settings file %s: %w", path, err)
			}
		}
	}

	s.Font = getEnvOrDefault(EnvFont, s.Font)
	s.Palette = getEnvOrDefault(EnvPalette, s.Palette)
	s.Account = getEnvOrDefault(EnvAccount, s.Account)
	s.CredentialsFile = getEnvOrDefault(EnvCredentials, s.CredentialsFile)
	s.CustomPalettesFile = getEnvOrDefault(EnvCustomPalettes, s.CustomPalettesFile)

	if s.Font == "" {
		s.Font = DefaultFont
	}
	return s, nil
}

// Save writes the settings to path with restricted permissions.
func (s Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}

// Style builds the rendering style for these settings, loading the custom
// palettes file and checking the default palette exists.
func (s Settings) Style() (Style, error) {
	registry, err := color.LoadRegistry(s.CustomPalettesFile)
	if err != nil {
		return Style{}, err
	}
	style := Style{Font: s.Font, Palette: s.Palette, Palettes: registry}
	if s.Palette != "" {
		if _, err := registry.Palette(s.Palette); err != nil {
			return Style{}, err
		}
	}
	return style, nil
}

// getEnvOrDefault returns the value of an environment variable or a default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
