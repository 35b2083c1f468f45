// Package config holds the settings shared by the gslides builders: the
// accepted values of enumerated chart options, the user settings file and
// the rendering style (font and palettes) passed explicitly into
// constructors.
//
// Settings are resolved in order: built-in defaults, ~/.gslides/config.toml,
// GSLIDES_* environment variables, and finally CLI flags.
package config
