package config

import (
	_ "embed"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/teemow/gslides/internal/errs"
)

//go:embed chart_params.yaml
var chartParamsYAML []byte

// Names of the enumerated chart options.
const (
	ParamLineStyle          = "line_style"
	ParamPointShape         = "point_shape"
	ParamDataLabelPlacement = "data_label_placement"
	ParamLegendPosition     = "legend_position"
	ParamStacking           = "stacking"
	ParamNumberFormat       = "number_format"
)

var chartParams = mustLoadParams()

func mustLoadParams() map[string][]string {
	m := make(map[string][]string)
	if err := yaml.Unmarshal(chartParamsYAML, &m); err != nil {
		panic(fmt.Sprintf("config: invalid embedded chart params: %v", err))
	}
	return m
}

// Allowed returns the accepted values of an enumerated chart option.
func Allowed(param string) []string {
	return slices.Clone(chartParams[param])
}

// IsAllowed reports whether value is accepted for param.
func IsAllowed(param, value string) bool {
	return slices.Contains(chartParams[param], value)
}

// ValidateEnum checks an optional enumerated value. Empty values are
// accepted since they leave the vendor default in place.
func ValidateEnum(param, value string) error {
	if value == "" || IsAllowed(param, value) {
		return nil
	}
	return fmt.Errorf("%w: %s is not an accepted value for %s, must be one of: %s",
		errs.ErrInvalidConfig, value, param, strings.Join(Allowed(param), ", "))
}

// ValidateNonNegative checks an optional integer option.
func ValidateNonNegative(param string, value *int64) error {
	if value != nil && *value < 0 {
		return fmt.Errorf("%w: %s must be greater than or equal to 0, got %d", errs.ErrInvalidConfig, param, *value)
	}
	return nil
}

// ValidateFraction checks an optional option that must lie in [0,1).
func ValidateFraction(param string, value float64) error {
	if value < 0 || value >= 1 {
		return fmt.Errorf("%w: %s must be in [0,1), got %g", errs.ErrInvalidConfig, param, value)
	}
	return nil
}
