package osm2net

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Settings Allows to configure which ways are converted and how their attributes are derived
type Settings struct {
	// Classification keys (e.g. `highway:primary`) which should be converted into links
	ActivatedWayTypes []string `mapstructure:"activated_way_types"`
	// OSM mode token -> internal mode name (e.g. `psv: bus`)
	ModeMapping map[string]string `mapstructure:"mode_mapping"`
	// Per-classification overrides of capacity and max density (per lane)
	Overrides map[string]TemplateOverride `mapstructure:"overrides"`
	// Classification to substitute for unsupported but activated classification
	FallbackWayType string `mapstructure:"fallback_way_type"`
	// ISO 3166-1 alpha-2 code. Defines driving side
	CountryCode string `mapstructure:"country_code"`
}

// TemplateOverride Replaces defaults of attribute template. Zero values are ignored
type TemplateOverride struct {
	Capacity   float64 `mapstructure:"capacity"`
	MaxDensity float64 `mapstructure:"max_density"`
}

const (
	DEFAULT_COUNTRY_CODE = "DE"
	settingsEnvPrefix    = "OSM2NET"
)

// DefaultSettings returns settings with every known road classification activated
func DefaultSettings() *Settings {
	activated := make([]string, 0, len(defaultWayTypes))
	for _, key := range defaultActivatedWayTypes {
		activated = append(activated, key)
	}
	return &Settings{
		ActivatedWayTypes: activated,
		ModeMapping:       map[string]string{},
		Overrides:         map[string]TemplateOverride{},
		CountryCode:       DEFAULT_COUNTRY_CODE,
	}
}

// LoadSettings reads settings from file (any format supported by viper) and OSM2NET_* environment variables.
// Empty filename means defaults + environment only
func LoadSettings(filename string) (*Settings, error) {
	v := viper.New()
	defaults := DefaultSettings()
	v.SetDefault("activated_way_types", defaults.ActivatedWayTypes)
	v.SetDefault("country_code", defaults.CountryCode)
	v.SetDefault("fallback_way_type", "")
	v.SetEnvPrefix(settingsEnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if filename != "" {
		v.SetConfigFile(filename)
		err := v.ReadInConfig()
		if err != nil {
			return nil, errors.Wrapf(err, "Can't read settings file '%s'", filename)
		}
	}
	settings := &Settings{}
	err := v.Unmarshal(settings)
	if err != nil {
		return nil, errors.Wrap(err, "Can't decode settings")
	}
	if settings.ModeMapping == nil {
		settings.ModeMapping = map[string]string{}
	}
	if settings.Overrides == nil {
		settings.Overrides = map[string]TemplateOverride{}
	}
	err = settings.Validate()
	if err != nil {
		return nil, err
	}
	return settings, nil
}

// Validate checks that mode names and classification keys are known
func (cfg *Settings) Validate() error {
	for token, modeName := range cfg.ModeMapping {
		if ParseModeType(modeName) == MODE_UNDEFINED {
			return fmt.Errorf("Unknown mode '%s' for OSM token '%s'", modeName, token)
		}
	}
	for _, key := range cfg.ActivatedWayTypes {
		if !isClassificationKey(key) {
			return fmt.Errorf("Bad way type '%s'. Expected '<key>:<value>'", key)
		}
	}
	if cfg.FallbackWayType != "" {
		if _, ok := lookupWayTypeDefaults(cfg.FallbackWayType); !ok {
			return fmt.Errorf("Fallback way type '%s' has no defaults", cfg.FallbackWayType)
		}
	}
	return nil
}

// CheckWayType Checks if classification is activated
func (cfg *Settings) CheckWayType(key string) bool {
	for i := range cfg.ActivatedWayTypes {
		if cfg.ActivatedWayTypes[i] == key {
			return true
		}
	}
	return false
}

// Modes returns built-in mode mapping merged with configured one
func (cfg *Settings) Modes() ModeMapping {
	mapping := DefaultModeMapping()
	for token, modeName := range cfg.ModeMapping {
		mapping[token] = ParseModeType(modeName)
	}
	return mapping
}

// DrivingSide returns driving side for configured country
func (cfg *Settings) DrivingSide() DrivingSide {
	return drivingSideByCountry(cfg.CountryCode)
}
