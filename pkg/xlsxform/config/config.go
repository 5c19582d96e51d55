// Package config loads xlsxform settings from defaults, a config file and
// the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"github.com/ukaji3/xlsxform-go/pkg/xlsxform"
	"github.com/ukaji3/xlsxform-go/pkg/xlsxform/output"
	"github.com/ukaji3/xlsxform-go/pkg/xlsxform/parser"
)

// EnvPrefix prefixes environment overrides, e.g. XLSXFORM_LOG_LEVEL.
const EnvPrefix = "XLSXFORM"

// Config is the full set of converter settings.
type Config struct {
	LogLevel string        `mapstructure:"log_level"`
	Workers  int           `mapstructure:"workers"`
	Format   string        `mapstructure:"format"`
	Pretty   bool          `mapstructure:"pretty"`
	Sheet    string        `mapstructure:"sheet"`
	Policy   parser.Policy `mapstructure:"policy"`
}

// Load reads configuration. An empty configPath uses defaults and the
// environment only.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	policy := parser.DefaultPolicy()

	v.SetDefault("log_level", "info")
	v.SetDefault("workers", 0)
	v.SetDefault("format", string(output.FormatJSON))
	v.SetDefault("pretty", true)
	v.SetDefault("sheet", "")

	v.SetDefault("policy.label_column", policy.LabelColumn)
	v.SetDefault("policy.input_column", policy.InputColumn)
	v.SetDefault("policy.header_rows", policy.HeaderRows)
	v.SetDefault("policy.multiselect_markers", policy.MultiselectMarkers)
	v.SetDefault("policy.required_markers", policy.RequiredMarkers)
	v.SetDefault("policy.min_selection_markers", policy.MinSelectionMarkers)
	v.SetDefault("policy.max_selection_markers", policy.MaxSelectionMarkers)
	v.SetDefault("policy.digits_markers", policy.DigitsMarkers)
	v.SetDefault("policy.letters_markers", policy.LettersMarkers)
	v.SetDefault("policy.radio_groupings", policy.RadioGroupings)
	v.SetDefault("policy.wrap_text_textarea", policy.WrapTextTextarea)
	v.SetDefault("policy.merged_input_textarea", policy.MergedInputTextarea)
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", c.LogLevel)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if _, err := output.ParseFormat(c.Format); err != nil {
		return err
	}
	return c.Policy.Validate()
}

// Options converts the configuration into conversion options.
func (c *Config) Options() xlsxform.Options {
	format, _ := output.ParseFormat(c.Format)
	return xlsxform.Options{
		Policy:  c.Policy,
		Sheet:   c.Sheet,
		Format:  format,
		Pretty:  c.Pretty,
		Workers: c.Workers,
	}
}
