package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/tempstat-cli/internal/utils"
)

// Global configuration structure.
type Global struct {
	// Input
	DataFile   string            `mapstructure:"data_file" yaml:"data_file"`
	ColumnMap  map[string]string `mapstructure:"column_map" yaml:"column_map"`
	Delimiter  string            `mapstructure:"delimiter" yaml:"delimiter"`
	SheetName  string            `mapstructure:"sheet_name" yaml:"sheet_name"`
	DateLayout string            `mapstructure:"date_layout" yaml:"date_layout"`

	// Analysis defaults
	DefaultMetric   string  `mapstructure:"default_metric" yaml:"default_metric"`
	TopN            int     `mapstructure:"top_n" yaml:"top_n"`
	PeriodDays      int     `mapstructure:"period_days" yaml:"period_days"`
	FreezeThreshold float64 `mapstructure:"freeze_threshold" yaml:"freeze_threshold"`
	TrendEpsilon    float64 `mapstructure:"trend_epsilon" yaml:"trend_epsilon"`

	// Output
	Units        string `mapstructure:"units" yaml:"units"`
	OutputFormat string `mapstructure:"output_format" yaml:"output_format"`
}

// Dir is the default configuration directory, ~/.tempstat.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".tempstat"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.tempstat/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (applied by the caller) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("TEMPSTAT")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data_file", "")
	v.SetDefault("column_map", map[string]string{})
	v.SetDefault("delimiter", "")
	v.SetDefault("sheet_name", "")
	v.SetDefault("date_layout", "2006-01-02")
	v.SetDefault("default_metric", "TMAX")
	v.SetDefault("top_n", 10)
	v.SetDefault("period_days", 7)
	v.SetDefault("freeze_threshold", 32.0)
	v.SetDefault("trend_epsilon", 0.01)
	v.SetDefault("units", "°F")
	v.SetDefault("output_format", "text")

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// a missing file is fine: config set creates it
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the values that the analyses cannot recover from.
func (c *Global) Validate() error {
	if c.TopN < 1 {
		return fmt.Errorf("invalid top_n: %d (must be >= 1)", c.TopN)
	}
	if c.PeriodDays < 1 {
		return fmt.Errorf("invalid period_days: %d (must be >= 1)", c.PeriodDays)
	}
	if c.TrendEpsilon < 0 {
		return fmt.Errorf("invalid trend_epsilon: %v (must be >= 0)", c.TrendEpsilon)
	}
	switch c.OutputFormat {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("invalid output_format: %s (use text, json or yaml)", c.OutputFormat)
	}
	if _, err := utils.ParseDelimiter(c.Delimiter); err != nil {
		return err
	}
	return nil
}
