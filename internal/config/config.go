package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	Countries        []string `mapstructure:"countries" yaml:"countries"`
	YearMin          int      `mapstructure:"year_min" yaml:"year_min"`
	YearMax          int      `mapstructure:"year_max" yaml:"year_max"`
	PieYear          int      `mapstructure:"pie_year" yaml:"pie_year"`
	HeatmapCountries []string `mapstructure:"heatmap_countries" yaml:"heatmap_countries"`
	CorrColumns      []string `mapstructure:"corr_columns" yaml:"corr_columns"`

	// Rendering
	OutputDir     string  `mapstructure:"output_dir" yaml:"output_dir"`
	ImageFormat   string  `mapstructure:"image_format" yaml:"image_format"`
	ImageWidthIn  float64 `mapstructure:"image_width_in" yaml:"image_width_in"`
	ImageHeightIn float64 `mapstructure:"image_height_in" yaml:"image_height_in"`
	Preview       bool    `mapstructure:"preview" yaml:"preview"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// Default values mirror the fixed analysis: five countries, 2015-2020.
var (
	DefaultCountries        = []string{"United States", "United Kingdom", "Canada", "India", "Pakistan"}
	DefaultHeatmapCountries = []string{"United States", "India"}
	DefaultCorrColumns      = []string{"year", "wind_consumption", "solar_consumption", "gdp", "biofuel_consumption"}
)

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".energystat"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.energystat/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := configDir()
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
// Precedence: env > config file (cfgFile or ~/.energystat/config.yaml) > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("ENERGYSTAT")
	v.AutomaticEnv()

	v.SetDefault("countries", DefaultCountries)
	v.SetDefault("year_min", 2015)
	v.SetDefault("year_max", 2020)
	v.SetDefault("pie_year", 2020)
	v.SetDefault("heatmap_countries", DefaultHeatmapCountries)
	v.SetDefault("corr_columns", DefaultCorrColumns)
	v.SetDefault("output_dir", "charts")
	v.SetDefault("image_format", "png")
	v.SetDefault("image_width_in", 10.0)
	v.SetDefault("image_height_in", 6.0)
	v.SetDefault("preview", false)
	v.SetDefault("log_level", "info")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
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

// Validate rejects settings the pipeline cannot run with.
func (c *Global) Validate() error {
	if c.YearMin > c.YearMax {
		return fmt.Errorf("year_min %d is after year_max %d", c.YearMin, c.YearMax)
	}
	if len(c.HeatmapCountries) != 2 {
		return fmt.Errorf("heatmap_countries needs exactly two entries, got %d", len(c.HeatmapCountries))
	}
	if len(c.CorrColumns) == 0 {
		return fmt.Errorf("corr_columns must not be empty")
	}
	return nil
}
