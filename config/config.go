package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DataPath string `envconfig:"DATA_PATH" default:"data/data_saudi_used_cars.csv"`
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
	Language string `envconfig:"LANG_DEFAULT" default:"en"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	PreviewRows    int `envconfig:"PREVIEW_ROWS" default:"5"`
	TopN           int `envconfig:"TOP_N" default:"10"`
	DefaultYearMin int `envconfig:"DEFAULT_YEAR_MIN" default:"2010"`

	OutputDir     string  `envconfig:"OUTPUT_DIR" default:"./output"`
	ChartWidthIn  float64 `envconfig:"CHART_WIDTH_IN" default:"10"`
	ChartHeightIn float64 `envconfig:"CHART_HEIGHT_IN" default:"6"`
}

// Load reads the .env file (if any) and returns a populated Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges that envconfig cannot express.
func (c *Config) Validate() error {
	if c.DataPath == "" {
		return fmt.Errorf("config: DATA_PATH must not be empty")
	}
	if c.PreviewRows < 1 {
		return fmt.Errorf("config: PREVIEW_ROWS must be positive, got %d", c.PreviewRows)
	}
	if c.TopN < 1 {
		return fmt.Errorf("config: TOP_N must be positive, got %d", c.TopN)
	}
	if c.ChartWidthIn <= 0 || c.ChartHeightIn <= 0 {
		return fmt.Errorf("config: chart size must be positive, got %gx%g", c.ChartWidthIn, c.ChartHeightIn)
	}
	switch c.Language {
	case "en", "id":
	default:
		return fmt.Errorf("config: LANG_DEFAULT must be en or id, got %q", c.Language)
	}
	return nil
}
