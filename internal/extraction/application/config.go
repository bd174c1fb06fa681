package application

import (
	"errors"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	extraction "lineboard/internal/extraction/domain"
)

// LayoutConfig positions the production block inside a sheet.
type LayoutConfig struct {
	HeaderRowUpper int `yaml:"header_row_upper"`
	HeaderRowLower int `yaml:"header_row_lower"`
	DataStartRow   int `yaml:"data_start_row"`
	DataRows       int `yaml:"data_rows"`
	DataCols       int `yaml:"data_cols"`
}

// DowntimeConfig positions the downtime block.
type DowntimeConfig struct {
	Marker  string `yaml:"marker"`
	CodeMin int    `yaml:"code_min"`
	CodeMax int    `yaml:"code_max"`
}

// Config defines workbook extraction configuration.
type Config struct {
	Layout   LayoutConfig   `yaml:"layout"`
	Downtime DowntimeConfig `yaml:"downtime"`
	Workers  int            `yaml:"workers"`
}

// LoadConfig loads config from yaml or env. Defaults match the daily shift
// workbook template that the plant uploads today.
func LoadConfig() (Config, error) {
	layout := extraction.DefaultLayout()
	downtime := extraction.DefaultDowntimeLayout()
	cfg := Config{
		Layout: LayoutConfig{
			HeaderRowUpper: layout.HeaderRowUpper,
			HeaderRowLower: layout.HeaderRowLower,
			DataStartRow:   layout.DataStartRow,
			DataRows:       layout.DataRows,
			DataCols:       layout.DataCols,
		},
		Downtime: DowntimeConfig{
			Marker:  downtime.MarkerPrefix,
			CodeMin: downtime.CodeMin,
			CodeMax: downtime.CodeMax,
		},
		Workers: getenvIntDefault("LINEBOARD_WORKERS", 4),
	}

	if path := os.Getenv("LINEBOARD_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	if cfg.Layout.DataRows <= 0 || cfg.Layout.DataCols <= 0 {
		return cfg, errors.New("extraction: data block must have positive dimensions")
	}
	if cfg.Downtime.Marker == "" {
		return cfg, errors.New("extraction: downtime marker required")
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return cfg, nil
}

// ProductionLayout converts the config into the domain layout.
func (c Config) ProductionLayout() extraction.Layout {
	return extraction.Layout{
		HeaderRowUpper: c.Layout.HeaderRowUpper,
		HeaderRowLower: c.Layout.HeaderRowLower,
		DataStartRow:   c.Layout.DataStartRow,
		DataRows:       c.Layout.DataRows,
		DataCols:       c.Layout.DataCols,
	}
}

// DowntimeLayout converts the config into the domain layout.
func (c Config) DowntimeLayout() extraction.DowntimeLayout {
	return extraction.DowntimeLayout{
		MarkerPrefix: c.Downtime.Marker,
		CodeMin:      c.Downtime.CodeMin,
		CodeMax:      c.Downtime.CodeMax,
	}
}

func getenvIntDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
