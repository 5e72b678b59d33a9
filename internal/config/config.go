package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config is the complete exporter configuration.
type Config struct {
	Graph   GraphConfig   `yaml:"graph"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// GraphConfig locates the workbook on SharePoint and carries the Microsoft
// Graph app credentials. The envconfig names match the secrets the scheduled
// job has always been provisioned with.
type GraphConfig struct {
	TenantID     string `yaml:"tenant_id" envconfig:"TENANT_ID" validate:"required"`
	ClientID     string `yaml:"client_id" envconfig:"CLIENT_ID" validate:"required"`
	ClientSecret string `yaml:"client_secret" envconfig:"CLIENT_SECRET" validate:"required"`

	SiteHostname string `yaml:"site_hostname" envconfig:"SP_SITE_HOSTNAME" validate:"required,hostname"`
	SitePath     string `yaml:"site_path" envconfig:"SP_SITE_PATH" validate:"required,startswith=/"`
	WorkbookPath string `yaml:"workbook_path" envconfig:"SP_XLSX_PATH" validate:"required"`
	TableName    string `yaml:"table_name" envconfig:"SP_TABLE_NAME" validate:"required"`

	Timeout           time.Duration `yaml:"timeout" envconfig:"GRAPH_TIMEOUT" validate:"gt=0"`
	RequestsPerSecond float64       `yaml:"requests_per_second" envconfig:"GRAPH_RPS" validate:"gt=0"`
}

// ExportConfig controls the published artifacts and the freshness gate.
type ExportConfig struct {
	OutDir  string `yaml:"out_dir" envconfig:"EXPORT_OUT_DIR" validate:"required"`
	CSVFile string `yaml:"csv_file" envconfig:"EXPORT_CSV_FILE" validate:"required"`
	XMLFile string `yaml:"xml_file" envconfig:"EXPORT_XML_FILE" validate:"required"`

	// MaxAge is the run-gate threshold: artifacts younger than this are
	// left alone and the run becomes a no-op.
	MaxAge time.Duration `yaml:"max_age" envconfig:"EXPORT_MAX_AGE" validate:"gte=0"`

	// UTCOffsetHours fixes the updatedAt timezone so the published
	// timestamp never depends on where the job happens to run.
	UTCOffsetHours int `yaml:"utc_offset_hours" envconfig:"EXPORT_UTC_OFFSET_HOURS" validate:"gte=-12,lte=14"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"LOG_FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"LOG_OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"LOG_FILE_PATH"`
}

// Load builds the configuration: defaults, then an optional YAML file
// overlay, then environment variables (highest precedence), then
// validation. The pipeline secrets (TENANT_ID, CLIENT_ID, ...) arrive
// through the environment; the YAML file only carries non-secret tuning.
func Load() (*Config, error) {
	cfg := Default()

	if path := findConfigFile(); path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Default returns the configuration defaults. Credentials have no default
// and must come from the environment.
func Default() *Config {
	return &Config{
		Graph: GraphConfig{
			Timeout:           40 * time.Second,
			RequestsPerSecond: 4,
		},
		Export: ExportConfig{
			OutDir:         "docs",
			CSVFile:        "public_price_stock.csv",
			XMLFile:        "public_price_stock.xml",
			MaxAge:         72 * time.Hour,
			UTCOffsetHours: 5,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/exporter.log",
		},
	}
}

// CSVPath returns the full path of the CSV artifact.
func (c ExportConfig) CSVPath() string {
	return filepath.Join(c.OutDir, c.CSVFile)
}

// XMLPath returns the full path of the XML artifact.
func (c ExportConfig) XMLPath() string {
	return filepath.Join(c.OutDir, c.XMLFile)
}

// Location returns the fixed publication timezone.
func (c ExportConfig) Location() *time.Location {
	return time.FixedZone(fmt.Sprintf("UTC%+03d", c.UTCOffsetHours), c.UTCOffsetHours*60*60)
}

// loadFromFile overlays configuration from a YAML file. Only keys present
// in the file are touched.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// findConfigFile returns the first config file present in the common
// locations, or "" to run on env vars and defaults only.
func findConfigFile() string {
	locations := []string{
		"exporter.yaml",
		"configs/exporter.yaml",
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}
	return ""
}
