package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// YAMLProvider implements ConfigProvider for YAML configuration files
type YAMLProvider struct {
	filename string
	config   *ConfigData
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// LoadConfig loads the complete configuration from YAML file. Sections the
// file leaves out keep their defaults.
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	// Load into temporary struct with YAML tags
	var yamlConfig struct {
		Debug   bool        `yaml:"debug,omitempty"`
		Survey  SurveyYAML  `yaml:"survey,omitempty"`
		Storage StorageYAML `yaml:"storage,omitempty"`
		Output  OutputYAML  `yaml:"output,omitempty"`
	}

	err = yaml.UnmarshalStrict(cfgFile, &yamlConfig)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", y.filename, err)
	}

	// Convert to our internal format
	config := Default()
	config.Debug = yamlConfig.Debug
	config.Survey.Metric = yamlConfig.Survey.Metric
	config.Survey.Sheet = yamlConfig.Survey.Sheet
	for header, column := range yamlConfig.Survey.Columns {
		config.Survey.Columns[header] = column
	}

	if yamlConfig.Storage.SQLite != nil {
		config.Storage.SQLite = &SQLiteData{
			Path: yamlConfig.Storage.SQLite.Path,
		}
	}

	if yamlConfig.Output.Format != "" {
		config.Output.Format = yamlConfig.Output.Format
	}

	if err := Validate(config); err != nil {
		return nil, fmt.Errorf("validating %s: %w", y.filename, err)
	}

	y.config = config
	return config, nil
}

// GetSurveyConfig returns survey configuration
func (y *YAMLProvider) GetSurveyConfig() (*SurveyData, error) {
	if y.config == nil {
		_, err := y.LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	return &y.config.Survey, nil
}

// GetStorageConfig returns storage configuration
func (y *YAMLProvider) GetStorageConfig() (*StorageData, error) {
	if y.config == nil {
		_, err := y.LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	return &y.config.Storage, nil
}

// IsReadOnly returns true since YAML files are read-only through this interface
func (y *YAMLProvider) IsReadOnly() bool {
	return true
}

// Close is a no-op for YAML provider
func (y *YAMLProvider) Close() error {
	return nil
}

// YAML-specific structs with proper YAML tags
type SurveyYAML struct {
	Metric  bool              `yaml:"metric,omitempty"`
	Columns map[string]string `yaml:"columns,omitempty"`
	Sheet   string            `yaml:"sheet,omitempty"`
}

type StorageYAML struct {
	SQLite *SQLiteYAML `yaml:"sqlite,omitempty"`
}

type SQLiteYAML struct {
	Path string `yaml:"path"`
}

type OutputYAML struct {
	Format string `yaml:"format,omitempty"`
}
