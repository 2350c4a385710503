package config

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	// Get specific configuration sections
	GetSurveyConfig() (*SurveyData, error)
	GetStorageConfig() (*StorageData, error)

	IsReadOnly() bool
	Close() error
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Debug   bool        `json:"debug,omitempty"`
	Survey  SurveyData  `json:"survey"`
	Storage StorageData `json:"storage,omitempty"`
	Output  OutputData  `json:"output,omitempty"`
}

// SurveyData describes how survey files are read and interpreted
type SurveyData struct {
	// Metric selects meters over feet. It only changes unit labels.
	Metric bool `json:"metric,omitempty"`

	// Columns maps a survey file header to a standard column name
	Columns map[string]string `json:"columns,omitempty" validate:"dive,keys,required,endkeys,required"`

	// Sheet is the worksheet read from .xlsx surveys; the first sheet when empty
	Sheet string `json:"sheet,omitempty"`
}

// StorageData holds the configuration for the profile store
type StorageData struct {
	SQLite *SQLiteData `json:"sqlite,omitempty"`
}

type SQLiteData struct {
	Path string `json:"path" validate:"required"`
}

// OutputData controls how command results are rendered
type OutputData struct {
	Format string `json:"format,omitempty" validate:"omitempty,oneof=table json csv"`
}

// DefaultColumns relates common survey headers to the standard column names
var DefaultColumns = map[string]string{
	"Easting":  "exes",
	"Northing": "whys",
}

// Default returns the configuration used when no file is given
func Default() *ConfigData {
	columns := make(map[string]string, len(DefaultColumns))
	for k, v := range DefaultColumns {
		columns[k] = v
	}

	return &ConfigData{
		Survey: SurveyData{
			Columns: columns,
		},
		Storage: StorageData{
			SQLite: &SQLiteData{Path: "streamprofile.db"},
		},
		Output: OutputData{Format: "table"},
	}
}
