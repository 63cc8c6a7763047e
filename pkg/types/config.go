package types

import "time"

// AIConfig holds settings for calls to the text-generation API.
type AIConfig struct {
	// Model is the AI model identifier (e.g. "claude-3-5-sonnet-latest").
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// APIKey is the authentication key for the AI API. It is resolved by the
	// CLI and passed in explicitly; it is never read from process state here.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// MaxTokens caps the length of the completion (default 2000).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens" mapstructure:"max_tokens"`

	// Temperature controls sampling randomness (default 0.7).
	Temperature float64 `json:"temperature" yaml:"temperature" mapstructure:"temperature"`

	// Timeout bounds a single HTTP request to the API.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// BaseURL overrides the API endpoint. Empty means the SDK default.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty" mapstructure:"base_url"`
}

// RecordFormat selects the serialization of the structured record file.
type RecordFormat string

const (
	FormatJSON RecordFormat = "json"
	FormatYAML RecordFormat = "yaml"
)

// Ext returns the file extension, including the dot, for the format.
func (f RecordFormat) Ext() string {
	if f == FormatYAML {
		return ".yaml"
	}
	return ".json"
}

// OutputConfig holds settings for writing script files.
type OutputConfig struct {
	// Dir is where derived filenames are placed (default ".").
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// Format selects json or yaml for the structured record.
	Format RecordFormat `json:"format" yaml:"format" mapstructure:"format"`
}

// LibraryConfig holds settings for the local catalog of generated scripts.
type LibraryConfig struct {
	// Enabled controls whether saved scripts are recorded.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Dir contains library.db.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// MaxResults is the default number of entries returned by List (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// LogConfig holds diagnostic logging settings.
type LogConfig struct {
	// Level is a logrus level name (default "info").
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is "text" or "json".
	Format string `json:"format" yaml:"format" mapstructure:"format"`

	// File, when set, receives log output with size-based rotation.
	File string `json:"file,omitempty" yaml:"file,omitempty" mapstructure:"file"`

	// MaxSizeMB is the rotation threshold for File (default 10).
	MaxSizeMB int `json:"max_size_mb" yaml:"max_size_mb" mapstructure:"max_size_mb"`

	// MaxBackups is the number of rotated files kept (default 3).
	MaxBackups int `json:"max_backups" yaml:"max_backups" mapstructure:"max_backups"`
}

// Config groups all settings for a scriptgen run.
type Config struct {
	AI      AIConfig      `json:"ai" yaml:"ai" mapstructure:"ai"`
	Output  OutputConfig  `json:"output" yaml:"output" mapstructure:"output"`
	Library LibraryConfig `json:"library" yaml:"library" mapstructure:"library"`
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
}
