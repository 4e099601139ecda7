package docmgr

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config contains all configuration options for document managers
type Config struct {
	// LogLevel controls the verbosity of logging (debug, info, warn, error, off)
	LogLevel string
	// TableStyle is the style name applied to tables built from data frames
	TableStyle string
	// HeaderFill is the RRGGBB shading of data frame header rows
	HeaderFill string
	// StatusColumn names the column whose cells are shaded by status value
	StatusColumn string
	// StrictStatusColumn requires an exact, case-sensitive status column name
	StrictStatusColumn bool
	// StatusColors maps status values to RRGGBB fills
	StatusColors map[string]string
	// DefaultStatusFill shades status cells with unrecognized values
	DefaultStatusFill string
}

var (
	globalConfig      *Config
	globalConfigMutex sync.RWMutex
	configOnce        sync.Once
)

func init() {
	// Initialize global config from environment on first use
	configOnce.Do(func() {
		globalConfig = ConfigFromEnvironment()
	})
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		LogLevel:     "info",
		TableStyle:   "Table Grid",
		HeaderFill:   "B7DEE8",
		StatusColumn: "Status",
		StatusColors: map[string]string{
			"Red":   "FF0000",
			"Amber": "FFA500",
			"Green": "00FF00",
		},
		DefaultStatusFill: "FFFFFF",
	}
}

// ConfigFromEnvironment creates a configuration from environment variables
func ConfigFromEnvironment() *Config {
	config := DefaultConfig()
	applyEnvironment(config)
	return config
}

func applyEnvironment(config *Config) {
	// DOCMGR_LOG_LEVEL
	if val := os.Getenv("DOCMGR_LOG_LEVEL"); val != "" {
		config.LogLevel = val
	}

	// DOCMGR_TABLE_STYLE
	if val := os.Getenv("DOCMGR_TABLE_STYLE"); val != "" {
		config.TableStyle = val
	}

	// DOCMGR_HEADER_FILL
	if val := os.Getenv("DOCMGR_HEADER_FILL"); val != "" {
		config.HeaderFill = strings.ToUpper(val)
	}

	// DOCMGR_STATUS_COLUMN
	if val := os.Getenv("DOCMGR_STATUS_COLUMN"); val != "" {
		config.StatusColumn = val
	}

	// DOCMGR_STRICT_STATUS_COLUMN
	if val := os.Getenv("DOCMGR_STRICT_STATUS_COLUMN"); val != "" {
		config.StrictStatusColumn = parseBool(val)
	}
}

// Format represents a configuration or job file format
type Format int

const (
	// FormatYAML represents YAML format
	FormatYAML Format = iota
	// FormatTOML represents TOML format
	FormatTOML
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return "unknown"
	}
}

// DetectFormat picks the file format from the extension, defaulting to YAML
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	default:
		return FormatYAML
	}
}

// Unmarshal decodes YAML or TOML content into v. Unknown keys are rejected.
func Unmarshal(data []byte, format Format, v interface{}) error {
	switch format {
	case FormatTOML:
		meta, err := toml.Decode(string(data), v)
		if err != nil {
			return fmt.Errorf("TOML parse error: %w", err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("TOML parse error: unknown key %q", undecoded[0].String())
		}
	case FormatYAML:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(v); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("YAML parse error: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
	return nil
}

// fileConfig mirrors Config for files; nil fields keep the current value
type fileConfig struct {
	LogLevel           *string           `yaml:"log_level" toml:"log_level"`
	TableStyle         *string           `yaml:"table_style" toml:"table_style"`
	HeaderFill         *string           `yaml:"header_fill" toml:"header_fill"`
	StatusColumn       *string           `yaml:"status_column" toml:"status_column"`
	StrictStatusColumn *bool             `yaml:"strict_status_column" toml:"strict_status_column"`
	StatusColors       map[string]string `yaml:"status_colors" toml:"status_colors"`
	DefaultStatusFill  *string           `yaml:"default_status_fill" toml:"default_status_fill"`
}

// LoadConfigFile reads a YAML or TOML configuration file. Values from the
// file override the defaults and environment variables override the file.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewDocumentError("config load", path, err)
	}

	var file fileConfig
	if err := Unmarshal(data, DetectFormat(path), &file); err != nil {
		return nil, NewDocumentError("config load", path, err)
	}

	config := DefaultConfig()
	if file.LogLevel != nil {
		config.LogLevel = *file.LogLevel
	}
	if file.TableStyle != nil {
		config.TableStyle = *file.TableStyle
	}
	if file.HeaderFill != nil {
		config.HeaderFill = strings.ToUpper(*file.HeaderFill)
	}
	if file.StatusColumn != nil {
		config.StatusColumn = *file.StatusColumn
	}
	if file.StrictStatusColumn != nil {
		config.StrictStatusColumn = *file.StrictStatusColumn
	}
	if file.StatusColors != nil {
		config.StatusColors = make(map[string]string, len(file.StatusColors))
		for status, fill := range file.StatusColors {
			config.StatusColors[status] = strings.ToUpper(fill)
		}
	}
	if file.DefaultStatusFill != nil {
		config.DefaultStatusFill = strings.ToUpper(*file.DefaultStatusFill)
	}
	applyEnvironment(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	verr := &ValidationError{}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"off":   true,
	}
	if !validLogLevels[c.LogLevel] {
		verr.Add("LogLevel", "invalid log level: %s", c.LogLevel)
	}

	if strings.TrimSpace(c.TableStyle) == "" {
		verr.Add("TableStyle", "table style cannot be empty")
	}
	if strings.TrimSpace(c.StatusColumn) == "" {
		verr.Add("StatusColumn", "status column cannot be empty")
	}
	if !isHexColor(c.HeaderFill) {
		verr.Add("HeaderFill", "%q is not an RRGGBB color", c.HeaderFill)
	}
	if !isHexColor(c.DefaultStatusFill) {
		verr.Add("DefaultStatusFill", "%q is not an RRGGBB color", c.DefaultStatusFill)
	}
	for status, fill := range c.StatusColors {
		if !isHexColor(fill) {
			verr.Add("StatusColors."+status, "%q is not an RRGGBB color", fill)
		}
	}

	return verr.Err()
}

// Clone returns a deep copy of the configuration
func (c *Config) Clone() *Config {
	out := *c
	if c.StatusColors != nil {
		out.StatusColors = make(map[string]string, len(c.StatusColors))
		for k, v := range c.StatusColors {
			out.StatusColors[k] = v
		}
	}
	return &out
}

// GetGlobalConfig returns the global configuration
func GetGlobalConfig() *Config {
	globalConfigMutex.RLock()
	defer globalConfigMutex.RUnlock()

	if globalConfig == nil {
		return DefaultConfig()
	}

	// Return a copy to prevent modification
	return globalConfig.Clone()
}

// SetGlobalConfig sets the global configuration
func SetGlobalConfig(config *Config) {
	globalConfigMutex.Lock()
	globalConfig = config
	globalConfigMutex.Unlock()

	// Update logger based on new config (outside the lock to avoid deadlock)
	UpdateLoggerFromConfig()
}

// parseBool parses a boolean value from a string
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}

func isHexColor(s string) bool {
	if len(s) != 6 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'A' && r <= 'F', r >= 'a' && r <= 'f':
		default:
			return false
		}
	}
	return true
}
