package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brettbedarf/vfstree"
	"github.com/brettbedarf/vfstree/internal/util"
	"gopkg.in/yaml.v3"
)

// CLI/config file verbosity values. Higher is chattier.
const (
	ErrorVerbose = iota + 1
	WarnVerbose
	InfoVerbose
	DebugVerbose
	TraceVerbose
)

// Default configuration constants. See [Config] for field descriptions.
const (
	DefaultLogLvl           = util.InfoLevel
	DefaultRootName         = vfstree.DefaultRootName
	DefaultContentType      = vfstree.DefaultContentType
	DefaultIDGenerator      = "short"
	DefaultIDSequencePrefix = "node"
	DefaultHistoryLimit     = 100
	DefaultFsName           = "vfstree"
	DefaultName             = "vfstree"
	DefaultAttrTimeout      = 1.0
	DefaultEntryTimeout     = 1.0
	DefaultMountDebug       = false
)

// Config contains runtime configuration values for the tree engine and its outer layers.
type Config struct {
	MountOptions
	LogLvl             util.LogLevel // Internal log level (Default info)
	RootName           string        // Name of freshly created roots (Default "root")
	DefaultContentType string        // Content type for files created without one (Default "text/plain")
	IDGenerator        string        // Registered identifier generator name (Default "short")
	IDSequencePrefix   string        // Prefix used by the "sequence" generator (Default "node")
	HistoryLimit       int           // Max undo steps kept per workspace; <= 0 means unbounded (Default 100)
	AttrTimeout        float64       // FUSE attribute cache timeout in seconds (Default 1.0)
	EntryTimeout       float64       // FUSE entry cache timeout in seconds (Default 1.0)
}

// ConfigOverride uses pointer fields to distinguish between unset and zero values
// when loading partial configuration. See [Config] for field descriptions.
//
// NOTE: LogLvl is a verbosity between 1 (error) and 5 (trace) like the CLI flag
type ConfigOverride struct {
	LogLvl             *int     `yaml:"verbose,omitempty" json:"verbose,omitempty"`
	RootName           *string  `yaml:"root_name,omitempty" json:"root_name,omitempty"`
	DefaultContentType *string  `yaml:"default_content_type,omitempty" json:"default_content_type,omitempty"`
	IDGenerator        *string  `yaml:"id_generator,omitempty" json:"id_generator,omitempty"`
	IDSequencePrefix   *string  `yaml:"id_sequence_prefix,omitempty" json:"id_sequence_prefix,omitempty"`
	HistoryLimit       *int     `yaml:"history_limit,omitempty" json:"history_limit,omitempty"`
	AttrTimeout        *float64 `yaml:"attr_timeout,omitempty" json:"attr_timeout,omitempty"`
	EntryTimeout       *float64 `yaml:"entry_timeout,omitempty" json:"entry_timeout,omitempty"`
	Debug              *bool    `yaml:"mount_debug,omitempty" json:"mount_debug,omitempty"`
	FsName             *string  `yaml:"fs_name,omitempty" json:"fs_name,omitempty"`
	Name               *string  `yaml:"name,omitempty" json:"name,omitempty"`
}

// NewDefaultConfig creates a new Config with all default values.
func NewDefaultConfig() *Config {
	return &Config{
		MountOptions: MountOptions{
			Debug:  DefaultMountDebug,
			FsName: DefaultFsName,
			Name:   DefaultName,
		},
		LogLvl:             DefaultLogLvl,
		RootName:           DefaultRootName,
		DefaultContentType: DefaultContentType,
		IDGenerator:        DefaultIDGenerator,
		IDSequencePrefix:   DefaultIDSequencePrefix,
		HistoryLimit:       DefaultHistoryLimit,
		AttrTimeout:        DefaultAttrTimeout,
		EntryTimeout:       DefaultEntryTimeout,
	}
}

// NewConfig creates a default Config with override merged on top. A nil
// override yields the defaults.
func NewConfig(override *ConfigOverride) *Config {
	cfg := NewDefaultConfig()
	if override != nil {
		cfg.Merge(override)
	}
	return cfg
}

// Merge applies non-nil values from override onto this Config.
// This allows partial configuration updates while preserving existing values.
func (c *Config) Merge(override *ConfigOverride) {
	if override.LogLvl != nil {
		c.LogLvl = VerboseToLogLevel(*override.LogLvl)
	}
	if override.RootName != nil {
		c.RootName = *override.RootName
	}
	if override.DefaultContentType != nil {
		c.DefaultContentType = *override.DefaultContentType
	}
	if override.IDGenerator != nil {
		c.IDGenerator = *override.IDGenerator
	}
	if override.IDSequencePrefix != nil {
		c.IDSequencePrefix = *override.IDSequencePrefix
	}
	if override.HistoryLimit != nil {
		c.HistoryLimit = *override.HistoryLimit
	}
	if override.AttrTimeout != nil {
		c.AttrTimeout = *override.AttrTimeout
	}
	if override.EntryTimeout != nil {
		c.EntryTimeout = *override.EntryTimeout
	}
	if override.Debug != nil {
		c.Debug = *override.Debug
	}
	if override.FsName != nil {
		c.FsName = *override.FsName
	}
	if override.Name != nil {
		c.Name = *override.Name
	}
}

// VerboseToLogLevel maps a 1 (error) to 5 (trace) verbosity onto [util.LogLevel].
// Out of range values are clamped.
func VerboseToLogLevel(verbose int) util.LogLevel {
	verbose = max(ErrorVerbose, min(verbose, TraceVerbose))
	logLvls := [5]util.LogLevel{util.ErrorLevel, util.WarnLevel, util.InfoLevel, util.DebugLevel, util.TraceLevel}
	return logLvls[verbose-1]
}

// LoadConfigOverrideFile loads configuration overrides from a file without merging.
// Supports both YAML (.yaml, .yml) and JSON (.json) formats.
func LoadConfigOverrideFile(path string) (*ConfigOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override ConfigOverride

	// Determine format by file extension
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", path)
	}

	return &override, nil
}

// NewConfigFromFile creates a new Config by merging file overrides with defaults.
// This is a convenience function that combines NewDefaultConfig, LoadConfigOverrideFile, and Merge.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	override, err := LoadConfigOverrideFile(path)
	if err != nil {
		return nil, err
	}
	cfg.Merge(override)
	return cfg, nil
}
