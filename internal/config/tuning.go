// Package config loads runtime tuning for the scan conversion
// pipeline from JSON, with per-field defaults for anything omitted.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// maxFileSize caps config file reads.
const maxFileSize = 1 << 20 // 1MB

// TuningConfig represents the root configuration for conversion
// parameters. All fields are optional pointers so partial configs are
// safe; the Get* methods supply defaults for unset fields.
type TuningConfig struct {
	// Conversion params
	Workers     *int  `json:"workers,omitempty"`      // assembly worker goroutines
	ReturnIndex *int  `json:"return_index,omitempty"` // 0 primary, 1 secondary
	Destagger   *bool `json:"destagger,omitempty"`    // azimuth-align output clouds
	Validate    *bool `json:"validate,omitempty"`     // run the advisory alignment check

	// Recorder params
	RecorderEnabled *bool   `json:"recorder_enabled,omitempty"`
	DatabasePath    *string `json:"database_path,omitempty"`

	// Monitor params
	MonitorListen *string `json:"monitor_listen,omitempty"`
}

// EmptyTuningConfig returns a TuningConfig with all fields unset.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a JSON file. The file is
// validated to ensure it has a .json extension and is under the max
// file size. Fields omitted from the JSON retain their defaults, so
// partial configs are safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// validate checks that the configuration values are valid.
func (c *TuningConfig) validate() error {
	if c.Workers != nil && *c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", *c.Workers)
	}
	if c.ReturnIndex != nil && *c.ReturnIndex != 0 && *c.ReturnIndex != 1 {
		return fmt.Errorf("return_index must be 0 or 1, got %d", *c.ReturnIndex)
	}
	return nil
}

// GetWorkers returns the worker count or the default (sequential).
func (c *TuningConfig) GetWorkers() int {
	if c.Workers == nil {
		return 1
	}
	return *c.Workers
}

// GetReturnIndex returns the return selection or the default (primary).
func (c *TuningConfig) GetReturnIndex() int {
	if c.ReturnIndex == nil {
		return 0
	}
	return *c.ReturnIndex
}

// GetDestagger returns the destagger toggle or the default (on).
func (c *TuningConfig) GetDestagger() bool {
	if c.Destagger == nil {
		return true
	}
	return *c.Destagger
}

// GetValidate returns the validator toggle or the default (off).
func (c *TuningConfig) GetValidate() bool {
	if c.Validate == nil {
		return false
	}
	return *c.Validate
}

// GetRecorderEnabled returns the recorder toggle or the default (off).
func (c *TuningConfig) GetRecorderEnabled() bool {
	if c.RecorderEnabled == nil {
		return false
	}
	return *c.RecorderEnabled
}

// GetDatabasePath returns the recorder database path or the default.
func (c *TuningConfig) GetDatabasePath() string {
	if c.DatabasePath == nil || *c.DatabasePath == "" {
		return "scancloud.db"
	}
	return *c.DatabasePath
}

// GetMonitorListen returns the monitor listen address or the default.
func (c *TuningConfig) GetMonitorListen() string {
	if c.MonitorListen == nil || *c.MonitorListen == "" {
		return ":8081"
	}
	return *c.MonitorListen
}
