package config

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/estafette/estafette-build-time-analyzer/services/analysis"
	"github.com/rs/zerolog/log"
	yaml "gopkg.in/yaml.v2"
)

const (
	// DefaultLogFile is the build log read when nothing else is configured
	DefaultLogFile = "buildtimes"
	// DefaultTimeFormat is the Go layout for MM/DD/YY HH:MM:SS timestamps
	DefaultTimeFormat = analysis.DefaultTimeFormat
)

// AnalyzerConfig is used to configure where the build log lives and how it's interpreted
type AnalyzerConfig struct {
	LogFile    string `yaml:"logFile,omitempty"`
	TimeFormat string `yaml:"timeFormat,omitempty"`
	Filter     string `yaml:"filter,omitempty"`
}

// ReadConfigFromFile reads the config file at configPath; a missing file results in the defaults
func ReadConfigFromFile(configPath string) (*AnalyzerConfig, error) {

	config := &AnalyzerConfig{}

	if configPath != "" {
		data, err := ioutil.ReadFile(configPath)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("Reading config file %v failed: %w", configPath, err)
		}
		if err == nil {
			log.Debug().Msgf("Reading config file %v", configPath)
			if err = yaml.UnmarshalStrict(data, config); err != nil {
				return nil, fmt.Errorf("Unmarshalling config file %v failed: %w", configPath, err)
			}
		}
	}

	config.SetDefaults()

	return config, config.Validate()
}

// Override replaces values with the non-empty values passed on the command line
func (c *AnalyzerConfig) Override(logFile, timeFormat, filter string) {
	if logFile != "" {
		c.LogFile = logFile
	}
	if timeFormat != "" {
		c.TimeFormat = timeFormat
	}
	if filter != "" {
		c.Filter = filter
	}
}

// SetDefaults fills in the values left empty
func (c *AnalyzerConfig) SetDefaults() {
	if c.LogFile == "" {
		c.LogFile = DefaultLogFile
	}
	if c.TimeFormat == "" {
		c.TimeFormat = DefaultTimeFormat
	}
}

// Validate checks whether the config is usable
func (c *AnalyzerConfig) Validate() error {
	if c.LogFile == "" {
		return fmt.Errorf("Log file is empty")
	}
	if c.TimeFormat == "" {
		return fmt.Errorf("Time format is empty")
	}
	return nil
}
