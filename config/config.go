// Package config holds the cognitive pipeline's configuration surface
// (spec.md §6). Parsing a config file from disk is an outer-surface
// product feature and out of scope; Config is still YAML-decodable so a
// local dev file can be loaded ambiently by cmd/cogkernel.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config enumerates every option the core recognizes, with the defaults
// from spec.md §6.
type Config struct {
	MaxWindows               int           `yaml:"max_windows"`
	MinConnectionWeight      float64       `yaml:"min_connection_weight"`
	CacheSize                int           `yaml:"cache_size"`
	MaxChainDepth            int           `yaml:"max_chain_depth"`
	ValidateSalience         bool          `yaml:"validate_salience"`
	MinFocusDuration         time.Duration `yaml:"min_focus_duration"`
	ForgetThreshold          float64       `yaml:"forget_threshold"`
	ConnectionBoost          float64       `yaml:"connection_boost"`
	ConsolidationThreshold   float64       `yaml:"consolidation_threshold"`
	ConsolidationConcurrency int           `yaml:"consolidation_concurrency"`
}

// NewDefaultConfig returns the configuration surface's documented defaults.
func NewDefaultConfig() Config {
	return Config{
		MaxWindows:               9,
		MinConnectionWeight:      0.001,
		CacheSize:                100,
		MaxChainDepth:            50,
		ValidateSalience:         true,
		MinFocusDuration:         100 * time.Millisecond,
		ForgetThreshold:          0.1,
		ConnectionBoost:          1.5,
		ConsolidationThreshold:   0.7,
		ConsolidationConcurrency: 4,
	}
}

// Load reads a YAML config file from path, starting from the documented
// defaults so an incomplete file only overrides what it sets.
func Load(path string) (Config, error) {
	cfg := NewDefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
