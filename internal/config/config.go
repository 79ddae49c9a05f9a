// Package config provides configuration management for the reasoner.
//
// Configuration can be loaded from multiple sources (in order of precedence):
// 1. Environment variables (highest priority)
// 2. Configuration file (JSON or YAML)
// 3. Default values (lowest priority)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	json "github.com/segmentio/encoding/json"
	"gopkg.in/yaml.v3"
)

// Config is the complete reasoner configuration.
type Config struct {
	Reasoner ReasonerConfig `json:"reasoner" yaml:"reasoner"`
	Logging  LoggingConfig  `json:"logging" yaml:"logging"`
}

// ReasonerConfig carries every tuning knob enumerated in spec.md §6, plus
// the capacity/worker defaults spec.md §3.5 and §5 name without assigning
// a config key of their own.
type ReasonerConfig struct {
	// IntervalExpBase and IntervalMax define the procedural reasoner's
	// exponential interval table (§3.6, §6).
	IntervalExpBase float64 `json:"interval_exp_base" yaml:"interval_exp_base"`
	IntervalMax     int     `json:"interval_max" yaml:"interval_max"`

	// PerceptWindow bounds how many recent trace entries anticipation
	// maintenance and decision making consider each tick (§4.6.A, §4.6.E).
	PerceptWindow int `json:"percept_window" yaml:"percept_window"`

	// DecisionThreshold is the minimum goal expectation that triggers a
	// deliberate operator invocation instead of babbling (§4.6.E).
	DecisionThreshold float64 `json:"decision_threshold" yaml:"decision_threshold"`

	// NMaxEvidence is loaded and validated (§6) but no component of the
	// reasoner reads it; evidence stamps are capped by types.DefaultStampCap.
	NMaxEvidence int `json:"n_max_evidence" yaml:"n_max_evidence"`

	// PerceptionSamplesPerStep is how many candidate rules perception
	// sampling attempts to construct per tick (§4.6.C).
	PerceptionSamplesPerStep int `json:"perception_samples_per_step" yaml:"perception_samples_per_step"`

	// EnableBabbling toggles exploratory operator invocation when no goal
	// clears DecisionThreshold (§4.6.E).
	EnableBabbling bool `json:"enable_babbling" yaml:"enable_babbling"`

	// NOpsMax and MultiOpProbability govern multi-operator candidate rules
	// (§4.6.C).
	NOpsMax            int     `json:"n_ops_max" yaml:"n_ops_max"`
	MultiOpProbability float64 `json:"multi_op_probability" yaml:"multi_op_probability"`

	// NConcepts bounds concept memory (§3.5, §4.4).
	NConcepts int `json:"n_concepts" yaml:"n_concepts"`

	// KBeliefs bounds each concept's belief table (§3.5).
	KBeliefs int `json:"k_beliefs" yaml:"k_beliefs"`

	// StorageWorkerChannelDepth and StorageWorkerCount size the
	// asynchronous belief-revision pipeline (§5).
	StorageWorkerChannelDepth int `json:"storage_worker_channel_depth" yaml:"storage_worker_channel_depth"`
	StorageWorkerCount        int `json:"storage_worker_count" yaml:"storage_worker_count"`

	// Verbosity gates obslog output (§6, §7).
	Verbosity int `json:"verbosity" yaml:"verbosity"`
}

// LoggingConfig contains logging configuration. Its fields are loaded and
// validated, but the obslog logger that cmd/reasoner builds is gated by
// ReasonerConfig.Verbosity alone and does not read them.
type LoggingConfig struct {
	// Level sets the logging level (debug, info, warn, error).
	Level string `json:"level" yaml:"level"`

	// Format sets the log format (text, json).
	Format string `json:"format" yaml:"format"`

	// EnableTimestamps adds timestamps to log entries.
	EnableTimestamps bool `json:"enable_timestamps" yaml:"enable_timestamps"`
}

// Default returns the spec.md §6 default configuration.
func Default() *Config {
	return &Config{
		Reasoner: ReasonerConfig{
			IntervalExpBase:           1.3,
			IntervalMax:               20,
			PerceptWindow:             2,
			DecisionThreshold:         0.58,
			NMaxEvidence:              5000,
			PerceptionSamplesPerStep:  4,
			EnableBabbling:            true,
			NOpsMax:                   1,
			MultiOpProbability:        0.2,
			NConcepts:                 1000,
			KBeliefs:                  18,
			StorageWorkerChannelDepth: 4,
			StorageWorkerCount:        2,
			Verbosity:                 0,
		},
		Logging: LoggingConfig{
			Level:            "info",
			Format:           "text",
			EnableTimestamps: true,
		},
	}
}

// Load loads configuration from environment variables and applies defaults.
func Load() (*Config, error) {
	cfg := Default()

	if err := cfg.loadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a JSON or YAML file, sniffed by
// extension, then overrides with environment variables.
func LoadFromFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config file: %w", err)
		}
	}

	if err := cfg.loadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadFromEnv loads configuration from environment variables following
// the pattern NARS_<SECTION>_<KEY>, e.g. NARS_REASONER_DECISION_THRESHOLD,
// NARS_LOGGING_LEVEL.
func (c *Config) loadFromEnv() error {
	if v := os.Getenv("NARS_REASONER_INTERVAL_EXP_BASE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Reasoner.IntervalExpBase = f
		}
	}
	if v := os.Getenv("NARS_REASONER_INTERVAL_MAX"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Reasoner.IntervalMax = n
		}
	}
	if v := os.Getenv("NARS_REASONER_PERCEPT_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Reasoner.PerceptWindow = n
		}
	}
	if v := os.Getenv("NARS_REASONER_DECISION_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Reasoner.DecisionThreshold = f
		}
	}
	if v := os.Getenv("NARS_REASONER_N_MAX_EVIDENCE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Reasoner.NMaxEvidence = n
		}
	}
	if v := os.Getenv("NARS_REASONER_PERCEPTION_SAMPLES_PER_STEP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Reasoner.PerceptionSamplesPerStep = n
		}
	}
	if v := os.Getenv("NARS_REASONER_ENABLE_BABBLING"); v != "" {
		c.Reasoner.EnableBabbling = parseBool(v)
	}
	if v := os.Getenv("NARS_REASONER_N_OPS_MAX"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Reasoner.NOpsMax = n
		}
	}
	if v := os.Getenv("NARS_REASONER_MULTI_OP_PROBABILITY"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Reasoner.MultiOpProbability = f
		}
	}
	if v := os.Getenv("NARS_REASONER_N_CONCEPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Reasoner.NConcepts = n
		}
	}
	if v := os.Getenv("NARS_REASONER_K_BELIEFS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Reasoner.KBeliefs = n
		}
	}
	if v := os.Getenv("NARS_REASONER_STORAGE_WORKER_CHANNEL_DEPTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Reasoner.StorageWorkerChannelDepth = n
		}
	}
	if v := os.Getenv("NARS_REASONER_STORAGE_WORKER_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Reasoner.StorageWorkerCount = n
		}
	}
	if v := os.Getenv("NARS_REASONER_VERBOSITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Reasoner.Verbosity = n
		}
	}

	if v := os.Getenv("NARS_LOGGING_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv("NARS_LOGGING_FORMAT"); v != "" {
		c.Logging.Format = strings.ToLower(v)
	}
	if v := os.Getenv("NARS_LOGGING_ENABLE_TIMESTAMPS"); v != "" {
		c.Logging.EnableTimestamps = parseBool(v)
	}

	return nil
}

// Validate checks the configuration for internally consistent values.
func (c *Config) Validate() error {
	r := c.Reasoner
	if r.IntervalExpBase <= 1 {
		return fmt.Errorf("reasoner.interval_exp_base must be > 1")
	}
	if r.IntervalMax <= 0 {
		return fmt.Errorf("reasoner.interval_max must be positive")
	}
	if r.PerceptWindow <= 0 {
		return fmt.Errorf("reasoner.percept_window must be positive")
	}
	if r.DecisionThreshold < 0 || r.DecisionThreshold > 1 {
		return fmt.Errorf("reasoner.decision_threshold must be in [0, 1]")
	}
	if r.NMaxEvidence <= 0 {
		return fmt.Errorf("reasoner.n_max_evidence must be positive")
	}
	if r.PerceptionSamplesPerStep < 0 {
		return fmt.Errorf("reasoner.perception_samples_per_step cannot be negative")
	}
	if r.NOpsMax < 1 {
		return fmt.Errorf("reasoner.n_ops_max must be >= 1")
	}
	if r.MultiOpProbability < 0 || r.MultiOpProbability > 1 {
		return fmt.Errorf("reasoner.multi_op_probability must be in [0, 1]")
	}
	if r.NConcepts <= 0 {
		return fmt.Errorf("reasoner.n_concepts must be positive")
	}
	if r.KBeliefs <= 0 {
		return fmt.Errorf("reasoner.k_beliefs must be positive")
	}
	if r.StorageWorkerChannelDepth <= 0 {
		return fmt.Errorf("reasoner.storage_worker_channel_depth must be positive")
	}
	if r.StorageWorkerCount <= 0 {
		return fmt.Errorf("reasoner.storage_worker_count must be positive")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be 'text' or 'json'")
	}

	return nil
}

// parseBool parses a boolean from string (handles various formats).
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on" || s == "enabled"
}

// ToJSON serializes the configuration to JSON.
func (c *Config) ToJSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// SaveToFile saves the configuration to path, in JSON or YAML depending on
// its extension.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = c.ToJSON()
	}
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
