package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Reasoner.IntervalExpBase != 1.3 {
		t.Errorf("Expected interval_exp_base 1.3, got %v", cfg.Reasoner.IntervalExpBase)
	}
	if cfg.Reasoner.DecisionThreshold != 0.58 {
		t.Errorf("Expected decision_threshold 0.58, got %v", cfg.Reasoner.DecisionThreshold)
	}
	if cfg.Reasoner.NConcepts != 1000 {
		t.Errorf("Expected n_concepts 1000, got %d", cfg.Reasoner.NConcepts)
	}
	if !cfg.Reasoner.EnableBabbling {
		t.Error("Expected babbling to be enabled by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Expected log level 'info', got '%s'", cfg.Logging.Level)
	}
}

func TestLoad(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}
	if cfg.Reasoner.NConcepts != 1000 {
		t.Errorf("Expected default n_concepts, got %d", cfg.Reasoner.NConcepts)
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)

	_ = os.Setenv("NARS_REASONER_DECISION_THRESHOLD", "0.7")
	_ = os.Setenv("NARS_REASONER_N_CONCEPTS", "2000")
	_ = os.Setenv("NARS_REASONER_ENABLE_BABBLING", "false")
	_ = os.Setenv("NARS_LOGGING_LEVEL", "debug")
	defer clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Reasoner.DecisionThreshold != 0.7 {
		t.Errorf("Expected decision_threshold 0.7, got %v", cfg.Reasoner.DecisionThreshold)
	}
	if cfg.Reasoner.NConcepts != 2000 {
		t.Errorf("Expected n_concepts 2000, got %d", cfg.Reasoner.NConcepts)
	}
	if cfg.Reasoner.EnableBabbling {
		t.Error("Expected babbling to be disabled")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Expected log level 'debug', got '%s'", cfg.Logging.Level)
	}
}

func TestLoadFromFileJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	configJSON := `{
		"reasoner": {
			"interval_exp_base": 1.3,
			"interval_max": 20,
			"percept_window": 3,
			"decision_threshold": 0.6,
			"n_max_evidence": 5000,
			"perception_samples_per_step": 4,
			"enable_babbling": false,
			"n_ops_max": 2,
			"multi_op_probability": 0.3,
			"n_concepts": 500,
			"k_beliefs": 18,
			"storage_worker_channel_depth": 4,
			"storage_worker_count": 2,
			"verbosity": 1
		},
		"logging": {
			"level": "warn",
			"format": "json",
			"enable_timestamps": false
		}
	}`

	if err := os.WriteFile(configPath, []byte(configJSON), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	clearEnv(t)

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() failed: %v", err)
	}

	if cfg.Reasoner.PerceptWindow != 3 {
		t.Errorf("Expected percept_window 3, got %d", cfg.Reasoner.PerceptWindow)
	}
	if cfg.Reasoner.NConcepts != 500 {
		t.Errorf("Expected n_concepts 500, got %d", cfg.Reasoner.NConcepts)
	}
	if cfg.Reasoner.EnableBabbling {
		t.Error("Expected babbling to be disabled")
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Expected log level 'warn', got '%s'", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Expected log format 'json', got '%s'", cfg.Logging.Format)
	}
}

func TestLoadFromFileYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configYAML := "reasoner:\n  n_concepts: 777\n  decision_threshold: 0.42\nlogging:\n  level: debug\n"
	if err := os.WriteFile(configPath, []byte(configYAML), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	clearEnv(t)

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() failed: %v", err)
	}
	if cfg.Reasoner.NConcepts != 777 {
		t.Errorf("Expected n_concepts 777, got %d", cfg.Reasoner.NConcepts)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Expected log level 'debug', got '%s'", cfg.Logging.Level)
	}
}

func TestLoadFromFileWithEnvOverride(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	configJSON := `{"reasoner": {"n_concepts": 500}, "logging": {"level": "warn"}}`
	if err := os.WriteFile(configPath, []byte(configJSON), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	clearEnv(t)
	_ = os.Setenv("NARS_REASONER_N_CONCEPTS", "999")
	defer clearEnv(t)

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() failed: %v", err)
	}

	if cfg.Reasoner.NConcepts != 999 {
		t.Errorf("Expected n_concepts 999 (env override), got %d", cfg.Reasoner.NConcepts)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Expected log level 'warn' (from file), got '%s'", cfg.Logging.Level)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config { return Default() }

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		errMsg  string
	}{
		{name: "valid default config", mutate: func(c *Config) {}, wantErr: false},
		{
			name:    "interval exp base too small",
			mutate:  func(c *Config) { c.Reasoner.IntervalExpBase = 1.0 },
			wantErr: true,
			errMsg:  "interval_exp_base must be > 1",
		},
		{
			name:    "zero n_max_evidence",
			mutate:  func(c *Config) { c.Reasoner.NMaxEvidence = 0 },
			wantErr: true,
			errMsg:  "n_max_evidence must be positive",
		},
		{
			name:    "decision threshold out of range",
			mutate:  func(c *Config) { c.Reasoner.DecisionThreshold = 1.5 },
			wantErr: true,
			errMsg:  "decision_threshold must be in",
		},
		{
			name:    "n_ops_max below one",
			mutate:  func(c *Config) { c.Reasoner.NOpsMax = 0 },
			wantErr: true,
			errMsg:  "n_ops_max must be >= 1",
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: true,
			errMsg:  "logging.level must be one of",
		},
		{
			name:    "invalid log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: true,
			errMsg:  "logging.format must be 'text' or 'json'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("Validate() error = %v, should contain %q", err, tt.errMsg)
			}
		})
	}
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"on", true},
		{"enabled", true},
		{"false", false},
		{"0", false},
		{"", false},
		{"invalid", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := parseBool(tt.input); result != tt.expected {
				t.Errorf("parseBool(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestToJSON(t *testing.T) {
	cfg := Default()
	data, err := cfg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() failed: %v", err)
	}
	if len(data) == 0 {
		t.Error("ToJSON() returned empty data")
	}
	if !strings.Contains(string(data), "reasoner") {
		t.Error("JSON should contain 'reasoner' field")
	}
}

func TestSaveToFile(t *testing.T) {
	cfg := Default()
	cfg.Reasoner.NConcepts = 321
	tmpDir := t.TempDir()

	jsonPath := filepath.Join(tmpDir, "saved-config.json")
	if err := cfg.SaveToFile(jsonPath); err != nil {
		t.Fatalf("SaveToFile() failed: %v", err)
	}
	loaded, err := LoadFromFile(jsonPath)
	if err != nil {
		t.Fatalf("LoadFromFile() after save failed: %v", err)
	}
	if loaded.Reasoner.NConcepts != cfg.Reasoner.NConcepts {
		t.Errorf("Loaded config doesn't match saved config: %d != %d", loaded.Reasoner.NConcepts, cfg.Reasoner.NConcepts)
	}

	yamlPath := filepath.Join(tmpDir, "saved-config.yaml")
	if err := cfg.SaveToFile(yamlPath); err != nil {
		t.Fatalf("SaveToFile() (yaml) failed: %v", err)
	}
	loadedYAML, err := LoadFromFile(yamlPath)
	if err != nil {
		t.Fatalf("LoadFromFile() (yaml) after save failed: %v", err)
	}
	if loadedYAML.Reasoner.NConcepts != cfg.Reasoner.NConcepts {
		t.Errorf("Loaded YAML config doesn't match saved config: %d != %d", loadedYAML.Reasoner.NConcepts, cfg.Reasoner.NConcepts)
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	envVars := []string{
		"NARS_REASONER_INTERVAL_EXP_BASE",
		"NARS_REASONER_INTERVAL_MAX",
		"NARS_REASONER_PERCEPT_WINDOW",
		"NARS_REASONER_DECISION_THRESHOLD",
		"NARS_REASONER_N_MAX_EVIDENCE",
		"NARS_REASONER_PERCEPTION_SAMPLES_PER_STEP",
		"NARS_REASONER_ENABLE_BABBLING",
		"NARS_REASONER_N_OPS_MAX",
		"NARS_REASONER_MULTI_OP_PROBABILITY",
		"NARS_REASONER_N_CONCEPTS",
		"NARS_REASONER_K_BELIEFS",
		"NARS_REASONER_STORAGE_WORKER_CHANNEL_DEPTH",
		"NARS_REASONER_STORAGE_WORKER_COUNT",
		"NARS_REASONER_VERBOSITY",
		"NARS_LOGGING_LEVEL",
		"NARS_LOGGING_FORMAT",
		"NARS_LOGGING_ENABLE_TIMESTAMPS",
	}
	for _, v := range envVars {
		os.Unsetenv(v)
	}
}
