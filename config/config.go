// Package config loads experiment settings for gnnlimit from YAML files
// and environment variables.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/gnnlimit/classifier"
	"github.com/katalvlaran/gnnlimit/dataset"
	"github.com/katalvlaran/gnnlimit/label"
	"github.com/katalvlaran/gnnlimit/probe"
)

// Experiment is one study run: dataset, training, sweep, storage and logging.
type Experiment struct {
	// Name prefixes every stored key. Empty means "assign a random run id".
	Name string `json:"experiment" yaml:"experiment"`

	// Seed drives graph generation, model init and shuffling.
	Seed int64 `json:"seed" yaml:"seed"`

	Dataset DatasetConfig `json:"dataset" yaml:"dataset"`
	Train   TrainConfig   `json:"train" yaml:"train"`
	Sweep   SweepConfig   `json:"sweep" yaml:"sweep"`
	Store   StoreConfig   `json:"store" yaml:"store"`
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// DatasetConfig describes the training graphs.
type DatasetConfig struct {
	MinN          int     `json:"min_n" yaml:"min_n"`
	MaxN          int     `json:"max_n" yaml:"max_n"`
	GraphsPerSize int     `json:"graphs_per_size" yaml:"graphs_per_size"`
	FeatureDim    int     `json:"feature_dim" yaml:"feature_dim"`
	Mode          string  `json:"mode" yaml:"mode"`
	Policy        string  `json:"policy" yaml:"policy"`
	P             float64 `json:"p,omitempty" yaml:"p,omitempty"`
	// Split, when present, selects the 3-class average-degree rule.
	Split *label.Split `json:"split,omitempty" yaml:"split,omitempty"`
	// DegreeSumModel is "sum_of_pairs" (default) or "ordered_pairs".
	DegreeSumModel string `json:"degree_sum_model,omitempty" yaml:"degree_sum_model,omitempty"`
}

// TrainConfig holds the training-loop settings.
type TrainConfig struct {
	classifier.Hyperparameters `yaml:",inline"`
	TestFraction               float64 `json:"test_fraction" yaml:"test_fraction"`
}

// SweepConfig holds the asymptotic probe settings. Graphs are sampled with
// the dataset's feature dimension and probability policy.
type SweepConfig struct {
	Sizes          []int `json:"sizes" yaml:"sizes"`
	SamplesPerSize int   `json:"samples_per_size" yaml:"samples_per_size"`
	BatchSize      int   `json:"batch_size" yaml:"batch_size"`
}

// StoreConfig selects the artifact backend.
type StoreConfig struct {
	// Backend is "sqlite", "badger" or "memory".
	Backend string `json:"backend" yaml:"backend"`
	// Path is the SQLite file or badger directory.
	Path string `json:"path" yaml:"path"`
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	// Level is "debug", "info", "warn" or "error".
	Level string `json:"level" yaml:"level"`
	// Format is "text" or "json".
	Format string `json:"format" yaml:"format"`
}

// Default returns an Experiment with sensible defaults. Mode is left empty
// and must be set by the user.
func Default() *Experiment {
	return &Experiment{
		Seed: 1,
		Dataset: DatasetConfig{
			MinN:          10,
			MaxN:          30,
			GraphsPerSize: 20,
			FeatureDim:    4,
			Policy:        "inverse",
		},
		Train: TrainConfig{
			Hyperparameters: classifier.Hyperparameters{LearningRate: 0.05, Epochs: 30, BatchSize: 16},
			TestFraction:    0.2,
		},
		Sweep: SweepConfig{
			Sizes:          []int{10, 50, 100, 500, 1000, 5000},
			SamplesPerSize: 32,
			BatchSize:      8,
		},
		Store: StoreConfig{
			Backend: "sqlite",
			Path:    "gnnlimit.db",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadFromFile reads a YAML file over Default() and applies environment
// overrides. Unknown fields are rejected.
func LoadFromFile(path string) (*Experiment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Experiment) Validate() error {
	if _, err := c.DatasetSpec(); err != nil {
		return fmt.Errorf("dataset: %w", err)
	}
	if err := c.Train.Hyperparameters.Validate(); err != nil {
		return fmt.Errorf("train: %w", err)
	}
	if c.Train.TestFraction < 0 || c.Train.TestFraction >= 1 {
		return fmt.Errorf("train: test_fraction must be in [0,1), got %g: %w", c.Train.TestFraction, dataset.ErrBadFraction)
	}
	if _, err := c.SweepSpec(); err != nil {
		return fmt.Errorf("sweep: %w", err)
	}
	if c.Sweep.BatchSize < 1 {
		return fmt.Errorf("sweep: batch_size must be >= 1, got %d: %w", c.Sweep.BatchSize, dataset.ErrBadBatchSize)
	}

	validBackends := map[string]bool{"sqlite": true, "badger": true, "memory": true}
	if !validBackends[c.Store.Backend] {
		return fmt.Errorf("invalid store backend: %s (valid: sqlite, badger, memory)", c.Store.Backend)
	}
	if c.Store.Backend == "sqlite" && c.Store.Path == "" {
		return fmt.Errorf("store: sqlite backend needs a path")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", c.Logging.Level)
	}
	if c.Logging.Format != "" && c.Logging.Format != "text" && c.Logging.Format != "json" {
		return fmt.Errorf("invalid log format: %s (valid: text, json)", c.Logging.Format)
	}

	return nil
}

// EnsureName assigns a random run id when Name is empty and returns Name.
func (c *Experiment) EnsureName() string {
	if c.Name == "" {
		c.Name = uuid.NewString()
	}
	return c.Name
}

// DatasetSpec converts the dataset section.
func (c *Experiment) DatasetSpec() (dataset.Spec, error) {
	d := c.Dataset
	if strings.TrimSpace(d.Mode) == "" {
		return dataset.Spec{}, fmt.Errorf("mode is required: %w", label.ErrUnknownMode)
	}
	mode, err := label.ParseMode(d.Mode)
	if err != nil {
		return dataset.Spec{}, err
	}
	pol, err := dataset.ParsePolicy(d.Policy, d.P)
	if err != nil {
		return dataset.Spec{}, err
	}
	model, err := label.ParseDegreeSumModel(d.DegreeSumModel)
	if err != nil {
		return dataset.Spec{}, err
	}

	spec := dataset.Spec{
		Sizes:         dataset.Range{Min: d.MinN, Max: d.MaxN},
		GraphsPerSize: d.GraphsPerSize,
		FeatureDim:    d.FeatureDim,
		Mode:          mode,
		Prob:          pol,
		Split:         d.Split,
		Model:         model,
	}
	if err = spec.Validate(); err != nil {
		return dataset.Spec{}, err
	}
	return spec, nil
}

// SweepSpec converts the sweep section; it inherits the dataset's feature
// dimension, policy and labeling rule.
func (c *Experiment) SweepSpec() (probe.SweepSpec, error) {
	ds, err := c.DatasetSpec()
	if err != nil {
		return probe.SweepSpec{}, err
	}
	spec := probe.SweepSpec{
		Sizes:          append([]int(nil), c.Sweep.Sizes...),
		SamplesPerSize: c.Sweep.SamplesPerSize,
		FeatureDim:     ds.FeatureDim,
		Prob:           ds.Prob,
		Mode:           ds.Mode,
		Split:          ds.Split,
		Model:          ds.Model,
	}
	if err = spec.Validate(); err != nil {
		return probe.SweepSpec{}, err
	}
	return spec, nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Experiment) {
	if v := os.Getenv("GNNLIMIT_EXPERIMENT"); v != "" {
		cfg.Name = v
	}
	if v := os.Getenv("GNNLIMIT_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Seed = n
		}
	}
	if v := os.Getenv("GNNLIMIT_STORE_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("GNNLIMIT_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
