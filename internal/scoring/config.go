package scoring

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Weights are the factors of the weighted match score. The defaults sum to
// 0.95, not 1.0; set Config.Normalize to rescale them.
type Weights struct {
	NutritionalBalance  float64 `yaml:"nutritional_balance" json:"nutritionalBalance"`
	BudgetOptimization  float64 `yaml:"budget_optimization" json:"budgetOptimization"`
	HealthGoalAlignment float64 `yaml:"health_goal_alignment" json:"healthGoalAlignment"`
	PreferenceMatching  float64 `yaml:"preference_matching" json:"preferenceMatching"`
}

// DefaultWeights returns the stock decision factors.
func DefaultWeights() Weights {
	return Weights{
		NutritionalBalance:  0.35,
		BudgetOptimization:  0.25,
		HealthGoalAlignment: 0.15,
		PreferenceMatching:  0.20,
	}
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.NutritionalBalance + w.BudgetOptimization + w.HealthGoalAlignment + w.PreferenceMatching
}

// Normalized returns w scaled so the weights sum to 1.
func (w Weights) Normalized() Weights {
	sum := w.Sum()
	if sum == 0 {
		return w
	}
	return Weights{
		NutritionalBalance:  w.NutritionalBalance / sum,
		BudgetOptimization:  w.BudgetOptimization / sum,
		HealthGoalAlignment: w.HealthGoalAlignment / sum,
		PreferenceMatching:  w.PreferenceMatching / sum,
	}
}

// DefaultSuitabilityThreshold is the score a candidate must exceed to be
// eligible for random selection.
const DefaultSuitabilityThreshold = 0.6

// Config configures a Scorer.
type Config struct {
	Weights              Weights `yaml:"weights"`
	SuitabilityThreshold float64 `yaml:"suitability_threshold"`
	Normalize            bool    `yaml:"normalize"`
}

// DefaultConfig returns the stock scoring configuration.
func DefaultConfig() Config {
	return Config{
		Weights:              DefaultWeights(),
		SuitabilityThreshold: DefaultSuitabilityThreshold,
	}
}

// LoadConfig reads a YAML scoring configuration. Keys absent from the file
// keep their default values. An empty path returns DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read scoring config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse scoring config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid scoring config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the weights and threshold ranges.
func (c Config) Validate() error {
	w := c.Weights
	if w.NutritionalBalance < 0 || w.BudgetOptimization < 0 || w.HealthGoalAlignment < 0 || w.PreferenceMatching < 0 {
		return fmt.Errorf("weights must not be negative")
	}
	if w.Sum() <= 0 {
		return fmt.Errorf("weights must sum to a positive value")
	}
	if c.SuitabilityThreshold < 0 || c.SuitabilityThreshold > 1 {
		return fmt.Errorf("suitability_threshold must be within [0, 1], got %v", c.SuitabilityThreshold)
	}
	return nil
}
